package loader

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"notechat/internal/domain"
	"notechat/internal/extract"
)

// DefaultExtensions are the file types picked up from the notes directory.
var DefaultExtensions = []string{".txt", ".pdf", ".md", ".docx"}

// Loader walks a notes directory and turns matching files into Documents.
type Loader struct {
	extensions map[string]struct{}
}

// New creates a Loader accepting the given extensions (DefaultExtensions when
// none are provided).
func New(extensions ...string) *Loader {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	m := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		m[strings.ToLower(e)] = struct{}{}
	}
	return &Loader{extensions: m}
}

// Load recursively enumerates matching files under dir and parses each into
// a Document. A missing directory is an error; a file that fails to parse is
// logged and skipped.
func (l *Loader) Load(dir string) ([]domain.Document, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("notes directory %s: %w", dir, err)
	}
	var docs []domain.Document
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := l.extensions[ext]; !ok {
			return nil
		}
		content, err := readFile(path, ext)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			return nil
		}
		docs = append(docs, domain.Document{
			ID:      hashString(path),
			Path:    path,
			Content: content,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i, d := range docs {
		log.Printf("document %d/%d %s preview: %s", i+1, len(docs), d.Path, preview(d.Content))
		if len(strings.TrimSpace(d.Content)) < 50 {
			log.Printf("warning: %s has very little content, extraction may have failed", d.Path)
		}
	}
	return docs, nil
}

func readFile(path, ext string) (string, error) {
	switch ext {
	case ".pdf":
		return extract.PDFToText(path)
	case ".docx":
		return extract.DocxToText(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func preview(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
