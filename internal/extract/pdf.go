package extract

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFToText extracts the plain text of a PDF, page by page, with a
// "--- Page N ---" marker preceding each page that yielded text. Pages with
// no extractable text are skipped without aborting the file.
func PDFToText(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", pdfPath, err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// unreadable page, keep going
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return assemblePages(pages), nil
}

// assemblePages joins page texts with "--- Page N ---" markers. Page numbers
// follow source order; pages with no extractable text contribute nothing.
func assemblePages(pages []string) string {
	var b strings.Builder
	for i, text := range pages {
		if strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n--- Page %d ---\n", i+1)
		b.WriteString(text)
	}
	return b.String()
}

// ConvertPDF extracts a PDF and writes the text to <stem>.txt in outputDir.
// An empty outputDir means the PDF's own directory. Returns the output path.
func ConvertPDF(pdfPath, outputDir string) (string, error) {
	text, err := PDFToText(pdfPath)
	if err != nil {
		return "", err
	}
	if outputDir == "" {
		outputDir = filepath.Dir(pdfPath)
	}
	stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	outPath := filepath.Join(outputDir, stem+".txt")
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}
	return outPath, nil
}

// ConvertAll converts every .pdf under dir to a sibling .txt file. Per-file
// failures are logged and counted; the batch keeps going.
func ConvertAll(dir string) (converted, failed int, err error) {
	var pdfs []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			pdfs = append(pdfs, path)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	log.Printf("found %d PDF files in %s", len(pdfs), dir)
	for _, p := range pdfs {
		out, err := ConvertPDF(p, "")
		if err != nil {
			log.Printf("convert %s failed: %v", p, err)
			failed++
			continue
		}
		log.Printf("converted %s -> %s", p, out)
		converted++
	}
	return converted, failed, nil
}
