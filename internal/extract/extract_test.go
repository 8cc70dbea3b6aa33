package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemblePagesMarkersInOrder(t *testing.T) {
	out := assemblePages([]string{"first page", "second page", "third page"})
	assert.Equal(t, 3, strings.Count(out, "--- Page "))

	p1 := strings.Index(out, "--- Page 1 ---")
	p2 := strings.Index(out, "--- Page 2 ---")
	p3 := strings.Index(out, "--- Page 3 ---")
	require.True(t, p1 >= 0 && p2 >= 0 && p3 >= 0)
	assert.Less(t, p1, p2)
	assert.Less(t, p2, p3)
	assert.Contains(t, out, "second page")
}

func TestAssemblePagesSkipsEmptyButKeepsNumbering(t *testing.T) {
	out := assemblePages([]string{"first", "   ", "third"})
	assert.Contains(t, out, "--- Page 1 ---")
	assert.NotContains(t, out, "--- Page 2 ---")
	assert.Contains(t, out, "--- Page 3 ---")
}

func TestAssemblePagesAllEmpty(t *testing.T) {
	assert.Empty(t, assemblePages([]string{"", "  "}))
	assert.Empty(t, assemblePages(nil))
}

func TestConvertAllEmptyDirectory(t *testing.T) {
	converted, failed, err := ConvertAll(t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, converted)
	assert.Zero(t, failed)
}

func TestConvertAllCountsFailures(t *testing.T) {
	dir := t.TempDir()
	// not a real PDF, extraction must fail without aborting the batch
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("not a pdf"), 0o644))

	converted, failed, err := ConvertAll(dir)
	require.NoError(t, err)
	assert.Zero(t, converted)
	assert.Equal(t, 1, failed)
}

func writeDocx(t *testing.T, path, documentXML string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestDocxToText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.docx")
	writeDocx(t, path, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Hello</w:t></w:r><w:r><w:t xml:space="preserve"> world</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := DocxToText(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Hello world")
	assert.Contains(t, text, "Second paragraph")
	// paragraphs separated by a newline
	assert.Less(t, strings.Index(text, "Hello world"), strings.Index(text, "Second paragraph"))
	assert.Contains(t, text, "Hello world\n")
}

func TestDocxToTextMissingDocumentXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = DocxToText(path)
	assert.ErrorContains(t, err, "word/document.xml")
}

func TestDocxToTextNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.docx")
	require.NoError(t, os.WriteFile(path, []byte("plain"), 0o644))
	_, err := DocxToText(path)
	assert.Error(t, err)
}
