package markdown

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapleline/policyscan/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "platform.md", "# Climate Platform\n\nNet zero by 2050.\n")

	doc, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "Climate Platform", doc.Title)
	assert.Equal(t, "# Climate Platform\n\nNet zero by 2050.", doc.Text)
}

func TestParse_TitleFallsBackToFileName(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dental-care.md", "No heading here, just text.\n\n## A subheading\n")

	doc, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "dental-care", doc.Title)
}

func TestParse_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.md", "  \n\n")

	_, err := Parse(path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "# Second")
	writeFile(t, dir, "a.markdown", "# First")
	writeFile(t, dir, "notes.txt", "not markdown")
	writeFile(t, dir, "empty.md", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	docs, err := ScanDir(dir)
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "First", docs[0].Title)
	assert.Equal(t, "Second", docs[1].Title)
}

func TestDocument_Input(t *testing.T) {
	doc := &Document{Path: "/drop/housing.md", Title: "Housing", Text: "# Housing\n\nBody."}

	in := doc.Input(3)
	assert.Equal(t, "file:///drop/housing.md", in.URL)
	assert.Equal(t, "Housing", in.Title)
	assert.Equal(t, domain.SourceKindWebpage, in.Kind)
	assert.Equal(t, int64(3), in.PartyID)
	require.NoError(t, in.Validate())
}
