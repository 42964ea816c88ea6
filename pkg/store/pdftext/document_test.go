package pdftext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages(t *testing.T) {
	pages := Pages{"header", "table"}

	assert.Equal(t, 2, pages.NumPages())

	text, err := pages.PageText(1)
	require.NoError(t, err)
	assert.Equal(t, "table", text)

	_, err = pages.PageText(2)
	assert.ErrorIs(t, err, ErrPageUnavailable)

	_, err = pages.PageText(-1)
	assert.ErrorIs(t, err, ErrPageUnavailable)

	assert.NoError(t, pages.Close())
}

func TestFromBytes_RejectsEmptyContent(t *testing.T) {
	doc, err := FromBytes(nil)
	assert.Error(t, err)
	assert.Nil(t, doc)
}

func TestFromBytes_RejectsNonPDF(t *testing.T) {
	doc, err := FromBytes([]byte("this is not a pdf file at all"))
	assert.Error(t, err)
	assert.Nil(t, doc)
}

func TestOpen_MissingFile(t *testing.T) {
	doc, err := Open(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
	assert.Nil(t, doc)
}

func TestOpen_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	doc, err := Open(path)
	assert.Error(t, err)
	assert.Nil(t, doc)
}
