package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

var ErrPageUnavailable = errors.New("page unavailable")

// Document exposes the plain text of each page of a PDF.
type Document struct {
	reader *pdf.Reader
	closer io.Closer
}

// Open opens the PDF at path. The caller must Close the document.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &Document{reader: r, closer: f}, nil
}

// FromBytes reads a PDF held in memory.
func FromBytes(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty pdf content")
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return &Document{reader: r}, nil
}

func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// PageText returns the plain text of the zero-based page index.
func (d *Document) PageText(index int) (text string, err error) {
	if index < 0 || index >= d.NumPages() {
		return "", fmt.Errorf("page %d: %w", index, ErrPageUnavailable)
	}

	// Malformed content streams can panic inside the pdf package.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("page %d: %v: %w", index, r, ErrPageUnavailable)
		}
	}()

	page := d.reader.Page(index + 1)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d: %w", index, ErrPageUnavailable)
	}
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d: extract text: %w", index, err)
	}
	return text, nil
}

func (d *Document) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

// Pages is a document whose page text is already known.
type Pages []string

func (p Pages) NumPages() int {
	return len(p)
}

func (p Pages) PageText(index int) (string, error) {
	if index < 0 || index >= len(p) {
		return "", fmt.Errorf("page %d: %w", index, ErrPageUnavailable)
	}
	return p[index], nil
}

func (Pages) Close() error {
	return nil
}
