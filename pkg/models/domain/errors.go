package domain

import (
	"errors"
	"fmt"
)

type FailureKind int

const (
	FailureDocumentUnreadable FailureKind = iota
	FailureNoHeaderPage
)

var (
	ErrDocumentUnreadable = errors.New("document unreadable")
	ErrNoHeaderPage       = errors.New("no header page")
)

func (k FailureKind) String() string {
	switch k {
	case FailureDocumentUnreadable:
		return "document_unreadable"
	case FailureNoHeaderPage:
		return "no_header_page"
	default:
		return fmt.Sprintf("failure(%d)", int(k))
	}
}

func (k FailureKind) sentinel() error {
	if k == FailureNoHeaderPage {
		return ErrNoHeaderPage
	}
	return ErrDocumentUnreadable
}

// ParseError is the only error a report parse returns for a document it
// could not read at all.
type ParseError struct {
	Kind FailureKind
	Err  error
}

func NewParseError(kind FailureKind, err error) *ParseError {
	return &ParseError{Kind: kind, Err: err}
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return e.Kind.sentinel().Error()
	}
	return fmt.Sprintf("%s: %v", e.Kind.sentinel(), e.Err)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}
