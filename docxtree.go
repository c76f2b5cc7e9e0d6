// Package docxtree provides a fluent API for converting WordprocessingML
// (.docx) documents into a tree of typed content nodes.
//
// Basic usage:
//
//	tree, warnings, err := docxtree.Open("report.docx").Tree()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docxtree.FormatWarnings(warnings))
//	}
//
// With options:
//
//	data, _, err := docxtree.Open("report.docx").
//	    WithAssetDir("out/assets").
//	    IncludeHeadersFooters().
//	    JSON()
//
// For advanced use cases, the lower-level docx package is also available.
package docxtree

import (
	"errors"

	"github.com/tsawler/docxtree/docx"
)

// Open opens a DOCX file and returns an Extractor for fluent configuration.
// The file is opened lazily by the first terminal operation and closed when
// it returns, or explicitly via Close().
//
// Example:
//
//	tree, warnings, err := docxtree.Open("document.docx").Tree()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened docx.Reader.
// This is useful when you need more control over the reader lifecycle.
// Note: The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := docx.Open("document.docx")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	tree, warnings, err := docxtree.FromReader(r).Tree()
func FromReader(r *docx.Reader) *Extractor {
	if r == nil {
		return &Extractor{err: errors.New("nil docx reader"), options: defaultOptions()}
	}
	return &Extractor{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	meta := docxtree.Must(docxtree.Open("document.docx").Metadata())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTree is a helper that wraps a call to Tree() or JSON() and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	tree := docxtree.MustTree(docxtree.Open("document.docx").Tree())
func MustTree[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
