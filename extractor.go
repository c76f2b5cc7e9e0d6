package docxtree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tsawler/docxtree/assets"
	"github.com/tsawler/docxtree/docx"
	"github.com/tsawler/docxtree/format"
	"github.com/tsawler/docxtree/model"
	"github.com/tsawler/docxtree/ocr"
)

// Extractor provides a fluent interface for converting DOCX files.
// Each configuration method returns a new Extractor instance, allowing
// method chaining. Terminal operations open the source on a private copy,
// so one Extractor may run several of them, including concurrently.
type Extractor struct {
	// Source
	filename string
	format   format.Format

	reader *docx.Reader

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		format:       e.format,
		reader:       e.reader,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		options:      e.options.clone(),
		err:          e.err,
		warnings:     append([]Warning(nil), e.warnings...),
	}
}

// ensureReader opens the reader if not already open.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	f, err := format.DetectFile(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open DOCX: %w", err)
	}
	e.format = f
	if !f.IsWordprocessing() {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}

	r, err := docx.Open(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open DOCX: %w", err)
	}
	e.reader = r
	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		e.readerOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// WithAssetSink sends extracted images to sink instead of discarding them.
//
// Example:
//
//	sink := assets.NewMemorySink()
//	tree, _, err := docxtree.Open("doc.docx").WithAssetSink(sink).Tree()
func (e *Extractor) WithAssetSink(sink assets.Sink) *Extractor {
	newExt := e.clone()
	newExt.options.sink = sink
	return newExt
}

// WithAssetDir writes extracted images as files into dir, which is created
// on first use.
//
// Example:
//
//	tree, _, err := docxtree.Open("doc.docx").WithAssetDir("out").Tree()
func (e *Extractor) WithAssetDir(dir string) *Extractor {
	newExt := e.clone()
	newExt.options.assetDir = dir
	return newExt
}

// WithLogger sets the logger that receives per-element debug events and
// warnings.
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// IncludeHeadersFooters also collects the text of the document's header
// and footer parts into the tree.
//
// Example:
//
//	tree, _, err := docxtree.Open("doc.docx").IncludeHeadersFooters().Tree()
func (e *Extractor) IncludeHeadersFooters() *Extractor {
	newExt := e.clone()
	newExt.options.headersFooters = true
	return newExt
}

// InOrderMath joins the text and equations of a math paragraph in document
// order. By default each later fragment is placed before the earlier ones.
func (e *Extractor) InOrderMath() *Extractor {
	newExt := e.clone()
	newExt.options.inOrderMath = true
	return newExt
}

// WithOCR runs text recognition over embedded images using the given
// Tesseract language (e.g. "eng" or "eng+deu"). An empty lang selects
// ocr.DefaultLanguage. When OCR support is not compiled in, conversion
// proceeds without it and a warning is reported.
func (e *Extractor) WithOCR(lang string) *Extractor {
	newExt := e.clone()
	if lang == "" {
		lang = ocr.DefaultLanguage
	}
	newExt.options.ocrLanguage = lang
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Tree converts the document into a content tree.
//
// Returns the tree, any warnings encountered during processing, and an
// error if conversion failed. Warnings indicate elements that were skipped
// or degraded (e.g., an image whose relationship could not be resolved).
//
// Example:
//
//	tree, warnings, err := docxtree.Open("document.docx").Tree()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docxtree.FormatWarnings(warnings))
//	}
func (e *Extractor) Tree() (*model.Tree, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	run := e.clone()
	if err := run.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer run.Close()

	opts := docx.Options{
		Sink:           e.options.assetSink(),
		Logger:         e.options.logger,
		InOrderMath:    e.options.inOrderMath,
		HeadersFooters: e.options.headersFooters,
	}

	warnings := append([]Warning(nil), e.warnings...)

	if e.options.ocrLanguage != "" {
		client, err := ocr.New(e.options.ocrLanguage)
		switch {
		case errors.Is(err, ocr.ErrOCRNotEnabled):
			warnings = append(warnings, Warning{Element: -1, Kind: docx.WarnOCR, Message: err.Error()})
		case err != nil:
			return nil, warnings, fmt.Errorf("initializing OCR: %w", err)
		default:
			defer client.Close()
			opts.Recognizer = client
		}
	}

	tree, treeWarnings, err := run.reader.ContentTree(opts)
	warnings = append(warnings, treeWarnings...)
	if err != nil {
		return nil, warnings, err
	}
	return tree, warnings, nil
}

// JSON converts the document and serializes the tree as indented JSON.
// HTML-sensitive characters are written as-is.
//
// Example:
//
//	data, _, err := docxtree.Open("document.docx").JSON()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.json", data, 0o644)
func (e *Extractor) JSON() ([]byte, []Warning, error) {
	tree, warnings, err := e.Tree()
	if err != nil {
		return nil, warnings, err
	}
	data, err := MarshalTree(tree)
	if err != nil {
		return nil, warnings, err
	}
	return data, warnings, nil
}

// Metadata returns the document's core properties without converting the
// body.
//
// Example:
//
//	meta, err := docxtree.Open("document.docx").Metadata()
func (e *Extractor) Metadata() (model.Metadata, error) {
	if e.err != nil {
		return model.Metadata{}, e.err
	}

	run := e.clone()
	if err := run.ensureReader(); err != nil {
		return model.Metadata{}, err
	}
	defer run.Close()

	return run.reader.Metadata(), nil
}

// MarshalTree renders a tree the way JSON does: two-space indentation,
// no HTML escaping, no trailing newline.
func MarshalTree(tree *model.Tree) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("encoding tree: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
