// Package ocr recognises text in images embedded in documents.
//
// The real implementation wraps the Tesseract engine via gosseract and is
// compiled only with the "ocr" build tag:
//
//	go build -tags ocr
//
// Tesseract must be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Without the tag, New returns ErrOCRNotEnabled.
package ocr

import "errors"

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// DefaultLanguage is used when New is given an empty language.
const DefaultLanguage = "eng"
