// Package format identifies word-processing packages before they are opened,
// so that other office formats can be rejected with a clear error.
package format

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Word document (.docx).
	DOCX
	// DOCM indicates a macro-enabled Word document (.docm).
	DOCM
	// DOTX indicates a Word template (.dotx).
	DOTX
	// DOTM indicates a macro-enabled Word template (.dotm).
	DOTM
	// DOC indicates a legacy binary Word document (.doc).
	DOC
	// PDF indicates a PDF document.
	PDF
	// ODT indicates an OpenDocument Text (.odt) document.
	ODT
	// XLSX indicates a Microsoft Excel (.xlsx) document.
	XLSX
	// PPTX indicates a Microsoft PowerPoint (.pptx) document.
	PPTX
)

var formatInfo = map[Format]struct{ name, ext string }{
	DOCX: {"DOCX", ".docx"},
	DOCM: {"DOCM", ".docm"},
	DOTX: {"DOTX", ".dotx"},
	DOTM: {"DOTM", ".dotm"},
	DOC:  {"DOC", ".doc"},
	PDF:  {"PDF", ".pdf"},
	ODT:  {"ODT", ".odt"},
	XLSX: {"XLSX", ".xlsx"},
	PPTX: {"PPTX", ".pptx"},
}

// String returns the string representation of the format.
func (f Format) String() string {
	if info, ok := formatInfo[f]; ok {
		return info.name
	}
	return "Unknown"
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	return formatInfo[f].ext
}

// IsWordprocessing reports whether the format is a WordprocessingML
// package, i.e. one whose main part is word/document.xml.
func (f Format) IsWordprocessing() bool {
	switch f {
	case DOCX, DOCM, DOTX, DOTM:
		return true
	default:
		return false
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return Unknown
	}
	for f, info := range formatInfo {
		if info.ext == ext {
			return f
		}
	}
	return Unknown
}

var (
	magicPDF = []byte("%PDF")
	magicZIP = []byte("PK\x03\x04")
	magicOLE = []byte("\xd0\xcf\x11\xe0\xa1\xb1\x1a\xe1")
)

// DetectFromMagic checks file magic bytes to determine format.
// ZIP archives need their contents inspected, so they report Unknown here;
// use DetectFromReader for those.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicPDF):
		return PDF
	case bytes.HasPrefix(data, magicOLE):
		return DOC
	default:
		return Unknown
	}
}

// DetectFromReader inspects the content to determine format.
// This is more reliable than extension-based detection and can
// distinguish between the different ZIP-based formats.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, magicZIP) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// DetectFile inspects the content of a file on disk. When the content is
// inconclusive the extension decides.
func DetectFile(filename string) (Format, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Unknown, err
	}

	format, err := DetectFromReader(f, st.Size())
	if err != nil {
		return Unknown, fmt.Errorf("inspecting %s: %w", filepath.Base(filename), err)
	}
	if format == Unknown {
		return Detect(filename), nil
	}
	return format, nil
}

// Main-part content types of the WordprocessingML variants.
var mainContentTypes = map[string]Format{
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml": DOCX,
	"application/vnd.ms-word.document.macroEnabled.main+xml":                           DOCM,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.template.main+xml": DOTX,
	"application/vnd.ms-word.template.macroEnabledTemplate.main+xml":                   DOTM,
}

// contentTypes is the subset of [Content_Types].xml needed for detection.
type contentTypes struct {
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// detectZIPFormat inspects a ZIP archive to determine if it's a Word
// package, another OOXML format, or ODT.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	// OpenDocument has a mimetype file at the start
	for _, f := range zr.File {
		if f.Name == "mimetype" {
			rc, err := f.Open()
			if err == nil {
				data := make([]byte, 256)
				n, _ := io.ReadFull(rc, data)
				rc.Close()
				if strings.Contains(string(data[:n]), "application/vnd.oasis.opendocument.text") {
					return ODT, nil
				}
			}
		}
	}

	// The declared type of the main document part tells the Word variants
	// apart.
	for _, f := range zr.File {
		if f.Name != "[Content_Types].xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			break
		}
		var ct contentTypes
		err = xml.NewDecoder(rc).Decode(&ct)
		rc.Close()
		if err != nil {
			break
		}
		for _, o := range ct.Overrides {
			if format, ok := mainContentTypes[o.ContentType]; ok {
				return format, nil
			}
		}
	}

	// Fall back to the part layout
	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		}
	}

	return Unknown, nil
}
