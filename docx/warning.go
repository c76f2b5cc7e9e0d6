package docx

import "fmt"

// WarningKind names the unit of work a warning belongs to.
type WarningKind string

const (
	WarnImage  WarningKind = "image"
	WarnOCR    WarningKind = "ocr"
	WarnHeader WarningKind = "header"
	WarnFooter WarningKind = "footer"
)

// Warning is a non-fatal problem met while building the content tree. The
// affected element is skipped or degraded; the rest of the document is
// still converted.
type Warning struct {
	Element int // index of the body element, or -1 outside the body
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	if w.Element < 0 {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("element %d: %s: %s", w.Element, w.Kind, w.Message)
}
