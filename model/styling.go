package model

import "fmt"

// Default styling values used when a document does not specify them.
const (
	DefaultFontFamily = "Default Font"
	DefaultFontSize   = 12
	DefaultColor      = "black"
)

// TextAlignment represents paragraph alignment
type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

func (a TextAlignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// MarshalText encodes the alignment by name.
func (a TextAlignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes an alignment name.
func (a *TextAlignment) UnmarshalText(b []byte) error {
	switch string(b) {
	case "left":
		*a = AlignLeft
	case "center":
		*a = AlignCenter
	case "right":
		*a = AlignRight
	case "justify":
		*a = AlignJustify
	default:
		return fmt.Errorf("unknown alignment %q", b)
	}
	return nil
}

// Styling is the effective formatting of a paragraph or run.
type Styling struct {
	Bold       bool          `json:"bold"`
	Italic     bool          `json:"italic"`
	Alignment  TextAlignment `json:"alignment"`
	FontSizePt int           `json:"fontsize"`
	FontFamily string        `json:"fonttype"`
	Color      string        `json:"color"`
	Highlight  string        `json:"highlight,omitempty"`
}

// DefaultStyling returns the styling of text with no formatting at all.
func DefaultStyling() Styling {
	return Styling{
		Alignment:  AlignLeft,
		FontSizePt: DefaultFontSize,
		FontFamily: DefaultFontFamily,
		Color:      DefaultColor,
	}
}
