package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NodeType is the "type" discriminant of a content node
type NodeType string

const (
	NodeParagraph      NodeType = "paragraph"
	NodeHeading1       NodeType = "h1"
	NodeHeading2       NodeType = "h2"
	NodeHeading3       NodeType = "h3"
	NodeEmptyParagraph NodeType = "empty_paragraph"
	NodePageBreak      NodeType = "page_break"
	NodeLineBreak      NodeType = "line_break"
	NodeTable          NodeType = "table"
	NodeImage          NodeType = "image"
	NodeTextRun        NodeType = "text_run"
)

// Literal content of the break markers.
const (
	PageBreakContent = "[PAGE BREAK]"
	LineBreakContent = "[LINE BREAK]"
)

// MaxHeadingLevel is the deepest heading level a document can carry.
const MaxHeadingLevel = 3

// HeadingType returns the node type of a heading level. Levels outside
// 1..MaxHeadingLevel map to NodeParagraph.
func HeadingType(level int) NodeType {
	switch level {
	case 1:
		return NodeHeading1
	case 2:
		return NodeHeading2
	case 3:
		return NodeHeading3
	default:
		return NodeParagraph
	}
}

// Node is a block of body content. The set of implementations is closed:
// only the types in this package satisfy it.
type Node interface {
	Type() NodeType
	isNode()
}

// TextNode is a node carrying paragraph text and styling
type TextNode interface {
	Node
	GetText() string
	GetStyling() Styling
}

// Run is a styled span of a multi-run paragraph
type Run struct {
	Text    string
	Styling Styling
}

// MarshalJSON encodes the run as a text_run object.
func (r Run) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		Type    NodeType `json:"type"`
		Content string   `json:"content"`
		Styling Styling  `json:"styling"`
	}{NodeTextRun, r.Text, r.Styling})
}

// textJSON is the wire shape shared by paragraphs and headings.
type textJSON struct {
	Type    NodeType  `json:"type"`
	Content string    `json:"content"`
	Styling []Styling `json:"styling"`
	Runs    []Run     `json:"runs,omitempty"`
}

// Paragraph represents a paragraph of body text. Runs is set only when
// the paragraph has more than one non-blank run.
type Paragraph struct {
	Text    string
	Styling Styling
	Runs    []Run
}

// NewParagraph creates a paragraph node
func NewParagraph(text string, styling Styling, runs []Run) *Paragraph {
	return &Paragraph{Text: text, Styling: styling, Runs: runs}
}

func (p *Paragraph) Type() NodeType      { return NodeParagraph }
func (p *Paragraph) GetText() string     { return p.Text }
func (p *Paragraph) GetStyling() Styling { return p.Styling }
func (*Paragraph) isNode()               {}

func (p *Paragraph) MarshalJSON() ([]byte, error) {
	return marshalJSON(textJSON{p.Type(), p.Text, []Styling{p.Styling}, p.Runs})
}

// Heading represents a heading paragraph
type Heading struct {
	Level   int // 1-3
	Text    string
	Styling Styling
	Runs    []Run
}

// NewHeading creates a heading node. The level must be between 1 and
// MaxHeadingLevel.
func NewHeading(level int, text string, styling Styling, runs []Run) (*Heading, error) {
	if level < 1 || level > MaxHeadingLevel {
		return nil, fmt.Errorf("heading level %d out of range 1-%d", level, MaxHeadingLevel)
	}
	return &Heading{Level: level, Text: text, Styling: styling, Runs: runs}, nil
}

func (h *Heading) Type() NodeType      { return HeadingType(h.Level) }
func (h *Heading) GetText() string     { return h.Text }
func (h *Heading) GetStyling() Styling { return h.Styling }
func (*Heading) isNode()               {}

func (h *Heading) MarshalJSON() ([]byte, error) {
	return marshalJSON(textJSON{h.Type(), h.Text, []Styling{h.Styling}, h.Runs})
}

// NewTextNode returns a Heading for levels 1..MaxHeadingLevel and a
// Paragraph for anything else.
func NewTextNode(level int, text string, styling Styling, runs []Run) TextNode {
	if h, err := NewHeading(level, text, styling, runs); err == nil {
		return h
	}
	return NewParagraph(text, styling, runs)
}

// MathParagraph is a paragraph whose content was flattened from equation
// markup. Its type follows the paragraph style like any other paragraph.
type MathParagraph struct {
	Level   int // heading level of the paragraph style, 0 for body text
	Text    string
	Styling Styling
}

func (m *MathParagraph) Type() NodeType      { return HeadingType(m.Level) }
func (m *MathParagraph) GetText() string     { return m.Text }
func (m *MathParagraph) GetStyling() Styling { return m.Styling }
func (*MathParagraph) isNode()               {}

func (m *MathParagraph) MarshalJSON() ([]byte, error) {
	return marshalJSON(textJSON{m.Type(), m.Text, []Styling{m.Styling}, nil})
}

// markerJSON is the wire shape of nodes with fixed content.
type markerJSON struct {
	Type    NodeType `json:"type"`
	Content string   `json:"content"`
}

// EmptyParagraph is a paragraph without visible text
type EmptyParagraph struct{}

func (*EmptyParagraph) Type() NodeType { return NodeEmptyParagraph }
func (*EmptyParagraph) isNode()        {}

func (e *EmptyParagraph) MarshalJSON() ([]byte, error) {
	return marshalJSON(markerJSON{NodeEmptyParagraph, ""})
}

// PageBreak marks a paragraph holding a page break
type PageBreak struct{}

func (*PageBreak) Type() NodeType { return NodePageBreak }
func (*PageBreak) isNode()        {}

func (b *PageBreak) MarshalJSON() ([]byte, error) {
	return marshalJSON(markerJSON{NodePageBreak, PageBreakContent})
}

// LineBreak marks a paragraph holding a text-wrapping break
type LineBreak struct{}

func (*LineBreak) Type() NodeType { return NodeLineBreak }
func (*LineBreak) isNode()        {}

func (b *LineBreak) MarshalJSON() ([]byte, error) {
	return marshalJSON(markerJSON{NodeLineBreak, LineBreakContent})
}

// Table holds cell text in row-major order. Rows may differ in length;
// the source shape is kept as-is.
type Table struct {
	Rows [][]string
}

func (t *Table) Type() NodeType { return NodeTable }
func (*Table) isNode()          {}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Cell returns the text of a cell, or "" when out of range
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

func (t *Table) MarshalJSON() ([]byte, error) {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		if row == nil {
			row = []string{}
		}
		rows[i] = row
	}
	return marshalJSON(struct {
		Type    NodeType   `json:"type"`
		Content [][]string `json:"content"`
	}{NodeTable, rows})
}

// Image references an extracted image asset
type Image struct {
	AssetRef string // asset name, e.g. Image_rId7.png
	// Alt text if available
	Description string
	// Text recognised in the image, when OCR is enabled
	Text string
	// MediaType is the sniffed type of the payload; it is not serialized.
	MediaType string
}

func (i *Image) Type() NodeType { return NodeImage }
func (*Image) isNode()          {}

func (i *Image) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		Type        NodeType `json:"type"`
		Content     string   `json:"content"`
		Description string   `json:"description,omitempty"`
		Text        string   `json:"text,omitempty"`
	}{NodeImage, i.AssetRef, i.Description, i.Text})
}

// marshalJSON is json.Marshal without HTML escaping, so that document text
// such as "a < b" survives verbatim in the output.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
