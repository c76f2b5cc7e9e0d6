package model

import "strings"

// Tree is the complete content tree of one document.
type Tree struct {
	Metadata Metadata `json:"metadata"`
	Nodes    []Node   `json:"document"`
	Headers  []string `json:"headers,omitempty"`
	Footers  []string `json:"footers,omitempty"`
}

// Metadata contains document-level information. A nil field means the
// package does not declare the property.
type Metadata struct {
	Title  *string `json:"title,omitempty"`
	Author *string `json:"author,omitempty"`
}

// NewTree creates an empty tree with the given metadata
func NewTree(meta Metadata) *Tree {
	return &Tree{
		Metadata: meta,
		Nodes:    make([]Node, 0),
	}
}

// Append adds nodes to the end of the document
func (t *Tree) Append(nodes ...Node) {
	t.Nodes = append(t.Nodes, nodes...)
}

// Len returns the number of body nodes
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// NodesOfType returns the body nodes with the given type, in order.
func (t *Tree) NodesOfType(nt NodeType) []Node {
	var out []Node
	for _, n := range t.Nodes {
		if n.Type() == nt {
			out = append(out, n)
		}
	}
	return out
}

// Images returns all image nodes in document order.
func (t *Tree) Images() []*Image {
	var out []*Image
	for _, n := range t.Nodes {
		if img, ok := n.(*Image); ok {
			out = append(out, img)
		}
	}
	return out
}

// Tables returns all table nodes in document order.
func (t *Tree) Tables() []*Table {
	var out []*Table
	for _, n := range t.Nodes {
		if tbl, ok := n.(*Table); ok {
			out = append(out, tbl)
		}
	}
	return out
}

// Text returns the textual content of every node, one per line. Break
// markers and images are skipped; table cells are tab-separated.
func (t *Tree) Text() string {
	var sb strings.Builder
	for _, n := range t.Nodes {
		var line string
		switch v := n.(type) {
		case *Paragraph:
			line = v.Text
		case *Heading:
			line = v.Text
		case *MathParagraph:
			line = v.Text
		case *Table:
			rows := make([]string, len(v.Rows))
			for i, row := range v.Rows {
				rows[i] = strings.Join(row, "\t")
			}
			line = strings.Join(rows, "\n")
		default:
			continue
		}
		if line == "" {
			continue
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// StringPtr returns a pointer to s. It is a convenience for building
// Metadata values.
func StringPtr(s string) *string {
	return &s
}
