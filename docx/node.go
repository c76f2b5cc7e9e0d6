package docx

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Node is an element of a parsed XML part. Children are kept in document
// order, which struct unmarshalling cannot guarantee across element kinds.
type Node struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []*Node

	// Text holds the character data found directly inside the element.
	Text string
}

// strictNamespaces maps ISO 29500 strict namespaces onto their transitional
// equivalents so lookups only need to know one form.
var strictNamespaces = map[string]string{
	"http://purl.oclc.org/ooxml/wordprocessingml/main":           nsW,
	"http://purl.oclc.org/ooxml/officeDocument/math":             nsM,
	"http://purl.oclc.org/ooxml/drawingml/main":                  nsA,
	"http://purl.oclc.org/ooxml/officeDocument/relationships":    nsR,
	"http://purl.oclc.org/ooxml/drawingml/wordprocessingDrawing": nsWP,
}

// charsetReader decodes parts that declare a non-UTF-8 encoding.
var charsetReader = charset.NewReaderLabel

func canonicalName(n xml.Name) xml.Name {
	if space, ok := strictNamespaces[n.Space]; ok {
		n.Space = space
	}
	return n
}

// parseNode reads an XML part into a Node tree and returns its root element.
func parseNode(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			t = t.Copy()
			n := &Node{Name: canonicalName(t.Name), Attr: t.Attr}
			for i := range n.Attr {
				n.Attr[i].Name = canonicalName(n.Attr[i].Name)
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("no root element")
	}
	return root, nil
}

// Is reports whether the node has the given namespace and local name.
func (n *Node) Is(space, local string) bool {
	return n != nil && n.Name.Space == space && n.Name.Local == local
}

// AttrValue returns the value of the named attribute. An empty space matches
// an attribute in any namespace.
func (n *Node) AttrValue(space, local string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Name.Local == local && (space == "" || a.Name.Space == space) {
			return a.Value, true
		}
	}
	return "", false
}

// Val returns the w:val attribute, the value carrier of most
// WordprocessingML properties.
func (n *Node) Val() string {
	v, _ := n.AttrValue(nsW, "val")
	return v
}

// Child returns the first direct child with the given name, or nil.
func (n *Node) Child(space, local string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Is(space, local) {
			return c
		}
	}
	return nil
}

// Elements returns the direct children with the given name.
func (n *Node) Elements(space, local string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Is(space, local) {
			out = append(out, c)
		}
	}
	return out
}

// Descendants returns every element below n with the given name, in
// document (pre-order) order. The node itself is not included.
func (n *Node) Descendants(space, local string) []*Node {
	var out []*Node
	n.walk(func(d *Node) bool {
		if d.Is(space, local) {
			out = append(out, d)
		}
		return true
	})
	return out
}

// First returns the first descendant with the given name, or nil.
func (n *Node) First(space, local string) *Node {
	var found *Node
	n.walk(func(d *Node) bool {
		if d.Is(space, local) {
			found = d
			return false
		}
		return true
	})
	return found
}

// Has reports whether any descendant has the given name.
func (n *Node) Has(space, local string) bool {
	return n.First(space, local) != nil
}

// TextOf concatenates the character data of all descendants with the given
// name, with no separator.
func (n *Node) TextOf(space, local string) string {
	var sb strings.Builder
	for _, d := range n.Descendants(space, local) {
		sb.WriteString(d.Text)
	}
	return sb.String()
}

// walk visits descendants in pre-order until fn returns false.
func (n *Node) walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	for _, c := range n.Children {
		if !fn(c) {
			return false
		}
		if !c.walk(fn) {
			return false
		}
	}
	return true
}
