package docx

import "strings"

// MathNotDetected is the rendering of an equation with no recognised parts.
const MathNotDetected = "Math content not detected."

// Kinds of MathFragment.
const (
	FragmentParagraph = "paragraph"
	FragmentMath      = "math"
)

// MathFragment is one readable piece of a paragraph holding equations:
// either the paragraph's ordinary text or one flattened equation.
type MathFragment struct {
	Kind    string
	Content string
}

// TranscribeMath returns at most one paragraph fragment, holding the
// paragraph's w:t text when it is not blank, followed by one math fragment
// per m:oMath in document order.
func TranscribeMath(p *Node) []MathFragment {
	var frags []MathFragment

	if text := p.TextOf(nsW, "t"); !isBlank(text) {
		frags = append(frags, MathFragment{Kind: FragmentParagraph, Content: text})
	}

	for _, eq := range p.Descendants(nsM, "oMath") {
		frags = append(frags, MathFragment{Kind: FragmentMath, Content: RenderEquation(eq)})
	}

	return frags
}

// RenderEquation flattens an m:oMath element into a single line. Fractions
// come first as "(num/den)", then radicals as "√(x)", then the text of the
// runs sitting directly under the equation; parts are joined by spaces.
// Nesting is not reconstructed.
func RenderEquation(eq *Node) string {
	var parts []string

	for _, f := range eq.Descendants(nsM, "f") {
		num := firstMathText(f.Child(nsM, "num"))
		den := firstMathText(f.Child(nsM, "den"))
		parts = append(parts, "("+num+"/"+den+")")
	}

	for _, rad := range eq.Descendants(nsM, "rad") {
		parts = append(parts, "√("+firstMathText(rad.Child(nsM, "e"))+")")
	}

	for _, r := range eq.Elements(nsM, "r") {
		if text := r.TextOf(nsM, "t"); !isBlank(text) {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return MathNotDetected
	}
	return strings.Join(parts, " ")
}

// joinMath concatenates fragment contents. By default each later fragment
// is placed in front of the earlier ones; inOrder keeps document order.
func joinMath(frags []MathFragment, inOrder bool) string {
	var out string
	for _, f := range frags {
		if inOrder {
			out += f.Content
		} else {
			out = f.Content + out
		}
	}
	return out
}

// firstMathText returns the first non-blank m:t below n, or "?".
func firstMathText(n *Node) string {
	for _, t := range n.Descendants(nsM, "t") {
		if !isBlank(t.Text) {
			return t.Text
		}
	}
	return "?"
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
