package docx

import (
	"github.com/tsawler/docxtree/model"
)

// ParagraphKind is the classification of a body paragraph.
type ParagraphKind int

const (
	KindPageBreak ParagraphKind = iota
	KindLineBreak
	KindEmpty
	KindMath
	KindSingleRun
	KindMultiRun
	KindFallback
)

func (k ParagraphKind) String() string {
	switch k {
	case KindPageBreak:
		return "page_break"
	case KindLineBreak:
		return "line_break"
	case KindEmpty:
		return "empty"
	case KindMath:
		return "math"
	case KindSingleRun:
		return "single_run"
	case KindMultiRun:
		return "multi_run"
	default:
		return "fallback"
	}
}

// paragraphFacts holds what the classification rules look at, computed
// once per paragraph.
type paragraphFacts struct {
	p    *Node
	text string  // all w:t text of the paragraph
	runs []*Node // direct w:r children with non-blank text
}

// paragraphRules is the classification order. The first rule that matches
// decides the paragraph kind; KindFallback applies when none does.
var paragraphRules = []struct {
	kind  ParagraphKind
	match func(*paragraphFacts) bool
}{
	{KindPageBreak, func(f *paragraphFacts) bool { return hasBreak(f.p, "page") }},
	{KindLineBreak, func(f *paragraphFacts) bool { return hasBreak(f.p, "textWrapping") }},
	{KindEmpty, func(f *paragraphFacts) bool {
		return isBlank(f.text) && len(f.p.Elements(nsW, "br")) == 0 && !f.p.Has(nsM, "oMath")
	}},
	{KindMath, func(f *paragraphFacts) bool { return f.p.Has(nsM, "oMath") }},
	{KindSingleRun, func(f *paragraphFacts) bool { return len(f.runs) == 1 }},
	{KindMultiRun, func(f *paragraphFacts) bool { return len(f.runs) > 1 }},
}

// Classify returns the kind of paragraph p.
func Classify(p *Node) ParagraphKind {
	return classify(newParagraphFacts(p))
}

func classify(f *paragraphFacts) ParagraphKind {
	for _, rule := range paragraphRules {
		if rule.match(f) {
			return rule.kind
		}
	}
	return KindFallback
}

func newParagraphFacts(p *Node) *paragraphFacts {
	f := &paragraphFacts{p: p, text: p.TextOf(nsW, "t")}
	for _, r := range p.Elements(nsW, "r") {
		if !isBlank(r.TextOf(nsW, "t")) {
			f.runs = append(f.runs, r)
		}
	}
	return f
}

// ParagraphTranscriber turns w:p elements into content nodes.
type ParagraphTranscriber struct {
	styles      *StyleResolver
	inOrderMath bool
}

// NewParagraphTranscriber creates a transcriber resolving fonts through
// styles. With inOrderMath set, math fragments are joined in document order
// instead of last-first.
func NewParagraphTranscriber(styles *StyleResolver, inOrderMath bool) *ParagraphTranscriber {
	if styles == nil {
		styles = NewStyleResolver(nil)
	}
	return &ParagraphTranscriber{styles: styles, inOrderMath: inOrderMath}
}

// Transcribe converts paragraph p into exactly one node and reports how it
// was classified.
func (pt *ParagraphTranscriber) Transcribe(p *Node) (model.Node, ParagraphKind) {
	f := newParagraphFacts(p)
	kind := classify(f)

	switch kind {
	case KindPageBreak:
		return &model.PageBreak{}, kind
	case KindLineBreak:
		return &model.LineBreak{}, kind
	case KindEmpty:
		return &model.EmptyParagraph{}, kind
	}

	level := headingLevel(StyleID(p))
	font := pt.styles.ResolveParagraph(p)
	styling := paragraphStyling(p, font)

	switch kind {
	case KindMath:
		return &model.MathParagraph{
			Level:   level,
			Text:    joinMath(TranscribeMath(p), pt.inOrderMath),
			Styling: styling,
		}, kind

	case KindSingleRun:
		return model.NewTextNode(level, f.text, pt.runStyling(f.runs[0], styling, font, true), nil), kind

	case KindMultiRun:
		runs := make([]model.Run, len(f.runs))
		for i, r := range f.runs {
			runs[i] = model.Run{
				Text:    r.TextOf(nsW, "t"),
				Styling: pt.runStyling(r, styling, font, false),
			}
		}
		return model.NewTextNode(level, f.text, styling, runs), kind

	default:
		return model.NewParagraph(f.text, styling, nil), kind
	}
}

// runStyling derives the styling of run r from the paragraph styling.
// Font family and size come from the run's direct formatting when present.
// Bold and italic are set by the presence of the run's own w:b or w:i,
// whatever its w:val; a run without one gets the paragraph value when
// inherit is set, and false otherwise.
func (pt *ParagraphTranscriber) runStyling(r *Node, para model.Styling, font ResolvedFont, inherit bool) model.Styling {
	s := para
	if !inherit {
		s.Bold, s.Italic = false, false
	}

	rpr := r.Child(nsW, "rPr")
	if rpr.Child(nsW, "b") != nil {
		s.Bold = true
	}
	if rpr.Child(nsW, "i") != nil {
		s.Italic = true
	}

	runFont := pt.styles.ResolveRun(font, r)
	s.FontFamily = runFont.Family
	s.FontSizePt = runFont.SizePt
	return s
}

// paragraphStyling computes the paragraph-level styling record. Bold and
// italic are set when a w:b or w:i appears anywhere in the paragraph.
func paragraphStyling(p *Node, font ResolvedFont) model.Styling {
	s := model.DefaultStyling()
	s.FontFamily = font.Family
	s.FontSizePt = font.SizePt
	s.Bold = p.Has(nsW, "b")
	s.Italic = p.Has(nsW, "i")

	ppr := p.Child(nsW, "pPr")
	s.Alignment = alignment(ppr.Child(nsW, "jc").Val())
	if c := ppr.First(nsW, "color"); c != nil && c.Val() != "" {
		s.Color = c.Val()
	}
	if h := ppr.First(nsW, "highlight"); h != nil {
		s.Highlight = h.Val()
	}
	return s
}

// alignment maps a w:jc value to a text alignment. Unknown values align
// left.
func alignment(jc string) model.TextAlignment {
	switch jc {
	case "center":
		return model.AlignCenter
	case "right", "end":
		return model.AlignRight
	case "both", "distribute":
		return model.AlignJustify
	default:
		return model.AlignLeft
	}
}

func hasBreak(p *Node, breakType string) bool {
	for _, br := range p.Descendants(nsW, "br") {
		if t, _ := br.AttrValue(nsW, "type"); t == breakType {
			return true
		}
	}
	return false
}
