package docx

import (
	"math"
	"strconv"
	"strings"

	"github.com/tsawler/docxtree/model"
)

// DefaultStyleID is the style assumed for paragraphs without w:pStyle.
const DefaultStyleID = "Normal"

// ResolvedFont is the effective font family and size of a paragraph or run.
type ResolvedFont struct {
	Family string
	SizePt int
}

// StyleResolver resolves font properties from the style sheet.
// Lookups are direct: a style's basedOn parent is not consulted.
type StyleResolver struct {
	styles map[string]*styleDefXML
}

// NewStyleResolver creates a new style resolver from parsed styles. A nil
// style sheet yields a resolver that always returns the defaults.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles: make(map[string]*styleDefXML),
	}

	if styles == nil {
		return sr
	}

	// Build style map; the first definition of an id wins
	for i := range styles.Styles {
		style := &styles.Styles[i]
		if _, dup := sr.styles[style.StyleID]; !dup {
			sr.styles[style.StyleID] = style
		}
	}

	return sr
}

// Resolve returns the run defaults of the given style, falling back to
// model.DefaultFontFamily and model.DefaultFontSize for anything the style
// sheet does not define.
func (sr *StyleResolver) Resolve(styleID string) ResolvedFont {
	font := ResolvedFont{
		Family: model.DefaultFontFamily,
		SizePt: model.DefaultFontSize,
	}

	def, ok := sr.styles[styleID]
	if !ok {
		return font
	}
	if def.RPr.Font.ASCII != "" {
		font.Family = def.RPr.Font.ASCII
	}
	if size, ok := parseHalfPoints(def.RPr.FontSize.Val); ok {
		font.SizePt = size
	}
	return font
}

// ResolveParagraph returns the paragraph-level font of p: its style's run
// defaults, with the size replaced by the paragraph mark's own w:sz when
// present.
func (sr *StyleResolver) ResolveParagraph(p *Node) ResolvedFont {
	font := sr.Resolve(StyleID(p))

	mark := p.Child(nsW, "pPr").Child(nsW, "rPr")
	if size, ok := parseHalfPoints(mark.Child(nsW, "sz").Val()); ok {
		font.SizePt = size
	}
	return font
}

// ResolveRun applies the direct formatting of run r on top of the
// paragraph-level font. Only w:rFonts@ascii and w:sz are considered.
func (sr *StyleResolver) ResolveRun(base ResolvedFont, r *Node) ResolvedFont {
	rpr := r.Child(nsW, "rPr")
	if rpr == nil {
		return base
	}
	if ascii, ok := rpr.Child(nsW, "rFonts").AttrValue(nsW, "ascii"); ok && ascii != "" {
		base.Family = ascii
	}
	if size, ok := parseHalfPoints(rpr.Child(nsW, "sz").Val()); ok {
		base.SizePt = size
	}
	return base
}

// StyleID returns the paragraph's w:pStyle value, or DefaultStyleID when
// the paragraph names no style.
func StyleID(p *Node) string {
	if id := p.Child(nsW, "pPr").Child(nsW, "pStyle").Val(); id != "" {
		return id
	}
	return DefaultStyleID
}

// headingLevel maps a paragraph style id to a heading level, or 0 for
// body text.
func headingLevel(styleID string) int {
	switch styleID {
	case "Heading1":
		return 1
	case "Heading2":
		return 2
	case "Heading3":
		return 3
	default:
		return 0
	}
}

// parseHalfPoints parses a size in half-points to whole points.
// Word uses half-points for font sizes (e.g., "24" = 12pt); strict documents
// may also write a universal measure such as "12pt". The result is
// truncated; values that are missing, unparseable or below one point
// report false.
func parseHalfPoints(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	halves := 2.0
	if strings.HasSuffix(s, "pt") {
		s, halves = strings.TrimSuffix(s, "pt"), 1
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}
	pt := val / halves
	if pt < 1 {
		return 0, false
	}
	return int(pt), true
}
