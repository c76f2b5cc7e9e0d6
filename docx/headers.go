package docx

import (
	"sort"
	"strings"
)

// headerFooterText collects the paragraph text of every header (or footer)
// part referenced by the main document, in part-name order. Footers also
// carry their field codes, so page-number fields are not lost. Blank
// paragraphs are dropped; unreadable parts produce a warning.
func (t *transcriber) headerFooterText(relType string) []string {
	kind, root := WarnHeader, "hdr"
	if relType == relTypeFooter {
		kind, root = WarnFooter, "ftr"
	}

	var parts []string
	for _, rel := range t.r.relationshipsOfType(relType) {
		if !rel.External {
			parts = append(parts, rel.Target)
		}
	}
	sort.Strings(parts)

	var out []string
	for i, name := range parts {
		if i > 0 && parts[i-1] == name {
			continue
		}
		doc, err := t.r.parsePart(name)
		if err != nil {
			t.warn(kind, "reading %s: %v", name, err)
			continue
		}
		if !doc.Is(nsW, root) {
			t.warn(kind, "%s has unexpected root <%s>", name, doc.Name.Local)
			continue
		}
		for _, p := range doc.Elements(nsW, "p") {
			text := p.TextOf(nsW, "t")
			if kind == WarnFooter {
				text = footerParagraphText(p, text)
			}
			if !isBlank(text) {
				out = append(out, text)
			}
		}
	}
	return out
}

// footerParagraphText appends the field codes (w:instrText) and the text
// of simple fields (w:fldSimple) to the paragraph text, space separated.
func footerParagraphText(p *Node, text string) string {
	var codes, fields []string
	for _, c := range p.Descendants(nsW, "instrText") {
		codes = append(codes, c.Text)
	}
	for _, f := range p.Descendants(nsW, "fldSimple") {
		for _, ft := range f.Descendants(nsW, "t") {
			fields = append(fields, ft.Text)
		}
	}
	return strings.TrimSpace(text + " " + strings.Join(codes, " ") + " " + strings.Join(fields, " "))
}
