// Package model provides the content tree produced from a word-processing
// document.
//
// # Tree
//
// The [Tree] type holds the document [Metadata] and the ordered body nodes:
//
//	tree := &model.Tree{Metadata: meta}
//	tree.Append(model.NewParagraph("Hello", styling, nil))
//
// # Nodes
//
// Body content is a closed set of [Node] variants. Only the types of this
// package implement [Node]:
//
//   - [Paragraph] - body text, optionally split into [Run] values
//   - [Heading] - headings (levels 1-3)
//   - [MathParagraph] - paragraphs flattened from equation markup
//   - [EmptyParagraph] - paragraphs without visible text
//   - [PageBreak], [LineBreak] - break markers
//   - [Table] - row-major cell text
//   - [Image] - references to extracted image assets
//
// # JSON
//
// Every node marshals to an object with a "type" discriminant and a
// "content" payload whose shape depends on the variant. Optional fields
// ("styling", "runs", ...) appear only on the variants that carry them.
package model
