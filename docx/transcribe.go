package docx

import (
	"fmt"
	"log/slog"

	"github.com/tsawler/docxtree/assets"
	"github.com/tsawler/docxtree/model"
)

// Options configures ContentTree.
type Options struct {
	// Sink receives extracted image payloads. Nil discards them.
	Sink assets.Sink

	// Logger receives one debug event per body element and one warning
	// event per skipped unit. Nil disables logging.
	Logger *slog.Logger

	// Recognizer, when set, is run over every image whose format could be
	// identified, and its text is attached to the image node.
	Recognizer TextRecognizer

	// InOrderMath joins the fragments of a math paragraph in document
	// order instead of placing each later fragment first.
	InOrderMath bool

	// HeadersFooters also collects the text of header and footer parts.
	HeadersFooters bool
}

// TextRecognizer extracts text from an image payload.
type TextRecognizer interface {
	Recognize(data []byte) (string, error)
}

// transcriber holds the state of one ContentTree call.
type transcriber struct {
	r          *Reader
	opts       Options
	log        *slog.Logger
	paragraphs *ParagraphTranscriber
	warnings   []Warning
	element    int
}

// ContentTree walks the direct children of the document body once, in
// order, and returns the resulting content tree. Elements holding a
// w:drawing yield one image node per drawing; other paragraphs and tables
// yield exactly one node each; everything else is skipped.
//
// Problems confined to one element are returned as warnings. The error
// is non-nil only when the body is missing or the asset sink fails.
func (r *Reader) ContentTree(opts Options) (*model.Tree, []Warning, error) {
	t := &transcriber{
		r:          r,
		opts:       opts,
		log:        opts.Logger,
		paragraphs: NewParagraphTranscriber(r.StyleResolver(), opts.InOrderMath),
		element:    -1,
	}
	if t.opts.Sink == nil {
		t.opts.Sink = assets.Discard
	}
	if t.log == nil {
		t.log = slog.New(slog.DiscardHandler)
	}

	body := r.Body()
	if body == nil {
		return nil, nil, ErrNoBody
	}

	tree := model.NewTree(r.Metadata())

	for i, el := range body.Children {
		t.element = i

		if drawings := el.Descendants(nsW, "drawing"); len(drawings) > 0 {
			for _, d := range drawings {
				img, err := t.extractImage(d)
				if err != nil {
					return nil, t.warnings, fmt.Errorf("element %d: %w", i, err)
				}
				if img != nil {
					tree.Append(img)
					t.log.Debug("element", "index", i, "kind", "drawing", "node", img.Type(), "asset", img.AssetRef)
				}
			}
			continue
		}

		switch {
		case el.Is(nsW, "p"):
			node, kind := t.paragraphs.Transcribe(el)
			tree.Append(node)
			t.log.Debug("element", "index", i, "kind", kind.String(), "node", node.Type())

		case el.Is(nsW, "tbl"):
			tbl := TranscribeTable(el)
			tree.Append(tbl)
			t.log.Debug("element", "index", i, "kind", "table", "node", tbl.Type(), "rows", tbl.RowCount())

		default:
			t.log.Debug("element", "index", i, "kind", "skipped", "name", el.Name.Local)
		}
	}

	t.element = -1
	if opts.HeadersFooters {
		tree.Headers = t.headerFooterText(relTypeHeader)
		tree.Footers = t.headerFooterText(relTypeFooter)
	}

	return tree, t.warnings, nil
}

// warn records a non-fatal problem for the current element.
func (t *transcriber) warn(kind WarningKind, format string, args ...any) {
	w := Warning{Element: t.element, Kind: kind, Message: fmt.Sprintf(format, args...)}
	t.warnings = append(t.warnings, w)
	t.log.Warn(w.Message, "index", w.Element, "kind", string(w.Kind))
}
