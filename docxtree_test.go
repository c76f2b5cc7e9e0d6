package docxtree

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/tsawler/docxtree/assets"
	"github.com/tsawler/docxtree/docx"
	"github.com/tsawler/docxtree/model"
)

func TestOpen_NotFound(t *testing.T) {
	_, _, err := Open("nonexistent.docx").Tree()
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestOpen_NoFilename(t *testing.T) {
	if _, _, err := Open("").Tree(); err == nil {
		t.Error("expected error for empty filename")
	}
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()

	legacy := filepath.Join(dir, "legacy.doc")
	if err := os.WriteFile(legacy, []byte("\xd0\xcf\x11\xe0\xa1\xb1\x1a\xe1 binary word"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Open(legacy).Tree(); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Tree(.doc) error = %v, want ErrUnsupportedFormat", err)
	}

	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(text).Metadata(); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Metadata(.txt) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestOpen_DetectsByContent(t *testing.T) {
	// A renamed package is still recognised from its parts.
	path := writeFixture(t, "upload.bin", fixture{body: `<w:p><w:r><w:t>Hi</w:t></w:r></w:p>`})

	tree, _, err := Open(path).Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if tree.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tree.Len())
	}
}

func TestTree(t *testing.T) {
	path := writeFixture(t, "sample.docx", sampleFixture(t))
	sink := assets.NewMemorySink()

	tree, warnings, err := Open(path).WithAssetSink(sink).Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings:\n%s", FormatWarnings(warnings))
	}

	want := []model.NodeType{
		model.NodeHeading1,
		model.NodeParagraph,
		model.NodeEmptyParagraph,
		model.NodePageBreak,
		model.NodeTable,
		model.NodeImage,
	}
	if tree.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", tree.Len(), len(want))
	}
	for i, typ := range want {
		if got := tree.Nodes[i].Type(); got != typ {
			t.Errorf("node %d type = %s, want %s", i, got, typ)
		}
	}

	if tree.Metadata.Title == nil || *tree.Metadata.Title != "Quarterly" {
		t.Errorf("Title = %v, want Quarterly", tree.Metadata.Title)
	}
	if tree.Headers != nil {
		t.Errorf("Headers = %v, want nil without IncludeHeadersFooters", tree.Headers)
	}

	img := tree.Images()[0]
	if img.AssetRef != "Image_rId7.png" || img.Description != "Logo" {
		t.Errorf("image = %+v", img)
	}
	if _, ok := sink.Get("Image_rId7.png"); !ok {
		t.Errorf("asset not written, sink has %v", sink.Names())
	}
}

func TestTree_HeadersFooters(t *testing.T) {
	path := writeFixture(t, "sample.docx", sampleFixture(t))

	tree, _, err := Open(path).IncludeHeadersFooters().Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if len(tree.Headers) != 1 || tree.Headers[0] != "ACME Corp" {
		t.Errorf("Headers = %v, want [ACME Corp]", tree.Headers)
	}
	if len(tree.Footers) != 0 {
		t.Errorf("Footers = %v, want none", tree.Footers)
	}
}

func TestTree_InOrderMath(t *testing.T) {
	body := `<w:p><w:r><w:t>Area: </w:t></w:r><m:oMath><m:f>` +
		`<m:num><m:r><m:t>1</m:t></m:r></m:num><m:den><m:r><m:t>2</m:t></m:r></m:den>` +
		`</m:f></m:oMath></w:p>`
	path := writeFixture(t, "math.docx", fixture{body: body})

	tests := []struct {
		name string
		ext  *Extractor
		want string
	}{
		{"default", Open(path), "(1/2)Area: "},
		{"in order", Open(path).InOrderMath(), "Area: (1/2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _, err := tt.ext.Tree()
			if err != nil {
				t.Fatalf("Tree() error = %v", err)
			}
			node, ok := tree.Nodes[0].(model.TextNode)
			if !ok {
				t.Fatalf("node is %T, want a text node", tree.Nodes[0])
			}
			if got := node.GetText(); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithAssetDir(t *testing.T) {
	path := writeFixture(t, "sample.docx", sampleFixture(t))
	dir := filepath.Join(t.TempDir(), "assets")

	if _, _, err := Open(path).WithAssetDir(dir).Tree(); err != nil {
		t.Fatalf("Tree() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Image_rId7.png"))
	if err != nil {
		t.Fatalf("asset not written: %v", err)
	}
	if !bytes.Equal(data, testPNG(t)) {
		t.Error("asset payload differs from the embedded image")
	}
}

func TestWithAssetSink_WinsOverDir(t *testing.T) {
	path := writeFixture(t, "sample.docx", sampleFixture(t))
	dir := filepath.Join(t.TempDir(), "unused")
	sink := assets.NewMemorySink()

	if _, _, err := Open(path).WithAssetDir(dir).WithAssetSink(sink).Tree(); err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if sink.Len() != 1 {
		t.Errorf("sink.Len() = %d, want 1", sink.Len())
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("asset dir should not be created, Stat() error = %v", err)
	}
}

func TestImmutability(t *testing.T) {
	base := Open("doc.docx")
	withHF := base.IncludeHeadersFooters()
	withMath := withHF.InOrderMath()

	if base.options.headersFooters {
		t.Error("base extractor was modified by IncludeHeadersFooters")
	}
	if withHF.options.inOrderMath {
		t.Error("intermediate extractor was modified by InOrderMath")
	}
	if !withMath.options.headersFooters || !withMath.options.inOrderMath {
		t.Error("chained options were lost")
	}
}

func TestWithOCR_DefaultLanguage(t *testing.T) {
	ext := Open("doc.docx").WithOCR("")
	if ext.options.ocrLanguage != "eng" {
		t.Errorf("ocrLanguage = %q, want eng", ext.options.ocrLanguage)
	}
	if got := Open("doc.docx").WithOCR("eng+deu").options.ocrLanguage; got != "eng+deu" {
		t.Errorf("ocrLanguage = %q, want eng+deu", got)
	}
}

func TestJSON(t *testing.T) {
	path := writeFixture(t, "sample.docx", sampleFixture(t))

	data, _, err := Open(path).JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "{\n  \"metadata\": {\n    \"title\": \"Quarterly\",\n    \"author\": \"Jane Doe\"\n  },") {
		t.Errorf("unexpected JSON prefix:\n%s", out)
	}
	if !strings.Contains(out, `"content": "a < b & c"`) {
		t.Errorf("HTML characters should not be escaped:\n%s", out)
	}
	if !strings.Contains(out, `"content": "[PAGE BREAK]"`) {
		t.Errorf("page break marker missing:\n%s", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("JSON output should not end with a newline")
	}
}

func TestJSON_Idempotent(t *testing.T) {
	path := writeFixture(t, "sample.docx", sampleFixture(t))

	first, _, err := Open(path).JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	second, _, err := Open(path).JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two conversions of the same file differ")
	}
}

func TestExtractor_Reusable(t *testing.T) {
	path := writeFixture(t, "sample.docx", sampleFixture(t))
	ext := Open(path)

	// Each terminal opens and closes its own handle.
	if _, _, err := ext.Tree(); err != nil {
		t.Fatalf("first Tree() error = %v", err)
	}
	if _, _, err := ext.Tree(); err != nil {
		t.Fatalf("second Tree() error = %v", err)
	}
	if err := ext.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestExtractor_ConcurrentTerminals(t *testing.T) {
	path := writeFixture(t, "sample.docx", sampleFixture(t))
	ext := Open(path)

	const workers = 4
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_, _, errs[i] = ext.Tree()
			} else {
				_, errs[i] = ext.Metadata()
			}
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("worker %d error = %v", i, err)
		}
	}
	if ext.readerOpened || ext.reader != nil {
		t.Error("terminal operations left state on the shared Extractor")
	}
}

func TestFromReader(t *testing.T) {
	path := writeFixture(t, "sample.docx", sampleFixture(t))
	r, err := docx.Open(path)
	if err != nil {
		t.Fatalf("docx.Open() error = %v", err)
	}
	defer r.Close()

	if _, _, err := FromReader(r).Tree(); err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	// The caller's reader stays open.
	if r.Body() == nil {
		t.Error("reader was closed by the extractor")
	}
	if _, _, err := FromReader(r).Tree(); err != nil {
		t.Fatalf("second Tree() error = %v", err)
	}
}

func TestFromReader_Nil(t *testing.T) {
	if _, _, err := FromReader(nil).Tree(); err == nil {
		t.Error("expected error for nil reader")
	}
	if _, err := FromReader(nil).InOrderMath().Metadata(); err == nil {
		t.Error("error should survive chaining")
	}
}

func TestMetadata(t *testing.T) {
	path := writeFixture(t, "sample.docx", sampleFixture(t))

	meta, err := Open(path).Metadata()
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}
	if meta.Author == nil || *meta.Author != "Jane Doe" {
		t.Errorf("Author = %v, want Jane Doe", meta.Author)
	}
}

func TestWithLogger(t *testing.T) {
	path := writeFixture(t, "sample.docx", sampleFixture(t))
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, _, err := Open(path).WithLogger(logger).Tree(); err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	// One event per body element, sectPr included.
	if got := strings.Count(buf.String(), "msg=element"); got != 7 {
		t.Errorf("logged %d element events, want 7:\n%s", got, buf.String())
	}
}

func TestFormatWarnings(t *testing.T) {
	warnings := []Warning{
		{Element: 3, Kind: docx.WarnImage, Message: "relationship rId9 not found"},
		{Element: -1, Kind: docx.WarnHeader, Message: "reading word/header1.xml: bad"},
	}
	want := "element 3: image: relationship rId9 not found\nheader: reading word/header1.xml: bad"
	if got := FormatWarnings(warnings); got != want {
		t.Errorf("FormatWarnings() = %q, want %q", got, want)
	}
	if got := FormatWarnings(nil); got != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", got)
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must() = %d, want 42", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must() should panic on error")
		}
	}()
	Must(0, errors.New("boom"))
}

func TestMustTree(t *testing.T) {
	path := writeFixture(t, "sample.docx", sampleFixture(t))
	tree := MustTree(Open(path).Tree())
	if tree.Len() == 0 {
		t.Error("MustTree() returned an empty tree")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustTree() should panic on error")
		}
	}()
	MustTree(Open("missing.docx").Tree())
}
