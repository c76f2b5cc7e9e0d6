package docx

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// nsDecls declares every prefix used by the test fixtures.
const nsDecls = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
	`xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"`

// testPNG returns a small encoded PNG image.
func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

// testPackage describes the parts of a DOCX fixture. Empty fields leave the
// part out of the archive.
type testPackage struct {
	body   string            // inner XML of <w:body>
	styles string            // inner XML of <w:styles>
	rels   string            // <Relationship> elements of document.xml.rels
	core   string            // inner XML of <cp:coreProperties>
	types  string            // extra elements of [Content_Types].xml
	parts  map[string][]byte // any other parts, by name

	noDocument bool
}

// writeDOCX zips the package into a temporary file and returns its path.
func writeDOCX(t *testing.T, pkg testPackage) string {
	t.Helper()

	tmpDir := t.TempDir()
	docxPath := filepath.Join(tmpDir, "test.docx")

	f, err := os.Create(docxPath)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	add := func(name string, data []byte) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	add("[Content_Types].xml", []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Default Extension="png" ContentType="image/png"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  `+pkg.types+`
</Types>`))

	add("_rels/.rels", []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`))

	if !pkg.noDocument {
		add("word/document.xml", []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document `+nsDecls+`>
  <w:body>`+pkg.body+`</w:body>
</w:document>`))
	}

	if pkg.styles != "" {
		add("word/styles.xml", []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`+pkg.styles+`</w:styles>`))
	}

	if pkg.rels != "" {
		add("word/_rels/document.xml.rels", []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+pkg.rels+`</Relationships>`))
	}

	if pkg.core != "" {
		add("docProps/core.xml", []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" `+
			`xmlns:dc="http://purl.org/dc/elements/1.1/">`+pkg.core+`</cp:coreProperties>`))
	}

	for name, data := range pkg.parts {
		add(name, data)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return docxPath
}

// createTestDOCX creates a minimal DOCX file whose body holds content.
func createTestDOCX(t *testing.T, content string) string {
	t.Helper()
	return writeDOCX(t, testPackage{body: content})
}

// openTestDOCX writes the package and opens it, closing it at test end.
func openTestDOCX(t *testing.T, pkg testPackage) *Reader {
	t.Helper()
	r, err := Open(writeDOCX(t, pkg))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

// parseFragment parses a single body element written with the fixture
// prefixes.
func parseFragment(t *testing.T, fragment string) *Node {
	t.Helper()
	root, err := parseNode(strings.NewReader(`<w:body ` + nsDecls + `>` + fragment + `</w:body>`))
	if err != nil {
		t.Fatalf("parseNode() error = %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("fragment has %d elements, want 1", len(root.Children))
	}
	return root.Children[0]
}

// drawingXML returns an inline picture referencing relID.
func drawingXML(relID, descr string) string {
	return `<w:drawing><wp:inline><wp:docPr id="1" name="Picture 1" descr="` + descr + `"/>` +
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">` +
		`<pic:pic><pic:blipFill><a:blip r:embed="` + relID + `"/></pic:blipFill></pic:pic>` +
		`</a:graphicData></a:graphic></wp:inline></w:drawing>`
}

// imageRel returns a document relationship to an image part.
func imageRel(id, target string) string {
	return `<Relationship Id="` + id + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="` + target + `"/>`
}
