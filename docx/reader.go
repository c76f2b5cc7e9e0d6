// Package docx reads WordprocessingML (.docx) packages and transcribes their
// body into a content tree of typed nodes.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/tsawler/docxtree/model"
)

var (
	// ErrMissingPart is returned when a part required by every DOCX package
	// is absent from the archive.
	ErrMissingPart = errors.New("missing required part")

	// ErrNoBody is returned when word/document.xml has no <w:body>.
	ErrNoBody = errors.New("document body is missing")
)

// Relationship is a resolved entry of the main document's relationship table.
type Relationship struct {
	ID       string
	Type     string
	Target   string // part name inside the archive, or the raw target when External
	External bool
}

// Reader provides read-only access to a DOCX package.
type Reader struct {
	closer       io.Closer
	files        map[string]*zip.File
	document     *Node
	styles       *stylesXML
	rels         map[string]Relationship
	relOrder     []string
	contentTypes *contentTypesXML
	coreProps    *corePropertiesXML
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// OpenReaderAt reads a DOCX package from an in-memory or otherwise
// random-access source. The caller keeps ownership of ra.
func OpenReaderAt(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{
		files: make(map[string]*zip.File, len(zr.File)),
		rels:  make(map[string]Relationship),
	}
	for _, f := range zr.File {
		r.files[f.Name] = f
	}

	// Validate required files exist
	if err := r.validate(); err != nil {
		return nil, err
	}

	// Relationships and content types are needed to resolve images and
	// header/footer parts; a package without them simply has none.
	if err := r.parseRelationships(); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}
	if err := r.parseContentTypes(); err != nil {
		return nil, fmt.Errorf("parsing content types: %w", err)
	}

	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	// Styles and metadata are optional; a broken part degrades to defaults.
	if err := r.parseStyles(); err != nil {
		r.styles = nil
	}
	r.parseCoreProperties()

	return r, nil
}

// Close releases resources associated with the Reader. It is safe to call
// Close more than once.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		partContentTypes,
		partDocument,
	}

	for _, name := range required {
		if _, ok := r.files[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingPart, name)
		}
	}

	return nil
}

// openPart opens a part of the archive by name.
func (r *Reader) openPart(name string) (io.ReadCloser, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}
	return f.Open()
}

// ReadPart returns the full content of a part.
func (r *Reader) ReadPart(name string) ([]byte, error) {
	rc, err := r.openPart(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// HasPart reports whether the archive contains the named part.
func (r *Reader) HasPart(name string) bool {
	_, ok := r.files[name]
	return ok
}

// parsePart parses an XML part into a Node tree.
func (r *Reader) parsePart(name string) (*Node, error) {
	rc, err := r.openPart(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return parseNode(rc)
}

// unmarshalPart decodes an XML part into a typed struct.
func (r *Reader) unmarshalPart(name string, v any) error {
	rc, err := r.openPart(name)
	if err != nil {
		return err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	dec.CharsetReader = charsetReader
	return dec.Decode(v)
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	root, err := r.parsePart(partDocument)
	if err != nil {
		return err
	}
	if !root.Is(nsW, "document") {
		return fmt.Errorf("unexpected root element <%s>", root.Name.Local)
	}
	r.document = root
	return nil
}

// parseRelationships parses the document relationships file.
func (r *Reader) parseRelationships() error {
	if !r.HasPart(partDocumentRels) {
		return nil
	}

	var rels relationshipsXML
	if err := r.unmarshalPart(partDocumentRels, &rels); err != nil {
		return err
	}

	for _, rel := range rels.Relationships {
		resolved := Relationship{
			ID:       rel.ID,
			Type:     rel.Type,
			Target:   rel.Target,
			External: strings.EqualFold(rel.TargetMode, "External"),
		}
		if !resolved.External {
			resolved.Target = resolvePartName(documentPartDir, rel.Target)
		}
		if _, dup := r.rels[rel.ID]; !dup {
			r.relOrder = append(r.relOrder, rel.ID)
		}
		r.rels[rel.ID] = resolved
	}
	return nil
}

// parseContentTypes parses [Content_Types].xml.
func (r *Reader) parseContentTypes() error {
	r.contentTypes = &contentTypesXML{}
	return r.unmarshalPart(partContentTypes, r.contentTypes)
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() error {
	if !r.HasPart(partStyles) {
		return nil
	}
	r.styles = &stylesXML{}
	return r.unmarshalPart(partStyles, r.styles)
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	if !r.HasPart(partCoreProps) {
		return
	}
	props := &corePropertiesXML{}
	if err := r.unmarshalPart(partCoreProps, props); err != nil {
		return
	}
	r.coreProps = props
}

// Body returns the <w:body> element, or nil when the document has none.
func (r *Reader) Body() *Node {
	if r.document == nil {
		return nil
	}
	return r.document.Child(nsW, "body")
}

// StyleResolver returns a resolver over the package's style sheet. The
// resolver falls back to defaults when the package has no styles part.
func (r *Reader) StyleResolver() *StyleResolver {
	return NewStyleResolver(r.styles)
}

// Metadata returns the package-level title and author. Properties absent
// from docProps/core.xml stay nil.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{}
	if r.coreProps != nil {
		meta.Title = r.coreProps.Title
		meta.Author = r.coreProps.Creator
	}
	return meta
}

// Relationship looks up a relationship of the main document by id.
func (r *Reader) Relationship(id string) (Relationship, bool) {
	rel, ok := r.rels[id]
	return rel, ok
}

// relationshipsOfType returns the main document relationships with the given
// type, in the order they appear in the relationships part.
func (r *Reader) relationshipsOfType(relType string) []Relationship {
	var out []Relationship
	for _, id := range r.relOrder {
		if rel := r.rels[id]; rel.Type == relType {
			out = append(out, rel)
		}
	}
	return out
}

// ContentType returns the declared content type of a part, consulting
// overrides before extension defaults. It returns "" when undeclared.
func (r *Reader) ContentType(partName string) string {
	if r.contentTypes == nil {
		return ""
	}
	name := "/" + strings.TrimPrefix(partName, "/")
	for _, o := range r.contentTypes.Overrides {
		if strings.EqualFold(o.PartName, name) {
			return o.ContentType
		}
	}
	ext := strings.TrimPrefix(path.Ext(name), ".")
	for _, d := range r.contentTypes.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return d.ContentType
		}
	}
	return ""
}

// resolvePartName resolves a relationship target relative to the directory
// of its source part. Absolute targets are rooted at the package root.
func resolvePartName(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Clean(path.Join(baseDir, target)), "/")
}
