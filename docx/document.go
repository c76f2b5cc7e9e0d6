package docx

import "encoding/xml"

// XML namespaces used in DOCX files
const (
	nsW  = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsM  = "http://schemas.openxmlformats.org/officeDocument/2006/math"
	nsR  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsA  = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsWP = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
)

// WordprocessingML is the main namespace of document, header and footer
// parts.
const WordprocessingML = nsW

// Relationship types resolved from word/_rels/document.xml.rels
const (
	relTypeImage  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeHeader = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relTypeFooter = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
)

// Package part names
const (
	partContentTypes = "[Content_Types].xml"
	partDocument     = "word/document.xml"
	partStyles       = "word/styles.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partCoreProps    = "docProps/core.xml"
	documentPartDir  = "word"
)

// relationshipsXML represents _rels/*.rels files
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single relationship.
type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"` // External or empty (internal)
}

// contentTypesXML represents [Content_Types].xml
type contentTypesXML struct {
	XMLName   xml.Name          `xml:"Types"`
	Defaults  []defaultTypeXML  `xml:"Default"`
	Overrides []overrideTypeXML `xml:"Override"`
}

// defaultTypeXML maps a file extension to a content type.
type defaultTypeXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// overrideTypeXML maps a single part name to a content type.
type overrideTypeXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata).
// Pointers distinguish an absent property from an empty one.
type corePropertiesXML struct {
	XMLName        xml.Name `xml:"coreProperties"`
	Title          *string  `xml:"title"`
	Subject        *string  `xml:"subject"`
	Creator        *string  `xml:"creator"`
	Keywords       *string  `xml:"keywords"`
	Description    *string  `xml:"description"`
	LastModifiedBy *string  `xml:"lastModifiedBy"`
}
