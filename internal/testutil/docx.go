package testutil

import (
	"archive/zip"
	"bytes"
	"testing"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
  <Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>
</Types>`

const packageRels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// WordNS is the WordprocessingML main namespace.
const WordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Docx describes an in-memory DOCX package. Empty parts are omitted.
type Docx struct {
	Body      string // inner XML of w:body
	Styles    string // inner XML of w:styles
	Numbering string // inner XML of w:numbering

	// RawNumbering replaces the whole numbering part when set.
	RawNumbering string
}

// Bytes builds the zip archive.
func (d Docx) Bytes(t testing.TB) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	write := func(name, content string) {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	write("[Content_Types].xml", contentTypes)
	write("_rels/.rels", packageRels)
	write("word/document.xml", `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="`+WordNS+`">
  <w:body>`+d.Body+`</w:body>
</w:document>`)

	if d.Styles != "" {
		write("word/styles.xml", `<?xml version="1.0" encoding="UTF-8"?>
<w:styles xmlns:w="`+WordNS+`">`+d.Styles+`</w:styles>`)
	}

	switch {
	case d.RawNumbering != "":
		write("word/numbering.xml", d.RawNumbering)
	case d.Numbering != "":
		write("word/numbering.xml", NumberingPart(d.Numbering))
	}

	if err := w.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

// NumberingPart wraps inner XML in a w:numbering root.
func NumberingPart(inner string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<w:numbering xmlns:w="` + WordNS + `">` + inner + `</w:numbering>`
}

// HeadingStyles returns style definitions for "heading 1" … "heading n"
// using Word's own ids and lower-case names.
func HeadingStyles(n int) string {
	var b bytes.Buffer
	b.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>`)
	for i := 1; i <= n; i++ {
		id := string(rune('0' + i))
		b.WriteString(`<w:style w:type="paragraph" w:styleId="Heading` + id + `"><w:name w:val="heading ` + id + `"/><w:basedOn w:val="Normal"/></w:style>`)
	}
	return b.String()
}

// Paragraph returns a w:p with the given style id and text.
func Paragraph(styleID, text string) string {
	props := ""
	if styleID != "" {
		props = `<w:pPr><w:pStyle w:val="` + styleID + `"/></w:pPr>`
	}
	return `<w:p>` + props + `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

// NumberedParagraph returns a w:p with direct numbering properties.
func NumberedParagraph(styleID, numID, ilvl, text string) string {
	return `<w:p><w:pPr><w:pStyle w:val="` + styleID + `"/><w:numPr><w:ilvl w:val="` + ilvl + `"/><w:numId w:val="` + numID + `"/></w:numPr></w:pPr><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}
