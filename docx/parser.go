// Package docx provides read-only access to the parts of a DOCX package
// needed to build a heading outline: body paragraphs, styles and the raw
// numbering definitions.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Part names read from the package
const (
	DocumentPart  = "word/document.xml"
	StylesPart    = "word/styles.xml"
	NumberingPart = "word/numbering.xml"
)

// ErrNotDocx is returned when the archive has no main document part
var ErrNotDocx = errors.New("not a valid DOCX file: missing word/document.xml")

// Parser exposes the parts of one opened package. Styles and body
// paragraphs are decoded once and cached.
type Parser struct {
	parts      map[string]*zip.File
	styles     *Styles
	paragraphs []BodyParagraph
}

// NewParser opens an in-memory package
func NewParser(data []byte) (*Parser, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}
	return &Parser{parts: parts}, nil
}

// NewParserFromFile opens the package stored at path
func NewParserFromFile(path string) (*Parser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return NewParser(data)
}

// Parse reports ErrNotDocx unless the main document part is present
func (p *Parser) Parse() error {
	if !p.has(DocumentPart) {
		return ErrNotDocx
	}
	return nil
}

// GetStyles returns the style table. A missing or unreadable styles part
// yields an empty table.
func (p *Parser) GetStyles() *Styles {
	if p.styles == nil {
		p.styles = p.loadStyles()
	}
	return p.styles
}

func (p *Parser) loadStyles() *Styles {
	s := &Styles{}
	if data, err := p.ReadFile(StylesPart); err == nil {
		if unmarshalWordXML(data, s) != nil {
			s = &Styles{}
		}
	}
	s.index()
	return s
}

// GetNumbering returns the raw numbering part; ok is false when the
// package carries none or it cannot be read.
func (p *Parser) GetNumbering() (data []byte, ok bool) {
	if !p.has(NumberingPart) {
		return nil, false
	}
	data, err := p.ReadFile(NumberingPart)
	return data, err == nil
}

// ReadFile returns the uncompressed bytes of a part
func (p *Parser) ReadFile(name string) ([]byte, error) {
	f, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

func (p *Parser) has(name string) bool {
	_, ok := p.parts[name]
	return ok
}

// unmarshalWordXML re-encodes data with every namespace prefix dropped and
// then unmarshals it, so struct tags only need local names.
func unmarshalWordXML(data []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	var out bytes.Buffer
	enc := xml.NewEncoder(&out)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		tok, keep := localToken(tok)
		if !keep {
			continue
		}
		if err := enc.EncodeToken(tok); err != nil {
			return err
		}
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	return xml.Unmarshal(out.Bytes(), v)
}

// localToken strips prefixes from element and attribute names. Namespace
// declarations, comments and processing instructions are dropped. Char
// data is copied since the decoder reuses its buffer.
func localToken(tok xml.Token) (xml.Token, bool) {
	switch t := tok.(type) {
	case xml.StartElement:
		t.Name = xml.Name{Local: stripNamespacePrefix(t.Name.Local)}
		kept := t.Attr[:0]
		for _, a := range t.Attr {
			if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
				continue
			}
			a.Name = xml.Name{Local: stripNamespacePrefix(a.Name.Local)}
			kept = append(kept, a)
		}
		t.Attr = kept
		return t, true
	case xml.EndElement:
		t.Name = xml.Name{Local: stripNamespacePrefix(t.Name.Local)}
		return t, true
	case xml.CharData:
		return t.Copy(), true
	case xml.Comment, xml.ProcInst, xml.Directive:
		return nil, false
	}
	return tok, true
}

// stripNamespacePrefix returns the part of name after the first colon
func stripNamespacePrefix(name string) string {
	if _, local, ok := strings.Cut(name, ":"); ok {
		return local
	}
	return name
}

// attrValue looks up an attribute by local name
func attrValue(start xml.StartElement, local string) (string, bool) {
	for _, a := range start.Attr {
		if stripNamespacePrefix(a.Name.Local) == local {
			return a.Value, true
		}
	}
	return "", false
}
