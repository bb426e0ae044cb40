package docx

import (
	"encoding/xml"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxStyleChain bounds basedOn traversal so cyclic style sheets terminate
const maxStyleChain = 16

// Styles represents the styles definition file (word/styles.xml)
type Styles struct {
	XMLName xml.Name   `xml:"styles"`
	Styles  []StyleDef `xml:"style"`

	byID map[string]int
}

// StyleDef defines a single style
type StyleDef struct {
	XMLName             xml.Name             `xml:"style"`
	Type                string               `xml:"type,attr"`    // paragraph, character, table, numbering
	StyleID             string               `xml:"styleId,attr"` // style identifier
	Default             string               `xml:"default,attr"` // 1 if default style
	Name                *StyleRef            `xml:"name"`
	BasedOn             *StyleRef            `xml:"basedOn"`
	ParagraphProperties *ParagraphProperties `xml:"pPr"`
}

// builtinNames are the latent style names Word stores in lower case
// although Word presents them capitalised.
var builtinNames = map[string]bool{
	"normal":         true,
	"title":          true,
	"subtitle":       true,
	"caption":        true,
	"header":         true,
	"footer":         true,
	"body text":      true,
	"list bullet":    true,
	"list number":    true,
	"list paragraph": true,
	"toc heading":    true,
}

func (s *Styles) index() {
	s.byID = make(map[string]int, len(s.Styles))
	for i := range s.Styles {
		if _, dup := s.byID[s.Styles[i].StyleID]; !dup {
			s.byID[s.Styles[i].StyleID] = i
		}
	}
}

// Count returns the number of style definitions
func (s *Styles) Count() int {
	return len(s.Styles)
}

// GetStyle returns a style by its ID
func (s *Styles) GetStyle(id string) *StyleDef {
	if s.byID == nil {
		s.index()
	}
	if i, ok := s.byID[id]; ok {
		return &s.Styles[i]
	}
	return nil
}

// DefaultParagraphStyle returns the style applied to paragraphs without a
// w:pStyle, or nil when the style sheet declares none
func (s *Styles) DefaultParagraphStyle() *StyleDef {
	for i := range s.Styles {
		st := &s.Styles[i]
		if st.Type == "paragraph" && (st.Default == "1" || st.Default == "true") {
			return st
		}
	}
	return nil
}

// resolve returns the style for a paragraph's style id, falling back to
// the default paragraph style when the id is empty
func (s *Styles) resolve(styleID string) *StyleDef {
	if styleID == "" {
		return s.DefaultParagraphStyle()
	}
	return s.GetStyle(styleID)
}

// DisplayName returns the user-facing name of a paragraph style.
// Built-in names stored in lower case ("heading 1") are capitalised
// ("Heading 1"). Unknown ids are returned unchanged.
func (s *Styles) DisplayName(styleID string) string {
	style := s.resolve(styleID)
	if style == nil {
		if styleID == "" {
			return "Normal"
		}
		return styleID
	}
	if style.Name == nil || style.Name.Val == "" {
		return style.StyleID
	}

	name := style.Name.Val
	if name != strings.ToLower(name) {
		return name
	}
	if builtinNames[name] || strings.HasPrefix(name, "heading ") {
		return cases.Title(language.Und).String(name)
	}
	return name
}

// NumberingFor returns the numbering properties a paragraph inherits from
// its style: the first style in the basedOn chain carrying a w:numPr.
func (s *Styles) NumberingFor(styleID string) *NumberingPr {
	style := s.resolve(styleID)
	seen := make(map[string]bool)
	for i := 0; style != nil && i < maxStyleChain; i++ {
		if seen[style.StyleID] {
			return nil
		}
		seen[style.StyleID] = true

		if style.ParagraphProperties != nil && style.ParagraphProperties.NumPr != nil {
			return style.ParagraphProperties.NumPr
		}
		if style.BasedOn == nil || style.BasedOn.Val == "" {
			return nil
		}
		style = s.GetStyle(style.BasedOn.Val)
	}
	return nil
}
