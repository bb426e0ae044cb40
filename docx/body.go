package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Paragraphs returns the body-level paragraphs of the main document in
// document order. The result is cached.
func (p *Parser) Paragraphs() ([]BodyParagraph, error) {
	if p.paragraphs != nil {
		return p.paragraphs, nil
	}

	data, err := p.ReadFile(DocumentPart)
	if err != nil {
		return nil, err
	}

	paras, err := parseBody(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", DocumentPart, err)
	}

	p.paragraphs = paras
	return paras, nil
}

// parseBody streams the document part and collects direct w:p children of
// w:body. Every other body child (tables, section properties, content
// controls) is skipped whole.
func parseBody(data []byte) ([]BodyParagraph, error) {
	paras := []BodyParagraph{}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false

	var inBody bool
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			localName := stripNamespacePrefix(t.Name.Local)
			if !inBody {
				if localName == "body" {
					inBody = true
				}
				continue
			}

			if localName != "p" {
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
				continue
			}

			para, err := parseParagraph(decoder)
			if err != nil {
				return nil, err
			}
			para.Index = len(paras)
			paras = append(paras, para)

		case xml.EndElement:
			if stripNamespacePrefix(t.Name.Local) == "body" {
				inBody = false
			}
		}
	}

	return paras, nil
}

// parseParagraph consumes tokens up to and including the paragraph's end
// element. Text follows the visible run content: w:t, w:tab as a tab and
// w:br/w:cr as a newline. Drawings and embedded objects are skipped so text
// box content does not leak into the paragraph. Tracked property changes
// (w:pPrChange) hold the previous formatting and are skipped too.
func parseParagraph(decoder *xml.Decoder) (BodyParagraph, error) {
	var para BodyParagraph
	var text strings.Builder
	var inProps, inNumPr bool
	var runDepth, depth int

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return para, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			localName := stripNamespacePrefix(t.Name.Local)

			switch localName {
			case "drawing", "pict", "object", "AlternateContent", "rPr", "pPrChange":
				if err := decoder.Skip(); err != nil {
					return para, err
				}
				continue
			case "t":
				if runDepth > 0 {
					s, err := readCharData(decoder)
					if err != nil {
						return para, err
					}
					text.WriteString(s)
				} else if err := decoder.Skip(); err != nil {
					return para, err
				}
				continue
			}

			depth++
			switch localName {
			case "pPr":
				inProps = true
			case "pStyle":
				if inProps {
					para.StyleID, _ = attrValue(t, "val")
				}
			case "numPr":
				if inProps {
					inNumPr = true
					para.NumPr = &NumberingPr{}
				}
			case "ilvl":
				if inNumPr {
					v, _ := attrValue(t, "val")
					para.NumPr.ILevel = &ValAttr{Val: v}
				}
			case "numId":
				if inNumPr {
					v, _ := attrValue(t, "val")
					para.NumPr.NumID = &ValAttr{Val: v}
				}
			case "r":
				runDepth++
			case "tab":
				if runDepth > 0 && !inProps {
					text.WriteByte('\t')
				}
			case "br", "cr":
				if runDepth > 0 {
					text.WriteByte('\n')
				}
			}

		case xml.EndElement:
			if depth == 0 {
				// Closing w:p
				para.Text = text.String()
				return para, nil
			}
			depth--

			switch stripNamespacePrefix(t.Name.Local) {
			case "pPr":
				inProps = false
			case "numPr":
				inNumPr = false
			case "r":
				runDepth--
			}
		}
	}

	para.Text = text.String()
	return para, nil
}

// readCharData reads text content until the closing tag
func readCharData(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	for {
		tok, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}

		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			return text.String(), nil
		}
	}
}
