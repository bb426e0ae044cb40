package docx

// ParagraphProperties holds the part of a style's w:pPr used for outline
// resolution
type ParagraphProperties struct {
	NumPr *NumberingPr `xml:"numPr"`
}

// StyleRef is a w:val reference such as w:name or w:basedOn
type StyleRef struct {
	Val string `xml:"val,attr"`
}

// NumberingPr contains list numbering properties (w:numPr).
// Values are kept as raw attribute text; callers decide how to parse them.
type NumberingPr struct {
	ILevel *ValAttr `xml:"ilvl"`
	NumID  *ValAttr `xml:"numId"`
}

// ValAttr is an element whose only payload is a w:val attribute
type ValAttr struct {
	Val string `xml:"val,attr"`
}

// RawLevel returns the ilvl attribute text, or "" when absent
func (n *NumberingPr) RawLevel() string {
	if n == nil || n.ILevel == nil {
		return ""
	}
	return n.ILevel.Val
}

// RawNumID returns the numId attribute text, or "" when absent
func (n *NumberingPr) RawNumID() string {
	if n == nil || n.NumID == nil {
		return ""
	}
	return n.NumID.Val
}

// BodyParagraph is a top-level paragraph of the document body, in document
// order. Index counts body paragraphs only; paragraphs nested in tables,
// content controls or text boxes are not part of the sequence.
type BodyParagraph struct {
	Index   int
	StyleID string
	NumPr   *NumberingPr
	Text    string
}
