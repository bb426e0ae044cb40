package outline

import (
	"strconv"
	"strings"

	"github.com/tenebris-tech/docxoutline/numbering"
)

// RawNumbering holds w:numPr attribute text as found in the document,
// before any parsing
type RawNumbering struct {
	NumID string
	Level string
}

// Heading is a read-only view of one heading paragraph
type Heading struct {
	// Position is the paragraph's index among body paragraphs
	Position  int
	StyleName string
	Text      string

	// Numbering is the paragraph's own w:numPr, nil when absent
	Numbering *RawNumbering
	// StyleNumbering is the w:numPr inherited from the paragraph style
	StyleNumbering *RawNumbering
}

// NumberingRef identifies the counting stream and level a heading takes
// part in
type NumberingRef struct {
	NumID numbering.InstanceID
	Level numbering.Level
}

// Entry is one line of the computed outline
type Entry struct {
	ParagraphIndex int    `json:"paragraph_index" yaml:"paragraph_index"`
	Level          int    `json:"level" yaml:"level"`
	Text           string `json:"text" yaml:"text"`
	Style          string `json:"style" yaml:"style"`
}

// HeadingLevel parses the trailing number of a style name ("Heading 3" → 3).
// It reports false when the name does not end in a level between 1 and 9.
func HeadingLevel(styleName string) (int, bool) {
	fields := strings.Fields(styleName)
	if len(fields) == 0 {
		return 0, false
	}
	level, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || level < 1 || level > 9 {
		return 0, false
	}
	return level, true
}
