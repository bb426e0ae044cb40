package outline

import (
	"strconv"
	"strings"

	"github.com/tenebris-tech/docxoutline/numbering"
)

// Locator decides which numbering instance and level a heading uses
type Locator struct{}

// Resolve returns the heading's numbering reference. Direct paragraph
// numbering wins when both of its values parse; otherwise the style's
// numbering is tried under the same rule. Missing or unparseable metadata
// means the heading is not auto-numbered.
func (Locator) Resolve(h Heading) (NumberingRef, bool) {
	if ref, ok := parseRef(h.Numbering); ok {
		return ref, true
	}
	return parseRef(h.StyleNumbering)
}

func parseRef(raw *RawNumbering) (NumberingRef, bool) {
	if raw == nil {
		return NumberingRef{}, false
	}

	numID, err := strconv.Atoi(strings.TrimSpace(raw.NumID))
	if err != nil {
		return NumberingRef{}, false
	}
	level, err := strconv.Atoi(strings.TrimSpace(raw.Level))
	if err != nil || level < 0 || numbering.Level(level) > numbering.MaxLevel {
		return NumberingRef{}, false
	}

	return NumberingRef{NumID: numbering.InstanceID(numID), Level: numbering.Level(level)}, true
}
