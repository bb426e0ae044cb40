package outline

import (
	"log/slog"
	"strings"

	"github.com/tenebris-tech/docxoutline/numbering"
)

// Builder computes the display text of headings by replaying a document's
// numbering in order
type Builder struct {
	catalog *numbering.Catalog
	locator Locator
	logger  *slog.Logger
}

// NewBuilder creates a builder over a document's numbering catalog.
// A nil catalog behaves as a document without numbering definitions.
func NewBuilder(catalog *numbering.Catalog, logger *slog.Logger) *Builder {
	if catalog == nil {
		catalog = numbering.NewCatalog()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{catalog: catalog, logger: logger}
}

// Build returns one entry per heading, in input order. Headings must be in
// document order; every call starts its counters from zero.
func (b *Builder) Build(headings []Heading) []Entry {
	counter := numbering.NewCounter()

	entries := make([]Entry, 0, len(headings))
	for _, h := range headings {
		entries = append(entries, b.entry(h, counter))
	}
	return entries
}

func (b *Builder) entry(h Heading, counter *numbering.Counter) Entry {
	e := Entry{
		ParagraphIndex: h.Position,
		Text:           h.Text,
		Style:          h.StyleName,
	}

	level, ok := HeadingLevel(h.StyleName)
	if !ok {
		return e
	}
	e.Level = level

	ref, ok := b.locator.Resolve(h)
	if !ok {
		return e
	}

	abstractID, ok := b.catalog.AbstractIDFor(ref.NumID)
	if !ok {
		b.logger.Debug("unresolvable numbering instance",
			"paragraph", h.Position, "numId", int(ref.NumID))
		return e
	}

	snapshot := counter.Advance(abstractID, ref.Level)
	e.Text = b.prefix(abstractID, ref.Level, snapshot) + h.Text
	return e
}

// prefix renders the level template of the heading's own level
func (b *Builder) prefix(id numbering.AbstractID, level numbering.Level, snapshot numbering.Snapshot) string {
	rule, ok := b.catalog.LevelRuleFor(id, level)
	if !ok {
		b.logger.Debug("no level rule", "abstractNumId", int(id), "level", int(level))
		return ""
	}

	return expandTemplate(rule.Template, snapshot, func(l numbering.Level) (numbering.Format, bool) {
		r, ok := b.catalog.LevelRuleFor(id, l)
		return r.Format, ok
	})
}

// expandTemplate replaces %1..%9 with the formatted counter of the matching
// level. A placeholder whose level is outside the snapshot or has no rule
// becomes empty; all other text is copied unchanged.
func expandTemplate(template string, snapshot numbering.Snapshot, formatAt func(numbering.Level) (numbering.Format, bool)) string {
	var out strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' || i+1 >= len(template) || template[i+1] < '1' || template[i+1] > '9' {
			out.WriteByte(c)
			continue
		}

		level := numbering.Level(template[i+1] - '1')
		i++

		value, ok := snapshot.Value(level)
		if !ok {
			continue
		}
		format, ok := formatAt(level)
		if !ok {
			continue
		}
		out.WriteString(format.Render(value))
	}
	return out.String()
}
