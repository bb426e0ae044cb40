package outline

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how an outline is written
type OutputFormat string

// Supported output formats
const (
	FormatText     OutputFormat = "text"
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
	FormatYAML     OutputFormat = "yaml"
)

// OutputFormats lists every supported format
var OutputFormats = []OutputFormat{FormatText, FormatMarkdown, FormatJSON, FormatYAML}

// ParseOutputFormat validates a format name. "md" and "yml" are accepted
// as aliases.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, markdown, json or yaml)", s)
}

// Extension returns the file extension used for the format
func (f OutputFormat) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// Render writes the document outline in the given format
func Render(w io.Writer, doc *Document, format OutputFormat) error {
	switch format {
	case FormatMarkdown:
		return RenderMarkdown(w, doc)
	case FormatJSON:
		return RenderJSON(w, NewResponse(doc))
	case FormatYAML:
		return RenderYAML(w, NewResponse(doc))
	default:
		return RenderText(w, doc)
	}
}

// RenderText writes the outline as a table
func RenderText(w io.Writer, doc *Document) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Paragraph", "Level", "Text", "Style"})
	for _, e := range doc.Entries {
		t.AppendRow(table.Row{e.ParagraphIndex, e.Level, e.Text, e.Style})
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// RenderMarkdown writes each entry as a Markdown heading. Levels deeper
// than six and unleveled entries are clamped into the valid range.
func RenderMarkdown(w io.Writer, doc *Document) error {
	var b strings.Builder
	for _, e := range doc.Entries {
		level := e.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		b.WriteString(strings.Repeat("#", level))
		b.WriteByte(' ')
		b.WriteString(strings.ReplaceAll(e.Text, "\n", " "))
		b.WriteString("\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderJSON writes v as two-space indented JSON with non-ASCII text kept
// verbatim
func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// RenderYAML writes v as YAML
func RenderYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Summary returns a one-line description of an outline
func Summary(doc *Document) string {
	return strconv.Itoa(len(doc.Entries)) + " headings"
}
