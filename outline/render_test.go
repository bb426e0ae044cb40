package outline

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleDocument() *Document {
	return &Document{Entries: []Entry{
		{ParagraphIndex: 0, Level: 0, Text: "Report", Style: "Title"},
		{ParagraphIndex: 1, Level: 1, Text: "1.Einführung", Style: "Heading 1"},
		{ParagraphIndex: 4, Level: 8, Text: "1.0.0.0.0.0.0.1 Deep", Style: "Heading 8"},
	}}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in   string
		want OutputFormat
	}{
		{"", FormatText},
		{"text", FormatText},
		{"MD", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{"json", FormatJSON},
		{" yml ", FormatYAML},
		{"yaml", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseOutputFormat("pdf")
	assert.Error(t, err)
}

func TestOutputFormatExtension(t *testing.T) {
	assert.Equal(t, ".txt", FormatText.Extension())
	assert.Equal(t, ".md", FormatMarkdown.Extension())
	assert.Equal(t, ".json", FormatJSON.Extension())
	assert.Equal(t, ".yaml", FormatYAML.Extension())
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleDocument(), FormatMarkdown))

	want := "# Report\n\n# 1.Einführung\n\n###### 1.0.0.0.0.0.0.1 Deep\n\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleDocument(), FormatText))

	out := buf.String()
	assert.Contains(t, out, "PARAGRAPH")
	assert.Contains(t, out, "1.Einführung")
	assert.Contains(t, out, "Heading 8")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleDocument(), FormatJSON))

	out := buf.String()
	assert.Contains(t, out, `"outline_count": 3`)
	assert.Contains(t, out, "Einführung")
	assert.Contains(t, out, `"paragraph_index": 4`)

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, sampleDocument().Entries, resp.Outline)
}

func TestRenderJSONEmptyOutline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, &Document{}, FormatJSON))
	assert.Contains(t, buf.String(), `"outline": []`)
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleDocument(), FormatYAML))

	var resp Response
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, 3, resp.OutlineCount)
	assert.Equal(t, "Heading 1", resp.Outline[1].Style)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "3 headings", Summary(sampleDocument()))
}
