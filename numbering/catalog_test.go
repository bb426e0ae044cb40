package numbering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenebris-tech/docxoutline/internal/testutil"
)

const outlineDefinition = `
<w:abstractNum w:abstractNumId="0">
  <w:multiLevelType w:val="multilevel"/>
  <w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/><w:pPr><w:ind w:left="360"/></w:pPr></w:lvl>
  <w:lvl w:ilvl="1"><w:start w:val="1"/><w:numFmt w:val="lowerLetter"/><w:lvlText w:val="%1.%2)"/></w:lvl>
  <w:lvl w:ilvl="2"><w:numFmt w:val="upperRoman"/><w:lvlText w:val="%3 "/></w:lvl>
</w:abstractNum>
<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>
<w:num w:numId="2"><w:abstractNumId w:val="0"/><w:lvlOverride w:ilvl="0"><w:startOverride w:val="5"/></w:lvlOverride></w:num>`

func load(t *testing.T, inner string) *Catalog {
	t.Helper()
	return Load([]byte(testutil.NumberingPart(inner)), WithLogger(testutil.NewTestLogger(t)))
}

func TestLoadEmpty(t *testing.T) {
	c := Load(nil)
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Abstracts())
	assert.Equal(t, 0, c.Instances())

	_, ok := c.AbstractIDFor(1)
	assert.False(t, ok)
}

func TestLoadDefinitions(t *testing.T) {
	c := load(t, outlineDefinition)

	assert.Equal(t, 1, c.Abstracts())
	assert.Equal(t, 2, c.Instances())

	for _, id := range []InstanceID{1, 2} {
		abstractID, ok := c.AbstractIDFor(id)
		require.True(t, ok)
		assert.Equal(t, AbstractID(0), abstractID)
	}

	rule, ok := c.LevelRuleFor(0, 0)
	require.True(t, ok)
	assert.Equal(t, LevelRule{Format: Decimal, Template: "%1."}, rule)

	rule, ok = c.LevelRuleFor(0, 1)
	require.True(t, ok)
	assert.Equal(t, LevelRule{Format: LowerLetter, Template: "%1.%2)"}, rule)

	rule, ok = c.LevelRuleFor(0, 2)
	require.True(t, ok)
	assert.Equal(t, UpperRoman, rule.Format)

	_, ok = c.LevelRuleFor(0, 3)
	assert.False(t, ok, "level without lvl element")

	_, ok = c.LevelRuleFor(9, 0)
	assert.False(t, ok, "unknown abstract definition")
}

func TestLoadDefaultsForIncompleteLevel(t *testing.T) {
	c := load(t, `
<w:abstractNum w:abstractNumId="3">
  <w:lvl w:ilvl="0"/>
  <w:lvl w:ilvl="1"><w:numFmt w:val="upperLetter"/></w:lvl>
  <w:lvl w:ilvl="2"><w:lvlText w:val="(%3)"/></w:lvl>
</w:abstractNum>`)

	rule, ok := c.LevelRuleFor(3, 0)
	require.True(t, ok)
	assert.Equal(t, DefaultLevelRule(), rule)

	rule, ok = c.LevelRuleFor(3, 1)
	require.True(t, ok)
	assert.Equal(t, LevelRule{Format: UpperLetter, Template: "%1."}, rule)

	rule, ok = c.LevelRuleFor(3, 2)
	require.True(t, ok)
	assert.Equal(t, LevelRule{Format: Decimal, Template: "(%3)"}, rule)
}

func TestLoadEmptyTemplateIsKept(t *testing.T) {
	c := load(t, `<w:abstractNum w:abstractNumId="1"><w:lvl w:ilvl="0"><w:numFmt w:val="none"/><w:lvlText w:val=""/></w:lvl></w:abstractNum>`)

	rule, ok := c.LevelRuleFor(1, 0)
	require.True(t, ok)
	assert.Equal(t, "", rule.Template)
	assert.Equal(t, Other, rule.Format)
}

func TestLoadSkipsMalformedElements(t *testing.T) {
	c := load(t, `
<w:abstractNum w:abstractNumId="x"><w:lvl w:ilvl="0"/></w:abstractNum>
<w:abstractNum><w:lvl w:ilvl="0"/></w:abstractNum>
<w:abstractNum w:abstractNumId="1">
  <w:lvl w:ilvl="zero"><w:numFmt w:val="upperRoman"/></w:lvl>
  <w:lvl w:ilvl="12"/>
  <w:lvl><w:numFmt w:val="upperRoman"/></w:lvl>
  <w:lvl w:ilvl="1"><w:numFmt w:val="upperRoman"/></w:lvl>
</w:abstractNum>
<w:num w:numId="1"/>
<w:num w:numId="2"><w:abstractNumId w:val="nope"/></w:num>
<w:num w:numId="bad"><w:abstractNumId w:val="1"/></w:num>
<w:num w:numId="3"><w:abstractNumId w:val="1"/></w:num>`)

	assert.Equal(t, 1, c.Abstracts())
	assert.Equal(t, 1, c.Instances())

	_, ok := c.LevelRuleFor(1, 0)
	assert.False(t, ok)
	rule, ok := c.LevelRuleFor(1, 1)
	require.True(t, ok)
	assert.Equal(t, UpperRoman, rule.Format)

	for _, id := range []InstanceID{1, 2} {
		_, ok := c.AbstractIDFor(id)
		assert.False(t, ok, "instance %d", id)
	}
	abstractID, ok := c.AbstractIDFor(3)
	require.True(t, ok)
	assert.Equal(t, AbstractID(1), abstractID)
}

func TestLoadTruncatedPartKeepsPrefix(t *testing.T) {
	data := testutil.NumberingPart(outlineDefinition)
	data = data[:len(data)-len("</w:numbering>")] + `<w:abstractNum w:abstractNumId="5"><w:lvl w:ilvl="0"><w:numFmt`

	c := Load([]byte(data), WithLogger(testutil.NewTestLogger(t)))

	assert.Equal(t, 1, c.Abstracts())
	assert.Equal(t, 2, c.Instances())
	_, ok := c.LevelRuleFor(5, 0)
	assert.False(t, ok)
}

func TestLoadRecoversAfterMalformedElement(t *testing.T) {
	c := load(t, `
<w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0"><w:lvlText w:val="%1<"/></w:lvl></w:abstractNum>
<w:abstractNum w:abstractNumId="1"><w:lvl w:ilvl="0"><w:numFmt w:val="upperLetter"/><w:lvlText w:val="%1)"/></w:lvl></w:abstractNum>
<w:num w:numId="1"><w:abstractNumId w:val="1"/></w:num>`)

	_, ok := c.LevelRuleFor(0, 0)
	assert.False(t, ok)

	abstractID, ok := c.AbstractIDFor(1)
	require.True(t, ok, "instance after a malformed abstractNum")
	assert.Equal(t, AbstractID(1), abstractID)
	rule, ok := c.LevelRuleFor(1, 0)
	require.True(t, ok)
	assert.Equal(t, LevelRule{Format: UpperLetter, Template: "%1)"}, rule)
}

func TestLoadDropsUnclosedElement(t *testing.T) {
	c := load(t, `
<w:abstractNum w:abstractNumId="4"><w:lvl w:ilvl="0"/>
<w:abstractNum w:abstractNumId="5"><w:lvl w:ilvl="0"><w:numFmt w:val="lowerRoman"/></w:lvl></w:abstractNum>
<w:num w:numId="7"><w:abstractNumId w:val="5"/><w:lvlOverride w:ilvl="0"><w:lvl w:ilvl="0"><w:numFmt w:val="decimal"/></w:lvl></w:lvlOverride></w:num>`)

	assert.Equal(t, 1, c.Abstracts())
	_, ok := c.LevelRuleFor(4, 0)
	assert.False(t, ok)
	rule, ok := c.LevelRuleFor(5, 0)
	require.True(t, ok)
	assert.Equal(t, LowerRoman, rule.Format)

	abstractID, ok := c.AbstractIDFor(7)
	require.True(t, ok)
	assert.Equal(t, AbstractID(5), abstractID)
}

func TestDefinitionElements(t *testing.T) {
	data := []byte(`<w:numbering><w:abstractNum w:abstractNumId="0"><w:numStyleLink w:val="x"/></w:abstractNum>` +
		`<w:num w:numId="1"/><w:num w:numId="2"><w:abstractNumId w:val="0"/></w:num>` +
		`<w:numIdMacAtCleanup w:val="3"/></w:numbering>`)

	got := definitionElements(data)

	require.Len(t, got, 3)
	assert.Equal(t, `<w:abstractNum w:abstractNumId="0"><w:numStyleLink w:val="x"/></w:abstractNum>`, string(got[0]))
	assert.Equal(t, `<w:num w:numId="1"/>`, string(got[1]))
	assert.Equal(t, `<w:num w:numId="2"><w:abstractNumId w:val="0"/></w:num>`, string(got[2]))
}

func TestLoadWithoutNamespaces(t *testing.T) {
	c := Load([]byte(`<numbering>
  <abstractNum abstractNumId="2"><lvl ilvl="0"><numFmt val="lowerRoman"/><lvlText val="%1)"/></lvl></abstractNum>
  <num numId="9"><abstractNumId val="2"/></num>
</numbering>`))

	abstractID, ok := c.AbstractIDFor(9)
	require.True(t, ok)
	rule, ok := c.LevelRuleFor(abstractID, 0)
	require.True(t, ok)
	assert.Equal(t, LevelRule{Format: LowerRoman, Template: "%1)"}, rule)
}

func TestInstancesCountsUnknownAbstract(t *testing.T) {
	c := load(t, `<w:num w:numId="4"><w:abstractNumId w:val="99"/></w:num>`)

	assert.Equal(t, 1, c.Instances())
	assert.Equal(t, 0, c.Abstracts())
	abstractID, ok := c.AbstractIDFor(4)
	require.True(t, ok)
	_, ok = c.LevelRuleFor(abstractID, 0)
	assert.False(t, ok)
}

func TestWithLoggerIgnoresNil(t *testing.T) {
	c := Load([]byte(testutil.NumberingPart(`<w:num w:numId="x"/>`)), WithLogger(nil))
	assert.Equal(t, 0, c.Instances())
}
