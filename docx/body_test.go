package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenebris-tech/docxoutline/internal/testutil"
)

func paragraphsOf(t *testing.T, body string) []BodyParagraph {
	t.Helper()
	p, err := NewParser(testutil.Docx{Body: body}.Bytes(t))
	require.NoError(t, err)
	paras, err := p.Paragraphs()
	require.NoError(t, err)
	return paras
}

func TestParagraphsInDocumentOrder(t *testing.T) {
	paras := paragraphsOf(t,
		testutil.Paragraph("Heading1", "First")+
			testutil.Paragraph("", "Body text")+
			testutil.Paragraph("Heading2", "Second"))

	require.Len(t, paras, 3)
	for i, para := range paras {
		assert.Equal(t, i, para.Index)
	}
	assert.Equal(t, "Heading1", paras[0].StyleID)
	assert.Equal(t, "First", paras[0].Text)
	assert.Equal(t, "", paras[1].StyleID)
	assert.Equal(t, "Second", paras[2].Text)
}

func TestParagraphsSkipTables(t *testing.T) {
	paras := paragraphsOf(t,
		testutil.Paragraph("", "before")+
			`<w:tbl><w:tr><w:tc>`+testutil.Paragraph("Heading1", "in cell")+`</w:tc></w:tr></w:tbl>`+
			testutil.Paragraph("", "after"))

	require.Len(t, paras, 2)
	assert.Equal(t, "before", paras[0].Text)
	assert.Equal(t, "after", paras[1].Text)
	assert.Equal(t, 1, paras[1].Index)
}

func TestParagraphDirectNumbering(t *testing.T) {
	paras := paragraphsOf(t, testutil.NumberedParagraph("Heading2", "4", "1", "Numbered"))

	require.Len(t, paras, 1)
	require.NotNil(t, paras[0].NumPr)
	assert.Equal(t, "4", paras[0].NumPr.RawNumID())
	assert.Equal(t, "1", paras[0].NumPr.RawLevel())
	assert.Equal(t, "Numbered", paras[0].Text)
}

func TestParagraphPartialNumbering(t *testing.T) {
	paras := paragraphsOf(t, `<w:p><w:pPr><w:numPr><w:numId w:val="3"/></w:numPr></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`)

	require.Len(t, paras, 1)
	assert.Equal(t, "3", paras[0].NumPr.RawNumID())
	assert.Equal(t, "", paras[0].NumPr.RawLevel())
}

func TestParagraphTextAssembly(t *testing.T) {
	body := `<w:p>
  <w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs><w:rPr><w:b/></w:rPr></w:pPr>
  <w:r><w:t>Part</w:t></w:r>
  <w:r><w:tab/><w:t xml:space="preserve"> one</w:t></w:r>
  <w:hyperlink><w:r><w:t>Link</w:t></w:r></w:hyperlink>
  <w:r><w:br/><w:t>Next</w:t></w:r>
  <w:r><w:drawing><w:txbxContent><w:p><w:r><w:t>hidden</w:t></w:r></w:p></w:txbxContent></w:drawing></w:r>
</w:p>`
	paras := paragraphsOf(t, body)

	require.Len(t, paras, 1)
	assert.Equal(t, "Part\t oneLink\nNext", paras[0].Text)
}

func TestParagraphsEmptyBody(t *testing.T) {
	paras := paragraphsOf(t, "")
	assert.Empty(t, paras)
}

func TestParagraphsNonASCII(t *testing.T) {
	paras := paragraphsOf(t, testutil.Paragraph("Heading1", "概述"))
	require.Len(t, paras, 1)
	assert.Equal(t, "概述", paras[0].Text)
}

func TestParagraphIgnoresTrackedPropertyChange(t *testing.T) {
	body := `<w:p><w:pPr><w:pStyle w:val="Heading1"/>` +
		`<w:numPr><w:ilvl w:val="0"/><w:numId w:val="2"/></w:numPr>` +
		`<w:pPrChange w:id="1" w:author="a"><w:pPr><w:pStyle w:val="Normal"/>` +
		`<w:numPr><w:ilvl w:val="3"/><w:numId w:val="9"/></w:numPr></w:pPr></w:pPrChange>` +
		`</w:pPr><w:r><w:t>Revised</w:t></w:r></w:p>`

	paras := paragraphsOf(t, body)

	require.Len(t, paras, 1)
	assert.Equal(t, "Heading1", paras[0].StyleID)
	require.NotNil(t, paras[0].NumPr)
	assert.Equal(t, "2", paras[0].NumPr.RawNumID())
	assert.Equal(t, "0", paras[0].NumPr.RawLevel())
	assert.Equal(t, "Revised", paras[0].Text)
}

func TestParagraphsAreCached(t *testing.T) {
	p, err := NewParser(testutil.Docx{Body: testutil.Paragraph("Heading1", "Once")}.Bytes(t))
	require.NoError(t, err)

	first, err := p.Paragraphs()
	require.NoError(t, err)
	second, err := p.Paragraphs()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
