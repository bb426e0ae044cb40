// Package outline computes the heading outline of a DOCX document,
// including the auto-numbering prefixes Word displays in front of each
// heading.
package outline

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tenebris-tech/docxoutline/docx"
	"github.com/tenebris-tech/docxoutline/numbering"
)

// DefaultHeadingStyles are the style name prefixes treated as headings
var DefaultHeadingStyles = []string{"Heading", "Title"}

// ErrEmptyPath is returned when no document path is given
var ErrEmptyPath = errors.New("document path is empty")

// Document is the outline of one DOCX file
type Document struct {
	Path    string
	Entries []Entry
}

// Extractor reads DOCX packages and builds their outlines
type Extractor struct {
	options  *Options
	prefixes []string
}

// Options holds configuration for the extractor
type Options struct {
	// HeadingStyles lists style name prefixes, matched case-insensitively,
	// that mark a paragraph as a heading
	HeadingStyles []string

	// Logger receives debug records about skipped numbering data
	Logger *slog.Logger

	// Callbacks for extraction progress
	OnDocumentParsed  func(paragraphCount int)
	OnStylesParsed    func(styleCount int)
	OnNumberingParsed func(abstractCount, instanceCount int)
}

// Option is a functional option for configuring the extractor
type Option func(*Options)

// DefaultOptions returns the default options
func DefaultOptions() *Options {
	return &Options{
		HeadingStyles: DefaultHeadingStyles,
		Logger:        slog.New(slog.DiscardHandler),
	}
}

// WithHeadingStyles sets the style name prefixes that mark headings.
// An empty list keeps the defaults.
func WithHeadingStyles(prefixes ...string) Option {
	return func(o *Options) {
		if len(prefixes) > 0 {
			o.HeadingStyles = prefixes
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithOnDocumentParsed sets the callback for body parsing
func WithOnDocumentParsed(callback func(paragraphCount int)) Option {
	return func(o *Options) {
		o.OnDocumentParsed = callback
	}
}

// WithOnStylesParsed sets the callback for styles parsing
func WithOnStylesParsed(callback func(styleCount int)) Option {
	return func(o *Options) {
		o.OnStylesParsed = callback
	}
}

// WithOnNumberingParsed sets the callback for numbering parsing
func WithOnNumberingParsed(callback func(abstractCount, instanceCount int)) Option {
	return func(o *Options) {
		o.OnNumberingParsed = callback
	}
}

// New creates a new Extractor with the given options
func New(opts ...Option) *Extractor {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	fold := cases.Fold()
	prefixes := make([]string, 0, len(options.HeadingStyles))
	for _, p := range options.HeadingStyles {
		if p = strings.TrimSpace(p); p != "" {
			prefixes = append(prefixes, fold.String(p))
		}
	}

	return &Extractor{options: options, prefixes: prefixes}
}

// ExtractFile reads a DOCX file and returns its outline
func (e *Extractor) ExtractFile(path string) (*Document, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	parser, err := docx.NewParserFromFile(absPath)
	if err != nil {
		return nil, err
	}

	doc, err := e.extract(parser)
	if err != nil {
		return nil, err
	}
	doc.Path = absPath
	return doc, nil
}

// Extract builds the outline of DOCX data
func (e *Extractor) Extract(data []byte) (*Document, error) {
	parser, err := docx.NewParser(data)
	if err != nil {
		return nil, fmt.Errorf("parsing DOCX: %w", err)
	}
	return e.extract(parser)
}

func (e *Extractor) extract(parser *docx.Parser) (*Document, error) {
	if err := parser.Parse(); err != nil {
		return nil, fmt.Errorf("validating DOCX: %w", err)
	}

	paragraphs, err := parser.Paragraphs()
	if err != nil {
		return nil, fmt.Errorf("reading paragraphs: %w", err)
	}
	if e.options.OnDocumentParsed != nil {
		e.options.OnDocumentParsed(len(paragraphs))
	}

	styles := parser.GetStyles()
	if e.options.OnStylesParsed != nil {
		e.options.OnStylesParsed(styles.Count())
	}

	part, _ := parser.GetNumbering()
	catalog := numbering.Load(part, numbering.WithLogger(e.options.Logger))
	if e.options.OnNumberingParsed != nil {
		e.options.OnNumberingParsed(catalog.Abstracts(), catalog.Instances())
	}

	headings := e.headings(paragraphs, styles)
	builder := NewBuilder(catalog, e.options.Logger)

	return &Document{Entries: builder.Build(headings)}, nil
}

// headings selects heading paragraphs and attaches their numbering data
func (e *Extractor) headings(paragraphs []docx.BodyParagraph, styles *docx.Styles) []Heading {
	var headings []Heading
	for _, p := range paragraphs {
		name := styles.DisplayName(p.StyleID)
		if !e.IsHeadingStyle(name) {
			continue
		}

		h := Heading{
			Position:  p.Index,
			StyleName: name,
			Text:      p.Text,
		}
		if p.NumPr != nil {
			h.Numbering = rawNumbering(p.NumPr)
		}
		if np := styles.NumberingFor(p.StyleID); np != nil {
			h.StyleNumbering = rawNumbering(np)
		}
		headings = append(headings, h)
	}
	return headings
}

// IsHeadingStyle reports whether a style display name marks a heading
func (e *Extractor) IsHeadingStyle(name string) bool {
	folded := cases.Fold().String(name)
	for _, p := range e.prefixes {
		if strings.HasPrefix(folded, p) {
			return true
		}
	}
	return false
}

func rawNumbering(np *docx.NumberingPr) *RawNumbering {
	return &RawNumbering{NumID: np.RawNumID(), Level: np.RawLevel()}
}
