// Package convert writes heading outlines for DOCX files in batch.
// It adds recursive directory traversal, output directory management and
// a bounded pool of workers on top of the outline package.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tenebris-tech/docxoutline/outline"
)

// DefaultExtensions lists the file extensions processed by default
var DefaultExtensions = []string{".docx"}

// OutputInfix is inserted between the source file name and the format
// extension: report.docx -> report.docx.outline.json
const OutputInfix = ".outline"

// skipExistsReason is reported through OnFileSkipped
const skipExistsReason = "output file exists"

// Converter writes outline files for DOCX documents
type Converter struct {
	options *Options
}

// Options holds configuration for the converter
type Options struct {
	// Recursion allows Convert to descend into directories
	Recursion bool

	// Extensions are matched case-insensitively against file names
	Extensions []string

	// SkipExisting leaves documents alone when their outline file exists.
	// When false a numbered name is chosen instead.
	SkipExisting bool

	// OutputDirectory collects every outline file in one flat directory.
	// Empty means next to each source document.
	OutputDirectory string

	Format  outline.OutputFormat
	Workers int

	ExtractorOptions []outline.Option
	Logger           *slog.Logger

	// Callbacks are serialized, even with several workers
	OnFileStart    func(path string)
	OnFileComplete func(path, outputPath string, headings int, err error)
	OnFileSkipped  func(path, outputPath, reason string)
}

// Result tallies one Convert call
type Result struct {
	Converted int
	Skipped   int
	Failed    int
	Errors    []error
}

func (r *Result) fail(err error) {
	r.Failed++
	r.Errors = append(r.Errors, err)
}

// Option configures a Converter
type Option func(*Options)

// DefaultOptions returns the default options
func DefaultOptions() *Options {
	return &Options{
		Extensions:   DefaultExtensions,
		SkipExisting: true,
		Format:       outline.FormatJSON,
		Workers:      1,
		Logger:       slog.New(slog.DiscardHandler),
	}
}

// WithRecursion allows directories to be converted
func WithRecursion(recursive bool) Option {
	return func(o *Options) { o.Recursion = recursive }
}

// WithExtensions sets the extensions to match. Each is lower-cased and
// given a leading dot.
func WithExtensions(exts []string) Option {
	return func(o *Options) {
		o.Extensions = make([]string, len(exts))
		for i, ext := range exts {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			o.Extensions[i] = ext
		}
	}
}

// WithSkipExisting sets whether documents with an outline file are skipped
func WithSkipExisting(skip bool) Option {
	return func(o *Options) { o.SkipExisting = skip }
}

// WithOutputDirectory sets a flat directory for every outline file
func WithOutputDirectory(dir string) Option {
	return func(o *Options) { o.OutputDirectory = dir }
}

// WithFormat sets the outline file format
func WithFormat(format outline.OutputFormat) Option {
	return func(o *Options) { o.Format = format }
}

// WithWorkers bounds how many documents are processed at once. Values
// below one mean one.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = max(n, 1) }
}

// WithExtractorOptions sets the options passed to the outline extractor
func WithExtractorOptions(opts ...outline.Option) Option {
	return func(o *Options) { o.ExtractorOptions = opts }
}

// WithLogger sets the logger; nil keeps the discarding default
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithOnFileStart sets the callback run before a document is processed
func WithOnFileStart(fn func(path string)) Option {
	return func(o *Options) { o.OnFileStart = fn }
}

// WithOnFileComplete sets the callback run after a document is processed
func WithOnFileComplete(fn func(path, outputPath string, headings int, err error)) Option {
	return func(o *Options) { o.OnFileComplete = fn }
}

// WithOnFileSkipped sets the callback run when a document is skipped
func WithOnFileSkipped(fn func(path, outputPath, reason string)) Option {
	return func(o *Options) { o.OnFileSkipped = fn }
}

// New creates a Converter
func New(opts ...Option) *Converter {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &Converter{options: options}
}

// OutputName returns the outline file name for a source file name
func OutputName(baseName string, format outline.OutputFormat) string {
	return baseName + OutputInfix + format.Extension()
}

// Convert writes the outline of a file, or of every matching file below a
// directory when Recursion is enabled. Per-file failures are collected in
// the Result; the error is non-nil only when path itself is unusable or
// ctx is cancelled.
func (c *Converter) Convert(ctx context.Context, path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() && !c.options.Recursion {
		return nil, fmt.Errorf("%s is a directory; use WithRecursion(true) to process directories", path)
	}
	if dir := c.options.OutputDirectory; dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("cannot create output directory: %w", err)
		}
	}

	p := newPlan(c.options)
	if info.IsDir() {
		p.addDir(path)
	} else {
		p.addFile(path)
	}

	return p.result, c.run(ctx, p.jobs, p.result)
}

// run processes the planned jobs on a bounded errgroup
func (c *Converter) run(ctx context.Context, jobs []job, result *Result) error {
	extractor := outline.New(c.options.ExtractorOptions...)
	log := c.options.Logger

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.options.Workers)

	for _, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			mu.Lock()
			if c.options.OnFileStart != nil {
				c.options.OnFileStart(j.input)
			}
			mu.Unlock()

			n, err := c.write(extractor, j)

			mu.Lock()
			defer mu.Unlock()
			if c.options.OnFileComplete != nil {
				c.options.OnFileComplete(j.input, j.output, n, err)
			}
			if err != nil {
				log.Warn("outline failed", "path", j.input, "error", err)
				result.fail(fmt.Errorf("%s: %w", j.input, err))
				return nil
			}
			log.Debug("outline written", "path", j.input, "output", j.output, "headings", n)
			result.Converted++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// write extracts one document and renders it to the job's output path,
// returning the number of headings
func (c *Converter) write(extractor *outline.Extractor, j job) (int, error) {
	doc, err := extractor.ExtractFile(j.input)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(j.output)
	if err != nil {
		return 0, fmt.Errorf("creating output file: %w", err)
	}
	if err := outline.Render(f, doc, c.options.Format); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("writing output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing output file: %w", err)
	}
	return len(doc.Entries), nil
}
