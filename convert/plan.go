package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// job pairs a source document with the outline file it produces
type job struct {
	input  string
	output string
}

// plan collects jobs for one Convert call. Traversal follows symlinks;
// resolved paths guard against loops and duplicate documents.
type plan struct {
	opts   *Options
	result *Result
	jobs   []job

	dirs     map[string]bool
	files    map[string]bool
	reserved map[string]bool
}

func newPlan(opts *Options) *plan {
	return &plan{
		opts:     opts,
		result:   &Result{},
		dirs:     make(map[string]bool),
		files:    make(map[string]bool),
		reserved: make(map[string]bool),
	}
}

func (p *plan) matches(path string) bool {
	return slices.Contains(p.opts.Extensions, strings.ToLower(filepath.Ext(path)))
}

func (p *plan) addDir(dir string) {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		p.result.fail(fmt.Errorf("cannot resolve %s: %w", dir, err))
		return
	}
	if p.dirs[resolved] {
		return
	}
	p.dirs[resolved] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		p.result.fail(fmt.Errorf("cannot read directory %s: %w", dir, err))
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		switch {
		case err != nil:
			// Dangling links only count when they look like documents
			if p.matches(path) {
				p.result.fail(fmt.Errorf("cannot access %s: %w", path, err))
			}
		case info.IsDir():
			p.addDir(path)
		default:
			p.addFile(path)
		}
	}
}

func (p *plan) addFile(path string) {
	// ~$name.docx is an owner lock file left by Word
	if !p.matches(path) || strings.HasPrefix(filepath.Base(path), "~$") {
		return
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		p.result.fail(fmt.Errorf("cannot resolve %s: %w", path, err))
		return
	}
	if p.files[resolved] {
		return
	}
	p.files[resolved] = true

	out, exists := p.target(resolved)
	if exists && p.opts.SkipExisting {
		if p.opts.OnFileSkipped != nil {
			p.opts.OnFileSkipped(resolved, out, skipExistsReason)
		}
		p.opts.Logger.Debug("skipping file", "path", resolved, "reason", skipExistsReason)
		p.result.Skipped++
		return
	}
	if exists || p.reserved[out] {
		out = p.numbered(out)
	}

	p.reserved[out] = true
	p.jobs = append(p.jobs, job{input: resolved, output: out})
}

// target returns the preferred output path for a document and whether a
// file is already there
func (p *plan) target(input string) (string, bool) {
	dir := p.opts.OutputDirectory
	if dir == "" {
		dir = filepath.Dir(input)
	}
	out := filepath.Join(dir, OutputName(filepath.Base(input), p.opts.Format))
	_, err := os.Stat(out)
	return out, err == nil
}

// numbered returns the first free name of the form base-N.ext
func (p *plan) numbered(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, i, ext)
		if p.reserved[candidate] {
			continue
		}
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
