// Package normalizer rewrites poem files into the collection's line format: front matter
// kept byte for byte, one blank line, then verse lines ending in a Markdown hard break.
package normalizer

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/orwarhol/slater-sites/internal/logger"
	"github.com/orwarhol/slater-sites/internal/report"
)

// Options controls a normalization run.
type Options struct {
	// Extensions selects files, compared case-insensitively (".md", ".mdx").
	Extensions       []string
	KeepStanzaBreaks bool
	// DryRun reports the files that would change without writing them.
	DryRun bool
}

// Processor handles file normalization.
type Processor struct {
	validator   *Validator
	transformer *Transformer
	log         *logger.Logger
	out         io.Writer
	opts        Options
}

// NewProcessor creates a new processor instance.
func NewProcessor(opts Options, log *logger.Logger) *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(opts.KeepStanzaBreaks),
		log:         log,
		out:         os.Stdout,
		opts:        opts,
	}
}

// WithOutput redirects progress lines.
func (p *Processor) WithOutput(w io.Writer) *Processor {
	p.out = w
	return p
}

// Process normalizes the content of one file.
func (p *Processor) Process(content string) (string, error) {
	block, err := p.validator.Validate(content)
	if err != nil {
		return "", err
	}

	return p.transformer.Transform(block), nil
}

// ProcessFile normalizes path in place and reports whether its content changed.
func (p *Processor) ProcessFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	original := string(data)

	normalized, err := p.Process(original)
	if err != nil {
		return false, err
	}

	if normalized == original {
		return false, nil
	}

	if p.opts.DryRun {
		return true, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	if err := os.WriteFile(path, []byte(normalized), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return true, nil
}

// Run normalizes every matching file under dir. A failed file is recorded and the walk
// continues; the returned error is reserved for an unreadable root.
func (p *Processor) Run(dir string) (*report.Summary, error) {
	files, err := p.Discover(dir)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(p.out, "Found %d poetry files to process\n\n", len(files))

	summary := &report.Summary{}

	for _, path := range files {
		log := p.log.With("file", path)

		changed, err := p.ProcessFile(path)

		switch {
		case err != nil:
			fmt.Fprintf(p.out, "✗ %s: %v\n", path, err)
			log.Error("normalization failed", "error", err)
			summary.Fail(path, err)
		case !changed:
			log.Debug("already normalized")
			summary.Skip()
		case p.opts.DryRun:
			fmt.Fprintf(p.out, "📝 Would normalize: %s\n", path)
			summary.Success()
		default:
			fmt.Fprintf(p.out, "✓ %s\n", path)
			log.Info("normalized")
			summary.Success()
		}
	}

	return summary, nil
}

// Discover walks dir recursively and returns the files with a configured extension in
// walk order. Hidden directories are skipped.
func (p *Processor) Discover(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if slices.ContainsFunc(p.opts.Extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	return files, nil
}
