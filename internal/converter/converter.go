// Package converter runs the legacy document pipeline: extraction, structural
// segmentation, line reconstruction and metadata synthesis, then writes one Markdown
// poem per source file.
package converter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/orwarhol/slater-sites/internal/content"
	"github.com/orwarhol/slater-sites/internal/extractor"
	"github.com/orwarhol/slater-sites/internal/heuristics"
	"github.com/orwarhol/slater-sites/internal/logger"
	"github.com/orwarhol/slater-sites/internal/models"
	"github.com/orwarhol/slater-sites/internal/reflow"
	"github.com/orwarhol/slater-sites/internal/report"
	"github.com/orwarhol/slater-sites/internal/segment"
	"github.com/orwarhol/slater-sites/internal/synthesis"
	"github.com/orwarhol/slater-sites/pkg/utils"
)

const previewRunes = 60

// Options locates input and output.
type Options struct {
	InputDir  string
	OutputDir string
	// Extension selects input files, compared case-insensitively (".wps").
	Extension string
	Synthesis synthesis.Options
}

// Converter converts legacy documents one at a time. Documents share no state besides
// the read-only heuristics tables.
type Converter struct {
	extractor extractor.Extractor
	segmenter *segment.Segmenter
	reflower  *reflow.Reflower
	synth     *synthesis.Synthesizer
	log       *logger.Logger
	out       io.Writer
	opts      Options
}

// New creates a converter. A nil tables argument selects heuristics.Default.
func New(ext extractor.Extractor, tables *heuristics.Tables, opts Options, log *logger.Logger) *Converter {
	if tables == nil {
		tables = heuristics.Default()
	}

	return &Converter{
		extractor: ext,
		segmenter: segment.New(tables),
		reflower:  reflow.New(tables),
		synth:     synthesis.New(tables, opts.Synthesis),
		log:       log,
		out:       os.Stdout,
		opts:      opts,
	}
}

// WithOutput redirects progress lines.
func (c *Converter) WithOutput(w io.Writer) *Converter {
	c.out = w
	return c
}

// Synthesizer exposes the record synthesizer, mainly to pin its clock.
func (c *Converter) Synthesizer() *synthesis.Synthesizer {
	return c.synth
}

// Result is the outcome of converting one document's text.
type Result struct {
	Record   *models.ContentRecord
	Skeleton *models.ContentSkeleton
	// DateParsed is false when the record date fell back to the processing time.
	DateParsed bool
}

// ConvertText runs segmentation, reconstruction and synthesis over extracted text.
// fallback replaces an empty title and seeds the file name.
func (c *Converter) ConvertText(raw, fallback string) *Result {
	skel := c.segmenter.Segment(raw)
	body := c.reflower.Reflow(skel.BodyLines)
	rec, parsed := c.synth.Record(skel, body, fallback)

	return &Result{Record: rec, Skeleton: skel, DateParsed: parsed}
}

// ConvertFile extracts and converts one source file.
func (c *Converter) ConvertFile(ctx context.Context, path string) (*Result, error) {
	doc, err := c.acquire(ctx, path)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return c.ConvertText(doc.Text, base), nil
}

func (c *Converter) acquire(ctx context.Context, path string) (*models.SourceDocument, error) {
	text, err := c.extractor.Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	return &models.SourceDocument{Path: path, Format: models.FormatLegacyWorks, Text: text}, nil
}

// Run converts every matching file in the input directory. Per-file failures are
// recorded in the summary and do not stop the batch; the returned error is reserved
// for problems with the directories themselves.
func (c *Converter) Run(ctx context.Context) (*report.Summary, error) {
	files, err := Discover(c.opts.InputDir, c.opts.Extension)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		fmt.Fprintf(c.out, "No %s files found in %s\n", c.opts.Extension, c.opts.InputDir)
		c.log.Warn("no input files", "dir", c.opts.InputDir, "extension", c.opts.Extension)

		return &report.Summary{}, nil
	}

	if err := os.MkdirAll(c.opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Fprintf(c.out, "Found %d %s file(s)\n", len(files), c.opts.Extension)

	summary := &report.Summary{}
	written := make(map[string]string, len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if err := c.runFile(ctx, path, written); err != nil {
			fmt.Fprintf(c.out, "✗ %s: %v\n", filepath.Base(path), err)
			summary.Fail(path, err)

			continue
		}

		summary.Success()
	}

	return summary, nil
}

func (c *Converter) runFile(ctx context.Context, path string, written map[string]string) error {
	log := c.log.With("file", filepath.Base(path))

	fmt.Fprintf(c.out, "\nProcessing: %s\n", filepath.Base(path))

	res, err := c.ConvertFile(ctx, path)
	if err != nil {
		log.Error("extraction failed", "error", err)
		return err
	}

	rec := res.Record

	log.Info("segmented",
		"title", res.Skeleton.Title,
		"date", res.Skeleton.DateCandidate,
		"signature", res.Skeleton.SignatureFound,
		"body_lines", len(res.Skeleton.BodyLines),
	)

	if res.Skeleton.Title == "" {
		log.Warn("no title found, using file name", "title", rec.Title)
	}

	if !res.DateParsed {
		log.Warn("date defaulted to processing time", "candidate", res.Skeleton.DateCandidate, "date", rec.FormattedDate())
	}

	if prev, ok := written[rec.Filename]; ok {
		log.Warn("output file name collision, overwriting", "filename", rec.Filename, "previous", filepath.Base(prev))
	}

	out, err := content.Write(c.opts.OutputDir, rec.Filename, content.Poem(rec))
	if err != nil {
		log.Error("write failed", "error", err)
		return err
	}

	written[rec.Filename] = path

	fmt.Fprintf(c.out, "✓ Created: %s\n", rec.Filename)
	fmt.Fprintf(c.out, "  Title: %s\n", rec.Title)
	fmt.Fprintf(c.out, "  Date: %s\n", rec.FormattedDate())
	fmt.Fprintf(c.out, "  Tags: %s\n", strings.Join(rec.Tags, ", "))
	fmt.Fprintf(c.out, "  Excerpt: %s\n", utils.TruncateString(rec.Excerpt, previewRunes))

	log.Debug("wrote record", "path", out)

	return nil
}

// Discover lists the files in dir whose extension matches ext case-insensitively,
// sorted by name. Subdirectories are not searched.
func Discover(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}

		files = append(files, filepath.Join(dir, e.Name()))
	}

	sort.Strings(files)

	return files, nil
}
