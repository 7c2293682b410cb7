// Package synthesis derives the final poem record from a segmented, reflowed document:
// calendar date, tags, excerpt, slug file name and verse-formatted body.
package synthesis

import (
	"strings"
	"time"

	"github.com/orwarhol/slater-sites/internal/heuristics"
	"github.com/orwarhol/slater-sites/internal/models"
)

// Default bounds and extension for converted documents.
const (
	DefaultExcerptMax = 180
	DefaultExcerptMin = 140
	DefaultExtension  = ".md"
)

// Options tunes record synthesis.
type Options struct {
	ExcerptMax int
	ExcerptMin int
	Extension  string
}

// Synthesizer builds content records. It holds no per-document state.
type Synthesizer struct {
	tables *heuristics.Tables
	opts   Options
	now    func() time.Time
}

// New creates a synthesizer. Zero options fall back to the defaults above and a nil
// tables argument selects heuristics.Default.
func New(tables *heuristics.Tables, opts Options) *Synthesizer {
	if tables == nil {
		tables = heuristics.Default()
	}

	if opts.ExcerptMax <= 0 {
		opts.ExcerptMax = DefaultExcerptMax
	}

	if opts.ExcerptMin <= 0 || opts.ExcerptMin >= opts.ExcerptMax {
		opts.ExcerptMin = min(DefaultExcerptMin, opts.ExcerptMax-1)
	}

	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}

	return &Synthesizer{tables: tables, opts: opts, now: time.Now}
}

// WithClock replaces the processing clock used for date defaults.
func (s *Synthesizer) WithClock(now func() time.Time) *Synthesizer {
	s.now = now
	return s
}

// Record assembles the content record. body must already be reflowed. fallback names
// the source (usually the file base name) and replaces an empty title. The boolean
// reports whether the date came from the document rather than the clock.
func (s *Synthesizer) Record(skel *models.ContentSkeleton, body []string, fallback string) (*models.ContentRecord, bool) {
	title := skel.Title
	if title == "" {
		title = fallback
	}

	date, parsed := ParseDate(skel.DateCandidate, s.now())

	return &models.ContentRecord{
		Date:     date,
		Title:    title,
		Excerpt:  Excerpt(body, s.opts.ExcerptMax, s.opts.ExcerptMin),
		Filename: Filename(title, fallback, s.opts.Extension),
		Body:     FormatVerse(body),
		Tags:     InferTags(strings.Join(skel.ContentLines, "\n"), title, s.tables),
	}, parsed
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
