// Package segment locates title, date, signature and body inside noisy extracted text.
package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/orwarhol/slater-sites/internal/heuristics"
	"github.com/orwarhol/slater-sites/internal/models"
)

const (
	titleWindow   = 5
	maxTitleRunes = 100
	// Lines longer than this stop the backward trailer scan.
	trailerStopRunes = 10
	minStartRunes    = 2
)

var (
	datePattern = regexp.MustCompile(
		`(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}` +
			`|\d{1,2}/\d{1,2}/\d{2,4}`)
	trailingComma = regexp.MustCompile(`,\s*$`)
)

// Segmenter splits raw text into a content skeleton.
type Segmenter struct {
	tables *heuristics.Tables
}

// New creates a segmenter. A nil tables argument selects heuristics.Default.
func New(tables *heuristics.Tables) *Segmenter {
	if tables == nil {
		tables = heuristics.Default()
	}

	return &Segmenter{tables: tables}
}

// Segment builds a skeleton from raw extractor output. Empty or garbage input yields an
// empty skeleton, never an error.
func (s *Segmenter) Segment(raw string) *models.ContentSkeleton {
	lines := Lines(raw)
	start, end := s.bounds(lines)

	content := make([]string, 0, end-start)
	for _, line := range lines[start:end] {
		content = append(content, strings.TrimSpace(line))
	}

	skel := &models.ContentSkeleton{ContentLines: content}

	titleIdx := -1
	bodyStart := 0

	if idx, title, ok := s.title(content); ok {
		titleIdx = idx
		bodyStart = idx + 1
		skel.Title = title
	}

	candidate, dateIdx, pastMidpoint := findDate(content)
	skel.DateCandidate = candidate

	sigIdx := s.signature(content, titleIdx, dateIdx, pastMidpoint)

	bodyEnd := len(content)
	if sigIdx >= 0 {
		skel.SignatureFound = true
		bodyEnd = sigIdx
	}

	if bodyStart > bodyEnd {
		bodyStart = bodyEnd
	}

	skel.BodyLines = CollapseBlanks(content[bodyStart:bodyEnd])

	return skel
}

// Lines splits text on newlines and drops carriage returns.
func Lines(raw string) []string {
	if raw == "" {
		return nil
	}

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}

	return lines
}

// bounds returns the half-open content range [start, end).
func (s *Segmenter) bounds(lines []string) (int, int) {
	start := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if utf8.RuneCountInString(trimmed) > minStartRunes && !s.tables.IsJunkStart(trimmed) {
			start = i
			break
		}
	}

	end := len(lines)

	for i := len(lines) - 1; i >= start; i-- {
		trimmed := strings.TrimSpace(lines[i])

		if s.tables.IsTrailer(trimmed) {
			end = i
			continue
		}

		if utf8.RuneCountInString(trimmed) > trailerStopRunes {
			break
		}
	}

	if end < start {
		end = start
	}

	return start, end
}

func (s *Segmenter) title(content []string) (int, string, bool) {
	for i := 0; i < len(content) && i < titleWindow; i++ {
		line := content[i]
		if line == "" || utf8.RuneCountInString(line) >= maxTitleRunes || s.tables.IsJunkStart(line) {
			continue
		}

		return i, trailingComma.ReplaceAllString(line, ""), true
	}

	return -1, "", false
}

// findDate returns the last date-shaped substring, its line and whether that line lies
// past the structural midpoint.
func findDate(content []string) (string, int, bool) {
	candidate := ""
	idx := -1

	for i, line := range content {
		if m := datePattern.FindString(line); m != "" {
			candidate = m
			idx = i
		}
	}

	return candidate, idx, idx >= 0 && 2*idx > len(content)
}

// signature resolves the signature line. A name match is more specific than a date near
// the end, so the earliest name match after the title wins; a past-midpoint date line
// directly above it (blank lines aside) belongs to the same sign-off and starts it.
// Without a name match the past-midpoint date line marks the end. Returns -1 when
// neither fires.
func (s *Segmenter) signature(content []string, titleIdx, dateIdx int, pastMidpoint bool) int {
	dateSig := -1
	if pastMidpoint && dateIdx > titleIdx {
		dateSig = dateIdx
	}

	for i := titleIdx + 1; i < len(content); i++ {
		if !s.tables.IsSignature(content[i]) {
			continue
		}

		if dateSig >= 0 && dateSig < i && allBlank(content[dateSig+1:i]) {
			return dateSig
		}

		return i
	}

	return dateSig
}

func allBlank(lines []string) bool {
	for _, line := range lines {
		if line != "" {
			return false
		}
	}

	return true
}

// CollapseBlanks trims both ends of the slice of blank lines and reduces every run of
// blank lines to one.
func CollapseBlanks(lines []string) []string {
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		if line == "" && (len(out) == 0 || out[len(out)-1] == "") {
			continue
		}

		out = append(out, line)
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return out
}
