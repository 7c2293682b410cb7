package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

const (
	minStartLen = 3
	maxStartLen = 99
	// Non-trailer lines longer than this end the backward trailer scan.
	trailerStopLen = 5
)

var (
	startLine   = regexp.MustCompile(`^[A-Za-z0-9\s,.\-!?'"‘’“”–—]+$`)
	trailerLine = regexp.MustCompile(`Microsoft Works|MSWorks|Arial|Modern`)
)

// WorksExtractor decodes Microsoft Works word-processor files natively. It keeps the
// printable runs of each newline-delimited record, so blank records survive as stanza
// breaks, then drops the binary preamble and the font/product trailer.
type WorksExtractor struct{}

// NewWorksExtractor creates a native Works extractor.
func NewWorksExtractor() *WorksExtractor {
	return &WorksExtractor{}
}

// Extract reads path and returns its text lines joined by newlines.
func (w *WorksExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", failure(path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", failure(path, err)
	}

	lines, err := DecodeWorks(data)
	if err != nil {
		return "", failure(path, err)
	}

	lines = TrimWorksNoise(lines)
	if len(lines) == 0 {
		return "", failure(path, errEmptyOutput)
	}

	return checkOutput(path, strings.Join(lines, "\n")+"\n")
}

// DecodeWorks splits raw file bytes into trimmed text lines. Only printable ASCII, TAB
// and the Windows-1252 typographic quotes and dashes (0x91-0x97) are kept.
func DecodeWorks(data []byte) ([]string, error) {
	dec := charmap.Windows1252.NewDecoder()

	var (
		lines   []string
		current []byte
	)

	flush := func() error {
		if len(current) == 0 {
			lines = append(lines, "")
			return nil
		}

		text, err := dec.Bytes(current)
		if err != nil {
			return fmt.Errorf("decode windows-1252: %w", err)
		}

		lines = append(lines, strings.TrimSpace(norm.NFC.String(string(text))))
		current = current[:0]

		return nil
	}

	for _, b := range data {
		switch {
		case b == '\n':
			if err := flush(); err != nil {
				return nil, err
			}
		case b >= 0x20 && b < 0x7f, b == '\t', b >= 0x91 && b <= 0x97:
			current = append(current, b)
		}
	}

	if len(bytes.TrimSpace(current)) > 0 {
		if err := flush(); err != nil {
			return nil, err
		}
	}

	return lines, nil
}

// TrimWorksNoise drops the lines before the first plausible text line and the product
// and font names the format stores after the document body.
func TrimWorksNoise(lines []string) []string {
	start := 0

	for i, line := range lines {
		if n := len([]rune(line)); n >= minStartLen && n <= maxStartLen && startLine.MatchString(line) {
			start = i
			break
		}
	}

	end := len(lines)

	for i := len(lines) - 1; i >= start; i-- {
		if trailerLine.MatchString(lines[i]) {
			end = i
			continue
		}

		if len(lines[i]) > trailerStopLen {
			break
		}
	}

	return lines[start:end]
}
