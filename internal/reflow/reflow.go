// Package reflow repairs word-processor line wrapping in poem bodies.
package reflow

import (
	"strings"
	"unicode"

	"github.com/orwarhol/slater-sites/internal/heuristics"
)

// Reflower merges orphaned fragments, rebuilds split contractions and restores missing
// apostrophes.
type Reflower struct {
	tables *heuristics.Tables
}

// New creates a reflower. A nil tables argument selects heuristics.Default.
func New(tables *heuristics.Tables) *Reflower {
	if tables == nil {
		tables = heuristics.Default()
	}

	return &Reflower{tables: tables}
}

// Reflow returns the reconstructed body lines. Blank entries are stanza breaks: never
// first, never last and never repeated. Running Reflow on its own output changes nothing.
func (r *Reflower) Reflow(lines []string) []string {
	out := make([]string, 0, len(lines))
	n := len(lines)

	for i := 0; i < n; {
		line := strings.TrimSpace(lines[i])

		switch {
		case line == "":
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}

			i++

		case r.tables.IsSignature(line):
			i++

		case r.tables.IsFragment(line) && i < n-1:
			next := strings.TrimSpace(lines[i+1])
			if next == "" {
				out = append(out, line)
				i++

				continue
			}

			merged := r.merge(line, next)
			i += 2

			// A merge can leave another fragment ("a" + "b"); keep absorbing lines so a
			// second pass finds nothing left to merge.
			for r.tables.IsFragment(merged) && i < n {
				next = strings.TrimSpace(lines[i])
				if next == "" {
					break
				}

				merged = r.merge(merged, next)
				i++
			}

			if !r.tables.IsSignature(merged) {
				out = append(out, merged)
			}

		default:
			out = append(out, line)
			i++
		}
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	for i, line := range out {
		if line != "" {
			out[i] = r.tables.RepairApostrophes(line)
		}
	}

	return out
}

func (r *Reflower) merge(fragment, next string) string {
	if isSingleLetter(fragment) && r.tables.StartsWithSuffix(next) {
		word, rest := next, ""
		if i := strings.IndexFunc(next, unicode.IsSpace); i >= 0 {
			word, rest = next[:i], strings.TrimSpace(next[i:])
		}

		if rest == "" {
			return fragment + "'" + word
		}

		return fragment + "'" + word + " " + rest
	}

	return fragment + next
}

func isSingleLetter(s string) bool {
	if len(s) != 1 {
		return false
	}

	c := s[0]

	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
