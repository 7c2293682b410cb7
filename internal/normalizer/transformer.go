package normalizer

import (
	"strings"

	"github.com/orwarhol/slater-sites/pkg/metadata"
)

// lineBreak is the Markdown hard break appended to every verse line.
const lineBreak = "  "

// Transformer rewrites a poem body into the collection's line format.
type Transformer struct {
	// KeepStanzaBreaks keeps one blank line between stanzas instead of removing them all.
	KeepStanzaBreaks bool
}

// NewTransformer creates a new transformer instance.
func NewTransformer(keepStanzaBreaks bool) *Transformer {
	return &Transformer{KeepStanzaBreaks: keepStanzaBreaks}
}

// Transform reassembles a split file: the front matter exactly as read, one blank line,
// the normalized body and a final newline.
func (t *Transformer) Transform(block *metadata.Block) string {
	return block.Front + "\n\n" + t.NormalizeBody(block.Body) + "\n"
}

// NormalizeBody drops blank lines and ends every remaining line with exactly two spaces.
// With KeepStanzaBreaks, runs of blank lines between stanzas collapse to one empty line.
func (t *Transformer) NormalizeBody(body string) string {
	var out []string

	pendingBreak := false

	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			pendingBreak = len(out) > 0
			continue
		}

		if pendingBreak && t.KeepStanzaBreaks {
			out = append(out, "")
		}

		pendingBreak = false

		out = append(out, strings.TrimRight(line, " \t\r")+lineBreak)
	}

	return strings.Join(out, "\n")
}
