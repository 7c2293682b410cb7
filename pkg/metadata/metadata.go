// Package metadata provides utilities for reading and writing the front matter block
// that prefixes every content file.
package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Delimiter opens and closes the front matter block.
const Delimiter = "---"

// Front matter errors.
var (
	ErrMissingOpeningDelimiter = errors.New("file does not start with frontmatter")
	ErrMissingClosingDelimiter = errors.New("could not find closing frontmatter delimiter")
)

// Block is a content file split at its front matter.
type Block struct {
	// Front is the front matter including both delimiter lines, without a trailing newline.
	Front string
	// Fields is the text between the delimiters.
	Fields string
	// Body is everything after the closing delimiter line.
	Body string
}

// Split separates the front matter block from the body. The first line must be exactly
// the delimiter and a later line must be exactly the delimiter.
func Split(content string) (*Block, error) {
	lines := strings.Split(content, "\n")

	if lines[0] != Delimiter {
		return nil, ErrMissingOpeningDelimiter
	}

	closing := -1

	for i := 1; i < len(lines); i++ {
		if lines[i] == Delimiter {
			closing = i
			break
		}
	}

	if closing == -1 {
		return nil, ErrMissingClosingDelimiter
	}

	return &Block{
		Front:  strings.Join(lines[:closing+1], "\n"),
		Fields: strings.Join(lines[1:closing], "\n"),
		Body:   strings.Join(lines[closing+1:], "\n"),
	}, nil
}

// HasFrontMatter reports whether content starts with a complete front matter block.
func HasFrontMatter(content string) bool {
	_, err := Split(content)

	return err == nil
}

// Extract returns the body of content with its front matter removed. Content without
// a complete block is returned unchanged.
func Extract(content string) (string, string) {
	block, err := Split(content)
	if err != nil {
		return "", content
	}

	return block.Front, block.Body
}

// Join reassembles a front matter block and a body with exactly one blank line between them
// and a single trailing newline.
func Join(front, body string) string {
	body = strings.Trim(body, "\n")
	if front == "" {
		return body + "\n"
	}

	return front + "\n\n" + body + "\n"
}

// Builder writes front matter fields in insertion order.
type Builder struct {
	lines []string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// Quote returns s as a double-quoted scalar on a single line.
func Quote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}

// String adds a double-quoted string field.
func (b *Builder) String(key, value string) *Builder {
	b.lines = append(b.lines, key+": "+Quote(value))

	return b
}

// Raw adds a field whose value is written verbatim.
func (b *Builder) Raw(key, value string) *Builder {
	b.lines = append(b.lines, key+": "+value)

	return b
}

// JSON adds a field encoded as JSON, which is valid flow-style YAML. A non-empty indent
// produces a multi-line value.
func (b *Builder) JSON(key string, value any, indent string) *Builder {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if indent != "" {
		enc.SetIndent("", indent)
	}

	if err := enc.Encode(value); err != nil {
		// Only unsupported types fail here; callers pass strings and plain structs.
		panic(fmt.Sprintf("metadata: encode %s: %v", key, err))
	}

	b.lines = append(b.lines, key+": "+strings.TrimRight(buf.String(), "\n"))

	return b
}

// Build returns the complete block including delimiters, without a trailing newline.
func (b *Builder) Build() string {
	parts := make([]string, 0, len(b.lines)+2)
	parts = append(parts, Delimiter)
	parts = append(parts, b.lines...)
	parts = append(parts, Delimiter)

	return strings.Join(parts, "\n")
}
