// Package extractor turns legacy word-processor files into plain text.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrExtractionFailed marks a source file that produced no usable text.
var ErrExtractionFailed = errors.New("text extraction failed")

// Extractor produces plain text for one source file. Implementations must return an
// error wrapping ErrExtractionFailed when no text could be obtained.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Func adapts a plain function to the Extractor interface.
type Func func(ctx context.Context, path string) (string, error)

// Extract calls f.
func (f Func) Extract(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

func failure(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrExtractionFailed, path, err)
}

var errEmptyOutput = errors.New("no text in output")

func checkOutput(path, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", failure(path, errEmptyOutput)
	}

	return text, nil
}
