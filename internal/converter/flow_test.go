package converter_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orwarhol/slater-sites/internal/converter"
	"github.com/orwarhol/slater-sites/internal/extractor"
	"github.com/orwarhol/slater-sites/internal/logger"
	"github.com/orwarhol/slater-sites/internal/normalizer"
	"github.com/orwarhol/slater-sites/internal/validator"
)

// Converted poems satisfy the poetry schema before and after the normalization pass.
func TestFlow_ConvertNormalizeValidate(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "poetry")
	log := logger.NewLoggerWithWriter("error", io.Discard)

	texts := map[string]string{
		"winter.wps": "Winter Road\nsnow on the fence\nand on the \"quiet\" field\n\nwe walk\n12/24/78\nCharlie\n",
		"blank.wps":  "%%\n{}\n",
	}

	for name := range texts {
		require.NoError(t, os.WriteFile(filepath.Join(in, name), nil, 0o644))
	}

	ext := extractor.Func(func(_ context.Context, path string) (string, error) {
		return texts[filepath.Base(path)], nil
	})

	conv := converter.New(ext, nil, converter.Options{InputDir: in, OutputDir: out, Extension: ".wps"}, log).
		WithOutput(io.Discard)
	conv.Synthesizer().WithClock(func() time.Time { return time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC) })

	summary, err := conv.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, summary.Succeeded)

	v := validator.NewMarkdownValidator()
	exts := []string{".md"}

	results, err := v.ValidateDir(out, &validator.PoetrySchema, exts)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.True(t, r.IsValid, "%s: %v", r.Path, r.Errors)
	}

	p := normalizer.NewProcessor(normalizer.Options{Extensions: exts, KeepStanzaBreaks: true}, log).WithOutput(io.Discard)

	normalized, err := p.Run(out)
	require.NoError(t, err)
	assert.Zero(t, normalized.Failed)

	results, err = v.ValidateDir(out, &validator.PoetrySchema, exts)
	require.NoError(t, err)

	for _, r := range results {
		assert.True(t, r.IsValid, "%s: %v", r.Path, r.Errors)
	}
}
