package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orwarhol/slater-sites/internal/content"
	"github.com/orwarhol/slater-sites/internal/extractor"
	"github.com/orwarhol/slater-sites/internal/logger"
	"github.com/orwarhol/slater-sites/pkg/metadata"
)

const autumnRaw = "@@#\n" +
	"Autumn Letters,\n" +
	"The leaves come down\n" +
	"like letters never sent\n" +
	"\n" +
	"\n" +
	"and I\n" +
	"I\n" +
	"ve read them all\n" +
	"March 3, 1987\n" +
	"Charlie\n" +
	"Microsoft Works\n" +
	"Arial\n"

var fixedNow = time.Date(2026, time.January, 31, 12, 0, 0, 0, time.UTC)

func newTestConverter(t *testing.T, ext extractor.Extractor, in, out string) (*Converter, *bytes.Buffer) {
	t.Helper()

	var progress bytes.Buffer

	c := New(ext, nil, Options{InputDir: in, OutputDir: out, Extension: ".wps"}, logger.NewLoggerWithWriter("error", io.Discard)).
		WithOutput(&progress)
	c.Synthesizer().WithClock(func() time.Time { return fixedNow })

	return c, &progress
}

func staticExtractor(texts map[string]string) extractor.Extractor {
	return extractor.Func(func(_ context.Context, path string) (string, error) {
		text, ok := texts[filepath.Base(path)]
		if !ok {
			return "", fmt.Errorf("%w: %s: unreadable", extractor.ErrExtractionFailed, path)
		}

		return text, nil
	})
}

func TestConvertText_EndToEnd(t *testing.T) {
	c, _ := newTestConverter(t, nil, "", "")

	res := c.ConvertText(autumnRaw, "autumn")
	rec := res.Record

	assert.True(t, res.DateParsed)
	assert.Equal(t, "Autumn Letters", rec.Title)
	assert.Equal(t, "1987-03-03", rec.FormattedDate())
	assert.Equal(t, "autumn-letters.md", rec.Filename)
	assert.Equal(t, "The leaves come down  \nlike letters never sent\n\nand I  \nI've read them all", rec.Body)
	assert.Equal(t, 1, strings.Count(rec.Body, "\n\n"))
	assert.NotContains(t, rec.Body, "Charlie")

	block, err := metadata.Split(content.Poem(rec))
	require.NoError(t, err)
	assert.NotContains(t, block.Front, "Charlie")
	assert.Contains(t, block.Front, "date: 1987-03-03")
}

func TestConvertText_Fallbacks(t *testing.T) {
	c, _ := newTestConverter(t, nil, "", "")

	res := c.ConvertText("{}\n[]\n", "Draft 12")

	assert.False(t, res.DateParsed)
	assert.Equal(t, "Draft 12", res.Record.Title)
	assert.Equal(t, "draft-12.md", res.Record.Filename)
	assert.Equal(t, "2026-01-31", res.Record.FormattedDate())
	assert.Equal(t, []string{"Abstract"}, res.Record.Tags)
}

func TestConvertText_Idempotent(t *testing.T) {
	c, _ := newTestConverter(t, nil, "", "")

	first := c.ConvertText(autumnRaw, "autumn").Record
	second := c.ConvertText(autumnRaw, "autumn").Record

	assert.Equal(t, first, second)
}

func TestRun(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "poetry")

	for _, name := range []string{"autumn.wps", "BROKEN.WPS", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(in, name), []byte("binary"), 0o644))
	}

	c, progress := newTestConverter(t, staticExtractor(map[string]string{"autumn.wps": autumnRaw}), in, out)

	summary, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.True(t, errors.Is(summary.Failures[0].Err, extractor.ErrExtractionFailed))
	assert.Equal(t, 1, summary.ExitCode())

	data, err := os.ReadFile(filepath.Join(out, "autumn-letters.md"))
	require.NoError(t, err)

	want := "---\n" +
		`title: "Autumn Letters"` + "\n" +
		"date: 1987-03-03\n" +
		`tags: ["Abstract"]` + "\n" +
		`excerpt: "The leaves come down like letters never sent and I I've read them all"` + "\n" +
		"---\n\n" +
		"The leaves come down  \nlike letters never sent\n\nand I  \nI've read them all\n"
	assert.Equal(t, want, string(data))

	assert.Contains(t, progress.String(), "✓ Created: autumn-letters.md")
	assert.Contains(t, progress.String(), "✗ BROKEN.WPS")
}

func TestRun_NoInput(t *testing.T) {
	c, progress := newTestConverter(t, staticExtractor(nil), t.TempDir(), t.TempDir())

	summary, err := c.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Zero(t, summary.Processed)
	assert.Equal(t, 0, summary.ExitCode())
	assert.Contains(t, progress.String(), "No .wps files found")

	c, _ = newTestConverter(t, staticExtractor(nil), filepath.Join(t.TempDir(), "missing"), t.TempDir())

	_, err = c.Run(context.Background())
	require.Error(t, err)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.wps", "a.WPS", "c.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	require.NoError(t, os.Mkdir(filepath.Join(dir, "d.wps"), 0o755))

	files, err := Discover(dir, ".wps")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.WPS"), filepath.Join(dir, "b.wps")}, files)
}
