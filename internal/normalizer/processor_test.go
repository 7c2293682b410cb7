package normalizer

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/orwarhol/slater-sites/internal/logger"
	"github.com/orwarhol/slater-sites/pkg/metadata"
)

func newTestProcessor(opts Options) (*Processor, *bytes.Buffer) {
	if opts.Extensions == nil {
		opts.Extensions = []string{".md", ".mdx"}
	}

	var progress bytes.Buffer

	return NewProcessor(opts, logger.NewLoggerWithWriter("error", io.Discard)).WithOutput(&progress), &progress
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	return string(data)
}

func TestProcessor_Process(t *testing.T) {
	p, _ := newTestProcessor(Options{})

	got, err := p.Process("---\ntitle: \"A\"\n---\nline\n\nline two\n")
	if err != nil {
		t.Fatalf("Process returned unexpected error: %v", err)
	}

	want := "---\ntitle: \"A\"\n---\n\nline  \nline two  \n"
	if got != want {
		t.Errorf("Process() = %q, want %q", got, want)
	}

	again, err := p.Process(got)
	if err != nil || again != got {
		t.Errorf("Process is not idempotent: %q, %v", again, err)
	}
}

func TestProcessor_Run(t *testing.T) {
	dir := t.TempDir()

	writeFiles(t, dir, map[string]string{
		"a.md":          "---\ntitle: \"A\"\n---\nfirst\n\nsecond\n",
		"nested/b.mdx":  "---\ntitle: \"B\"\n---\n\nalready  \n",
		"broken.md":     "title: no delimiters\n",
		"unclosed.MD":   "---\ntitle: \"C\"\n",
		"notes.txt":     "ignored\n",
		".drafts/d.md":  "not a poem\n",
		"nested/e.md":   "---\ntitle: \"E\"\n---\n\n\nlast\n",
		"nested/f.json": "{}",
	})

	p, progress := newTestProcessor(Options{})

	summary, err := p.Run(dir)
	if err != nil {
		t.Fatalf("Run returned unexpected error: %v", err)
	}

	if summary.Processed != 5 || summary.Succeeded != 2 || summary.Skipped != 1 || summary.Failed != 2 {
		t.Errorf("Run() summary = %+v", summary)
	}

	if summary.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", summary.ExitCode())
	}

	if got := readFile(t, filepath.Join(dir, "a.md")); got != "---\ntitle: \"A\"\n---\n\nfirst  \nsecond  \n" {
		t.Errorf("a.md = %q", got)
	}

	if got := readFile(t, filepath.Join(dir, "nested", "e.md")); got != "---\ntitle: \"E\"\n---\n\nlast  \n" {
		t.Errorf("e.md = %q", got)
	}

	if got := readFile(t, filepath.Join(dir, "broken.md")); got != "title: no delimiters\n" {
		t.Errorf("broken.md was modified: %q", got)
	}

	var opening, closing bool

	for _, f := range summary.Failures {
		opening = opening || errors.Is(f.Err, metadata.ErrMissingOpeningDelimiter)
		closing = closing || errors.Is(f.Err, metadata.ErrMissingClosingDelimiter)
	}

	if !opening || !closing {
		t.Errorf("failures = %+v, want both delimiter errors", summary.Failures)
	}

	if !strings.Contains(progress.String(), "✗ "+filepath.Join(dir, "broken.md")) {
		t.Errorf("progress missing failure line:\n%s", progress.String())
	}
}

func TestProcessor_Run_DryRun(t *testing.T) {
	dir := t.TempDir()
	original := "---\ntitle: \"A\"\n---\nfirst\n"

	writeFiles(t, dir, map[string]string{"a.md": original})

	p, progress := newTestProcessor(Options{DryRun: true})

	summary, err := p.Run(dir)
	if err != nil {
		t.Fatalf("Run returned unexpected error: %v", err)
	}

	if summary.Succeeded != 1 {
		t.Errorf("Succeeded = %d, want 1", summary.Succeeded)
	}

	if got := readFile(t, filepath.Join(dir, "a.md")); got != original {
		t.Errorf("dry run wrote the file: %q", got)
	}

	if !strings.Contains(progress.String(), "Would normalize") {
		t.Errorf("progress = %q", progress.String())
	}
}

func TestProcessor_Run_MissingDir(t *testing.T) {
	p, _ := newTestProcessor(Options{})

	if _, err := p.Run(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Run expected error for missing directory")
	}
}
