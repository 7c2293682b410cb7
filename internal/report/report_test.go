package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSummary(t *testing.T) {
	var s Summary

	s.Success()
	s.Skip()

	if s.ExitCode() != 0 {
		t.Fatalf("ExitCode() = %d with no failures", s.ExitCode())
	}

	s.Fail("poems/broken.md", errors.New("file does not start with frontmatter"))

	if s.Processed != 3 || s.Succeeded != 1 || s.Skipped != 1 || s.Failed != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}

	if s.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", s.ExitCode())
	}

	var buf bytes.Buffer
	s.Print(&buf)

	out := buf.String()
	for _, want := range []string{"Processed: 3 files", "Unchanged: 1", "Failed:    1", "poems/broken.md: file does not start with frontmatter"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSummary_Merge(t *testing.T) {
	var a, b Summary

	a.Success()
	b.Fail("x.xml", errors.New("boom"))

	a.Merge(&b)

	if a.Processed != 2 || a.Failed != 1 || len(a.Failures) != 1 {
		t.Errorf("unexpected merged counts: %+v", a)
	}
}
