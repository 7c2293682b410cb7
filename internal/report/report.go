// Package report tracks per-file outcomes of a batch run.
package report

import (
	"fmt"
	"io"
)

// Failure is one file that could not be processed.
type Failure struct {
	Path string
	Err  error
}

// Summary counts batch outcomes. The zero value is ready to use.
type Summary struct {
	Processed int
	Succeeded int
	Skipped   int
	Failed    int
	Failures  []Failure
}

// Success records a processed file.
func (s *Summary) Success() {
	s.Processed++
	s.Succeeded++
}

// Skip records a file that needed no work.
func (s *Summary) Skip() {
	s.Processed++
	s.Skipped++
}

// Fail records a failed file.
func (s *Summary) Fail(path string, err error) {
	s.Processed++
	s.Failed++
	s.Failures = append(s.Failures, Failure{Path: path, Err: err})
}

// Merge adds the counts and failures of other.
func (s *Summary) Merge(other *Summary) {
	s.Processed += other.Processed
	s.Succeeded += other.Succeeded
	s.Skipped += other.Skipped
	s.Failed += other.Failed
	s.Failures = append(s.Failures, other.Failures...)
}

// HasFailures reports whether any file failed.
func (s *Summary) HasFailures() bool {
	return s.Failed > 0
}

// ExitCode is 1 when any file failed, else 0.
func (s *Summary) ExitCode() int {
	if s.HasFailures() {
		return 1
	}

	return 0
}

// Print writes the summary block shown at the end of every batch tool.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "\n----------------------------------------------------------------")
	fmt.Fprintf(w, "📈 Summary:\n")
	fmt.Fprintf(w, "  Processed: %d files\n", s.Processed)
	fmt.Fprintf(w, "  Succeeded: %d\n", s.Succeeded)

	if s.Skipped > 0 {
		fmt.Fprintf(w, "  Unchanged: %d\n", s.Skipped)
	}

	fmt.Fprintf(w, "  Failed:    %d\n", s.Failed)

	if len(s.Failures) == 0 {
		return
	}

	fmt.Fprintln(w, "\nErrors:")

	for _, f := range s.Failures {
		fmt.Fprintf(w, "  %s: %v\n", f.Path, f.Err)
	}
}
