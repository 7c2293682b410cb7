package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrNoCommand is returned when a command extractor is built without a program.
var ErrNoCommand = errors.New("extractor command is empty")

// CommandExtractor runs an external program with the source path as its last argument
// and captures standard output. The call blocks until the program exits; a zero Timeout
// means no deadline beyond the caller's context.
type CommandExtractor struct {
	Args    []string
	Timeout time.Duration
}

// NewCommandExtractor creates an extractor for the given program and leading arguments.
func NewCommandExtractor(args []string, timeout time.Duration) (*CommandExtractor, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil, ErrNoCommand
	}

	return &CommandExtractor{Args: args, Timeout: timeout}, nil
}

// Extract runs the command for path.
func (c *CommandExtractor) Extract(ctx context.Context, path string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, c.Args[1:]...), path)
	cmd := exec.CommandContext(ctx, c.Args[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}

		return "", failure(path, err)
	}

	return checkOutput(path, stdout.String())
}
