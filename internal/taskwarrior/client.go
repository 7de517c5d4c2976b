// Package taskwarrior shells out to the task command-line tool. The task
// store itself (storage, query language, due-date parsing) is opaque; this
// package only speaks its argv contract.
package taskwarrior

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Runner executes one external command and returns its stdout and stderr.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var out, errOut bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	err := cmd.Run()
	return out.Bytes(), errOut.Bytes(), err
}

// AddError is a failed "task add" invocation. Error() prefers the tool's own
// stderr text so the user sees the diagnostic Taskwarrior produced.
type AddError struct {
	Stderr string
	Err    error
}

func (e *AddError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return e.Err.Error()
}

func (e *AddError) Unwrap() error { return e.Err }

// Client queries and mutates the external task store.
type Client struct {
	bin           string
	urgencyWindow string
	timeout       time.Duration
	runner        Runner
}

func NewClient(bin, urgencyWindow string, timeout time.Duration) *Client {
	return &Client{
		bin:           bin,
		urgencyWindow: urgencyWindow,
		timeout:       timeout,
		runner:        execRunner{},
	}
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.runner.Run(ctx, c.bin, args...)
}

// DueCount returns the number of pending, non-overdue tasks due within the
// urgency window. The count is re-derived from the store on every call,
// never cached.
func (c *Client) DueCount(ctx context.Context) (int, error) {
	stdout, _, err := c.run(ctx,
		"due.before:now+"+c.urgencyWindow,
		"status:pending",
		"-OVERDUE",
		"count",
	)
	if err != nil {
		return 0, fmt.Errorf("task count query: %w", err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(stdout)))
	if err != nil {
		return 0, fmt.Errorf("task count query: unexpected output %q", strings.TrimSpace(string(stdout)))
	}
	return n, nil
}

// HasDueSoon reports whether a qualifying task exists. A failed or garbled
// query counts as "none due", so the reminder is shown rather than silently
// suppressed.
func (c *Client) HasDueSoon(ctx context.Context) bool {
	n, err := c.DueCount(ctx)
	if err != nil {
		return false
	}
	return n > 0
}

// Add creates a task from the given tokens, passed to the task binary as
// discrete arguments so the store's own parser sees them unquoted (a trailing
// "due:tomorrow" token goes through literally).
func (c *Client) Add(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return errors.New("no task content")
	}

	args := append([]string{"add"}, tokens...)
	_, stderr, err := c.run(ctx, args...)
	if err != nil {
		return &AddError{
			Stderr: strings.TrimSpace(string(stderr)),
			Err:    err,
		}
	}
	return nil
}
