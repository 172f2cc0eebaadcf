package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/renato0307/fluxtree/internal/logging"
)

// DefaultTimeout bounds every CLI invocation
const DefaultTimeout = 30 * time.Second

// Result is the outcome of a finished process
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner starts external processes. A non-zero exit is reported through
// Result.ExitCode; the error is reserved for failures to run at all.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs commands via os/exec
type ExecRunner struct {
	Timeout time.Duration
}

// NewExecRunner creates a runner with the given timeout (0 = DefaultTimeout)
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Run executes name with args and captures its output
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	logging.Debug("cli invocation",
		"command", name,
		"args", strings.Join(args, " "),
		"duration", time.Since(start).String(),
	)

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		return res, fmt.Errorf("%s command timed out after %v", name, timeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, fmt.Errorf("failed to start %s: %w", name, err)
}

// Error is returned when a command exits unsuccessfully
type Error struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s failed: %s", e.Command, msg)
}

// Check converts a run outcome into an error. With strictStderr, output on
// stderr is a failure even when the exit code is zero.
func Check(command string, res Result, err error, strictStderr bool) error {
	if err != nil {
		return err
	}
	if res.ExitCode != 0 || (strictStderr && strings.TrimSpace(res.Stderr) != "") {
		return &Error{Command: command, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}
