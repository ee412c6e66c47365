// Package buildtimer measures how long a cold production build takes
// by running the user's own build command under a wall-clock deadline
// (§5 "the bundled build-timer (external) has a configurable wall-clock
// cap").
package buildtimer

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// Timer runs a build command and reports how long it took. Modeled as
// an interface so the CLI can be exercised without actually shelling
// out to a bundler.
type Timer interface {
	Time(ctx context.Context, opts Options) (Result, error)
}

// Options configures one cold-build measurement.
type Options struct {
	// Command is the shell command to run, e.g. "npm run build".
	Command string
	// Dir is the working directory the command runs in.
	Dir string
	// Timeout bounds the command's wall-clock execution; zero means no
	// bound beyond ctx's own deadline.
	Timeout time.Duration
}

// Result is the outcome of one timed build.
type Result struct {
	Duration time.Duration
	ExitCode int
	Stdout   string
	Stderr   string
}

// CommandTimer is the concrete Timer backed by os/exec.
type CommandTimer struct{}

// NewCommandTimer returns the default os/exec-backed timer.
func NewCommandTimer() CommandTimer { return CommandTimer{} }

// Time runs opts.Command under a context bounded by opts.Timeout (if
// set) and measures wall-clock duration. A non-zero exit is reported
// in Result, not as an error; only launch failures (e.g. shell not
// found) and deadline exceeded are returned as errors.
func (CommandTimer) Time(ctx context.Context, opts Options) (Result, error) {
	runCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, "sh", "-c", opts.Command)
	cmd.Dir = opts.Dir
	// Once runCtx is done, stop waiting for output pipes that child
	// processes of the shell may still hold open.
	cmd.WaitDelay = 100 * time.Millisecond
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if runCtx.Err() == context.DeadlineExceeded {
		return Result{}, werr.New(werr.CodeTimeout, "build command exceeded its wall-clock cap")
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, werr.Wrap(werr.CodeLaunchFailed, "run build command", err)
		}
		exitCode = exitErr.ExitCode()
	}

	return Result{
		Duration: duration,
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}
