// Package procexec runs the external tools the linter delegates to (the
// template compiler and the Python checker).
//
// Each call starts a fresh process, feeds it stdin, collects stdout up to a
// limit and keeps only the tail of stderr for diagnostics.
package procexec

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"slices"
	"strings"
	"syscall"
	"time"

	backoff "github.com/cenkalti/backoff/v5"
)

const (
	defaultMaxOutputBytes = 16 * 1024 * 1024
	defaultStderrTail     = 32 * 1024
	defaultTerminateGrace = 250 * time.Millisecond
	defaultStartAttempts  = 3
)

// Runner starts external processes.
type Runner struct {
	maxOutputBytes int
	stderrTail     int
	terminateGrace time.Duration
	startAttempts  uint
	logger         *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithMaxOutputBytes caps the stdout a process may produce.
func WithMaxOutputBytes(n int) Option {
	return func(r *Runner) { r.maxOutputBytes = n }
}

// WithStderrTailBytes sets how much trailing stderr is kept for errors.
func WithStderrTailBytes(n int) Option {
	return func(r *Runner) { r.stderrTail = n }
}

// WithTerminateGrace sets how long a cancelled process may take to exit
// after SIGTERM before it is killed.
func WithTerminateGrace(d time.Duration) Option {
	return func(r *Runner) { r.terminateGrace = d }
}

// WithStartAttempts sets how often a transient start failure is retried.
func WithStartAttempts(n uint) Option {
	return func(r *Runner) { r.startAttempts = max(n, 1) }
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a Runner with defaults adjusted by opts.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		maxOutputBytes: defaultMaxOutputBytes,
		stderrTail:     defaultStderrTail,
		terminateGrace: defaultTerminateGrace,
		startAttempts:  defaultStartAttempts,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Request describes one process invocation.
type Request struct {
	// Command is the argv; Command[0] is resolved through PATH.
	Command []string
	// Dir is the working directory (empty = current).
	Dir string
	// Env is appended to the inherited environment.
	Env []string
	// Stdin is written to the process's standard input.
	Stdin string
	// Timeout bounds the whole call (0 = only ctx).
	Timeout time.Duration
	// OKExitCodes lists the exit statuses that are not failures.
	// Empty means only 0.
	OKExitCodes []int
}

// Result is the outcome of a successful call.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Run starts the process, waits for it and returns its output.
//
// A failure to start, a timeout, too much output or an exit status outside
// OKExitCodes is returned as *Error.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	name := commandName(req.Command)

	if len(req.Command) == 0 {
		return Result{}, &Error{Op: "run", Err: ErrEmptyCommand}
	}

	runCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, req.Timeout)
		defer cancel()
	}
	runCtx, cancelCause := context.WithCancelCause(runCtx)
	defer cancelCause(context.Canceled)

	var (
		stdout *limitWriter
		stderr *tailBuffer
	)
	cmd, err := backoff.Retry(runCtx, func() (*exec.Cmd, error) {
		stdout = &limitWriter{max: r.maxOutputBytes, onExceed: func() { cancelCause(ErrOutputLimitExceeded) }}
		stderr = newTailBuffer(r.stderrTail)
		cmd := r.command(runCtx, req)
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		if err := cmd.Start(); err != nil {
			if isTransientStart(err) {
				r.logger.DebugContext(ctx, "retrying process start", "command", name, "error", err)
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		return cmd, nil
	},
		backoff.WithBackOff(newStartBackoff()),
		backoff.WithMaxTries(r.startAttempts),
		backoff.WithMaxElapsedTime(0), // rely on context for overall timeout
	)
	if err != nil {
		return Result{}, &Error{Op: "start", Command: name, Err: err}
	}

	waitErr := cmd.Wait()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	exit := exitCodeFromWaitErr(waitErr)
	if exit != nil {
		res.ExitCode = *exit
	}
	r.logger.DebugContext(ctx, "process finished",
		"command", name,
		"exit", res.ExitCode,
		"stdout_bytes", len(res.Stdout),
		"duration", res.Duration,
	)

	if stdout.Exceeded() {
		return res, &Error{Op: "run", Command: name, Err: ErrOutputLimitExceeded, ExitCode: exit, Stderr: res.Stderr}
	}
	if runCtx.Err() != nil {
		return res, &Error{Op: "run", Command: name, Err: context.Cause(runCtx), ExitCode: exit, Stderr: res.Stderr}
	}
	if exit == nil {
		return res, &Error{Op: "wait", Command: name, Err: waitErr, Stderr: res.Stderr}
	}

	ok := req.OKExitCodes
	if len(ok) == 0 {
		ok = []int{0}
	}
	if !slices.Contains(ok, res.ExitCode) {
		return res, &Error{Op: "run", Command: name, Err: ErrUnexpectedExit, ExitCode: exit, Stderr: res.Stderr}
	}
	return res, nil
}

func (r *Runner) command(ctx context.Context, req Request) *exec.Cmd {
	cmd := exec.CommandContext(ctx, req.Command[0], req.Command[1:]...) //nolint:gosec // Command is explicit user configuration.
	cmd.Dir = req.Dir
	if len(req.Env) > 0 {
		cmd.Env = append(cmd.Environ(), req.Env...)
	}
	cmd.Stdin = strings.NewReader(req.Stdin)
	configureProcessGroup(cmd)
	cmd.Cancel = func() error {
		// First try a graceful termination; Wait escalates after WaitDelay.
		err := killProcessGroup(cmd.Process.Pid, syscall.SIGTERM)
		if err != nil && !isNoSuchProcess(err) {
			return cmd.Process.Kill()
		}
		return nil
	}
	cmd.WaitDelay = r.terminateGrace
	return cmd
}

func newStartBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = time.Second
	b.Multiplier = 2.0
	return b
}

func commandName(argv []string) string {
	if len(argv) == 0 {
		return ""
	}
	return strings.Join(argv, " ")
}

func exitCodeFromWaitErr(err error) *int {
	if err == nil {
		code := 0
		return &code
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		code := ee.ExitCode()
		if code < 0 {
			// Killed by a signal.
			return nil
		}
		return &code
	}
	return nil
}
