// Package compiler turns Cheetah template source into Python source by
// delegating to an external compiler process.
package compiler

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wharflab/cheetah-lint/internal/procexec"
)

//go:embed compile.py
var compileScript string

// DefaultCommand runs the bundled compile script with the Python on PATH.
func DefaultCommand() []string {
	return []string{"python", "-c", compileScript}
}

// Compiler compiles template source to Python source.
type Compiler interface {
	Compile(ctx context.Context, source string) (string, error)
}

// CompileError reports a template the compiler rejected.
type CompileError struct {
	// Line is the 1-based template line (0 = unknown).
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e *CompileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// compileFailedExit is the status the compile command uses for rejected
// templates.
const compileFailedExit = 1

// Exec compiles by running an external command.
//
// The command reads the template on stdin and writes Python on stdout.
// For a template error it exits 1 and writes a JSON CompileError instead.
type Exec struct {
	Command []string
	Timeout time.Duration
	Runner  *procexec.Runner
}

// NewExec creates an Exec. A nil command means DefaultCommand.
func NewExec(command []string, timeout time.Duration, runner *procexec.Runner) *Exec {
	if len(command) == 0 {
		command = DefaultCommand()
	}
	if runner == nil {
		runner = procexec.NewRunner()
	}
	return &Exec{Command: command, Timeout: timeout, Runner: runner}
}

// Compile runs the command.
func (e *Exec) Compile(ctx context.Context, source string) (string, error) {
	res, err := e.Runner.Run(ctx, procexec.Request{
		Command:     e.Command,
		Stdin:       source,
		Timeout:     e.Timeout,
		OKExitCodes: []int{0, compileFailedExit},
	})
	if err != nil {
		return "", fmt.Errorf("compile: %w", err)
	}
	if res.ExitCode == compileFailedExit {
		if ce, ok := ParseCompileError(res.Stdout); ok {
			return "", ce
		}
		// No report: the compiler crashed or could not start Cheetah.
		exit := res.ExitCode
		return "", fmt.Errorf("compile: %w", &procexec.Error{
			Op:       "run",
			Command:  e.Command[0],
			Err:      procexec.ErrUnexpectedExit,
			ExitCode: &exit,
			Stderr:   res.Stderr,
		})
	}
	return res.Stdout, nil
}

// ParseCompileError decodes the JSON error report the compile command
// writes to stdout. It reports false when stdout is not such a report.
func ParseCompileError(stdout string) (*CompileError, bool) {
	var ce CompileError
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &ce); err != nil || ce.Message == "" {
		return nil, false
	}
	return &ce, true
}

// AsCompileError unwraps err to a *CompileError.
func AsCompileError(err error) (*CompileError, bool) {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
