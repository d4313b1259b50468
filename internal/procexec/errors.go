package procexec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutputLimitExceeded is returned when a process writes more to stdout
	// than the runner accepts.
	ErrOutputLimitExceeded = errors.New("process output limit exceeded")

	// ErrUnexpectedExit is wrapped by Error when the exit status is not one
	// of the request's accepted codes.
	ErrUnexpectedExit = errors.New("unexpected exit status")

	// ErrEmptyCommand is returned for a request without argv.
	ErrEmptyCommand = errors.New("command is empty")
)

// Error wraps failures from running an external process.
//
// It carries a tail of the process's stderr so the cause is visible without
// streaming tool output into structured reports.
type Error struct {
	Op       string
	Command  string
	Err      error
	ExitCode *int
	Stderr   string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(" ")
	}
	if e.Command != "" {
		b.WriteString(e.Command)
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString("unknown error")
	}
	if e.ExitCode != nil {
		fmt.Fprintf(&b, " (exit=%d)", *e.ExitCode)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		b.WriteString("; stderr (tail): ")
		b.WriteString(s)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }
