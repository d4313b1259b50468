// Package checker runs a Python static checker over generated code.
package checker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wharflab/cheetah-lint/internal/procexec"
	"github.com/wharflab/cheetah-lint/internal/rules"
)

// DefaultSelect are the checker codes that indicate real problems in
// generated code. Whitespace and undefined-name findings are noise there:
// the compiler emits its own layout, and searchList names look undefined.
var DefaultSelect = []string{
	"F401", // 'module' imported but unused
	"F402", // import 'module' from line N shadowed by loop variable
	"F403", // 'from module import *' used; unable to detect undefined names
	"F601", // dictionary key repeated with different values
	"F602",
	"F632", // use ==/!= to compare to literals
	"F811", // redefinition of unused 'name' from line N
	"F812", // list comprehension redefines 'name' from line N
	"F841", // local variable 'name' is assigned to but never used
	"E711", // comparison to None
	"E712", // comparison to True
	"E713", // test for membership should be 'not in'
	"E714", // test for object identity should be 'is not'
	"E999", // SyntaxError
	"W601", // .has_key() is deprecated
	"W605", // invalid escape sequence
}

// Checker reports findings for generated Python.
//
// Returned violations carry generated line numbers and no file.
type Checker interface {
	Check(ctx context.Context, generated string, codes []string) ([]rules.Violation, error)
}

// outputFormat is the flake8 --format template; ParseOutput reads it back.
const outputFormat = "%(row)d\t%(code)s\t%(text)s"

// Flake8 runs flake8 on stdin.
type Flake8 struct {
	Command []string
	Timeout time.Duration
	Runner  *procexec.Runner
}

// DefaultCommand runs flake8 as a module of the Python on PATH.
func DefaultCommand() []string {
	return []string{"python", "-m", "flake8"}
}

// NewFlake8 creates a Flake8 checker. A nil command means DefaultCommand.
func NewFlake8(command []string, timeout time.Duration, runner *procexec.Runner) *Flake8 {
	if len(command) == 0 {
		command = DefaultCommand()
	}
	if runner == nil {
		runner = procexec.NewRunner()
	}
	return &Flake8{Command: command, Timeout: timeout, Runner: runner}
}

// Check runs flake8 restricted to codes. With --exit-zero any nonzero
// status means flake8 itself did not run.
func (f *Flake8) Check(ctx context.Context, generated string, codes []string) ([]rules.Violation, error) {
	argv := append([]string{}, f.Command...)
	argv = append(argv, "--exit-zero", "--format="+outputFormat)
	if len(codes) > 0 {
		argv = append(argv, "--select="+strings.Join(codes, ","))
	}
	argv = append(argv, "-")

	res, err := f.Runner.Run(ctx, procexec.Request{
		Command: argv,
		Stdin:   generated,
		Timeout: f.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}
	return ParseOutput(res.Stdout)
}

// ParseOutput reads "row<TAB>code<TAB>text" lines.
func ParseOutput(out string) ([]rules.Violation, error) {
	var violations []rules.Violation
	for i, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("checker output line %d: malformed %q", i+1, line)
		}
		row, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("checker output line %d: row: %w", i+1, err)
		}
		violations = append(violations, rules.NewViolation("", row, parts[1], parts[2]))
	}
	return violations, nil
}
