package testutil

import (
	"fmt"
	"io"
	"os"
)

const fakeToolArg = "cheetah-lint-fake-tool"

// Fake tool modes. Trailing arguments (flake8 flags, "-") are ignored.
const (
	// FakeEcho copies stdin to stdout.
	FakeEcho = "echo"
	// FakeMissingModule mimics "python -m <absent module>": a message on
	// stderr and exit 1.
	FakeMissingModule = "missing-module"
	// FakeCompileError writes a JSON compile report and exits 1.
	FakeCompileError = "compile-error"
	// FakeFindings drains stdin, writes one F401 finding for line 1 and
	// exits 0.
	FakeFindings = "findings"
)

// FakeToolCommand returns an argv that re-executes the running test binary
// as a fake external tool. The package's TestMain must call RunFakeTool.
func FakeToolCommand(mode string) []string {
	return []string{os.Args[0], fakeToolArg, mode}
}

// RunFakeTool exits the process after acting as a fake tool when the test
// binary was started by FakeToolCommand. Otherwise it returns.
func RunFakeTool() {
	if len(os.Args) < 3 || os.Args[1] != fakeToolArg {
		return
	}
	os.Exit(fakeTool(os.Args[2]))
}

func fakeTool(mode string) int {
	switch mode {
	case FakeEcho:
		if _, err := io.Copy(os.Stdout, os.Stdin); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		return 0
	case FakeMissingModule:
		fmt.Fprintln(os.Stderr, "/usr/bin/python3: No module named flake8_not_installed")
		return 1
	case FakeCompileError:
		fmt.Fprint(os.Stdout, `{"line": 2, "message": "Invalid directive"}`)
		return 1
	case FakeFindings:
		if _, err := io.Copy(io.Discard, os.Stdin); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		fmt.Fprint(os.Stdout, "1\tF401\t'foo' imported but unused\n")
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", mode)
		return 2
	}
}
