package procexec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fakeToolBin string

func TestMain(m *testing.M) {
	bin, err := buildFakeTool()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fakeToolBin = bin
	code := m.Run()
	_ = os.RemoveAll(filepath.Dir(bin))
	os.Exit(code)
}

func buildFakeTool() (string, error) {
	tmp, err := os.MkdirTemp("", "cheetah-lint-faketool-*")
	if err != nil {
		return "", fmt.Errorf("mkdtemp: %w", err)
	}
	binName := "faketool"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	out := filepath.Join(tmp, binName)

	cmd := exec.Command("go", "build", "-trimpath", "-o", out, "./testdata/faketool")
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stdout
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("build fake tool: %w", err)
	}
	return out, nil
}

func TestRunner_Echo(t *testing.T) {
	t.Parallel()
	r := NewRunner(WithTerminateGrace(50 * time.Millisecond))

	res, err := r.Run(context.Background(), Request{
		Command: []string{fakeToolBin, "-mode=echo"},
		Stdin:   "import foo\n",
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "import foo\n", res.Stdout)
	assert.Equal(t, 0, res.ExitCode)
	assert.Positive(t, res.Duration)
}

func TestRunner_AcceptedExitCode(t *testing.T) {
	t.Parallel()
	r := NewRunner()

	res, err := r.Run(context.Background(), Request{
		Command:     []string{fakeToolBin, "-mode=exit", "-code=1"},
		Timeout:     5 * time.Second,
		OKExitCodes: []int{0, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stderr, "END_STDERR")
}

func TestRunner_UnexpectedExitIncludesStderrTail(t *testing.T) {
	t.Parallel()
	r := NewRunner(WithStderrTailBytes(128))

	_, err := r.Run(context.Background(), Request{
		Command: []string{fakeToolBin, "-mode=exit", "-code=42", "-stderr-bytes=8192"},
		Timeout: 5 * time.Second,
	})
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.ErrorIs(t, err, ErrUnexpectedExit)
	require.NotNil(t, perr.ExitCode)
	assert.Equal(t, 42, *perr.ExitCode)

	msg := err.Error()
	assert.Contains(t, msg, "END_STDERR")
	assert.NotContains(t, msg, "BEGIN_STDERR")
	assert.Contains(t, msg, "(exit=42)")
}

func TestRunner_Timeout(t *testing.T) {
	t.Parallel()
	r := NewRunner(WithTerminateGrace(50 * time.Millisecond))

	start := time.Now()
	_, err := r.Run(context.Background(), Request{
		Command: []string{fakeToolBin, "-mode=hang"},
		Timeout: 200 * time.Millisecond,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestRunner_OutputLimit(t *testing.T) {
	t.Parallel()
	r := NewRunner(WithMaxOutputBytes(1024))

	_, err := r.Run(context.Background(), Request{
		Command: []string{fakeToolBin, "-mode=flood", "-bytes=1048576"},
		Timeout: 5 * time.Second,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutputLimitExceeded)
}

func TestRunner_MissingExecutable(t *testing.T) {
	t.Parallel()
	r := NewRunner()

	_, err := r.Run(context.Background(), Request{
		Command: []string{filepath.Join(t.TempDir(), "does-not-exist")},
	})
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "start", perr.Op)
}

func TestRunner_EmptyCommand(t *testing.T) {
	t.Parallel()
	_, err := NewRunner().Run(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestError_Message(t *testing.T) {
	t.Parallel()
	code := 2
	err := &Error{
		Op:       "run",
		Command:  "python -m flake8",
		Err:      errors.New("boom"),
		ExitCode: &code,
		Stderr:   "  Traceback\n",
	}
	assert.Equal(t, "run python -m flake8: boom (exit=2); stderr (tail): Traceback", err.Error())
	assert.True(t, strings.HasPrefix((&Error{}).Error(), "unknown error"))
}

func TestTailBuffer(t *testing.T) {
	t.Parallel()
	b := newTailBuffer(4)
	_, _ = b.Write([]byte("abcdef"))
	assert.Equal(t, "cdef", b.String())

	none := newTailBuffer(0)
	n, err := none.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Empty(t, none.String())
}
