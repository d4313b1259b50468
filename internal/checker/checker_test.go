package checker

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/cheetah-lint/internal/procexec"
	"github.com/wharflab/cheetah-lint/internal/rules"
	"github.com/wharflab/cheetah-lint/internal/testutil"
)

func TestMain(m *testing.M) {
	testutil.RunFakeTool()
	os.Exit(m.Run())
}

func TestParseOutput(t *testing.T) {
	t.Parallel()
	out := "1\tF401\t'foo' imported but unused\n" +
		"12\tF811\tredefinition of unused 'foo' from line 1\n" +
		"\n"

	got, err := ParseOutput(out)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, "F401", got[0].Code)
	assert.Equal(t, "'foo' imported but unused", got[0].Message)
	assert.Equal(t, rules.SeverityError, got[0].Severity)
	assert.Empty(t, got[0].File)

	assert.Equal(t, 12, got[1].Line)
	assert.Equal(t, "redefinition of unused 'foo' from line 1", got[1].Message)
}

func TestParseOutput_TabInMessage(t *testing.T) {
	t.Parallel()
	got, err := ParseOutput("3\tW605\tinvalid escape sequence '\\\t'\r\n")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "invalid escape sequence '\\\t'", got[0].Message)
}

func TestParseOutput_Malformed(t *testing.T) {
	t.Parallel()
	_, err := ParseOutput("stdin:1:1: F401 'foo' imported but unused\n")
	require.Error(t, err)

	_, err = ParseOutput("x\tF401\tmsg\n")
	require.Error(t, err)
}

func TestParseOutput_Empty(t *testing.T) {
	t.Parallel()
	got, err := ParseOutput("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStatic_FiltersBySelection(t *testing.T) {
	t.Parallel()
	s := Static{Violations: []rules.Violation{
		rules.NewViolation("", 1, "F401", "a"),
		rules.NewViolation("", 2, "E501", "b"),
	}}

	got, err := s.Check(context.Background(), "", DefaultSelect)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "F401", got[0].Code)
}

func TestNewFlake8_Defaults(t *testing.T) {
	t.Parallel()
	f := NewFlake8(nil, 0, nil)
	assert.Equal(t, []string{"python", "-m", "flake8"}, f.Command)
	assert.NotNil(t, f.Runner)
}

func TestFlake8_Findings(t *testing.T) {
	t.Parallel()
	f := NewFlake8(testutil.FakeToolCommand(testutil.FakeFindings), 10*time.Second, nil)

	got, err := f.Check(context.Background(), "import foo\n", DefaultSelect)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "F401", got[0].Code)
	assert.Equal(t, 1, got[0].Line)
}

func TestFlake8_MissingCheckerFails(t *testing.T) {
	t.Parallel()
	f := NewFlake8(testutil.FakeToolCommand(testutil.FakeMissingModule), 10*time.Second, nil)

	got, err := f.Check(context.Background(), "import foo\n", DefaultSelect)
	require.Error(t, err)
	assert.Nil(t, got)

	var pe *procexec.Error
	require.ErrorAs(t, err, &pe)
	require.ErrorIs(t, err, procexec.ErrUnexpectedExit)
	assert.Contains(t, pe.Stderr, "No module named")
}
