package flake

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/cheetah-lint/internal/checker"
	"github.com/wharflab/cheetah-lint/internal/compiler"
	"github.com/wharflab/cheetah-lint/internal/config"
	"github.com/wharflab/cheetah-lint/internal/procexec"
	"github.com/wharflab/cheetah-lint/internal/rules"
	"github.com/wharflab/cheetah-lint/internal/testutil"
)

func TestMain(m *testing.M) {
	testutil.RunFakeTool()
	os.Exit(m.Run())
}

// compiledImportFoo is what the compiler emits for "#import foo\n".
const compiledImportFoo = "from Cheetah.NameMapper import value_from_namespace as VFNS\n" +
	"import foo\n" +
	"\n" +
	"class page(Template):\n" +
	"    def respond(self, trans=None):\n" +
	"        _dummyTrans = True\n"

type finding struct {
	Line    int
	Code    string
	Message string
}

func summarize(vs []rules.Violation) []finding {
	out := make([]finding, 0, len(vs))
	for _, v := range vs {
		out = append(out, finding{v.Line, v.Code, v.Message})
	}
	return out
}

func TestFindings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		source    string
		generated string
		checker   []rules.Violation
		want      []finding
	}{
		{
			name: "empty file",
			want: []finding{{1, "T005", "File is empty"}},
		},
		{
			name:      "unused import",
			source:    "#import foo\n",
			generated: compiledImportFoo,
			checker: []rules.Violation{
				rules.NewViolation("", 1, "F401", "'Cheetah.NameMapper.value_from_namespace as VFNS' imported but unused"),
				rules.NewViolation("", 2, "F401", "'foo' imported but unused"),
				rules.NewViolation("", 6, "F841", "local variable '_dummyTrans' is assigned to but never used"),
			},
			want: []finding{{1, "F401", "'foo' imported but unused"}},
		},
		{
			name:      "extends only",
			source:    "#extends templates.base\n",
			generated: "from templates.base import base\n",
		},
		{
			name:      "implements respond without extends",
			source:    "#implements respond\n",
			generated: "class page(Template):\n",
			want:      []finding{{1, "T001", "'#implements respond' is assumed without '#extends'"}},
		},
		{
			name:      "tab indentation",
			source:    "#def foo()\n\tbar\n#end def\n",
			generated: "    def foo(self):\n        write('''\tbar\n''')\n",
			want:      []finding{{2, "T003", "Indentation contains tabs"}},
		},
		{
			name:      "unicode literal mapped by provenance",
			source:    "#import foo\n\n$foo(u'hi')\n",
			generated: "import foo\n        _v = VFFSL(SL, 'foo', True)(u'hi') # u'$foo(u\\'hi\\')' on line 3, col 1\n",
			want: []finding{
				{3, "P001", "unicode literal prefix is unnecessary (assumed) in cheetah templates: u'hi'"},
			},
		},
		{
			name:      "unselected codes are not reported",
			source:    "$name\n",
			generated: "write(name)\n",
			checker:   []rules.Violation{rules.NewViolation("", 1, "F821", "undefined name 'name'")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := New(compiler.Static{Output: tt.generated}, checker.Static{Violations: tt.checker}, nil)
			got, err := l.Findings(context.Background(), "page.tmpl", tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.want, summarizeOrNil(got))
			for _, v := range got {
				assert.Equal(t, "page.tmpl", v.File)
			}
		})
	}
}

func summarizeOrNil(vs []rules.Violation) []finding {
	if len(vs) == 0 {
		return nil
	}
	return summarize(vs)
}

func TestFindings_ReferenceMessage(t *testing.T) {
	t.Parallel()

	source := "#import foo\n#for foo in $bar\n$foo\n#end for\n"
	generated := "import foo\n" +
		"class page(Template):\n" +
		"    def respond(self):\n" +
		"        for foo in VFFSL(SL,\"bar\",True): # generated from line 2, col 1\n"
	l := New(compiler.Static{Output: generated}, checker.Static{Violations: []rules.Violation{
		rules.NewViolation("", 4, "F402", "import 'foo' from line 1 shadowed by loop variable"),
	}}, nil)

	got, err := l.Findings(context.Background(), "loop.tmpl", source)
	require.NoError(t, err)
	assert.Equal(t, []finding{{2, "F402", "import 'foo' from line 1 shadowed by loop variable"}}, summarize(got))
}

func TestFindings_CompileError(t *testing.T) {
	t.Parallel()

	l := New(
		compiler.Static{Err: &compiler.CompileError{Line: 2, Message: "unclosed directive"}},
		checker.Static{Err: errors.New("checker must not run")},
		nil,
	)
	// The tab on line 2 would be T003, but nothing else runs once the
	// template fails to compile.
	got, err := l.Findings(context.Background(), "broken.tmpl", "#if $x\n\tfoo\n")
	require.NoError(t, err)
	assert.Equal(t, []finding{{2, "E999", "SyntaxError: unclosed directive"}}, summarize(got))
	assert.Equal(t, rules.SeverityError, got[0].Severity)
	assert.Equal(t, "broken.tmpl", got[0].File)
}

func TestFindings_Deterministic(t *testing.T) {
	t.Parallel()

	source := "#import foo\n#import bar\n\t$foo\n   $bar\n"
	generated := "import foo # generated from line 1, col 1\n" +
		"import bar # generated from line 2, col 1\n"
	l := New(compiler.Static{Output: generated}, checker.Static{Violations: []rules.Violation{
		rules.NewViolation("", 2, "F401", "'bar' imported but unused"),
		rules.NewViolation("", 1, "F401", "'foo' imported but unused"),
	}}, nil)

	first, err := l.Findings(context.Background(), "page.tmpl", source)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	for range 5 {
		again, err := l.Findings(context.Background(), "page.tmpl", source)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.IsNonDecreasing(t, lines(first))
}

func lines(vs []rules.Violation) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = v.Line
	}
	return out
}

func TestFindings_ToolFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	l := New(compiler.Static{Err: boom}, checker.Static{}, nil)
	_, err := l.Findings(context.Background(), "a.tmpl", "x\n")
	require.ErrorIs(t, err, boom)

	l = New(compiler.Static{Output: "x\n"}, checker.Static{Err: boom}, nil)
	_, err = l.Findings(context.Background(), "a.tmpl", "x\n")
	require.ErrorIs(t, err, boom)
}

func TestFindings_ExternalToolFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		compiler []string
		checker  []string
	}{
		{
			name:     "checker not installed",
			compiler: testutil.FakeToolCommand(testutil.FakeEcho),
			checker:  testutil.FakeToolCommand(testutil.FakeMissingModule),
		},
		{
			name:     "compiler cannot import Cheetah",
			compiler: testutil.FakeToolCommand(testutil.FakeMissingModule),
			checker:  testutil.FakeToolCommand(testutil.FakeFindings),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := New(
				compiler.NewExec(tt.compiler, 10*time.Second, nil),
				checker.NewFlake8(tt.checker, 10*time.Second, nil),
				nil,
			)
			got, err := l.Findings(context.Background(), "a.tmpl", "#import foo\n")
			require.Error(t, err)
			assert.Nil(t, got)

			var pe *procexec.Error
			require.ErrorAs(t, err, &pe)
			assert.Contains(t, pe.Stderr, "No module named")
		})
	}
}

func TestFindings_ExternalTools(t *testing.T) {
	t.Parallel()

	l := New(
		compiler.NewExec(testutil.FakeToolCommand(testutil.FakeEcho), 10*time.Second, nil),
		checker.NewFlake8(testutil.FakeToolCommand(testutil.FakeFindings), 10*time.Second, nil),
		nil,
	)
	// The echo compiler returns the template unchanged, so the provenance
	// comment maps the checker's line 1 straight back.
	got, err := l.Findings(context.Background(), "a.tmpl", "import foo # generated from line 1, col 1\n")
	require.NoError(t, err)
	assert.Equal(t, []finding{{1, "F401", "'foo' imported but unused"}}, summarize(got))

	l.Compiler = compiler.NewExec(testutil.FakeToolCommand(testutil.FakeCompileError), 10*time.Second, nil)
	got, err = l.Findings(context.Background(), "a.tmpl", "#if\n$x\n")
	require.NoError(t, err)
	assert.Equal(t, []finding{{2, "E999", "SyntaxError: Invalid directive"}}, summarize(got))
}

func TestFindings_ConfiguredBenign(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Flake.Benign.UnusedImports = nil

	l := New(compiler.Static{Output: compiledImportFoo}, checker.Static{Violations: []rules.Violation{
		rules.NewViolation("", 1, "F401", "'Cheetah.NameMapper.value_from_namespace as VFNS' imported but unused"),
	}}, cfg)
	got, err := l.Findings(context.Background(), "page.tmpl", "#import foo\n")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Line)
}

func TestFilterBenign(t *testing.T) {
	t.Parallel()

	in := []rules.Violation{
		rules.NewViolation("", 1, "F841", "local variable 'NS' is assigned to but never used"),
		rules.NewViolation("", 2, "F841", "local variable 'x' is assigned to but never used"),
		rules.NewViolation("", 3, "F401", "'VFFSL' imported but unused"),
		rules.NewViolation("", 4, "F811", "local variable 'NS' is assigned to but never used"),
		rules.NewViolation("", 5, "F401", "'Cheetah.NameMapper.value_from_namespace as VFNS' imported but unused"),
	}
	got := FilterBenign(in, config.Default().Flake.Benign)
	assert.Equal(t, []finding{
		{2, "F841", "local variable 'x' is assigned to but never used"},
		{3, "F401", "'VFFSL' imported but unused"},
		{4, "F811", "local variable 'NS' is assigned to but never used"},
	}, summarize(got))
	assert.Len(t, in, 5)
}
