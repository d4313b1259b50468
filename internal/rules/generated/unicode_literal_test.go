package generated

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wharflab/cheetah-lint/internal/rules"
	"github.com/wharflab/cheetah-lint/internal/testutil"
)

func TestUnicodeLiteralRegistered(t *testing.T) {
	t.Parallel()
	rule := rules.DefaultRegistry().Get(UnicodeLiteralCode)
	if assert.NotNil(t, rule) {
		assert.Equal(t, rules.TargetGenerated, rule.Metadata().Target)
	}
}

func TestUnicodeLiteralCheck(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewUnicodeLiteralRule(), []testutil.RuleTestCase{
		{
			Name:           "plain strings",
			Content:        "x = 'foo'\ny = \"bar\"\n",
			WantViolations: 0,
		},
		{
			Name:      "u prefix",
			Content:   "x = 1\nwrite(u'foo')\n",
			WantCodes: []string{UnicodeLiteralCode},
			WantLines: []int{2},
			WantMessages: []string{
				"unicode literal prefix is unnecessary (assumed) in cheetah templates: u'foo'",
			},
			WantViolations: 1,
		},
		{
			Name:           "upper U with raw",
			Content:        "x = Ur\"\\d\"\n",
			WantMessages:   []string{`: Ur"\d"`},
			WantViolations: 1,
		},
		{
			Name:           "identifier ending in u is not a prefix",
			Content:        "menu('x')\n",
			WantViolations: 0,
		},
		{
			Name:           "comment is skipped",
			Content:        "# u'foo'\nx = 1 # u\"bar\"\n",
			WantViolations: 0,
		},
		{
			Name:           "u inside another string",
			Content:        "x = \"u'foo'\"\n",
			WantViolations: 0,
		},
		{
			Name:           "triple quoted keeps line counting",
			Content:        "x = '''a\nb\nc'''\ny = u'z'\n",
			WantLines:      []int{4},
			WantViolations: 1,
		},
		{
			Name:           "bytes prefix ignored",
			Content:        "x = b'foo'\n",
			WantViolations: 0,
		},
	})
}

func TestScanStrings(t *testing.T) {
	t.Parallel()
	tokens := ScanStrings("a = 'x\\'y'\nb = u\"\"\"q\n\"\"\"\n")
	assert.Equal(t, []StringToken{
		{Line: 1, Text: `'x\'y'`},
		{Line: 2, Text: "u\"\"\"q\n\"\"\""},
	}, tokens)
}
