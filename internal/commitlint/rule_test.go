package commitlint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConventionalRule_Match(t *testing.T) {
	rule := ConventionalRule()

	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{name: "scoped with footer", message: "feat(core): __add widget__\n\nfixes #42", want: true},
		{name: "bare header", message: "feat: __oops__", want: true},
		{name: "breaking marker", message: "refactor(api)!: __drop v1__", want: true},
		{name: "breaking without scope", message: "fix!: __patch__", want: true},
		{name: "body and footer", message: "fix: __handle nil__\n\nthe parser crashed on empty input\n\nresolves #7", want: true},
		{name: "multi-line body", message: "docs: __readme__\n\nline one\nline two\n\ncloses #3", want: true},
		{name: "several references", message: "perf: __cache__\n\nfixes #1, closed #2, resolved #3", want: true},
		{name: "every type", message: "revert: __undo__", want: true},
		{name: "no prefix", message: "update stuff", want: false},
		{name: "unknown type", message: "feature: __x__", want: false},
		{name: "missing underscores", message: "feat: add widget", want: false},
		{name: "missing space after colon", message: "feat:__x__", want: false},
		{name: "scope with spaces", message: "feat(my scope): __x__", want: false},
		{name: "footer without blank line", message: "feat: __x__\nfixes #42", want: false},
		{name: "body without footer", message: "feat: __x__\n\nsome explanation", want: false},
		{name: "unknown footer keyword", message: "feat: __x__\n\nrefs #42", want: false},
		{name: "uppercase type", message: "Feat: __x__", want: false},
		{name: "merge is not part of the rule", message: "Merge branch 'main' into topic", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rule.Match(tt.message))
		})
	}
}

func TestConventionalRule_RequiredFooter(t *testing.T) {
	rule := ConventionalRule(WithRequiredFooter())

	assert.Equal(t, RuleConventionalFooter, rule.Name)
	assert.False(t, rule.Match("feat: __oops__"))
	assert.True(t, rule.Match("feat(core): __add widget__\n\nfixes #42"))
	assert.True(t, rule.Match("fix: __x__\n\nbody text\n\nclose #9"))
}

func TestRule_ZeroValue(t *testing.T) {
	var rule Rule
	assert.False(t, rule.Match("feat: __x__"))
	assert.Empty(t, rule.Expr())
}

func TestConventionalRule_Expr(t *testing.T) {
	rule := ConventionalRule()
	assert.Equal(t, RuleConventional, rule.Name)
	assert.Contains(t, rule.Expr(), "refactor")
	assert.Contains(t, rule.Expr(), `fix(?:ed|es)? #\d+`)
}
