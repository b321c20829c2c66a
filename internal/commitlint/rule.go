// SPDX-License-Identifier: AGPL-3.0-or-later

package commitlint

import (
	"regexp"
	"strings"
)

// Types lists the accepted conventional-commit type tags.
var Types = []string{
	"build",
	"chore",
	"ci",
	"docs",
	"feat",
	"fix",
	"perf",
	"refactor",
	"revert",
	"style",
	"test",
}

const (
	// RuleConventional is the name of the default rule.
	RuleConventional = "conventional"
	// RuleConventionalFooter is the name of the rule that requires an issue footer.
	RuleConventionalFooter = "conventional-footer"
)

// footerRef matches a single issue reference such as "fixes #42" or "closed #7".
const footerRef = `(?:resolve[ds]? #\d+|fix(?:ed|es)? #\d+|close[ds]? #\d+)`

// Rule is a named commit message pattern.
type Rule struct {
	Name string
	re   *regexp.Regexp
}

// RuleOption configures ConventionalRule.
type RuleOption func(*ruleOptions)

type ruleOptions struct {
	requireFooter bool
}

// WithRequiredFooter makes the issue-reference footer mandatory.
func WithRequiredFooter() RuleOption {
	return func(o *ruleOptions) {
		o.requireFooter = true
	}
}

// ConventionalRule builds the conventional-commit rule:
//
//	type(scope)!: __subject__
//
//	optional body
//
//	fixes #1, closes #2
//
// The scope and "!" are optional. Without WithRequiredFooter a bare header is accepted.
func ConventionalRule(opts ...RuleOption) Rule {
	var o ruleOptions
	for _, opt := range opts {
		opt(&o)
	}

	header := `^(` + strings.Join(Types, "|") + `)(\(\w+\))?(!)?:\s__.*__`
	trailer := `(?: *\n\n)(?:(?s:.+)\n\n)?(?:` + footerRef + `(?:, )?)+$`

	name := RuleConventional
	expr := header + `(?:$|` + trailer + `)`
	if o.requireFooter {
		name = RuleConventionalFooter
		expr = header + trailer
	}

	return Rule{Name: name, re: regexp.MustCompile(expr)}
}

// Match reports whether message satisfies the rule.
func (r Rule) Match(message string) bool {
	if r.re == nil {
		return false
	}
	return r.re.MatchString(message)
}

// Expr returns the underlying regular expression.
func (r Rule) Expr() string {
	if r.re == nil {
		return ""
	}
	return r.re.String()
}
