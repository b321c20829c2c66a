package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/commitgate/cmd/commitgate/internal/clierr"
	"github.com/bartekus/commitgate/internal/commitlint"
)

func TestRule_Text(t *testing.T) {
	out, err := execute(t, "", append([]string{"rule"}, isolate(t)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "rule:        conventional\n")
	assert.Contains(t, out, "max commits: 100\n")
	assert.Contains(t, out, "automation:  GitHub, github-actions\n")
	assert.Contains(t, out, "footer:      false\n")
	assert.Contains(t, out, "expr:        "+commitlint.ConventionalRule().Expr()+"\n")
}

func TestRule_JSONWithPolicyFile(t *testing.T) {
	isolate(t)
	cfgPath := writeTemp(t, ".commitgate.yaml", "require_footer: true\nmax_commits: 20\nautomation_identities: [actions-user]\n")

	out, err := execute(t, "", "rule", "--format", "json", "--config", cfgPath)
	require.NoError(t, err)

	var got ruleOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, commitlint.RuleConventionalFooter, got.Name)
	assert.True(t, got.RequireFooter)
	assert.Equal(t, 20, got.MaxCommits)
	assert.Equal(t, []string{"actions-user"}, got.AutomationIdentities)
	assert.Equal(t, commitlint.Types, got.Types)
}

func TestRule_BadFormat(t *testing.T) {
	_, err := execute(t, "", append([]string{"rule", "--format", "yaml"}, isolate(t)...)...)
	require.Error(t, err)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))
}
