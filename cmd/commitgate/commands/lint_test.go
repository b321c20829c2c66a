package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/commitgate/cmd/commitgate/internal/clierr"
)

func TestLint_Argument(t *testing.T) {
	cfg := isolate(t)

	out, err := execute(t, "", append([]string{"lint", "feat(core): __add widget__\n\nfixes #42"}, cfg...)...)
	require.NoError(t, err)
	assert.Equal(t, "VALID: feat(core): __add widget__\n\nfixes #42\n", out)

	out, err = execute(t, "", append([]string{"lint", "update stuff"}, cfg...)...)
	require.Error(t, err)
	assert.Equal(t, clierr.ExitInvalid, clierr.ExitCodeOf(err))
	assert.Equal(t, "INVALID: update stuff\n", out)
}

func TestLint_File(t *testing.T) {
	cfg := isolate(t)
	path := writeTemp(t, "COMMIT_EDITMSG", "fix: __handle nil__  \n\nresolves #7\n# Please enter the commit message for your changes.\n#\n")

	out, err := execute(t, "", append([]string{"lint", "--file", path}, cfg...)...)
	require.NoError(t, err)
	assert.Equal(t, "VALID: fix: __handle nil__\n\nresolves #7\n", out)
}

func TestLint_Stdin(t *testing.T) {
	cfg := isolate(t)

	_, err := execute(t, "docs: __readme__\r\n", append([]string{"lint", "-"}, cfg...)...)
	require.NoError(t, err)
}

func TestLint_RequireFooter(t *testing.T) {
	cfg := isolate(t)

	_, err := execute(t, "", append([]string{"lint", "feat: __oops__"}, cfg...)...)
	require.NoError(t, err)

	_, err = execute(t, "", append([]string{"lint", "--require-footer", "feat: __oops__"}, cfg...)...)
	require.Error(t, err)
	assert.Equal(t, clierr.ExitInvalid, clierr.ExitCodeOf(err))
}

func TestLint_Automation(t *testing.T) {
	cfg := isolate(t)

	_, err := execute(t, "", append([]string{"lint", "--author", "github-actions", "bump deps"}, cfg...)...)
	require.NoError(t, err)
}

func TestLint_Usage(t *testing.T) {
	cfg := isolate(t)

	_, err := execute(t, "", append([]string{"lint"}, cfg...)...)
	require.Error(t, err)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))

	path := writeTemp(t, "msg", "feat: __x__")
	_, err = execute(t, "", append([]string{"lint", "--file", path, "feat: __x__"}, cfg...)...)
	require.Error(t, err)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))
}

func TestCleanMessage(t *testing.T) {
	assert.Equal(t, "feat: __x__\n\nfixes #1", cleanMessage("feat: __x__ \r\n\r\nfixes #1\n\n# comment\n"))
	assert.Equal(t, "", cleanMessage("# only comments\n"))
}

func TestLint_FileWithVerboseDiff(t *testing.T) {
	cfg := isolate(t)
	path := writeTemp(t, "COMMIT_EDITMSG", "feat: __add widget__\n\n"+
		"# Please enter the commit message for your changes.\n"+
		"# ------------------------ >8 ------------------------\n"+
		"# Do not modify or remove the line above.\n"+
		"diff --git a/widget.go b/widget.go\n"+
		"+package widget\n")

	out, err := execute(t, "", append([]string{"lint", "--file", path}, cfg...)...)
	require.NoError(t, err)
	assert.Equal(t, "VALID: feat: __add widget__\n", out)
}
