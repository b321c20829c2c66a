package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var ciEnv = []string{
	"INPUT_TOKEN",
	"GITHUB_TOKEN",
	"GITHUB_API_URL",
	"GITHUB_REPOSITORY",
	"GITHUB_EVENT_PATH",
	"GITHUB_STEP_SUMMARY",
	"GITHUB_REF",
	"GITHUB_ACTIONS",
}

// isolate clears the CI environment and returns a --config flag pointing at
// a policy file that does not exist.
func isolate(t *testing.T) []string {
	t.Helper()
	for _, k := range ciEnv {
		t.Setenv(k, "")
	}
	return []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
