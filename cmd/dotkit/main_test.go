package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/dotkit/pkg/dotenv"
	"github.com/jaspreet-dot-casa/dotkit/pkg/envfile"
)

// workspace creates an isolated project directory and makes it the working directory.
func workspace(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Setenv("PWD", dir)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd := newRootCmd()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))

	err := rootCmd.Execute()
	return buf.String(), err
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestNewRootCmd(t *testing.T) {
	rootCmd := newRootCmd()

	assert.Equal(t, "dotkit", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
}

func TestRootCmdHelp(t *testing.T) {
	output, err := execute(t, "--help")
	require.NoError(t, err)

	for _, sub := range []string{"sync", "secret", "setup", "check", "init"} {
		assert.Contains(t, output, sub)
	}
}

func TestRootCmdVersion(t *testing.T) {
	output, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, output, "dotkit version")
}

func TestSyncCreatesTarget(t *testing.T) {
	dir := workspace(t, map[string]string{
		".env.example": "# Database\nDB_URL=postgres://localhost\nDEBUG=true\n",
	})

	output, err := execute(t, "sync")
	require.NoError(t, err)

	assert.Equal(t, "Created .env from .env.example\n", output)
	assert.Equal(t, "# Database\nDB_URL=postgres://localhost\nDEBUG=true\n", readFile(t, dir, ".env"))
}

func TestSyncAppendsMissing(t *testing.T) {
	dir := workspace(t, map[string]string{
		".env.example": "DB_URL=postgres://localhost\nDEBUG=true\nPORT=3000\n",
		".env":         "PORT=8080\n",
	})

	output, err := execute(t, "sync")
	require.NoError(t, err)

	assert.Equal(t, "Appended 2 variable(s) to .env\n", output)
	assert.Equal(t, "PORT=8080\n\nDB_URL=\"postgres://localhost\"\nDEBUG=\"true\"\n", readFile(t, dir, ".env"))

	output, err = execute(t, "sync")
	require.NoError(t, err)
	assert.Equal(t, "All variables already present - nothing to do.\n", output)
}

func TestSyncDryRun(t *testing.T) {
	dir := workspace(t, map[string]string{
		".env.example": "A=1\nB=2\n",
		".env":         "A=1\n",
	})

	output, err := execute(t, "sync", "--dry-run")
	require.NoError(t, err)

	assert.Equal(t, "[DRY RUN] Would append 1 variable(s) to .env:\n  B=\"2\"\n", output)
	assert.Equal(t, "A=1\n", readFile(t, dir, ".env"))
}

func TestSyncCustomPathsAndOnly(t *testing.T) {
	dir := workspace(t, map[string]string{
		"template.env": "A=1\nB=2\nC=3\n",
	})

	output, err := execute(t, "sync", "-s", "template.env", "-t", "local.env", "--only", "C,A")
	require.NoError(t, err)

	assert.Equal(t, "Created local.env from template.env\n", output)
	assert.Equal(t, "C=\"3\"\nA=\"1\"\n", readFile(t, dir, "local.env"))
}

func TestSyncEmptyValueFlags(t *testing.T) {
	dir := workspace(t, map[string]string{
		".env.example": "A=1\nB=\n",
		".env":         "A=\n",
	})

	output, err := execute(t, "sync", "--no-overwrite-empty-values", "--skip-empty-source-values")
	require.NoError(t, err)

	assert.Equal(t, "All variables already present - nothing to do.\n", output)
	assert.Equal(t, "A=\n", readFile(t, dir, ".env"))
}

func TestSyncMissingTemplate(t *testing.T) {
	workspace(t, nil)

	_, err := execute(t, "sync")
	require.Error(t, err)
	assert.ErrorIs(t, err, dotenv.ErrMissingTemplate)
}

func TestSyncEmptyOnlyIsInvalid(t *testing.T) {
	workspace(t, map[string]string{".env.example": "A=1\n"})

	_, err := execute(t, "sync", "--only", "")
	assert.ErrorIs(t, err, dotenv.ErrInvalidConfig)
}

func TestSyncJSON(t *testing.T) {
	workspace(t, map[string]string{
		".env.example": "A=1\nB=2\n",
		".env":         "A=1\n",
	})

	output, err := execute(t, "sync", "--json", "--dry-run")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, []any{"B"}, got["missingKeys"])
	assert.Equal(t, "append", got["mode"])
	assert.Equal(t, true, got["dryRun"])
}

func TestSyncDiff(t *testing.T) {
	workspace(t, map[string]string{
		".env.example": "A=1\nB=2\n",
		".env":         "A=1\n",
	})

	output, err := execute(t, "sync", "--diff", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, output, "--- .env\n+++ .env (after)\n A=1\n+\n+B=\"2\"\n")
}

var hexValue = regexp.MustCompile(`^[0-9a-f]+$`)

func TestSecretGenerates(t *testing.T) {
	dir := workspace(t, nil)

	output, err := execute(t, "secret", "AUTH_SECRET", "JWT_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "Created .env with generated values for: AUTH_SECRET, JWT_SECRET\n", output)

	values := parseTarget(t, dir)
	require.Len(t, values, 2)
	for _, k := range []string{"AUTH_SECRET", "JWT_SECRET"} {
		assert.Len(t, values[k], 64)
		assert.Regexp(t, hexValue, values[k])
	}
	assert.NotEqual(t, values["AUTH_SECRET"], values["JWT_SECRET"])
}

func TestSecretSkipsExistingAndForces(t *testing.T) {
	dir := workspace(t, map[string]string{".env": "AUTH_SECRET=keep\n"})

	output, err := execute(t, "generate", "AUTH_SECRET", "JWT_SECRET", "-l", "8")
	require.NoError(t, err)
	assert.Equal(t, "Generated values for: JWT_SECRET\nAlready exist (skipped): AUTH_SECRET\n", output)

	values := parseTarget(t, dir)
	assert.Equal(t, "keep", values["AUTH_SECRET"])
	assert.Len(t, values["JWT_SECRET"], 16)

	output, err = execute(t, "secret", "AUTH_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "All variables already exist in .env - nothing to do.\nUse -f or --force to overwrite existing values.\n", output)

	_, err = execute(t, "secret", "AUTH_SECRET", "--force")
	require.NoError(t, err)

	values = parseTarget(t, dir)
	assert.NotEqual(t, "keep", values["AUTH_SECRET"])
	assert.Len(t, values["AUTH_SECRET"], 64)
	assert.Equal(t, 1, countKey(readFile(t, dir, ".env"), "AUTH_SECRET"))
}

func TestSecretInvalidInput(t *testing.T) {
	workspace(t, nil)

	tests := []struct {
		name string
		args []string
	}{
		{"zero length", []string{"secret", "A", "-l", "0"}},
		{"bad name", []string{"secret", "1BAD"}},
		{"bad format", []string{"secret", "A", "--format", "rot13"}},
		{"no variables", []string{"secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.ErrorIs(t, err, dotenv.ErrInvalidConfig)
			assert.NoFileExists(t, ".env")
		})
	}
}

func TestSecretUsesConfigDefaults(t *testing.T) {
	dir := workspace(t, map[string]string{
		".dotkit.yaml": "target: secrets.env\nlength: 4\ngenerate:\n  - TOKEN\n",
	})

	_, err := execute(t, "secret")
	require.NoError(t, err)

	data := readFile(t, dir, "secrets.env")
	assert.Regexp(t, `^TOKEN="[0-9a-f]{8}"\n$`, data)
}

func TestSetupCombinesSyncAndGenerate(t *testing.T) {
	dir := workspace(t, map[string]string{
		".env.example": "DB_URL=postgres://localhost\nAUTH_SECRET=\n",
	})

	output, err := execute(t, "setup", "--generate", "AUTH_SECRET,NEW_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "Created .env from .env.example\n", output)

	values := parseTarget(t, dir)
	assert.Equal(t, "postgres://localhost", values["DB_URL"])
	assert.Len(t, values["AUTH_SECRET"], 64)
	assert.Len(t, values["NEW_SECRET"], 64)
}

func TestCheck(t *testing.T) {
	workspace(t, map[string]string{
		".env.example": "A=1\nB=2\n",
		".env":         "A=\nEXTRA=1\n",
	})

	output, err := execute(t, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed with 1 error(s)")
	assert.Contains(t, output, "[ERROR] .env: B is missing")
	assert.Contains(t, output, "[WARNING] .env: A is empty")
	assert.Contains(t, output, "[WARNING] .env: EXTRA is not defined")

	_, err = execute(t, "sync")
	require.NoError(t, err)

	output, err = execute(t, "check")
	require.NoError(t, err)
	assert.Contains(t, output, "Check passed with 1 warning(s).")
}

func TestInit(t *testing.T) {
	dir := workspace(t, nil)

	output, err := execute(t, "init", "--generate", "AUTH_SECRET")
	require.NoError(t, err)
	assert.Contains(t, output, "Created .dotkit.yaml")
	assert.Contains(t, readFile(t, dir, ".dotkit.yaml"), "AUTH_SECRET")

	_, err = execute(t, "init")
	assert.Error(t, err)

	_, err = execute(t, "init", "--force")
	require.NoError(t, err)
}

func TestInitUser(t *testing.T) {
	dir := workspace(t, nil)

	_, err := execute(t, "init", "--user")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "xdg", "dotkit", "config.yaml"))
}

func parseTarget(t *testing.T, dir string) map[string]string {
	t.Helper()
	f := envfile.ParseString(readFile(t, dir, ".env"))
	values := make(map[string]string, f.Len())
	for _, k := range f.Keys() {
		values[k] = f.Value(k)
	}
	return values
}

func countKey(content, key string) int {
	return len(regexp.MustCompile(`(?m)^`+key+`=`).FindAllString(content, -1))
}
