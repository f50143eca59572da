package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dangerclosesec/polar/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicy(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	path := writePolicy(t, dir, "ok.polar", "f(1);\nf(2);\n?= f(x);\n")

	out, err := execute(t, "parse", path, "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully parsed "+path)
	assert.Contains(t, out, "  query: 1\n  rule: 2\n")

	out, err = execute(t, "parse", path, "--json")
	require.NoError(t, err)
	var reports []report.LineReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 3)
	assert.Equal(t, "f/1", reports[0].Name)

	bad := writePolicy(t, dir, "bad.polar", "f(x) if x")
	_, err = execute(t, "parse", bad, "--json=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected end of input")
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := writePolicy(t, dir, "good.polar", "allow(_actor, _action);")
	bad := writePolicy(t, dir, "bad.polar", "allow(;")

	out, err := execute(t, "check", good, "--watch=false")
	require.NoError(t, err)
	assert.Contains(t, out, "ok   "+good+" (1 lines)")

	out, err = execute(t, "check", good, bad, "--watch=false")
	require.Error(t, err)
	assert.Equal(t, "1 of 2 files failed", err.Error())
	assert.Contains(t, out, "FAIL "+bad)
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	oldPath := writePolicy(t, dir, "old.polar", "f(1);\ng();")
	newPath := writePolicy(t, dir, "new.polar", "f(1);\nh();")

	out, err := execute(t, "diff", oldPath, newPath)
	require.NoError(t, err)
	assert.Equal(t, "Policy Changes:\n\nRules:\n  + h/0\n  - g/0\n\n", out)

	out, err = execute(t, "diff", oldPath, oldPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No changes detected.")
}
