package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReportsDocumentRoots(t *testing.T) {
	path := writeInput(t, "a: 1\n---\n[x, y]\n")
	out, err := runCmd(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 document(s)")
	assert.Contains(t, out, "mapping, tag=tag:yaml.org,2002:map")
	assert.Contains(t, out, "sequence, tag=tag:yaml.org,2002:seq")
}

func TestTreeFlagPrintsScalars(t *testing.T) {
	path := writeInput(t, "a: &x 1\nb: *x\n")
	out, err := runCmd(t, "--tree", path)
	require.NoError(t, err)
	assert.Contains(t, out, `scalar(tag:yaml.org,2002:int) = "1"`)
	assert.Contains(t, out, "already printed")
}

func TestStrictFlagFailsOnWarnings(t *testing.T) {
	path := writeInput(t, "%FOO x\n---\na\n")

	out, err := runCmd(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "warning:")

	_, err = runCmd(t, "--strict", path)
	require.Error(t, err)
}

func TestParseErrorPropagates(t *testing.T) {
	path := writeInput(t, "a: 'unterminated\n")
	_, err := runCmd(t, path)
	require.Error(t, err)
}
