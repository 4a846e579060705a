package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "--cases", "3", "--parallelism", "2", "--seed", "5", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "cases: 3 passed: 3 failed: 0")
}

func TestFailuresAndReplay(t *testing.T) {
	store := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "modgraph.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
nodes: {min: 3, max: 4}
edge_attempts: {min: 2, max: 6}
mutations: {min: 40, max: 40}
`), 0o600))

	out, err := execute(t, "run", "--config", cfgPath, "--cases", "6", "--seed", "1", "--stale-loader", "--store", store, "--log-level", "error")
	require.ErrorIs(t, err, errCasesFailed)
	assert.Contains(t, out, "MoveAbort(42)")

	out, err = execute(t, "failures", "--store", store, "--log-level", "error")
	require.NoError(t, err)
	assert.NotContains(t, out, "\n0 failure(s)")

	id := regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`).FindString(out)
	require.NotEmpty(t, id)

	// the recorded seed passes against the correct loader
	out, err = execute(t, "replay", id, "--store", store, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "passed")
}

func TestReplayCommand_Errors(t *testing.T) {
	_, err := execute(t, "replay", "not-a-uuid")
	assert.Error(t, err)

	_, err = execute(t, "replay", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "--log-level", "error")
	assert.Error(t, err)
}

func TestShapeCommand(t *testing.T) {
	out, err := execute(t, "shape", "diamond", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "diamond: 4 nodes, 4 edges, 8 transactions")
	assert.Contains(t, out, "passed")

	out, err = execute(t, "shape", "complete", "--nodes", "4", "--multiplicity", "2", "--mutations", "10", "--seed", "3", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "complete: 4 nodes, 12 edges")

	_, err = execute(t, "shape", "torus", "--log-level", "error")
	assert.Error(t, err)
	_, err = execute(t, "shape", "chain", "--multiplicity", "0", "--log-level", "error")
	assert.Error(t, err)
}
