package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/stopwatch/internal/shell"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := BuildRootCommand(strings.NewReader(stdin), &out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func logArgs(t *testing.T) []string {
	return []string{"--log-output", filepath.Join(t.TempDir(), "stopwatch.log")}
}

func TestSessionQuit(t *testing.T) {
	out, err := run(t, "x\nr\nq\n", logArgs(t)...)
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, shell.PromptText))
	assert.Contains(t, out, shell.InvalidInput)
	assert.Contains(t, out, "Stopwatch Reset!")
}

func TestSessionStartStop(t *testing.T) {
	args := append(logArgs(t), "--tick", "1ms")
	out, err := run(t, "s\nt\nq\n", args...)
	require.NoError(t, err)

	assert.Contains(t, out, "Stopwatch Started!")
	assert.Contains(t, out, "\rTime Elapsed: 00:00:01")
}

func TestSessionEndOfInput(t *testing.T) {
	out, err := run(t, "", logArgs(t)...)
	require.NoError(t, err)
	assert.Contains(t, out, shell.PromptText)
}

func TestSessionBadConfig(t *testing.T) {
	_, err := run(t, "", "--tick", "-1s")
	assert.Error(t, err)
}

func TestGraphFormats(t *testing.T) {
	out, err := run(t, "", "graph")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph Stopwatch {"))

	out, err = run(t, "", "graph", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"initial": "stopped"`)

	out, err = run(t, "", "graph", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "initial: stopped")

	_, err = run(t, "", "graph", "-f", "svg")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "stopwatch dev\n", out)
}
