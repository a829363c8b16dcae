package graph

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/comalice/stopwatch"
)

func TestDescribe(t *testing.T) {
	sw := stopwatch.New()
	c := Describe(sw.Chart())

	assert.Equal(t, "stopped", c.Initial)
	assert.Equal(t, "stopped", c.Current)
	require.Len(t, c.States, 2)

	stopped := c.States[0]
	assert.Equal(t, "stopped", stopped.Name)
	assert.Equal(t, []Transition{
		{Event: "START", Name: "start", Target: "running"},
		{Event: "RESET", Name: "reset", Internal: true},
	}, stopped.Transitions)

	sw.Start()
	assert.Equal(t, "running", Describe(sw.Chart()).Current)
}

func TestDescribeUnnamedState(t *testing.T) {
	m, err := stopwatch.NewMachine(&stopwatch.State{ID: 7})
	require.NoError(t, err)
	assert.Equal(t, "state7", Describe(m).Initial)
}

func TestExportDOT(t *testing.T) {
	sw := stopwatch.New()
	sw.Start()
	dot := ExportDOT(sw.Chart())

	if !strings.HasPrefix(dot, "digraph Stopwatch {\n") {
		t.Error("Missing DOT header")
	}
	if !strings.Contains(dot, `"stopped" -> "running" [label="START"];`) {
		t.Error("Missing start edge")
	}
	if !strings.Contains(dot, `"running" -> "stopped" [label="STOP"];`) {
		t.Error("Missing stop edge")
	}
	if !strings.Contains(dot, `"running" -> "running" [label="TICK", style=dashed];`) {
		t.Error("Missing internal tick loop")
	}
	if !strings.Contains(dot, `"running" [label="running", style="rounded,filled", fillcolor=lightgreen];`) {
		t.Error("Missing active state highlight")
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("Missing closing brace")
	}
}

func TestExportJSON(t *testing.T) {
	data, err := ExportJSON(stopwatch.New().Chart())
	require.NoError(t, err)

	var c Chart
	require.NoError(t, json.Unmarshal(data, &c))
	assert.Equal(t, Describe(stopwatch.New().Chart()), c)
}

func TestExportYAML(t *testing.T) {
	data, err := ExportYAML(stopwatch.New().Chart())
	require.NoError(t, err)
	assert.Contains(t, string(data), "initial: stopped")

	var c Chart
	require.NoError(t, yaml.Unmarshal(data, &c))
	assert.Len(t, c.States, 2)
}
