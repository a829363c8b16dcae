// Package graph exports the stopwatch chart for inspection: Graphviz DOT
// for rendering, JSON and YAML for tooling.
package graph

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/comalice/stopwatch"
)

// Chart is the serializable description of a machine.
type Chart struct {
	Initial string  `json:"initial" yaml:"initial"`
	Current string  `json:"current" yaml:"current"`
	States  []State `json:"states" yaml:"states"`
}

type State struct {
	Name        string       `json:"name" yaml:"name"`
	Transitions []Transition `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

type Transition struct {
	Event    string `json:"event" yaml:"event"`
	Name     string `json:"name" yaml:"name"`
	Target   string `json:"target,omitempty" yaml:"target,omitempty"`
	Internal bool   `json:"internal,omitempty" yaml:"internal,omitempty"`
}

// Describe builds a Chart from m.
func Describe(m *stopwatch.Machine) Chart {
	c := Chart{
		Initial: stateName(m.Initial()),
		Current: stateName(m.Current()),
	}
	for _, s := range m.States() {
		st := State{Name: stateName(s)}
		for _, t := range s.Transitions {
			if t == nil {
				continue
			}
			tr := Transition{
				Event:    stopwatch.EventName(t.Event),
				Name:     t.Name,
				Internal: t.Internal(),
			}
			if !t.Internal() {
				tr.Target = stateName(t.Target)
			}
			st.Transitions = append(st.Transitions, tr)
		}
		c.States = append(c.States, st)
	}
	return c
}

func stateName(s *stopwatch.State) string {
	if s == nil {
		return ""
	}
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("state%d", s.ID)
}

// ExportDOT renders m as a Graphviz digraph. The active state is filled,
// internal transitions are dashed self loops.
func ExportDOT(m *stopwatch.Machine) string {
	c := Describe(m)

	var buf bytes.Buffer
	buf.WriteString("digraph Stopwatch {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")
	buf.WriteString("  edge [fontsize=9];\n")
	buf.WriteString("  __start [shape=point];\n")
	fmt.Fprintf(&buf, "  __start -> %q;\n", c.Initial)

	for _, s := range c.States {
		style := ""
		if s.Name == c.Current {
			style = ", style=\"rounded,filled\", fillcolor=lightgreen"
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", s.Name, s.Name, style)
	}

	for _, s := range c.States {
		for _, t := range s.Transitions {
			if t.Internal {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q, style=dashed];\n", s.Name, s.Name, t.Event)
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", s.Name, t.Target, t.Event)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the chart description as indented JSON.
func ExportJSON(m *stopwatch.Machine) ([]byte, error) {
	data, err := json.MarshalIndent(Describe(m), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "json marshal")
	}
	return data, nil
}

// ExportYAML serializes the chart description as YAML.
func ExportYAML(m *stopwatch.Machine) ([]byte, error) {
	data, err := yaml.Marshal(Describe(m))
	if err != nil {
		return nil, errors.Wrap(err, "yaml marshal")
	}
	return data, nil
}
