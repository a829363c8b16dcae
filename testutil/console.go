package testutil

import (
	"context"
	"io"
)

// ScriptedLines replays fixed input lines, then reports io.EOF.
type ScriptedLines struct {
	lines []string
	next  int
}

func NewScriptedLines(lines ...string) *ScriptedLines {
	return &ScriptedLines{lines: lines}
}

func (s *ScriptedLines) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}

// Remaining returns the number of lines not yet read.
func (s *ScriptedLines) Remaining() int {
	return len(s.lines) - s.next
}

// ScriptedKeys answers successive polls from a fixed script. A zero rune
// means no key was pending for that poll. Once exhausted every poll is
// empty.
type ScriptedKeys struct {
	keys  []rune
	polls int
}

func NewScriptedKeys(keys ...rune) *ScriptedKeys {
	return &ScriptedKeys{keys: keys}
}

func (s *ScriptedKeys) Poll() (rune, bool) {
	i := s.polls
	s.polls++
	if i >= len(s.keys) || s.keys[i] == 0 {
		return 0, false
	}
	return s.keys[i], true
}

// Polls returns how many times Poll was called.
func (s *ScriptedKeys) Polls() int {
	return s.polls
}
