package console

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// RawMode selects when single-key input is enabled.
type RawMode string

const (
	RawAuto RawMode = "auto" // raw when stdin is a terminal
	RawOn   RawMode = "on"
	RawOff  RawMode = "off"
)

// Valid reports whether m is a known mode.
func (m RawMode) Valid() bool {
	switch m {
	case RawAuto, RawOn, RawOff:
		return true
	}
	return false
}

// Terminal switches a file descriptor in and out of raw mode so keys are
// delivered without waiting for Enter.
type Terminal struct {
	fd      int
	enabled bool
	log     *zap.Logger
}

// NewTerminal decides whether fd gets raw mode. RawOn on a non-terminal
// falls back to line mode with a warning.
func NewTerminal(fd int, mode RawMode, log *zap.Logger) *Terminal {
	if log == nil {
		log = zap.NewNop()
	}
	isTTY := term.IsTerminal(fd)

	enabled := false
	switch mode {
	case RawOn:
		enabled = isTTY
		if !isTTY {
			log.Warn("raw mode requested but stdin is not a terminal; using line mode")
		}
	case RawAuto, "":
		enabled = isTTY
	}

	return &Terminal{fd: fd, enabled: enabled, log: log}
}

// Enabled reports whether MakeRaw will change the terminal.
func (t *Terminal) Enabled() bool {
	return t != nil && t.enabled
}

// MakeRaw puts the terminal in raw mode and returns a function restoring
// the previous state. When raw mode is disabled it returns a no-op restore.
func (t *Terminal) MakeRaw() (restore func(), err error) {
	if !t.Enabled() {
		return func() {}, nil
	}

	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return func() {}, errors.Wrapf(err, "make fd %d raw", t.fd)
	}

	return func() {
		if err := term.Restore(t.fd, state); err != nil {
			t.log.Warn("restore terminal failed", zap.Error(err))
		}
	}, nil
}
