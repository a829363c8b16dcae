// Package shell runs the interactive stopwatch session: an idle prompt that
// reads whole lines and a running loop that ticks once per interval and
// polls for single keys in between.
package shell

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/comalice/stopwatch"
	"github.com/comalice/stopwatch/internal/console"
	"github.com/comalice/stopwatch/realtime"
)

const (
	PromptText   = "Enter S to Start, T to Stop, R to Reset, Q to Quit:"
	InvalidInput = "Invalid input! Try again."
)

// keyInterrupt is Ctrl-C as delivered by a terminal in raw mode, where it
// no longer raises SIGINT.
const keyInterrupt = '\x03'


// Command is a parsed user command.
type Command int

const (
	CmdInvalid Command = iota
	CmdStart
	CmdStop
	CmdReset
	CmdQuit
)

func (c Command) String() string {
	switch c {
	case CmdStart:
		return "start"
	case CmdStop:
		return "stop"
	case CmdReset:
		return "reset"
	case CmdQuit:
		return "quit"
	default:
		return "invalid"
	}
}

// ParseCommand matches trimmed, case-insensitive input against S, T, R, Q.
// Anything else, including empty input, is CmdInvalid.
func ParseCommand(input string) Command {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "S":
		return CmdStart
	case "T":
		return CmdStop
	case "R":
		return CmdReset
	case "Q":
		return CmdQuit
	default:
		return CmdInvalid
	}
}

// LineReader blocks for one line of input.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// KeyPoller returns a pending key without blocking.
type KeyPoller interface {
	Poll() (rune, bool)
}

// RawSwitcher enables single-key input for the running loop.
type RawSwitcher interface {
	Enabled() bool
	MakeRaw() (restore func(), err error)
}

// Shell drives one stopwatch from a single goroutine.
type Shell struct {
	sw    *stopwatch.Stopwatch
	rt    *realtime.Runtime
	lines LineReader
	keys  KeyPoller
	out   *console.Display
	raw   RawSwitcher
	log   *zap.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the shell logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRawSwitcher enables raw key mode while the stopwatch runs.
func WithRawSwitcher(r RawSwitcher) Option {
	return func(s *Shell) {
		s.raw = r
	}
}

// New wires a shell around rt's stopwatch and subscribes the display to
// the stopwatch's notifications.
func New(rt *realtime.Runtime, lines LineReader, keys KeyPoller, out *console.Display, opts ...Option) *Shell {
	s := &Shell{
		sw:    rt.Stopwatch(),
		rt:    rt,
		lines: lines,
		keys:  keys,
		out:   out,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.sw.Subscribe(stopwatch.Started, s.out.Println)
	s.sw.Subscribe(stopwatch.Stopped, s.out.Println)
	s.sw.Subscribe(stopwatch.Reset, s.out.Println)
	return s
}

// Run loops until the user quits, input ends or ctx is cancelled. Quitting
// and end of input return nil.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.out.Prompt(PromptText)

		line, err := s.lines.ReadLine(ctx)
		if err == io.EOF {
			s.log.Debug("end of input")
			return s.out.Err()
		}
		if err != nil {
			return errors.Wrap(err, "read command")
		}

		cmd := ParseCommand(line)
		s.log.Debug("command", zap.String("input", line), zap.Stringer("command", cmd))

		switch cmd {
		case CmdStart:
			s.sw.Start()
			quit, err := s.running(ctx)
			if err != nil || quit {
				return err
			}
		case CmdReset:
			s.sw.Reset()
		case CmdQuit:
			return s.out.Err()
		default:
			s.out.Println(InvalidInput)
		}

		if err := s.out.Err(); err != nil {
			return err
		}
	}
}

// running ticks until the stopwatch stops. It reports whether the user quit.
func (s *Shell) running(ctx context.Context) (quit bool, err error) {
	if s.raw != nil && s.raw.Enabled() {
		restore, rerr := s.raw.MakeRaw()
		if rerr != nil {
			s.log.Warn("raw key mode unavailable", zap.Error(rerr))
		} else {
			s.out.SetRaw(true)
			defer func() {
				restore()
				s.out.SetRaw(false)
			}()
		}
	}

	for s.sw.Running() {
		line, ok, err := s.rt.Step(ctx)
		if err != nil {
			s.out.EndLine()
			return false, err
		}
		if ok {
			s.out.Redraw(line)
		}

		key, pressed := s.keys.Poll()
		if !pressed {
			continue
		}
		cmd := ParseCommand(string(key))
		if key == keyInterrupt {
			cmd = CmdQuit
		}
		switch cmd {
		case CmdStop:
			s.sw.Stop()
		case CmdReset:
			s.sw.Reset()
		case CmdQuit:
			s.out.EndLine()
			return true, s.out.Err()
		default:
			s.log.Debug("ignored key", zap.String("key", string(key)))
		}

		if err := s.out.Err(); err != nil {
			return false, err
		}
	}
	return false, nil
}
