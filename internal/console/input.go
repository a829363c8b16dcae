// Package console adapts stdin and stdout to the stopwatch shell: a line
// reader for the prompt, a non-blocking key poller for the running loop and
// a display that redraws the elapsed time in place.
package console

import (
	"bufio"
	"context"
	"io"
	"strings"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const inputBuffer = 1024

// Input pumps bytes from a reader on a background goroutine so the control
// goroutine can either block for a line or poll for a key.
//
// Only the pump goroutine reads from the underlying reader; ReadLine and Poll
// must be called from a single goroutine.
type Input struct {
	ch      chan byte
	pending []byte
	err     atomic.Error
	log     *zap.Logger
}

// NewInput starts pumping r. The pump exits when r returns an error,
// typically io.EOF.
func NewInput(r io.Reader, log *zap.Logger) *Input {
	if log == nil {
		log = zap.NewNop()
	}
	in := &Input{
		ch:  make(chan byte, inputBuffer),
		log: log,
	}
	go in.pump(bufio.NewReader(r))
	return in
}

func (in *Input) pump(r *bufio.Reader) {
	defer close(in.ch)
	for {
		b, err := r.ReadByte()
		if err != nil {
			in.err.Store(err)
			if err != io.EOF {
				in.log.Warn("stdin read failed", zap.Error(err))
			}
			return
		}
		in.ch <- b
	}
}

// Err returns the error that ended the pump, or nil while it is running.
func (in *Input) Err() error {
	return in.err.Load()
}

func (in *Input) closedErr() error {
	if err := in.err.Load(); err != nil {
		return err
	}
	return io.EOF
}

// next returns the next byte without blocking.
func (in *Input) next() (byte, bool) {
	if len(in.pending) > 0 {
		b := in.pending[0]
		in.pending = in.pending[1:]
		return b, true
	}
	select {
	case b, ok := <-in.ch:
		return b, ok
	default:
		return 0, false
	}
}

func (in *Input) unread(b byte) {
	in.pending = append([]byte{b}, in.pending...)
}

// ReadLine blocks for one line and returns it without the line terminator.
// At end of input a final unterminated line is returned as is; after that
// ReadLine returns io.EOF.
func (in *Input) ReadLine(ctx context.Context) (string, error) {
	var sb strings.Builder
	for {
		var (
			b  byte
			ok bool
		)
		if len(in.pending) > 0 {
			b, ok = in.pending[0], true
			in.pending = in.pending[1:]
		} else {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case b, ok = <-in.ch:
			}
		}

		if !ok {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", in.closedErr()
		}

		switch b {
		case '\n':
			return sb.String(), nil
		case '\r':
			continue
		default:
			sb.WriteByte(b)
		}
	}
}

// Poll returns a pending key without blocking. Line terminators are
// skipped, and those directly following the key are consumed with it so a
// key typed in line mode does not leave an empty line behind.
func (in *Input) Poll() (rune, bool) {
	for {
		b, ok := in.next()
		if !ok {
			return 0, false
		}
		if b == '\r' || b == '\n' {
			continue
		}
		in.drainTerminators()
		return rune(b), true
	}
}

func (in *Input) drainTerminators() {
	for {
		b, ok := in.next()
		if !ok {
			return
		}
		if b != '\r' && b != '\n' {
			in.unread(b)
			return
		}
	}
}
