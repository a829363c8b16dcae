package console

import (
	"io"

	"github.com/pkg/errors"
)

// ElapsedPrefix precedes the redrawn time value.
const ElapsedPrefix = "Time Elapsed: "

// Display writes prompts and messages line by line and redraws the elapsed
// time in place with a carriage return. The first write error is kept and
// later writes are skipped.
type Display struct {
	w        io.Writer
	eol      string
	lineOpen bool
	err      error
}

func NewDisplay(w io.Writer) *Display {
	return &Display{w: w, eol: "\n"}
}

// SetRaw switches line endings for a terminal in raw mode, where a bare
// newline does not return the carriage.
func (d *Display) SetRaw(raw bool) {
	if raw {
		d.eol = "\r\n"
	} else {
		d.eol = "\n"
	}
}

func (d *Display) write(s string) {
	if d.err != nil {
		return
	}
	if _, err := io.WriteString(d.w, s); err != nil {
		d.err = errors.Wrap(err, "write display")
	}
}

// Prompt prints text after a line break, ending any open time line.
func (d *Display) Prompt(text string) {
	d.lineOpen = false
	d.write(d.eol + text + d.eol)
}

// Println prints msg on its own line.
func (d *Display) Println(msg string) {
	if d.lineOpen {
		d.lineOpen = false
		d.write(d.eol)
	}
	d.write(msg + d.eol)
}

// Redraw overwrites the current line with the elapsed time.
func (d *Display) Redraw(elapsed string) {
	d.lineOpen = true
	d.write("\r" + ElapsedPrefix + elapsed)
}

// EndLine terminates an open time line, if any.
func (d *Display) EndLine() {
	if d.lineOpen {
		d.lineOpen = false
		d.write(d.eol)
	}
}

// Err returns the first write error.
func (d *Display) Err() error {
	return d.err
}
