package console

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestDisplayRedrawInPlace(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)

	d.Redraw("00:00:01")
	d.Redraw("00:00:02")
	d.Println("Stopwatch Reset!")
	d.Println("again")

	assert.Equal(t,
		"\rTime Elapsed: 00:00:01\rTime Elapsed: 00:00:02\nStopwatch Reset!\nagain\n",
		buf.String())
	assert.NoError(t, d.Err())
}

func TestDisplayPrompt(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)

	d.Prompt("Enter:")
	d.Redraw("00:00:01")
	d.Prompt("Enter:")

	assert.Equal(t, "\nEnter:\n\rTime Elapsed: 00:00:01\nEnter:\n", buf.String())
}

func TestDisplayRawLineEndings(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)
	d.SetRaw(true)

	d.Redraw("00:00:01")
	d.EndLine()
	d.EndLine()
	d.SetRaw(false)
	d.Println("x")

	assert.Equal(t, "\rTime Elapsed: 00:00:01\r\nx\n", buf.String())
}

type failingWriter struct{ n int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("closed")
}

func TestDisplayStickyError(t *testing.T) {
	w := &failingWriter{}
	d := NewDisplay(w)

	d.Println("a")
	d.Println("b")

	assert.Error(t, d.Err())
	assert.Equal(t, 1, w.n)
}
