package console

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	in := NewInput(strings.NewReader("s\r\n\nhello\nlast"), nil)
	ctx := context.Background()

	for _, want := range []string{"s", "", "hello", "last"} {
		line, err := in.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}

	_, err := in.ReadLine(ctx)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, io.EOF, in.Err())
}

func TestReadLineCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	in := NewInput(r, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := in.ReadLine(ctx)
	assert.Equal(t, context.DeadlineExceeded, err)
}

func TestReadLineReaderError(t *testing.T) {
	boom := errors.New("tty gone")
	r, w := io.Pipe()
	in := NewInput(r, nil)
	w.CloseWithError(boom)

	_, err := in.ReadLine(context.Background())
	assert.Equal(t, boom, err)
}

func TestPollEmpty(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	in := NewInput(r, nil)

	_, ok := in.Poll()
	assert.False(t, ok)
}

func TestPollConsumesTrailingTerminators(t *testing.T) {
	in := NewInput(strings.NewReader("\nt\r\nq\n"), nil)
	waitDrained(t, in)

	key, ok := in.Poll()
	require.True(t, ok)
	assert.Equal(t, 't', key)

	// The newline after the key is gone; the next line is intact.
	line, err := in.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "q", line)
}

func TestPollKeepsFollowingKey(t *testing.T) {
	in := NewInput(strings.NewReader("rq"), nil)

	var keys []rune
	require.Eventually(t, func() bool {
		if k, ok := in.Poll(); ok {
			keys = append(keys, k)
		}
		return len(keys) == 2
	}, time.Second, time.Millisecond)
	assert.Equal(t, []rune{'r', 'q'}, keys)
}

// waitDrained blocks until the pump has queued all input.
func waitDrained(t *testing.T, in *Input) {
	t.Helper()
	require.Eventually(t, func() bool { return in.Err() != nil }, time.Second, time.Millisecond)
}
