package console

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRawModeValid(t *testing.T) {
	assert.True(t, RawAuto.Valid())
	assert.True(t, RawOn.Valid())
	assert.True(t, RawOff.Valid())
	assert.False(t, RawMode("sometimes").Valid())
}

func TestTerminalNotATTY(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	core, logs := observer.New(zap.WarnLevel)
	term := NewTerminal(int(r.Fd()), RawOn, zap.New(core))

	assert.False(t, term.Enabled())
	assert.Equal(t, 1, logs.Len())

	restore, err := term.MakeRaw()
	require.NoError(t, err)
	restore()
}

func TestTerminalOff(t *testing.T) {
	term := NewTerminal(int(os.Stdin.Fd()), RawOff, nil)
	assert.False(t, term.Enabled())
}
