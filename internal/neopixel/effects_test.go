//go:build !pi

package neopixel

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func newMockController(t *testing.T) (*LedController, *mockEngine) {
	t.Helper()
	l, err := NewLedController()
	require.NoError(t, err)
	return l, l.ws.(*mockEngine)
}

func TestFlash(t *testing.T) {
	l, engine := newMockController(t)

	l.Flash(0x00ff00)

	assert.Equal(t, []uint32{0x00ff00, 0, 0x00ff00, 0, 0x00ff00, 0}, engine.history())
}

func TestGlowInterruptsFlash(t *testing.T) {
	l, engine := newMockController(t)

	go l.Flash(0xff0000)
	<-time.After(50 * time.Millisecond)
	l.Glow(0x0000ff, 100)

	assert.Equal(t, []uint32{0xff0000, 0, 0x0000ff}, engine.history())
}

func TestFlashReturnsToGlow(t *testing.T) {
	l, engine := newMockController(t)

	l.Glow(0x00ff00, 100)
	l.Flash(0xff0000)

	assert.Equal(t, []uint32{0x00ff00, 0xff0000, 0, 0xff0000, 0, 0xff0000, 0x00ff00}, engine.history())
}

func TestOffForgetsGlow(t *testing.T) {
	l, engine := newMockController(t)

	l.Glow(0x00ff00, 100)
	l.Off()
	l.Flash(0x0000ff)

	assert.Equal(t, []uint32{0x00ff00, 0, 0x0000ff, 0, 0x0000ff, 0, 0x0000ff, 0}, engine.history())
}

func TestClose(t *testing.T) {
	l, engine := newMockController(t)
	l.Glow(0x808080, 50)
	l.Close()

	assert.Equal(t, []uint32{0x404040, 0}, engine.history())
	assert.True(t, engine.finished)
}
