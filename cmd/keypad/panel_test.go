package main

import (
	"errors"
	"github.com/callebjorkell/keypad/internal/button"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

type screenMock struct {
	line1, line2 string
}

func (s *screenMock) Print(line1, line2 string) {
	s.line1 = line1
	s.line2 = line2
}

type lightsMock struct {
	colors []uint32
	glow   uint32
	light  uint32
	off    bool
}

func (l *lightsMock) Pulse(color uint32) {
	l.colors = append(l.colors, color)
}

func (l *lightsMock) Glow(color, light uint32) {
	l.glow, l.light = color, light
	l.off = false
}

func (l *lightsMock) Off() {
	l.off = true
}

type forwarderMock struct {
	published []button.Descriptor
	err       error
}

func (f *forwarderMock) Publish(d button.Descriptor) error {
	f.published = append(f.published, d)
	return f.err
}

func newTestPanel(t *testing.T) (*frontPanel, *screenMock, *lightsMock, *forwarderMock) {
	t.Helper()
	table, err := button.NewTable(button.DefaultDescriptors())
	require.NoError(t, err)

	p := newFrontPanel(table, map[button.ID]uint32{1: 0x00ff00, 2: 0x0000ff})
	s, l, f := &screenMock{}, &lightsMock{}, &forwarderMock{}
	p.screen, p.lights, p.forwarder = s, l, f
	return p, s, l, f
}

func TestPanelNotify(t *testing.T) {
	p, s, l, f := newTestPanel(t)

	p.Notify(2)
	p.Notify(2)

	assert.Equal(t, "SW2 pressed", s.line1)
	assert.Equal(t, "count 2", s.line2)
	assert.Equal(t, []uint32{0x0000ff, 0x0000ff}, l.colors)
	require.Len(t, f.published, 2)
	assert.Equal(t, "SW2", f.published[0].Name)
}

func TestPanelUnknownButton(t *testing.T) {
	p, s, l, f := newTestPanel(t)

	p.Notify(button.InvalidID)
	p.Notify(12)

	assert.Empty(t, s.line1)
	assert.Empty(t, l.colors)
	assert.Empty(t, f.published)
}

func TestPanelForwardErrorIsNotFatal(t *testing.T) {
	p, s, _, f := newTestPanel(t)
	f.err = errors.New("broker gone")

	p.Notify(1)
	assert.Equal(t, "SW1 pressed", s.line1)
}

func TestPanelWithoutOutputs(t *testing.T) {
	table, err := button.NewTable(button.DefaultDescriptors())
	require.NoError(t, err)
	p := newFrontPanel(table, nil)

	assert.NotPanics(t, func() {
		p.Ready()
		p.Notify(1)
		p.Sleep()
	})
}

func TestPanelReady(t *testing.T) {
	p, s, l, _ := newTestPanel(t)
	p.Ready()

	assert.Equal(t, "Ready", s.line1)
	assert.Equal(t, "4 buttons", s.line2)
	assert.Equal(t, uint32(readyColor), l.glow)
	assert.Equal(t, uint32(readyLight), l.light)
}

func TestPanelSleep(t *testing.T) {
	p, s, l, _ := newTestPanel(t)
	p.Ready()
	p.Sleep()

	assert.Equal(t, "  Sleeping...", s.line1)
	assert.Empty(t, s.line2)
	assert.True(t, l.off)
}
