//go:build linux

package hal

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/go-gpiocdev"
	"testing"
)

type fakeLine struct {
	value  int
	closed bool
}

func (l *fakeLine) Value() (int, error) {
	return l.value, nil
}

func (l *fakeLine) Close() error {
	l.closed = true
	return nil
}

// fakeRequester hands out fake lines and refuses the offsets in busy.
type fakeRequester struct {
	busy  map[int]bool
	lines map[int]*fakeLine
}

func newFakeRequester(busy ...int) *fakeRequester {
	r := &fakeRequester{busy: make(map[int]bool), lines: make(map[int]*fakeLine)}
	for _, o := range busy {
		r.busy[o] = true
	}
	return r
}

func (r *fakeRequester) RequestLine(offset int, _ ...gpiocdev.LineReqOption) (line, error) {
	if r.busy[offset] {
		return nil, errors.New("device or resource busy")
	}
	l := &fakeLine{value: 1}
	r.lines[offset] = l
	return l, nil
}

func (r *fakeRequester) Close() error {
	return nil
}

func TestLineOptions(t *testing.T) {
	opts := lineOptions(Input|PullUp|ActiveLow, EdgeToActive)
	assert.Equal(t, []gpiocdev.LineReqOption{
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.AsActiveLow,
		gpiocdev.WithRisingEdge,
	}, opts)

	assert.Equal(t, []gpiocdev.LineReqOption{gpiocdev.AsInput}, lineOptions(Input, EdgeNone))
}

func TestOpenMissingChip(t *testing.T) {
	_, err := OpenChip("gpiochip-does-not-exist")
	assert.True(t, errors.Is(err, ErrDeviceNotFound))
}

func TestAddCallbackReleasesLinesOnFailure(t *testing.T) {
	r := newFakeRequester(15)
	c := newChip(r)
	for _, pin := range []uint8{13, 14, 15} {
		require.NoError(t, c.ConfigureInput(pin, Input|PullUp|ActiveLow))
		require.NoError(t, c.ConfigureInterrupt(pin, EdgeToActive))
	}

	err := c.AddCallback(Bit(13)|Bit(14)|Bit(15), func(uint32) {})
	assert.ErrorContains(t, err, "request line 15")

	require.Len(t, r.lines, 2)
	assert.True(t, r.lines[13].closed)
	assert.True(t, r.lines[14].closed)
	assert.Empty(t, c.lines)
}

func TestChipGet(t *testing.T) {
	c := newChip(newFakeRequester())
	require.NoError(t, c.ConfigureInput(13, Input|PullUp|ActiveLow))

	active, err := c.Get(13)
	assert.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, c.Close())
	assert.Empty(t, c.lines)
}
