package neopixel

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestStageHandover(t *testing.T) {
	s := stage{}

	first, interrupted := s.enter("first")
	assert.Empty(t, interrupted)
	assert.False(t, first.stopped())

	type entered struct {
		e           *effect
		interrupted string
	}
	second := make(chan entered)
	go func() {
		e, i := s.enter("second")
		second <- entered{e, i}
	}()

	assert.Eventually(t, first.stopped, 100*time.Millisecond, time.Millisecond)
	select {
	case <-second:
		t.Fatal("second effect got the strip before the first left")
	case <-time.After(20 * time.Millisecond):
	}

	assert.False(t, first.hold(time.Second), "a stopped effect does not hold")
	first.leave()

	select {
	case got := <-second:
		assert.Equal(t, "first", got.interrupted)
		assert.False(t, got.e.stopped())
		got.e.leave()
	case <-time.After(100 * time.Millisecond):
		t.Fatal("second effect never got the strip")
	}
}

func TestStageAfterFinishedEffect(t *testing.T) {
	s := stage{}

	e, _ := s.enter("glow")
	assert.True(t, e.hold(time.Millisecond))
	e.leave()

	next, interrupted := s.enter("flash")
	assert.Empty(t, interrupted, "a finished effect was not interrupted")
	next.leave()
}
