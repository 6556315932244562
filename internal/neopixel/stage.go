package neopixel

import (
	"sync"
	"time"
)

// stage hands the strip to one effect at a time. Entering stops the effect
// that is on stage and waits for it to step off, so the newest effect always
// wins and two effects never render at once.
type stage struct {
	mu      sync.Mutex
	current *effect
}

// effect is one run of an LED effect on the strip.
type effect struct {
	name string
	stop chan struct{}
	done chan struct{}
}

// enter puts a new effect on stage. It returns the effect together with the
// name of the one it cut short, empty if the stage was free.
func (s *stage) enter(name string) (*effect, string) {
	next := &effect{
		name: name,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	prev := s.current
	s.current = next
	s.mu.Unlock()

	if prev == nil {
		return next, ""
	}
	select {
	case <-prev.done:
		return next, ""
	default:
	}
	// every effect has exactly one successor, so stop is closed once
	close(prev.stop)
	<-prev.done
	return next, prev.name
}

func (e *effect) stopped() bool {
	select {
	case <-e.stop:
		return true
	default:
		return false
	}
}

// hold keeps the current frame for d. It returns false if the effect was
// stopped in the meantime.
func (e *effect) hold(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-e.stop:
		return false
	}
}

func (e *effect) leave() {
	close(e.done)
}
