package main

import (
	"context"
	"github.com/callebjorkell/keypad/internal/button"
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
	"time"
)

// stateSequence replays states, then keeps returning NoPress.
type stateSequence struct {
	mu     sync.Mutex
	states []button.ID
	done   chan struct{}
}

func newStateSequence(states ...button.ID) *stateSequence {
	return &stateSequence{states: states, done: make(chan struct{})}
}

func (s *stateSequence) State() button.ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.states) == 0 {
		select {
		case <-s.done:
		default:
			close(s.done)
		}
		return button.NoPress
	}
	id := s.states[0]
	s.states = s.states[1:]
	return id
}

type recorder struct {
	mu  sync.Mutex
	ids []button.ID
}

func (r *recorder) Notify(id button.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
}

func TestPollReportsEachPressOnce(t *testing.T) {
	seq := newStateSequence(
		button.NoPress, 1, 1, 1, button.NoPress, 1, 3, 3, button.NoPress,
	)
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go pollButtons(ctx, seq, rec, time.Millisecond)

	select {
	case <-seq.done:
	case <-time.After(time.Second):
		t.Fatal("poller did not consume the sequence")
	}
	cancel()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []button.ID{1, 1, 3}, rec.ids)
}
