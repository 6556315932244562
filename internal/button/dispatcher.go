package button

import (
	"context"
	log "github.com/sirupsen/logrus"
	"sync/atomic"
)

type State int32

const (
	Idle State = iota
	Scheduled
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scheduled:
		return "scheduled"
	case Running:
		return "running"
	}
	return "N/A"
}

// Dispatcher moves button events out of the edge handler and into a single
// worker goroutine, where the subscriber is called.
//
// The pending event is one slot, not a queue: scheduling again before the
// worker has run overwrites the previous event, and only the latest one is
// delivered. Presses faster than one worker round trip are lost on purpose.
type Dispatcher struct {
	registry *Registry

	pending atomic.Pointer[Descriptor]
	kick    chan struct{}
	running atomic.Bool

	started atomic.Bool
	done    chan struct{}
}

func NewDispatcher(r *Registry) *Dispatcher {
	return &Dispatcher{
		registry: r,
		kick:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Schedule publishes d as the latest event and wakes the worker. It never
// blocks and never allocates, so it is safe to call from an edge handler.
func (d *Dispatcher) Schedule(desc *Descriptor) {
	d.pending.Store(desc)
	select {
	case d.kick <- struct{}{}:
	default:
		// already woken, the worker will pick up the latest event
	}
}

// Run takes the pending event, if any, and hands its id to the subscriber.
// It reports whether a subscriber was called.
func (d *Dispatcher) Run() bool {
	desc := d.pending.Swap(nil)
	if desc == nil {
		return false
	}

	d.running.Store(true)
	defer d.running.Store(false)

	if !d.registry.Notify(desc.ID) {
		log.Debugf("%s pressed, nobody is listening", desc.Name)
		return false
	}
	log.Debugf("%s pressed, notified id %d", desc.Name, desc.ID)
	return true
}

// Start runs the worker until ctx is done. Only the first call has effect.
func (d *Dispatcher) Start(ctx context.Context) {
	if !d.started.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer close(d.done)
		for {
			select {
			case <-ctx.Done():
				log.Debug("Button dispatcher stopped.")
				return
			case <-d.kick:
				d.Run()
			}
		}
	}()
}

// Done is closed once the worker started by Start has returned.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

func (d *Dispatcher) State() State {
	if d.running.Load() {
		return Running
	}
	if d.pending.Load() != nil {
		return Scheduled
	}
	return Idle
}
