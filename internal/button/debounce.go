package button

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

const DefaultDebounceWindow = 350 * time.Millisecond

const never = math.MinInt64

// Filter suppresses edges that arrive within the debounce window of the
// previous one. Every edge it sees, accepted or not, restarts the window, so a
// burst of contact noise keeps the button quiet until the burst is over.
//
// By default one timestamp is shared by all buttons: an edge on any button
// silences every other button for the window. With perButton each button
// gets its own timestamp.
type Filter struct {
	window    int64
	epoch     time.Time
	perButton bool

	shared stamp
	// ID -> *stamp, filled on the first edge of each button
	buttons sync.Map
}

type stamp struct {
	last atomic.Int64
}

func NewFilter(window time.Duration, perButton bool) *Filter {
	f := &Filter{
		window:    int64(window),
		epoch:     time.Now(),
		perButton: perButton,
	}
	f.shared.last.Store(never)
	return f
}

func (f *Filter) stampFor(id ID) *stamp {
	if !f.perButton {
		return &f.shared
	}
	if s, ok := f.buttons.Load(id); ok {
		return s.(*stamp)
	}
	fresh := &stamp{}
	fresh.last.Store(never)
	s, _ := f.buttons.LoadOrStore(id, fresh)
	return s.(*stamp)
}

// Accept reports whether an edge on id at now should be dispatched. The very
// first edge is always accepted. Safe for concurrent use and never blocks.
func (f *Filter) Accept(id ID, now time.Time) bool {
	s := f.stampFor(id)
	t := int64(now.Sub(f.epoch))

	for {
		last := s.last.Load()
		ok := last == never || t-last >= f.window
		if s.last.CompareAndSwap(last, t) {
			return ok
		}
	}
}

func (f *Filter) Window() time.Duration {
	return time.Duration(f.window)
}

func (f *Filter) PerButton() bool {
	return f.perButton
}
