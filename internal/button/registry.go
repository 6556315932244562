package button

import "sync/atomic"

// Notifiable receives button presses. There is exactly one consumer in every
// deployment, so the registry holds a single slot rather than a list.
type Notifiable interface {
	Notify(id ID)
}

type NotifyFunc func(id ID)

func (f NotifyFunc) Notify(id ID) {
	f(id)
}

type subscriber struct {
	n Notifiable
}

// Registry is a single-slot subscriber holder. Register replaces whatever was
// there before.
type Registry struct {
	slot atomic.Pointer[subscriber]
}

func (r *Registry) Register(n Notifiable) {
	if n == nil {
		r.Unregister()
		return
	}
	r.slot.Store(&subscriber{n: n})
}

func (r *Registry) Unregister() {
	r.slot.Store(nil)
}

func (r *Registry) Registered() bool {
	return r.slot.Load() != nil
}

// Notify calls the current subscriber with id. It reports false when nobody
// is registered.
func (r *Registry) Notify(id ID) bool {
	s := r.slot.Load()
	if s == nil {
		return false
	}
	s.n.Notify(id)
	return true
}
