package hal

import (
	"sync"
)

type simPin struct {
	flags  Flags
	edge   Edge
	active bool
}

// Sim is an in-memory Controller. Press and Release drive pin levels and fire
// the installed callbacks synchronously on the calling goroutine, the same way
// a hardware interrupt preempts whatever was running.
type Sim struct {
	mu       sync.Mutex
	pins     map[uint8]*simPin
	handlers []simHandler
	closed   bool
}

type simHandler struct {
	mask uint32
	h    Handler
}

func NewSim() *Sim {
	return &Sim{
		pins: make(map[uint8]*simPin),
	}
}

func (s *Sim) pin(p uint8) *simPin {
	sp, ok := s.pins[p]
	if !ok {
		sp = &simPin{}
		s.pins[p] = sp
	}
	return sp
}

func (s *Sim) ConfigureInput(pin uint8, flags Flags) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pin(pin).flags = flags
	return nil
}

func (s *Sim) ConfigureInterrupt(pin uint8, edge Edge) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pin(pin).edge = edge
	return nil
}

func (s *Sim) AddCallback(mask uint32, h Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handlers = append(s.handlers, simHandler{mask: mask, h: h})
	return nil
}

func (s *Sim) Get(pin uint8) (bool, error) {
	if err := checkPin(pin); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pin(pin).active, nil
}

// Flags returns the configuration last applied to pin.
func (s *Sim) Flags(pin uint8) Flags {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pin(pin).flags
}

// Press drives pin to its active level. Callbacks fire only on the transition.
func (s *Sim) Press(pin uint8) {
	s.set(pin, true)
}

func (s *Sim) Release(pin uint8) {
	s.set(pin, false)
}

// Click is a press immediately followed by a release.
func (s *Sim) Click(pin uint8) {
	s.Press(pin)
	s.Release(pin)
}

func (s *Sim) set(pin uint8, active bool) {
	s.mu.Lock()
	if s.closed || pin > MaxPin {
		s.mu.Unlock()
		return
	}
	sp := s.pin(pin)
	fire := active && !sp.active && sp.edge == EdgeToActive
	sp.active = active

	var hs []Handler
	if fire {
		for _, h := range s.handlers {
			if h.mask&Bit(pin) != 0 {
				hs = append(hs, h.h)
			}
		}
	}
	s.mu.Unlock()

	for _, h := range hs {
		h(Bit(pin))
	}
}

// Fire invokes every callback with an arbitrary mask, regardless of pin state
// or of the mask the callback was installed for. It models a controller
// reporting several pins at once, or pins nobody asked for.
func (s *Sim) Fire(pins uint32) {
	s.mu.Lock()
	hs := make([]Handler, 0, len(s.handlers))
	for _, h := range s.handlers {
		hs = append(hs, h.h)
	}
	s.mu.Unlock()

	for _, h := range hs {
		h(pins)
	}
}

func (s *Sim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.handlers = nil
	return nil
}
