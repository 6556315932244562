//go:build linux

package hal

import (
	"fmt"
	"github.com/stianeikeland/go-rpio/v4"
	"sync"
	"time"
)

const rpioPollInterval = 5 * time.Millisecond

// RPIO drives the BCM283x registers directly through /dev/gpiomem. The edge
// detect latch is hardware, but reading it is not, so a single goroutine
// polls EdgeDetected for every watched pin.
type RPIO struct {
	mu    sync.Mutex
	flags map[uint8]Flags
	edges map[uint8]Edge

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func OpenRPIO() (*RPIO, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("%w: rpio: %v", ErrDeviceNotFound, err)
	}

	return &RPIO{
		flags: make(map[uint8]Flags),
		edges: make(map[uint8]Edge),
		done:  make(chan struct{}),
	}, nil
}

func (r *RPIO) ConfigureInput(pin uint8, flags Flags) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p := rpio.Pin(pin)
	p.Input()
	if flags&PullUp != 0 {
		p.PullUp()
	} else {
		p.PullOff()
	}
	r.flags[pin] = flags
	return nil
}

func (r *RPIO) ConfigureInterrupt(pin uint8, edge Edge) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p := rpio.Pin(pin)
	switch {
	case edge != EdgeToActive:
		p.Detect(rpio.NoEdge)
	case r.flags[pin]&ActiveLow != 0:
		p.Detect(rpio.FallEdge)
	default:
		p.Detect(rpio.RiseEdge)
	}
	r.edges[pin] = edge
	return nil
}

func (r *RPIO) AddCallback(mask uint32, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var watched []rpio.Pin
	for _, pin := range Pins(mask) {
		if r.edges[pin] != EdgeNone {
			watched = append(watched, rpio.Pin(pin))
		}
	}
	if len(watched) == 0 {
		return nil
	}

	r.wg.Add(1)
	go r.poll(watched, h)
	return nil
}

func (r *RPIO) poll(pins []rpio.Pin, h Handler) {
	defer r.wg.Done()
	t := time.NewTicker(rpioPollInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
		case <-r.done:
			return
		}

		var fired uint32
		for _, p := range pins {
			if p.EdgeDetected() {
				fired |= Bit(uint8(p))
			}
		}
		if fired != 0 {
			h(fired)
		}
	}
}

func (r *RPIO) Get(pin uint8) (bool, error) {
	if err := checkPin(pin); err != nil {
		return false, err
	}
	r.mu.Lock()
	flags := r.flags[pin]
	r.mu.Unlock()

	s := rpio.Pin(pin).Read()
	if flags&ActiveLow != 0 {
		return s == rpio.Low, nil
	}
	return s == rpio.High, nil
}

func (r *RPIO) Close() error {
	var err error
	r.once.Do(func() {
		close(r.done)
		r.wg.Wait()

		r.mu.Lock()
		for pin := range r.edges {
			rpio.Pin(pin).Detect(rpio.NoEdge)
		}
		r.mu.Unlock()
		err = rpio.Close()
	})
	return err
}
