package hal

import (
	"fmt"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
	"sync"
	"time"
)

// Periph drives pins through periph.io. Edges are collected by one
// WaitForEdge loop per pin, which then calls the handler.
type Periph struct {
	mu    sync.Mutex
	pins  map[uint8]gpio.PinIO
	flags map[uint8]Flags
	edges map[uint8]Edge

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func OpenPeriph() (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: periph: %v", ErrDeviceNotFound, err)
	}

	return &Periph{
		pins:  make(map[uint8]gpio.PinIO),
		flags: make(map[uint8]Flags),
		edges: make(map[uint8]Edge),
		done:  make(chan struct{}),
	}, nil
}

func (p *Periph) lookup(pin uint8) (gpio.PinIO, error) {
	if err := checkPin(pin); err != nil {
		return nil, err
	}
	if io, ok := p.pins[pin]; ok {
		return io, nil
	}

	io := gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
	if io == nil {
		return nil, fmt.Errorf("%w: GPIO%d", ErrDeviceNotFound, pin)
	}
	p.pins[pin] = io
	return io, nil
}

func periphPull(flags Flags) gpio.Pull {
	if flags&PullUp != 0 {
		return gpio.PullUp
	}
	return gpio.Float
}

// periphEdge maps "edge to active" onto the physical edge for the pin polarity.
func periphEdge(flags Flags, edge Edge) gpio.Edge {
	if edge != EdgeToActive {
		return gpio.NoEdge
	}
	if flags&ActiveLow != 0 {
		return gpio.FallingEdge
	}
	return gpio.RisingEdge
}

func (p *Periph) ConfigureInput(pin uint8, flags Flags) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	io, err := p.lookup(pin)
	if err != nil {
		return err
	}
	if err := io.In(periphPull(flags), gpio.NoEdge); err != nil {
		return fmt.Errorf("configure %s: %w", io, err)
	}
	p.flags[pin] = flags
	return nil
}

func (p *Periph) ConfigureInterrupt(pin uint8, edge Edge) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	io, err := p.lookup(pin)
	if err != nil {
		return err
	}
	flags := p.flags[pin]
	if err := io.In(periphPull(flags), periphEdge(flags, edge)); err != nil {
		return fmt.Errorf("configure edge on %s: %w", io, err)
	}
	p.edges[pin] = edge
	return nil
}

func (p *Periph) AddCallback(mask uint32, h Handler) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, pin := range Pins(mask) {
		if p.edges[pin] == EdgeNone {
			continue
		}
		io, err := p.lookup(pin)
		if err != nil {
			return err
		}
		p.wg.Add(1)
		go p.watch(pin, io, h)
	}
	return nil
}

func (p *Periph) watch(pin uint8, io gpio.PinIO, h Handler) {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			return
		default:
		}

		// wait for the edge
		if !io.WaitForEdge(time.Second) {
			continue
		}
		h(Bit(pin))
	}
}

func (p *Periph) Get(pin uint8) (bool, error) {
	p.mu.Lock()
	io, err := p.lookup(pin)
	flags := p.flags[pin]
	p.mu.Unlock()
	if err != nil {
		return false, err
	}

	l := io.Read()
	if flags&ActiveLow != 0 {
		return l == gpio.Low, nil
	}
	return l == gpio.High, nil
}

func (p *Periph) Close() error {
	var err error
	p.once.Do(func() {
		close(p.done)
		p.mu.Lock()
		for _, io := range p.pins {
			// Halt unblocks a pending WaitForEdge.
			if e := io.Halt(); e != nil && err == nil {
				err = e
			}
		}
		p.mu.Unlock()
		p.wg.Wait()
	})
	return err
}
