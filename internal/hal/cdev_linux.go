//go:build linux

package hal

import (
	"fmt"
	"github.com/warthog618/go-gpiocdev"
	"sync"
)

const consumer = "keypad"

// line is the part of a requested gpiocdev line the chip uses.
type line interface {
	Value() (int, error)
	Close() error
}

type lineRequester interface {
	RequestLine(offset int, opts ...gpiocdev.LineReqOption) (line, error)
	Close() error
}

type cdevChip struct {
	*gpiocdev.Chip
}

func (c cdevChip) RequestLine(offset int, opts ...gpiocdev.LineReqOption) (line, error) {
	l, err := c.Chip.RequestLine(offset, opts...)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Chip drives pins through the Linux GPIO character device.
type Chip struct {
	mu    sync.Mutex
	chip  lineRequester
	flags map[uint8]Flags
	edges map[uint8]Edge
	lines map[uint8]line
}

func OpenChip(name string) (*Chip, error) {
	c, err := gpiocdev.NewChip(name, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDeviceNotFound, name, err)
	}
	return newChip(cdevChip{c}), nil
}

func newChip(r lineRequester) *Chip {
	return &Chip{
		chip:  r,
		flags: make(map[uint8]Flags),
		edges: make(map[uint8]Edge),
		lines: make(map[uint8]line),
	}
}

func lineOptions(flags Flags, edge Edge) []gpiocdev.LineReqOption {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput}
	if flags&PullUp != 0 {
		opts = append(opts, gpiocdev.WithPullUp)
	}
	if flags&ActiveLow != 0 {
		opts = append(opts, gpiocdev.AsActiveLow)
	}
	// Edges are reported relative to the logical level, so a rising edge is
	// the transition to active for either polarity.
	if edge == EdgeToActive {
		opts = append(opts, gpiocdev.WithRisingEdge)
	}
	return opts
}

func (c *Chip) ConfigureInput(pin uint8, flags Flags) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.flags[pin] = flags
	return nil
}

func (c *Chip) ConfigureInterrupt(pin uint8, edge Edge) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.edges[pin] = edge
	return nil
}

func (c *Chip) AddCallback(mask uint32, h Handler) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	handler := func(evt gpiocdev.LineEvent) {
		h(Bit(uint8(evt.Offset)))
	}

	var requested []uint8
	for _, pin := range Pins(mask) {
		edge := c.edges[pin]
		if edge == EdgeNone {
			continue
		}
		if l, ok := c.lines[pin]; ok {
			// requested earlier without events
			l.Close()
			delete(c.lines, pin)
		}

		opts := append(lineOptions(c.flags[pin], edge), gpiocdev.WithEventHandler(handler))
		l, err := c.chip.RequestLine(int(pin), opts...)
		if err != nil {
			// all or nothing: no handler stays attached to a partial mask
			for _, p := range requested {
				c.lines[p].Close()
				delete(c.lines, p)
			}
			return fmt.Errorf("request line %d: %w", pin, err)
		}
		c.lines[pin] = l
		requested = append(requested, pin)
	}
	return nil
}

func (c *Chip) Get(pin uint8) (bool, error) {
	if err := checkPin(pin); err != nil {
		return false, err
	}
	c.mu.Lock()
	l, ok := c.lines[pin]
	if !ok {
		var err error
		l, err = c.chip.RequestLine(int(pin), lineOptions(c.flags[pin], EdgeNone)...)
		if err != nil {
			c.mu.Unlock()
			return false, fmt.Errorf("request line %d: %w", pin, err)
		}
		c.lines[pin] = l
	}
	c.mu.Unlock()

	v, err := l.Value()
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

func (c *Chip) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for pin, l := range c.lines {
		l.Close()
		delete(c.lines, pin)
	}
	return c.chip.Close()
}
