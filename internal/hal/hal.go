package hal

import (
	"errors"
	"fmt"
)

var ErrDeviceNotFound = errors.New("gpio device not found")

// Flags describe how an input pin is configured.
type Flags uint8

const (
	Input Flags = 1 << iota
	PullUp
	ActiveLow
)

func (f Flags) String() string {
	s := ""
	if f&Input != 0 {
		s += "input|"
	}
	if f&PullUp != 0 {
		s += "pull-up|"
	}
	if f&ActiveLow != 0 {
		s += "active-low|"
	}
	if s == "" {
		return "none"
	}
	return s[:len(s)-1]
}

type Edge uint8

const (
	EdgeNone Edge = iota
	// EdgeToActive fires once when the pin transitions into its active level.
	EdgeToActive
)

// Handler is called with the bitmask of the pins that triggered. It may be
// called from an interrupt-like context: it must return quickly and must not
// block.
type Handler func(pins uint32)

// Controller is the boundary to a GPIO driver. Pins are numbered within one
// port, so every pin maps onto a single bit of a uint32 mask.
type Controller interface {
	ConfigureInput(pin uint8, flags Flags) error
	ConfigureInterrupt(pin uint8, edge Edge) error
	// AddCallback installs a handler for every pin in mask. Only pins that
	// have an interrupt configured will ever trigger it.
	AddCallback(mask uint32, h Handler) error
	// Get returns the logical level of the pin, true meaning active.
	Get(pin uint8) (bool, error)
	Close() error
}

const MaxPin = 31

// Bit returns the mask bit for pin.
func Bit(pin uint8) uint32 {
	return 1 << pin
}

// Pins expands a mask into its pin numbers, lowest first.
func Pins(mask uint32) []uint8 {
	var pins []uint8
	for p := uint8(0); p <= MaxPin; p++ {
		if mask&Bit(p) != 0 {
			pins = append(pins, p)
		}
	}
	return pins
}

func checkPin(pin uint8) error {
	if pin > MaxPin {
		return fmt.Errorf("pin %d out of range (max %d)", pin, MaxPin)
	}
	return nil
}
