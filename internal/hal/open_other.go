//go:build !linux

package hal

import "fmt"

// The character device and the BCM283x register map only exist on Linux.

type Chip struct{ Sim }

func OpenChip(name string) (*Chip, error) {
	return nil, fmt.Errorf("%w: %s: gpio character devices need linux", ErrDeviceNotFound, name)
}

type RPIO struct{ Sim }

func OpenRPIO() (*RPIO, error) {
	return nil, fmt.Errorf("%w: rpio needs linux", ErrDeviceNotFound)
}
