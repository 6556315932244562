package button

import "fmt"

// ID is the logical identifier of a button, independent of the pin it is
// wired to. Valid ids start at 1.
type ID int

const (
	InvalidID ID = -1
	// NoPress is returned by State when no button is held.
	NoPress ID = -1
)

func (id ID) Valid() bool {
	return id > 0
}

// Descriptor ties a logical button to its physical pin.
type Descriptor struct {
	ID   ID
	Pin  uint8
	Bit  uint32
	Name string
}

// Unknown is resolved for interrupt masks that match no configured button.
var Unknown = Descriptor{ID: InvalidID, Name: "???"}

func (d Descriptor) String() string {
	if !d.ID.Valid() {
		return d.Name
	}
	return fmt.Sprintf("%s (id %d, pin %d)", d.Name, d.ID, d.Pin)
}

// DefaultDescriptors is the four button keypad: SW1-SW4 on pins 13-16.
func DefaultDescriptors() []Descriptor {
	return []Descriptor{
		{ID: 1, Pin: 13, Name: "SW1"},
		{ID: 2, Pin: 14, Name: "SW2"},
		{ID: 3, Pin: 15, Name: "SW3"},
		{ID: 4, Pin: 16, Name: "SW4"},
	}
}
