package button

import (
	"errors"
	"fmt"
	"github.com/callebjorkell/keypad/internal/hal"
)

var ErrEmptyTable = errors.New("no buttons configured")

// Table is the immutable mapping between pins and logical buttons.
type Table struct {
	entries []Descriptor
	mask    uint32
	unknown Descriptor
}

// NewTable validates descs and fills in each Bit. Table order is kept: it
// decides which button wins when a mask matches several.
func NewTable(descs []Descriptor) (*Table, error) {
	if len(descs) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{
		entries: make([]Descriptor, 0, len(descs)),
		unknown: Unknown,
	}
	ids := make(map[ID]string)
	for i, d := range descs {
		if !d.ID.Valid() {
			return nil, fmt.Errorf("button %d (%s): id must be positive, got %d", i, d.Name, d.ID)
		}
		if d.Pin > hal.MaxPin {
			return nil, fmt.Errorf("button %d (%s): pin %d out of range", i, d.Name, d.Pin)
		}
		if other, ok := ids[d.ID]; ok {
			return nil, fmt.Errorf("button %d (%s): id %d already used by %s", i, d.Name, d.ID, other)
		}

		d.Bit = hal.Bit(d.Pin)
		if t.mask&d.Bit != 0 {
			return nil, fmt.Errorf("button %d (%s): pin %d already mapped", i, d.Name, d.Pin)
		}
		if d.Name == "" {
			d.Name = fmt.Sprintf("BTN%d", d.ID)
		}

		ids[d.ID] = d.Name
		t.mask |= d.Bit
		t.entries = append(t.entries, d)
	}

	return t, nil
}

// Resolve returns the first button whose bit is set in pins, or Unknown.
func (t *Table) Resolve(pins uint32) *Descriptor {
	for i := range t.entries {
		if t.entries[i].Bit&pins != 0 {
			return &t.entries[i]
		}
	}
	return &t.unknown
}

func (t *Table) ByID(id ID) (Descriptor, bool) {
	for _, d := range t.entries {
		if d.ID == id {
			return d, true
		}
	}
	return Unknown, false
}

// Mask is the union of every button bit.
func (t *Table) Mask() uint32 {
	return t.mask
}

// Descriptors returns a copy of the entries in table order.
func (t *Table) Descriptors() []Descriptor {
	out := make([]Descriptor, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Table) Len() int {
	return len(t.entries)
}
