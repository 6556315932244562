package button

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func defaultTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(DefaultDescriptors())
	require.NoError(t, err)
	return table
}

func TestResolveKnownPins(t *testing.T) {
	table := defaultTable(t)

	for _, d := range DefaultDescriptors() {
		t.Run(d.Name, func(t *testing.T) {
			got := table.Resolve(1 << d.Pin)
			assert.Equal(t, d.ID, got.ID)
			assert.Equal(t, d.Pin, got.Pin)
			assert.Equal(t, uint32(1)<<d.Pin, got.Bit)
			assert.Equal(t, d.Name, got.Name)

			// same input, same answer
			assert.Equal(t, got, table.Resolve(1<<d.Pin))
		})
	}
}

func TestResolveSW1(t *testing.T) {
	table := defaultTable(t)

	d := table.Resolve(0x2000)
	assert.Equal(t, ID(1), d.ID)
	assert.Equal(t, uint8(13), d.Pin)
	assert.Equal(t, "SW1", d.Name)
}

func TestResolveUnknownPins(t *testing.T) {
	table := defaultTable(t)

	for _, mask := range []uint32{0, 1, 1 << 12, 1 << 17, 1 << 31, ^table.Mask()} {
		d := table.Resolve(mask)
		assert.Equal(t, InvalidID, d.ID, "mask 0x%08x", mask)
		assert.Equal(t, Unknown, *d)
	}
}

func TestResolveFirstEntryWins(t *testing.T) {
	table := defaultTable(t)

	// SW2 and SW4 at once: table order decides, not pin order or bit value
	d := table.Resolve(1<<14 | 1<<16)
	assert.Equal(t, ID(2), d.ID)

	reversed, err := NewTable([]Descriptor{
		{ID: 4, Pin: 16, Name: "SW4"},
		{ID: 2, Pin: 14, Name: "SW2"},
	})
	require.NoError(t, err)
	assert.Equal(t, ID(4), reversed.Resolve(1<<14|1<<16).ID)
}

func TestTableMask(t *testing.T) {
	table := defaultTable(t)
	assert.Equal(t, uint32(0x1e000), table.Mask())
	assert.Equal(t, 4, table.Len())
}

func TestTableByID(t *testing.T) {
	table := defaultTable(t)

	d, ok := table.ByID(3)
	assert.True(t, ok)
	assert.Equal(t, "SW3", d.Name)

	_, ok = table.ByID(9)
	assert.False(t, ok)
}

func TestNewTableValidation(t *testing.T) {
	tt := []struct {
		name  string
		descs []Descriptor
	}{
		{"empty", nil},
		{"zero id", []Descriptor{{ID: 0, Pin: 1}}},
		{"negative id", []Descriptor{{ID: -3, Pin: 1}}},
		{"pin out of range", []Descriptor{{ID: 1, Pin: 32}}},
		{"duplicate pin", []Descriptor{{ID: 1, Pin: 5}, {ID: 2, Pin: 5}}},
		{"duplicate id", []Descriptor{{ID: 1, Pin: 5}, {ID: 1, Pin: 6}}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTable(tc.descs)
			assert.Error(t, err)
		})
	}
}

func TestNewTableDefaultsName(t *testing.T) {
	table, err := NewTable([]Descriptor{{ID: 7, Pin: 3}})
	require.NoError(t, err)
	assert.Equal(t, "BTN7", table.Resolve(1<<3).Name)
}
