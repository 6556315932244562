//go:build !pi

package lcd

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestMockPrint(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	l.Print("Button pressed", "SW2")
	l1, l2 := l.Lines()
	assert.Equal(t, "Button pressed", l1)
	assert.Equal(t, "SW2", l2)

	l.PrintLine(Line2, "SW3")
	_, l2 = l.Lines()
	assert.Equal(t, "SW3", l2)

	l.Clear()
	l1, l2 = l.Lines()
	assert.Empty(t, l1)
	assert.Empty(t, l2)
}
