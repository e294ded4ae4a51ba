package ax25

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFCS_ReferenceVector(t *testing.T) {
	// CRC register for the ASCII string "123456789" before the final
	// complement; its complement, 0x906E, is the standard CRC-16/X-25
	// check value.
	got := fcs([]byte("123456789"))
	assert.Equal(t, uint16(0x6F91), got)
}

func TestAppendFCS_ComplementAndByteOrder(t *testing.T) {
	frame := []byte("123456789")
	out := appendFCS(append([]byte{}, frame...))

	complemented := ^uint16(0x6F91)
	assert.Equal(t, byte(complemented), out[len(out)-2])
	assert.Equal(t, byte(complemented>>8), out[len(out)-1])
}

func TestFCS_DeterministicOverArbitraryInput(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := rapid.SliceOf(rapid.Byte()).Draw(t, "b")
		assert.Equal(t, fcs(b), fcs(append([]byte{}, b...)))
	})
}
