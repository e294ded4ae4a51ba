package hdlc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func bitsToBytes(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

func TestSerialize_FlagsUnstuffed(t *testing.T) {
	bits := Serialize([]byte{0x00}, 2, 2)

	for i := 0; i < 2; i++ {
		b := bitsToBytes(bits[i*8 : i*8+8])
		assert.Equal(t, Flag, b[0])
	}
}

func TestSerialize_NoSixConsecutiveOnesInData(t *testing.T) {
	// 0xFF is five-plus ones in a row once serialized LSB-first.
	bits := Serialize([]byte{0xFF, 0xFF, 0x00}, 1, 1)

	// Strip the surrounding flag bytes (1 each, unstuffed, 8 bits).
	data := bits[8 : len(bits)-8]

	run := 0
	for _, b := range data {
		if b {
			run++
			require.LessOrEqual(t, run, 5, "no run of six 1 bits is permitted in stuffed data")
		} else {
			run = 0
		}
	}
}

func TestSerialize_StuffsAfterFiveOnes(t *testing.T) {
	bits := Serialize([]byte{0xFF}, 1, 1)
	data := bits[8 : len(bits)-8]

	// 0xFF LSB-first is eight 1 bits; after the 5th a 0 must be inserted.
	expected := []bool{true, true, true, true, true, false, true, true, true}
	assert.Equal(t, expected, data)
}

func TestUnstuff_InvertsSerialize(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		frame := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "frame")

		bits := Serialize(frame, 1, 1)
		data := bits[8 : len(bits)-8]

		unstuffed := Unstuff(data)
		assert.Equal(t, bitsToBytes(unstuffed)[:len(frame)], frame)
	})
}
