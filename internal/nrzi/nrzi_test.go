package nrzi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestEncode_ZeroToggles_OneHolds(t *testing.T) {
	out := Encode([]bool{true, false, false, true}, true)
	assert.Equal(t, []bool{true, false, true, true}, out)
}

func TestDecode_InvertsEncode(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 200).Draw(t, "n")
		bits := make([]bool, n)
		for i := range bits {
			bits[i] = rapid.Bool().Draw(t, "bit")
		}
		initial := rapid.Bool().Draw(t, "initial")

		encoded := Encode(bits, initial)
		decoded := Decode(encoded, initial)

		assert.Equal(t, bits, decoded)
	})
}
