package fmmod

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestModulate_UnitMagnitude(t *testing.T) {
	m := New(5000, 48000)
	audio := []float32{0, 0.5, 1, -1, -0.25}
	i, q := m.Modulate(nil, nil, audio)

	require.Len(t, i, len(audio))
	for n := range i {
		mag := math.Hypot(float64(i[n]), float64(q[n]))
		assert.InDelta(t, 1.0, mag, 1e-6)
	}
}

func TestModulate_PhaseContinuityAcrossCalls(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		deviation := rapid.Float64Range(100, 10000).Draw(t, "deviation")
		sampleRate := 48000.0
		m := New(deviation, sampleRate)
		k := 2 * math.Pi * deviation / sampleRate

		n := rapid.IntRange(2, 80).Draw(t, "n")
		audio := make([]float32, n)
		maxAbs := 0.0
		for i := range audio {
			v := rapid.Float64Range(-1, 1).Draw(t, "x")
			audio[i] = float32(v)
			if a := math.Abs(float64(audio[i])); a > maxAbs {
				maxAbs = a
			}
		}

		var i, q []float32
		mid := n / 2
		i, q = m.Modulate(i, q, audio[:mid])
		i, q = m.Modulate(i, q, audio[mid:])

		for n := 1; n < len(i); n++ {
			prev := complex(float64(i[n-1]), float64(q[n-1]))
			cur := complex(float64(i[n]), float64(q[n]))
			delta := cur * complexConj(prev)
			angle := math.Atan2(imag(delta), real(delta))
			// I/Q are float32, so the measured angle carries rounding
			// error of order 1e-7.
			require.LessOrEqual(t, math.Abs(angle), k*maxAbs+1e-6)
		}
	})
}

func complexConj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}
