// Package fmmod integrates real-valued audio into a phase-continuous
// narrowband FM complex baseband signal. direwolf has no direct
// equivalent (it is a receive-side decoder and never modulates FM
// itself); this follows gen_tone.go's phase-accumulator idiom -- the
// same "carry phase across calls" discipline, generalized from a
// fixed-point tone table to a streaming float phase integrator.
package fmmod

import "math"

// Modulator performs narrowband FM modulation of a real-valued audio
// stream, carrying its phase accumulator across Modulate calls so a
// frame synthesized in chunks stays phase-continuous.
type Modulator struct {
	sensitivity float64 // radians per unit amplitude per sample: 2*pi*deviation/sampleRate
	phase       float64
}

// New constructs a Modulator for the given peak deviation (Hz) and
// input sample rate (Hz).
func New(deviation, sampleRate float64) *Modulator {
	return &Modulator{sensitivity: 2 * math.Pi * deviation / sampleRate}
}

// Modulate appends len(audio) complex baseband samples to dstI/dstQ (in
// phase / quadrature, interleaved as two parallel slices to avoid a
// complex128 allocation per sample) and returns the extended slices.
func (m *Modulator) Modulate(dstI, dstQ []float32, audio []float32) (i, q []float32) {
	for _, x := range audio {
		m.phase += m.sensitivity * float64(x)
		// Keep phase bounded; math.Sincos handles the reduction anyway
		// but this avoids unbounded growth over very long frames.
		if m.phase > math.Pi {
			m.phase -= 2 * math.Pi
		} else if m.phase < -math.Pi {
			m.phase += 2 * math.Pi
		}

		sin, cos := math.Sincos(m.phase)
		dstI = append(dstI, float32(cos))
		dstQ = append(dstQ, float32(sin))
	}

	return dstI, dstQ
}
