// Package afsk synthesizes Bell-202 audio frequency shift keying from a
// NRZI line-coded bit stream, the Go equivalent of the direct digital
// synthesis in direwolf's gen_tone.go, trimmed to the single AFSK
// modem this transmitter supports (QPSK/8PSK/EAS/G3RUH are out of scope).
package afsk

import "math"

const (
	// MarkFreq is the Bell-202 mark tone frequency in Hz.
	MarkFreq = 1200.0
	// SpaceFreq is the Bell-202 space tone frequency in Hz.
	SpaceFreq = 2200.0
	// Baud is the Bell-202 symbol rate.
	Baud = 1200.0
	// SampleRate is the audio sample rate this synthesizer emits at.
	SampleRate = 48000.0

	// SamplesPerSymbol is SampleRate/Baud, fixed at the values above.
	SamplesPerSymbol = SampleRate / Baud
)

// Synthesizer generates a phase-continuous AFSK waveform one NRZI
// symbol at a time. The zero value is not ready for use; construct with
// New.
type Synthesizer struct {
	// markOnOne: when true (the tested default), a line symbol of 1
	// selects the mark tone and 0 selects space. Flip this if a
	// receiver decodes inverted.
	markOnOne bool

	phase float64 // radians, kept in [0, 2*pi)
}

// New constructs a Synthesizer. markOnOne selects the NRZI-symbol-to-tone
// polarity (see the Synthesizer's markOnOne field).
func New(markOnOne bool) *Synthesizer {
	return &Synthesizer{markOnOne: markOnOne}
}

// Synthesize appends SamplesPerSymbol audio samples to dst for each
// NRZI symbol in symbols and returns the extended slice. Phase is
// carried across calls so a multi-chunk frame stays phase-continuous.
func (s *Synthesizer) Synthesize(dst []float32, symbols []bool) []float32 {
	for _, sym := range symbols {
		freq := SpaceFreq
		if sym == s.markOnOne {
			freq = MarkFreq
		}

		step := 2 * math.Pi * freq / SampleRate

		n := int(math.Round(SamplesPerSymbol))
		for i := 0; i < n; i++ {
			s.phase += step
			if s.phase >= 2*math.Pi {
				s.phase -= 2 * math.Pi
			}
			dst = append(dst, float32(math.Sin(s.phase)))
		}
	}

	return dst
}
