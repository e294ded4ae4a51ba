// Package interp implements the x50 polyphase FIR interpolator that
// turns the FM modulator's 48 kHz complex baseband into the 2.4 Msps
// stream an SDR transmits. direwolf never transmits RF itself, so the
// windowed-sinc design technique here is grounded on the DSP
// primitives other APRS/SDR projects reach for -- ausocean-av and
// ka9q_ubersdr both depend on gonum.org/v1/gonum for exactly this kind
// of filter work, so this package uses gonum's window package instead
// of a hand-rolled Blackman window.
package interp

import (
	"math"

	"gonum.org/v1/gonum/dsp/window"
)

// designTaps builds the L-branch polyphase-equivalent FIR low-pass
// filter: a Blackman-windowed sinc kernel (center tap 1, not normalized)
// with passband edge at fractional bandwidth passbandEdge (of the *input*
// rate), and numTaps total coefficients (must be a multiple of L so the
// polyphase decomposition in NewWithTaps is exact). The passband gain
// is set afterwards, by NewWithTaps normalizing each branch.
func designTaps(l, numTaps int, passbandEdge float64) []float64 {
	cutoff := passbandEdge / float64(l) // normalized to the *output* rate
	taps := make([]float64, numTaps)
	center := float64(numTaps-1) / 2

	for n := range taps {
		x := float64(n) - center
		taps[n] = sinc(2 * cutoff * x)
	}

	return window.Blackman(taps)
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
