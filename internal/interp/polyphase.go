package interp

// DefaultTapsPerBranch controls the length of each of the L polyphase
// sub-filters (and therefore the total tap count, L*DefaultTapsPerBranch).
// Longer branches give a sharper transition band at the cost of more
// multiply-adds per output sample.
const DefaultTapsPerBranch = 8

// DefaultPassbandEdge is the default fractional passband edge (of the input rate).
const DefaultPassbandEdge = 0.4

// Interpolator is a streaming polyphase FIR upsampler: for every
// complex input sample it produces L complex output samples, with
// filter history (the delay line) carried across Process calls within
// one frame. The zero value is not ready for use; construct with New.
type Interpolator struct {
	l         int
	branchLen int
	branches  [][]float64 // L branches, each branchLen taps, phase-major

	// Ring buffer of the most recent branchLen input samples, newest
	// at index 0. Scoped to one frame: a new Interpolator is constructed
	// per transmission.
	histI []float64
	histQ []float64
}

// New constructs an Interpolator with interpolation factor l and the
// default windowed-sinc design from designTaps.
func New(l int) *Interpolator {
	return NewWithTaps(l, DefaultTapsPerBranch, DefaultPassbandEdge)
}

// NewWithTaps is New with an explicit tap-per-branch count and passband
// edge, for callers that need a different filter sharpness/cost trade-off.
func NewWithTaps(l, tapsPerBranch int, passbandEdge float64) *Interpolator {
	numTaps := l * tapsPerBranch
	taps := designTaps(l, numTaps, passbandEdge)

	// Each of the L branches is normalized so its own coefficients sum
	// to 1: a constant input then converges to the same constant at
	// every one of the L output phases once the delay line is full,
	// which is precisely "gain L in the passband" read per output
	// sample rather than as an aggregate -- the zero-stuffed energy
	// loss a polyphase decomposition must compensate for is in the
	// *sum* of the original filter's taps, not any individual
	// interpolated sample.
	branches := make([][]float64, l)
	for p := 0; p < l; p++ {
		branch := make([]float64, tapsPerBranch)
		sum := 0.0
		for m := 0; m < tapsPerBranch; m++ {
			branch[m] = taps[m*l+p]
			sum += branch[m]
		}
		if sum != 0 {
			for m := range branch {
				branch[m] /= sum
			}
		}
		branches[p] = branch
	}

	return &Interpolator{
		l:         l,
		branchLen: tapsPerBranch,
		branches:  branches,
		histI:     make([]float64, tapsPerBranch),
		histQ:     make([]float64, tapsPerBranch),
	}
}

// L returns the interpolation factor.
func (p *Interpolator) L() int { return p.l }

// Process consumes every sample of inI/inQ (equal-length complex input)
// and appends l output samples per input sample to outI/outQ, returning
// the extended slices and the number of input samples consumed (always
// len(inI), since this implementation has no internal input queue --
// every sample is immediately run through all L branches).
func (p *Interpolator) Process(outI, outQ []float32, inI, inQ []float32) (i, q []float32, consumed int) {
	for n := range inI {
		p.pushHistory(float64(inI[n]), float64(inQ[n]))

		for ph := 0; ph < p.l; ph++ {
			vi, vq := p.branchOutput(ph)
			outI = append(outI, float32(vi))
			outQ = append(outQ, float32(vq))
		}
	}

	return outI, outQ, len(inI)
}

// Flush drains the remaining filter history by running branchLen-1
// zero samples through the delay line.
func (p *Interpolator) Flush(outI, outQ []float32) (i, q []float32) {
	zerosI := make([]float32, p.branchLen-1)
	zerosQ := make([]float32, p.branchLen-1)
	outI, outQ, _ = p.Process(outI, outQ, zerosI, zerosQ)
	return outI, outQ
}

func (p *Interpolator) pushHistory(i, q float64) {
	copy(p.histI[1:], p.histI[:len(p.histI)-1])
	copy(p.histQ[1:], p.histQ[:len(p.histQ)-1])
	p.histI[0] = i
	p.histQ[0] = q
}

func (p *Interpolator) branchOutput(phase int) (i, q float64) {
	branch := p.branches[phase]
	for m, tap := range branch {
		i += tap * p.histI[m]
		q += tap * p.histQ[m]
	}
	return i, q
}
