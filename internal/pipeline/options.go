package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/n0call/aprstx/internal/keying"
	"github.com/n0call/aprstx/internal/sink"
)

// DefaultChunkSize is the number of audio samples streamed through
// FM+interpolation per call.
const DefaultChunkSize = 4096

// Options configures one call to Generate. The zero value is usable:
// it falls back to the tuned defaults (5 kHz deviation, x50
// interpolation, 8 preamble flags, no keying, a discarding logger),
// except for MarkOnOne, whose zero value selects the inverted polarity.
type Options struct {
	// Format selects the sink wire encoding.
	Format sink.Format

	// Deviation is the FM peak deviation in Hz. 0 means 5000.
	Deviation float64
	// InterpolationFactor is the FIR interpolator's L. 0 means 50.
	InterpolationFactor int
	// PreambleFlags is the number of 0x7E flags before and after the
	// frame. 0 means 8.
	PreambleFlags int
	// MarkOnOne selects the tested AFSK polarity: a line symbol of 1
	// selects the mark tone. The zero value, false, is NOT the tested
	// default -- callers that want the default must set it explicitly
	// or use NewOptions.
	MarkOnOne bool

	// ChunkSize is the streaming chunk size through FM+interpolation. 0 means DefaultChunkSize.
	ChunkSize int

	// Keyer asserts/releases PTT around the transmission. A nil Keyer
	// means no keying.
	Keyer keying.Keyer

	// Logger receives per-stage progress at Debug level. A nil Logger
	// means logging is discarded.
	Logger *log.Logger
}

// NewOptions returns Options populated with the tuned defaults.
func NewOptions() Options {
	return Options{
		Format:              sink.IQS8,
		Deviation:           5000,
		InterpolationFactor: 50,
		PreambleFlags:       8,
		MarkOnOne:           true,
		ChunkSize:           DefaultChunkSize,
	}
}

func (o Options) resolved() Options {
	if o.Deviation == 0 {
		o.Deviation = 5000
	}
	if o.InterpolationFactor == 0 {
		o.InterpolationFactor = 50
	}
	if o.PreambleFlags == 0 {
		o.PreambleFlags = 8
	}
	if o.ChunkSize == 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Keyer == nil {
		o.Keyer = keying.Noop()
	}
	return o
}
