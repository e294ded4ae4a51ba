// Package pipeline composes the address/frame, HDLC, line-coding,
// AFSK, FM, and interpolation packages into the single call a front end
// makes to turn one AX.25 UI frame into a transmittable sample stream,
// the same role direwolf's tx_frame_queue draining into
// ptt_set/gen_tone/hdlc_send plays across several source files.
package pipeline

import (
	"fmt"

	"github.com/n0call/aprstx/internal/afsk"
	"github.com/n0call/aprstx/internal/ax25"
	"github.com/n0call/aprstx/internal/fmmod"
	"github.com/n0call/aprstx/internal/hdlc"
	"github.com/n0call/aprstx/internal/interp"
	"github.com/n0call/aprstx/internal/nrzi"
	"github.com/n0call/aprstx/internal/sink"
	"github.com/n0call/aprstx/internal/tocall"
)

// Request describes one packet to generate. Destination.Call may be
// left empty, in which case it is resolved through package tocall
// (falling back to "APRS").
type Request struct {
	Destination ax25.Address
	Source      ax25.Address
	Path        []ax25.Address
	Info        []byte
}

// Generate builds req into an AX.25 frame, bit-stuffs and NRZI-encodes
// it, synthesizes Bell-202 AFSK audio, and (unless opts.Format is
// PCMF32) FM-modulates and polyphase-interpolates that audio into a
// complex baseband stream, writing the result to dst in opts.Format's
// wire encoding. Keying, if configured, brackets the write: Key is
// called before the first byte is written and Unkey after the last,
// even if an error aborts the transmission partway through.
func Generate(req Request, dst sink.Sink, opts Options) error {
	opts = opts.resolved()

	dest := req.Destination
	if dest.Call == "" {
		dest.Call = tocall.Resolve("")
	}

	frameBytes, err := ax25.Frame{
		Destination: dest,
		Source:      req.Source,
		Path:        req.Path,
		Info:        req.Info,
	}.Build()
	if err != nil {
		return fmt.Errorf("pipeline: build frame: %w", err)
	}
	logDebug(opts, "built frame", "bytes", len(frameBytes))

	bits := hdlc.Serialize(frameBytes, opts.PreambleFlags, opts.PreambleFlags)
	logDebug(opts, "serialized bits", "count", len(bits))

	lineSymbols := nrzi.Encode(bits, true)

	synth := afsk.New(opts.MarkOnOne)
	audio := synth.Synthesize(make([]float32, 0, len(lineSymbols)*afsk.SamplesPerSymbol), lineSymbols)
	logDebug(opts, "synthesized audio", "samples", len(audio))

	if err := opts.Keyer.Key(); err != nil {
		return fmt.Errorf("pipeline: key: %w: %w", sink.ErrSinkWrite, err)
	}
	defer opts.Keyer.Unkey()

	if opts.Format == sink.PCMF32 {
		w := sink.NewWriter(dst, sink.PCMF32)
		if err := w.WritePCM(audio); err != nil {
			return fmt.Errorf("pipeline: write pcm: %w", err)
		}
		return nil
	}

	mod := fmmod.New(opts.Deviation, afsk.SampleRate)
	interpolator := interp.NewWithTaps(opts.InterpolationFactor, interp.DefaultTapsPerBranch, interp.DefaultPassbandEdge)
	w := sink.NewWriter(dst, opts.Format)

	var outI, outQ []float32
	for start := 0; start < len(audio); start += opts.ChunkSize {
		end := start + opts.ChunkSize
		if end > len(audio) {
			end = len(audio)
		}
		chunk := audio[start:end]

		baseI, baseQ := mod.Modulate(nil, nil, chunk)

		outI, outQ, _ = interpolator.Process(outI[:0], outQ[:0], baseI, baseQ)
		if err := w.WriteIQ(outI, outQ); err != nil {
			return fmt.Errorf("pipeline: write iq: %w", err)
		}
	}

	outI, outQ = interpolator.Flush(outI[:0], outQ[:0])
	if len(outI) > 0 {
		if err := w.WriteIQ(outI, outQ); err != nil {
			return fmt.Errorf("pipeline: write flushed iq: %w", err)
		}
	}

	return nil
}

func logDebug(opts Options, msg string, kv ...interface{}) {
	if opts.Logger != nil {
		opts.Logger.Debug(msg, kv...)
	}
}
