package pipeline

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n0call/aprstx/internal/ax25"
	"github.com/n0call/aprstx/internal/hdlc"
	"github.com/n0call/aprstx/internal/interp"
	"github.com/n0call/aprstx/internal/sink"
)

// flushSamples is the number of extra output samples the interpolator's
// end-of-frame Flush appends for interpolation factor l.
func flushSamples(l int) int {
	return (interp.DefaultTapsPerBranch - 1) * l
}

func smokeRequest() Request {
	return Request{
		Destination: ax25.Address{Call: "APRS"},
		Source:      ax25.Address{Call: "N0CALL"},
		Info:        []byte("Hello"),
	}
}

// wireBitCount independently reproduces the bit count Generate's own
// hdlc.Serialize call will produce, so the byte-count assertions below
// don't hardcode a magic number that depends on where the CRC happens
// to fall relative to a stuff boundary.
func wireBitCount(t *testing.T, req Request, preambleFlags int) int {
	t.Helper()
	frameBytes, err := ax25.Frame{
		Destination: req.Destination,
		Source:      req.Source,
		Path:        req.Path,
		Info:        req.Info,
	}.Build()
	require.NoError(t, err)
	return len(hdlc.Serialize(frameBytes, preambleFlags, preambleFlags))
}

func TestGenerate_PCMByteCount(t *testing.T) {
	req := smokeRequest()
	bits := wireBitCount(t, req, 1)

	var buf bytes.Buffer
	opts := Options{Format: sink.PCMF32, PreambleFlags: 1}

	require.NoError(t, Generate(req, &buf, opts))
	assert.Equal(t, bits*40*4, buf.Len())
}

func TestGenerate_IQS8SampleCount(t *testing.T) {
	req := smokeRequest()
	bits := wireBitCount(t, req, 1)

	var buf bytes.Buffer
	opts := Options{Format: sink.IQS8, PreambleFlags: 1, InterpolationFactor: 50}

	require.NoError(t, Generate(req, &buf, opts))
	assert.Equal(t, (bits*40*50+flushSamples(50))*2, buf.Len())
}

func TestGenerate_IQF32SampleCount(t *testing.T) {
	req := smokeRequest()
	bits := wireBitCount(t, req, 8)

	var buf bytes.Buffer
	opts := NewOptions()
	opts.Format = sink.IQF32

	require.NoError(t, Generate(req, &buf, opts))
	assert.Equal(t, (bits*40*50+flushSamples(50))*2*4, buf.Len())
}

func TestGenerate_DigiPath(t *testing.T) {
	req := Request{
		Destination: ax25.Address{Call: "APRS"},
		Source:      ax25.Address{Call: "N0CALL"},
		Path: []ax25.Address{
			{Call: "WIDE1", SSID: 1},
			{Call: "WIDE2", SSID: 1},
		},
		Info: []byte("Hello"),
	}

	var buf bytes.Buffer
	require.NoError(t, Generate(req, &buf, NewOptions()))
	assert.NotZero(t, buf.Len())
}

func TestGenerate_EmptyDestinationResolvesToDefault(t *testing.T) {
	req := Request{
		Source: ax25.Address{Call: "N0CALL"},
		Info:   []byte("Hello"),
	}

	var buf bytes.Buffer
	opts := NewOptions()
	opts.Format = sink.PCMF32
	require.NoError(t, Generate(req, &buf, opts))

	bitsWithDefault := wireBitCount(t, Request{
		Destination: ax25.Address{Call: "APRS"},
		Source:      req.Source,
		Info:        req.Info,
	}, 8)
	assert.Equal(t, bitsWithDefault*40*4, buf.Len())
}

func TestGenerate_OversizedInfoPropagatesError(t *testing.T) {
	req := smokeRequest()
	req.Info = bytes.Repeat([]byte{0x00}, 300)

	var buf bytes.Buffer
	err := Generate(req, &buf, NewOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ax25.ErrOversizedInfo)
}

type fakeKeyer struct {
	events []string
}

func (f *fakeKeyer) Key() error   { f.events = append(f.events, "key"); return nil }
func (f *fakeKeyer) Unkey() error { f.events = append(f.events, "unkey"); return nil }
func (f *fakeKeyer) Close() error { return nil }

func TestGenerate_KeyerBracketsTheWrite(t *testing.T) {
	k := &fakeKeyer{}
	opts := NewOptions()
	opts.Keyer = k

	var buf bytes.Buffer
	require.NoError(t, Generate(smokeRequest(), &buf, opts))

	require.Equal(t, []string{"key", "unkey"}, k.events)
}

type failingKeyer struct{}

func (failingKeyer) Key() error   { return errors.New("radio not found") }
func (failingKeyer) Unkey() error { return nil }
func (failingKeyer) Close() error { return nil }

func TestGenerate_KeyFailureAbortsBeforeAnyWrite(t *testing.T) {
	opts := NewOptions()
	opts.Keyer = failingKeyer{}

	var buf bytes.Buffer
	err := Generate(smokeRequest(), &buf, opts)
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}
