package sink

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// PlaybackSink streams PCMF32 audio straight to the default sound card
// output via PortAudio, for monitoring a generated frame without an SDR
// attached. It only accepts PCMF32 -- no sound card can play complex
// baseband, so cmd/aprstx's openSink rejects IQS8/IQF32 before a
// PlaybackSink is opened. The sink itself does not check the format.
type PlaybackSink struct {
	stream *portaudio.Stream

	mu    sync.Mutex
	queue []float32
}

// NewPlaybackSink opens the default output device at sampleRate mono
// and returns a ready-to-write sink. Callers must call Close when the
// transmission is finished.
func NewPlaybackSink(sampleRate float64) (*PlaybackSink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("sink: portaudio init: %w", ErrSinkWrite)
	}

	s := &PlaybackSink{}
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, portaudio.FramesPerBufferUnspecified, s.streamCallback)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("sink: open output stream: %w", ErrSinkWrite)
	}
	s.stream = stream

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("sink: start output stream: %w", ErrSinkWrite)
	}

	return s, nil
}

// streamCallback runs on PortAudio's own thread; the pipeline never
// calls into it directly, it only ever reads from the queue Write fills.
func (s *PlaybackSink) streamCallback(out []float32) {
	s.mu.Lock()
	n := copy(out, s.queue)
	s.queue = s.queue[n:]
	s.mu.Unlock()

	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

// Write decodes little-endian float32 PCM bytes and queues them for
// playback. No cap is enforced on the queue; the orchestrator writes a
// frame's whole PCM audio in a single call.
func (s *PlaybackSink) Write(p []byte) (int, error) {
	n := len(p) / 4
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		b := p[i*4 : i*4+4]
		bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		samples[i] = math.Float32frombits(bits)
	}

	s.mu.Lock()
	s.queue = append(s.queue, samples...)
	s.mu.Unlock()

	return len(p), nil
}

// Close stops and releases the underlying stream and the PortAudio
// library handle.
func (s *PlaybackSink) Close() error {
	if err := s.stream.Stop(); err != nil {
		return fmt.Errorf("sink: stop output stream: %w", err)
	}
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("sink: close output stream: %w", err)
	}
	return portaudio.Terminate()
}
