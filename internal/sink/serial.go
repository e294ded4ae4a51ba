package sink

import (
	"fmt"
	"os"

	"github.com/creack/pty"
	"github.com/pkg/term"
)

// SerialSink wraps a real serial port, mirroring direwolf's
// serial_port.go/kissserial.go use of github.com/pkg/term, but carrying
// raw sample bytes rather than KISS frames -- TNC framing is out of
// scope here.
type SerialSink struct {
	port *term.Term
}

// OpenSerialSink opens device at baud and returns a sink writing raw
// sample bytes to it.
func OpenSerialSink(device string, baud int) (*SerialSink, error) {
	t, err := term.Open(device, term.Speed(baud), term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("sink: open serial port %s: %w", device, ErrSinkWrite)
	}
	return &SerialSink{port: t}, nil
}

// Write forwards p to the serial port.
func (s *SerialSink) Write(p []byte) (int, error) {
	n, err := s.port.Write(p)
	if err != nil {
		return n, fmt.Errorf("sink: serial write: %w: %v", ErrSinkWrite, err)
	}
	return n, nil
}

// Close flushes and closes the serial port.
func (s *SerialSink) Close() error {
	_ = s.port.Flush()
	return s.port.Close()
}

// PTYSink wraps a pseudo-terminal pair (github.com/creack/pty), the
// same mechanism direwolf's kiss.go uses to expose a virtual TNC
// device, here carrying the same raw sample bytes SerialSink does.
type PTYSink struct {
	master, slave *os.File
}

// OpenPTYSink allocates a new pseudo-terminal pair and returns a sink
// writing to the master side; SlaveName reports the path a downstream
// consumer (e.g. a serial-attached SDR controller) should open.
func OpenPTYSink() (*PTYSink, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("sink: open pty: %w", ErrSinkWrite)
	}
	return &PTYSink{master: master, slave: slave}, nil
}

// SlaveName returns the path of the pty's slave side.
func (s *PTYSink) SlaveName() string { return s.slave.Name() }

// Write forwards p to the pty's master side.
func (s *PTYSink) Write(p []byte) (int, error) {
	n, err := s.master.Write(p)
	if err != nil {
		return n, fmt.Errorf("sink: pty write: %w: %v", ErrSinkWrite, err)
	}
	return n, nil
}

// Close releases both ends of the pty pair.
func (s *PTYSink) Close() error {
	_ = s.slave.Close()
	return s.master.Close()
}
