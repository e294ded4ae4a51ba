package sink

import (
	"context"
	"fmt"
	"net"

	"github.com/brutella/dnssd"
)

// ServiceType is the mDNS/DNS-SD service type a NetworkSink announces
// itself as, mirroring direwolf's dns_sd.go "_kiss-tnc._tcp" pattern
// but for a raw I/Q byte stream rather than KISS frames.
const ServiceType = "_aprs-iq._tcp"

// NetworkSink accepts a single downstream connection over TCP and
// writes the sample byte stream to it, for a SDR streaming adapter
// that consumes I/Q over the network instead of from a file.
type NetworkSink struct {
	listener net.Listener
	conn     net.Conn
}

// ListenNetworkSink listens on addr (e.g. ":7355") and, once a client
// connects, writes to that connection. Call Announce separately to
// advertise it over mDNS/DNS-SD; announcement failures are logged by
// the caller and never fail the transmission.
func ListenNetworkSink(addr string) (*NetworkSink, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("sink: listen %s: %w", addr, ErrSinkWrite)
	}

	return &NetworkSink{listener: l}, nil
}

// Announce starts best-effort mDNS/DNS-SD announcement of the listener
// under name. It returns an error describing why announcement could
// not start, but never from a transmission-fatal path -- callers
// should log it and continue.
func (s *NetworkSink) Announce(ctx context.Context, name string) error {
	port, err := portOf(s.listener.Addr())
	if err != nil {
		return fmt.Errorf("sink: dns-sd: %w", err)
	}

	cfg := dnssd.Config{Name: name, Type: ServiceType, Port: port} //nolint:exhaustruct
	svc, err := dnssd.NewService(cfg)
	if err != nil {
		return fmt.Errorf("sink: dns-sd: create service: %w", err)
	}

	responder, err := dnssd.NewResponder()
	if err != nil {
		return fmt.Errorf("sink: dns-sd: create responder: %w", err)
	}

	if _, err := responder.Add(svc); err != nil {
		return fmt.Errorf("sink: dns-sd: add service: %w", err)
	}

	go func() {
		_ = responder.Respond(ctx)
	}()

	return nil
}

func portOf(addr net.Addr) (int, error) {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("sink: listener address %v is not TCP", addr)
	}
	return tcpAddr.Port, nil
}

// Accept blocks for the one downstream connection this sink serves.
func (s *NetworkSink) Accept() error {
	conn, err := s.listener.Accept()
	if err != nil {
		return fmt.Errorf("sink: accept: %w", ErrSinkWrite)
	}
	s.conn = conn
	return nil
}

// Write forwards p to the accepted connection. Accept must be called first.
func (s *NetworkSink) Write(p []byte) (int, error) {
	if s.conn == nil {
		return 0, fmt.Errorf("sink: write before accept: %w", ErrSinkWrite)
	}
	n, err := s.conn.Write(p)
	if err != nil {
		return n, fmt.Errorf("sink: network write: %w: %v", ErrSinkWrite, err)
	}
	return n, nil
}

// Close closes the accepted connection (if any) and the listener.
func (s *NetworkSink) Close() error {
	if s.conn != nil {
		_ = s.conn.Close()
	}
	return s.listener.Close()
}
