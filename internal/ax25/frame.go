package ax25

import "fmt"

// MaxInfoLen is the default maximum information-field length enforced
// by Build when Frame.MaxInfoLen is zero.
const MaxInfoLen = 256

const (
	controlUI = 0x03
	pidNoL3   = 0xF0
)

// Frame is a logical AX.25 UI frame: destination, source, digipeater
// path, and an information payload.
// Control and PID are fixed at 0x03/0xF0 for APRS.
type Frame struct {
	Destination Address
	Source      Address
	Path        []Address // 0-8 digipeater entries, in order
	Info        []byte

	// MaxInfoLen overrides MaxInfoLen (0 = use the default).
	MaxInfoLen int
}

// Build encodes f into the wire-format AX.25 UI frame bytes, including
// the trailing two-byte FCS. The last-address bit is set on exactly one
// address field: the final digipeater entry if present, otherwise the
// source.
func (f Frame) Build() ([]byte, error) {
	if err := validateCallsign(f.Destination.Call); err != nil {
		return nil, err
	}
	if err := validateCallsign(f.Source.Call); err != nil {
		return nil, err
	}
	if f.Destination.SSID > MaxSSID || f.Source.SSID > MaxSSID {
		return nil, fmt.Errorf("ax25: ssid out of range [0,%d]: %w", MaxSSID, ErrInvalidSSID)
	}
	if len(f.Path) > 8 {
		return nil, fmt.Errorf("ax25: digipeater path has %d entries, max 8: %w", len(f.Path), ErrInvalidPath)
	}
	for _, p := range f.Path {
		if err := validateCallsign(p.Call); err != nil {
			return nil, err
		}
		if p.SSID > MaxSSID {
			return nil, fmt.Errorf("ax25: path ssid out of range [0,%d]: %w", MaxSSID, ErrInvalidSSID)
		}
	}

	maxInfo := f.MaxInfoLen
	if maxInfo == 0 {
		maxInfo = MaxInfoLen
	}
	if len(f.Info) > maxInfo {
		return nil, fmt.Errorf("ax25: information field is %d bytes, max %d: %w", len(f.Info), maxInfo, ErrOversizedInfo)
	}

	lastIsDigi := len(f.Path) > 0

	buf := make([]byte, 0, 7*(2+len(f.Path))+2+len(f.Info)+2)

	dest := f.Destination.encodedField(false) // destination is never the last address
	buf = append(buf, dest[:]...)

	src := f.Source.encodedField(!lastIsDigi)
	buf = append(buf, src[:]...)

	for i, p := range f.Path {
		last := i == len(f.Path)-1
		field := p.encodedField(last)
		buf = append(buf, field[:]...)
	}

	buf = append(buf, controlUI, pidNoL3)
	buf = append(buf, f.Info...)

	buf = appendFCS(buf)

	return buf, nil
}
