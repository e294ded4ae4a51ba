// Package ax25 builds AX.25 UI frames: address fields, control/PID bytes,
// information payload and FCS. It mirrors the address-field layout from
// direwolf's ax25_pad.c port, expressed with real Go types instead of
// the cgo struct shims the original snapshot carried.
package ax25

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Compare with errors.Is, not string
// matching -- the wrapped message carries the offending value.
// ErrInvalidSSID wraps ErrInvalidCallsign: an out-of-range or malformed
// SSID is also an invalid callsign.
var (
	ErrInvalidCallsign = errors.New("ax25: invalid callsign")
	ErrInvalidSSID     = fmt.Errorf("ax25: ssid out of range: %w", ErrInvalidCallsign)
	ErrInvalidPath     = errors.New("ax25: invalid digipeater path")
	ErrOversizedInfo   = errors.New("ax25: information field too large")
)
