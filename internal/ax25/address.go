package ax25

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxSSID is the largest value the 4-bit SSID field can hold.
const MaxSSID = 15

// Address is one AX.25 address-field entry: a callsign and its SSID.
type Address struct {
	Call string
	SSID uint8
}

// ParseAddress parses "CALL" or "CALL-SSID" the way a digipeater path
// entry or a source/destination flag value is written on the command
// line, e.g. "WIDE1-1".
func ParseAddress(s string) (Address, error) {
	call, ssidPart, hasSSID := strings.Cut(s, "-")

	var ssid uint8
	if hasSSID {
		n, err := strconv.Atoi(ssidPart)
		if err != nil {
			return Address{}, fmt.Errorf("ax25: ssid %q is not a number: %w", ssidPart, ErrInvalidSSID)
		}
		if n < 0 || n > MaxSSID {
			return Address{}, fmt.Errorf("ax25: ssid %d out of range [0,%d]: %w", n, MaxSSID, ErrInvalidSSID)
		}
		ssid = uint8(n)
	}

	if err := validateCallsign(call); err != nil {
		return Address{}, err
	}

	return Address{Call: strings.ToUpper(call), SSID: ssid}, nil
}

// ParsePath splits a comma-separated digipeater path such as
// "WIDE1-1,WIDE2-1" into its ordered address entries. An empty string
// yields an empty, non-nil path.
func ParsePath(s string) ([]Address, error) {
	if strings.TrimSpace(s) == "" {
		return []Address{}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) > 8 {
		return nil, fmt.Errorf("ax25: digipeater path has %d entries, max 8: %w", len(parts), ErrInvalidPath)
	}

	path := make([]Address, 0, len(parts))
	for _, p := range parts {
		addr, err := ParseAddress(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("ax25: path entry %q: %w", p, err)
		}
		path = append(path, addr)
	}

	return path, nil
}

func validateCallsign(call string) error {
	if call == "" {
		return fmt.Errorf("ax25: empty callsign: %w", ErrInvalidCallsign)
	}
	if len(call) > 6 {
		return fmt.Errorf("ax25: callsign %q longer than 6 characters: %w", call, ErrInvalidCallsign)
	}
	for _, r := range call {
		isAlnum := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum && r != ' ' {
			return fmt.Errorf("ax25: callsign %q contains %q: %w", call, r, ErrInvalidCallsign)
		}
	}
	return nil
}

// encodedField renders the 7-byte AX.25 address-field encoding: six
// space-padded, upper-cased, left-shifted-by-one callsign bytes,
// followed by the SSID byte. Reserved bits 5-6 are set to 0b11, the
// has-been-repeated bit (bit 7) is always 0 at transmit time, and bit 0
// is set iff this is the last address in the address field.
func (a Address) encodedField(last bool) [7]byte {
	var out [7]byte

	padded := strings.ToUpper(a.Call)
	for len(padded) < 6 {
		padded += " "
	}

	for i := 0; i < 6; i++ {
		out[i] = padded[i] << 1
	}

	b := byte(0b01100000) // reserved bits 5-6
	b |= a.SSID << 1
	if last {
		b |= 0b00000001
	}
	out[6] = b

	return out
}
