package keying

import (
	"github.com/warthog618/go-gpiocdev"
)

// GPIOKeyer drives a single GPIO output line high for the duration of a
// transmission, mirroring direwolf's ptt.go GPIO path but through
// the Linux character-device (cdev) ABI rather than the legacy sysfs
// interface ptt.go uses.
type GPIOKeyer struct {
	line *gpiocdev.Line
	// activeHigh selects whether Key() drives the line high (true, the
	// common case) or low (an inverted PTT circuit).
	activeHigh bool
}

// OpenGPIOKeyer requests chip/offset as an output line, initially
// de-asserted.
func OpenGPIOKeyer(chip string, offset int, activeHigh bool) (*GPIOKeyer, error) {
	initial := 0
	if !activeHigh {
		initial = 1
	}

	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(initial))
	if err != nil {
		return nil, wrapFailure("open gpio line", err)
	}

	return &GPIOKeyer{line: line, activeHigh: activeHigh}, nil
}

// Key asserts PTT.
func (k *GPIOKeyer) Key() error {
	v := 1
	if !k.activeHigh {
		v = 0
	}
	if err := k.line.SetValue(v); err != nil {
		return wrapFailure("assert ptt", err)
	}
	return nil
}

// Unkey releases PTT.
func (k *GPIOKeyer) Unkey() error {
	v := 0
	if !k.activeHigh {
		v = 1
	}
	if err := k.line.SetValue(v); err != nil {
		return wrapFailure("release ptt", err)
	}
	return nil
}

// Close releases the requested GPIO line.
func (k *GPIOKeyer) Close() error {
	return k.line.Close()
}
