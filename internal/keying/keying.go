// Package keying asserts and releases push-to-talk immediately around a
// transmission. There are two independent, mutually exclusive
// backends, both mirroring direwolf's ptt.go support matrix: GPIO (via
// the cdev ABI instead of ptt.go's raw sysfs path) and Hamlib rig
// control.
package keying

import (
	"errors"
	"fmt"
)

// ErrKeyingFailed is wrapped by any failure to assert or release PTT.
var ErrKeyingFailed = errors.New("keying: ptt operation failed")

// Keyer asserts and releases push-to-talk around a transmission. The
// orchestrator calls Key before the first sink write and Unkey after
// the last, never concurrently with itself.
type Keyer interface {
	Key() error
	Unkey() error
	Close() error
}

// noop is used when the orchestrator is given no keying configuration,
// the common case for file-only generation.
type noop struct{}

func (noop) Key() error   { return nil }
func (noop) Unkey() error { return nil }
func (noop) Close() error { return nil }

// Noop returns a Keyer that does nothing, for the common file-only case.
func Noop() Keyer { return noop{} }

func wrapFailure(op string, err error) error {
	return fmt.Errorf("keying: %s: %w: %v", op, ErrKeyingFailed, err)
}
