package keying

import (
	hamlib "github.com/xylo04/goHamlib"
)

// HamlibKeyer asserts PTT through a Hamlib-controlled rig, mirroring
// direwolf's ptt.go HAMLIB support path.
type HamlibKeyer struct {
	rig *hamlib.Rig
	vfo hamlib.VFO
}

// OpenHamlibKeyer opens and initializes the rig identified by model on
// port (e.g. "/dev/ttyUSB0").
func OpenHamlibKeyer(model int, port string) (*HamlibKeyer, error) {
	rig := hamlib.NewRig(model)

	if err := rig.SetConf("rig_pathname", port); err != nil {
		return nil, wrapFailure("configure rig port", err)
	}
	if err := rig.Open(); err != nil {
		return nil, wrapFailure("open rig", err)
	}

	return &HamlibKeyer{rig: rig, vfo: hamlib.VFOCurr}, nil
}

// Key asserts PTT on the rig's current VFO.
func (k *HamlibKeyer) Key() error {
	if err := k.rig.SetPTT(k.vfo, hamlib.PTTOn); err != nil {
		return wrapFailure("assert ptt", err)
	}
	return nil
}

// Unkey releases PTT on the rig's current VFO.
func (k *HamlibKeyer) Unkey() error {
	if err := k.rig.SetPTT(k.vfo, hamlib.PTTOff); err != nil {
		return wrapFailure("release ptt", err)
	}
	return nil
}

// Close closes the rig connection.
func (k *HamlibKeyer) Close() error {
	return k.rig.Close()
}
