// Package tocall resolves a device/software identifier to the AX.25
// destination address APRS calls a "TOCALL", mirroring direwolf's
// deviceid.go/tocalls.yaml table but in the transmit direction: given a
// short key, produce the destination callsign to put in the frame's
// destination address field, instead of decoding one out of a received
// frame.
package tocall

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed tocalls.yaml
var tableYAML []byte

// Entry describes one embedded TOCALL table row.
type Entry struct {
	TOCALL string `yaml:"tocall"`
	Vendor string `yaml:"vendor"`
	Model  string `yaml:"model"`
}

// Default is the destination address used when the caller supplies
// neither an explicit destination nor a known key.
const Default = "APRS"

var table = mustLoadTable()

func mustLoadTable() map[string]Entry {
	var entries []Entry
	if err := yaml.Unmarshal(tableYAML, &entries); err != nil {
		panic("tocall: embedded table is malformed: " + err.Error())
	}

	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.TOCALL] = e
	}
	return m
}

// Resolve maps key (case-sensitive, as written on the air) to the
// destination callsign that should appear in the frame's destination
// address field. An unrecognized key is not an error: it is passed
// through unchanged so experimental TOCALLs still work.
func Resolve(key string) string {
	if key == "" {
		return Default
	}
	return key
}

// Lookup returns the vendor/model entry for a known TOCALL, if any.
func Lookup(key string) (Entry, bool) {
	e, ok := table[key]
	return e, ok
}
