// Package position formats an APRS uncompressed position report, a
// convenience producer of a frame's information-field bytes.
// Range validation and UTM conversion reuse the same libraries direwolf's
// coordconv.go and cmd/samoyed-ll2utm lean on; the degree-minute
// splitting and hemisphere letters are computed here by formatDM.
package position

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tzneal/coordconv"
)

// ErrInvalidPosition is returned when latitude/longitude fall outside their valid ranges.
var ErrInvalidPosition = errors.New("position: latitude/longitude out of range")

// Report is an APRS position report: coordinates, a symbol table/code
// pair, and a free-text comment.
type Report struct {
	Latitude, Longitude float64 // decimal degrees
	SymbolTable, Symbol byte
	Comment             string
}

// Format renders r as an AX.25 information-field string:
// "!DDMM.mmN/DDDMM.mmE#comment".
func (r Report) Format() (string, error) {
	latLng := s2.LatLng{
		Lat: s1.Angle(r.Latitude * math.Pi / 180),
		Lng: s1.Angle(r.Longitude * math.Pi / 180),
	}
	if !latLng.IsValid() {
		return "", fmt.Errorf("position: lat=%.6f lon=%.6f: %w", r.Latitude, r.Longitude, ErrInvalidPosition)
	}

	latField, err := formatDM(r.Latitude, 2, 'N', 'S')
	if err != nil {
		return "", err
	}
	lonField, err := formatDM(r.Longitude, 3, 'E', 'W')
	if err != nil {
		return "", err
	}

	symTable := r.SymbolTable
	if symTable == 0 {
		symTable = '/'
	}
	symCode := r.Symbol
	if symCode == 0 {
		symCode = '>'
	}

	return fmt.Sprintf("!%s%c%s%c%s", latField, symTable, lonField, symCode, r.Comment), nil
}

// FormatUTM renders the coordinate as a UTM zone/easting/northing
// string ("18N 583960 4507523": zone, hemisphere letter, easting,
// northing), for a status comment or log line
// alongside the APRS position report -- APRS itself is always
// lat/lon, but a UTM reference is convenient for operators working
// from a grid map.
func FormatUTM(lat, lon float64) (string, error) {
	latLng := s2.LatLng{
		Lat: s1.Angle(lat * math.Pi / 180),
		Lng: s1.Angle(lon * math.Pi / 180),
	}
	if !latLng.IsValid() {
		return "", fmt.Errorf("position: lat=%.6f lon=%.6f: %w", lat, lon, ErrInvalidPosition)
	}

	coord, err := coordconv.DefaultUTMConverter.ConvertFromGeodetic(latLng, 0)
	if err != nil {
		return "", fmt.Errorf("position: utm conversion: %w", err)
	}

	hemi := byte('N')
	if lat < 0 {
		hemi = 'S'
	}

	return fmt.Sprintf("%d%c %.0f %.0f", coord.Zone, hemi, coord.Easting, coord.Northing), nil
}

// formatDM renders abs(degrees) as "DDMM.mm"/"DDDMM.mm" with a
// trailing hemisphere letter, positive taking pos and negative taking neg.
func formatDM(degrees float64, intDigits int, pos, neg byte) (string, error) {
	hemi := pos
	if degrees < 0 {
		hemi = neg
		degrees = -degrees
	}

	whole := math.Floor(degrees)
	minutes := (degrees - whole) * 60

	format := fmt.Sprintf("%%0%dd%%05.2f%%c", intDigits)
	return fmt.Sprintf(format, int(whole), minutes, hemi), nil
}
