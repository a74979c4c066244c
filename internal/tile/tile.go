// Package tile provides derived, read-only views over decoded DTED
// files: per-tile summaries for indexing and index-based access to the
// elevation grid.
package tile

import (
	"dted_parser/internal/dted"
)

// VoidElevation is the sample value DTED uses for missing data.
const VoidElevation int16 = -32767

// Summary describes one decoded tile for indexing and cataloguing.
type Summary struct {
	Path string `json:"path,omitempty"`

	// Grid origin (lower-left corner) in decimal degrees.
	LatOriginDeg float64 `json:"lat_origin_deg"`
	LonOriginDeg float64 `json:"lon_origin_deg"`

	// Sampling interval along each axis in arc seconds.
	LatIntervalSec float64 `json:"lat_interval_sec"`
	LonIntervalSec float64 `json:"lon_interval_sec"`

	// Rows is the sample count per longitude line (latitude count);
	// Cols is the number of longitude lines.
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	// Elevation range over non-void samples, in metres. Both zero when
	// every sample is void.
	MinElevation int16 `json:"min_elevation_m"`
	MaxElevation int16 `json:"max_elevation_m"`

	// VoidSamples counts samples equal to VoidElevation.
	VoidSamples int `json:"void_samples"`

	// Accuracy is the absolute vertical accuracy in metres; nil when
	// the header carried the NA sentinel.
	Accuracy *uint32 `json:"accuracy_m,omitempty"`
}

// Summarize builds a Summary for a decoded file. path is recorded
// as-is for provenance and may be empty.
func Summarize(path string, f *dted.RawDTEDFile) Summary {
	s := Summary{
		Path:           path,
		LatOriginDeg:   f.Header.Origin.Lat.Decimal(),
		LonOriginDeg:   f.Header.Origin.Lon.Decimal(),
		LatIntervalSec: float64(f.Header.IntervalSecsX10.Lat) / 10,
		LonIntervalSec: float64(f.Header.IntervalSecsX10.Lon) / 10,
		Rows:           int(f.Header.Count.Lat),
		Cols:           int(f.Header.Count.Lon),
		Accuracy:       f.Header.Accuracy,
	}

	first := true
	for _, rec := range f.Records {
		for _, e := range rec.Elevations {
			if e == VoidElevation {
				s.VoidSamples++
				continue
			}
			if first {
				s.MinElevation, s.MaxElevation = e, e
				first = false
				continue
			}
			if e < s.MinElevation {
				s.MinElevation = e
			}
			if e > s.MaxElevation {
				s.MaxElevation = e
			}
		}
	}
	return s
}

// Grid provides index-based access to a decoded elevation grid.
// Indices are zero-based: lon selects the longitude line west to east,
// lat the sample within the line south to north. No interpolation is
// performed.
type Grid struct {
	f *dted.RawDTEDFile
}

// NewGrid wraps a decoded file. The grid borrows the file's records;
// the caller must not mutate them while the grid is in use.
func NewGrid(f *dted.RawDTEDFile) *Grid {
	return &Grid{f: f}
}

// At returns the elevation sample at (lon, lat). ok is false when
// either index is out of range.
func (g *Grid) At(lon, lat int) (elev int16, ok bool) {
	if lon < 0 || lon >= len(g.f.Records) {
		return 0, false
	}
	line := g.f.Records[lon].Elevations
	if lat < 0 || lat >= len(line) {
		return 0, false
	}
	return line[lat], true
}
