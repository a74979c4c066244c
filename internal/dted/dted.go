// Package dted decodes DTED (Digital Terrain Elevation Data) files into
// structured in-memory records. DTED mixes fixed-width ASCII fields
// (degrees/minutes/seconds, counts) with raw big-endian binary fields
// (elevation samples, block counters) inside a single record, so every
// decoder here is strict about byte offsets and widths.
//
// All decoders are pure functions from an input byte slice to a value,
// the unconsumed tail, and an error. They hold no state and perform no
// I/O; callers may decode multiple buffers concurrently without
// synchronisation.
package dted

// Recognition sentinels defined by MIL-PRF-89020B. Each must match
// byte-for-byte at its fixed offset.
var (
	sentinelUHL  = []byte("UHL1") // User Header Label.
	sentinelData = []byte{0xAA}   // Elevation data record.
	sentinelNA   = []byte("NA")   // Numeric field not available.
)

// Fixed block lengths in bytes. The DSI and ACC records are skipped as
// opaque blocks; only their sizes matter here.
const (
	uhlLength       = 80
	dsiRecordLength = 648
	accRecordLength = 2700
)

// Angle is a geographic angle in degrees, minutes and seconds. The
// magnitude fields are always non-negative; the sign is carried solely
// by Negative (true for the south and west hemispheres), never by the
// magnitudes.
type Angle struct {
	Deg      uint16
	Min      uint8
	Sec      float64
	Negative bool
}

// Decimal returns the angle in decimal degrees, negative for south and
// west hemispheres.
func (a Angle) Decimal() float64 {
	d := float64(a.Deg) + float64(a.Min)/60 + a.Sec/3600
	if a.Negative {
		return -d
	}
	return d
}

// AxisElement pairs a latitude value and a longitude value of the same
// type. It carries no ordering relation between the two.
type AxisElement[T any] struct {
	Lat T
	Lon T
}

// RawDTEDHeader is the decoded User Header Label (UHL).
type RawDTEDHeader struct {
	// Origin is the lower-left corner of the grid.
	Origin AxisElement[Angle]

	// IntervalSecsX10 is the sampling interval along each axis, in
	// tenths of an arc second.
	IntervalSecsX10 AxisElement[uint32]

	// Accuracy is the absolute vertical accuracy in metres, or nil when
	// the field holds the "NA" sentinel.
	Accuracy *uint32

	// Count is the number of grid points along each axis.
	Count AxisElement[uint32]
}

// RawDTEDRecord is one decoded longitude profile line.
type RawDTEDRecord struct {
	// BlockCount is the 24-bit data block counter, reconstructed from a
	// 1-byte high part and a 16-bit low part.
	BlockCount uint32

	// LonCount and LatCount are the line indices stated in the record.
	LonCount uint16
	LatCount uint16

	// Elevations holds the signed elevation samples for this line,
	// south to north. Length equals the header's latitude count.
	Elevations []int16
}

// RawDTEDFile is a fully decoded DTED file.
type RawDTEDFile struct {
	Header RawDTEDHeader

	// Records holds one profile per longitude line, west to east.
	// Length equals the header's longitude count.
	Records []RawDTEDRecord

	// DSI and ACC hold the auxiliary header records. Both stay nil:
	// the blocks are skipped undecoded. Reserved for future decoders.
	DSI []byte
	ACC []byte
}
