package dted

import (
	"bytes"
	"fmt"
)

// DecodeUHL decodes the 80-byte User Header Label at the start of b
// and returns the header and the unconsumed tail. Field order and
// widths are format-mandated; after the "UHL1" tag come the longitude
// origin (3/2/2-digit deg/min/sec plus hemisphere), latitude origin
// (same widths), the two 4-digit sampling intervals in tenths of an
// arc second, the 4-digit NA-aware accuracy field, 15 reserved bytes,
// the two 4-digit point counts, and 25 reserved bytes.
func DecodeUHL(b []byte) (RawDTEDHeader, []byte, error) {
	if len(b) < uhlLength {
		return RawDTEDHeader{}, nil, fmt.Errorf("uhl: %w: need %d bytes, have %d", ErrShortInput, uhlLength, len(b))
	}
	if !bytes.HasPrefix(b, sentinelUHL) {
		return RawDTEDHeader{}, nil, fmt.Errorf("uhl: %w: want %q, got %q", ErrTagMismatch, sentinelUHL, b[:len(sentinelUHL)])
	}
	rest := b[len(sentinelUHL):]

	lonOrigin, rest, err := DecodeAngle(rest, 3, 2, 2)
	if err != nil {
		return RawDTEDHeader{}, nil, fmt.Errorf("uhl longitude origin: %w", err)
	}
	latOrigin, rest, err := DecodeAngle(rest, 3, 2, 2)
	if err != nil {
		return RawDTEDHeader{}, nil, fmt.Errorf("uhl latitude origin: %w", err)
	}
	lonInterval, rest, err := DecodeUint(rest, 4)
	if err != nil {
		return RawDTEDHeader{}, nil, fmt.Errorf("uhl longitude interval: %w", err)
	}
	latInterval, rest, err := DecodeUint(rest, 4)
	if err != nil {
		return RawDTEDHeader{}, nil, fmt.Errorf("uhl latitude interval: %w", err)
	}
	accuracy, rest, err := DecodeNA(rest, 4)
	if err != nil {
		return RawDTEDHeader{}, nil, fmt.Errorf("uhl accuracy: %w", err)
	}

	// Security code and reserved block, unused.
	rest = rest[15:]

	lonCount, rest, err := DecodeUint(rest, 4)
	if err != nil {
		return RawDTEDHeader{}, nil, fmt.Errorf("uhl longitude count: %w", err)
	}
	latCount, rest, err := DecodeUint(rest, 4)
	if err != nil {
		return RawDTEDHeader{}, nil, fmt.Errorf("uhl latitude count: %w", err)
	}

	// Multiple accuracy flag and reserved block, unused.
	rest = rest[25:]

	return RawDTEDHeader{
		Origin:          AxisElement[Angle]{Lat: latOrigin, Lon: lonOrigin},
		IntervalSecsX10: AxisElement[uint32]{Lat: latInterval, Lon: lonInterval},
		Accuracy:        accuracy,
		Count:           AxisElement[uint32]{Lat: latCount, Lon: lonCount},
	}, rest, nil
}
