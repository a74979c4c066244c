package dted

import (
	"encoding/binary"
	"fmt"
)

// recordLength returns the byte length of a data record holding
// lineLen elevation samples: sentinel (1) + block count (3) + line
// indices (2+2) + samples (2 each) + checksum (4).
func recordLength(lineLen int) int {
	return 12 + 2*lineLen
}

// DecodeRecord decodes one elevation profile line of lineLen samples
// (the header's latitude count) and returns the record and the
// unconsumed tail. The trailing 4-byte checksum is consumed but not
// validated.
func DecodeRecord(b []byte, lineLen int) (RawDTEDRecord, []byte, error) {
	need := recordLength(lineLen)
	if len(b) < need {
		return RawDTEDRecord{}, nil, fmt.Errorf("record: %w: need %d bytes, have %d", ErrShortInput, need, len(b))
	}
	if b[0] != sentinelData[0] {
		return RawDTEDRecord{}, nil, fmt.Errorf("record: %w: want %#x, got %#x", ErrTagMismatch, sentinelData[0], b[0])
	}

	// The block counter is 24 bits wide, split into a 1-byte high part
	// (always 0 in practice) and a big-endian 16-bit low part.
	high := uint32(b[1])
	low := uint32(binary.BigEndian.Uint16(b[2:4]))

	rec := RawDTEDRecord{
		BlockCount: high*0x10000 + low,
		LonCount:   binary.BigEndian.Uint16(b[4:6]),
		LatCount:   binary.BigEndian.Uint16(b[6:8]),
		Elevations: make([]int16, lineLen),
	}
	for i := 0; i < lineLen; i++ {
		rec.Elevations[i] = SignedMag16(binary.BigEndian.Uint16(b[8+2*i:]))
	}

	// The 4 checksum bytes after the samples are skipped unverified.
	return rec, b[need:], nil
}
