package dted

import "fmt"

// DecodeFile decodes a complete DTED file from b: the UHL header, the
// opaque DSI and ACC blocks, then exactly Count.Lon data records of
// Count.Lat samples each. Decoding is all-or-nothing; the first
// failing sub-decoder aborts and its error propagates. A zero point
// count yields an empty record slice, not an error.
func DecodeFile(b []byte) (*RawDTEDFile, error) {
	header, rest, err := DecodeUHL(b)
	if err != nil {
		return nil, err
	}

	// DSI and ACC are fixed-size blocks skipped without interpreting
	// their contents.
	if len(rest) < dsiRecordLength+accRecordLength {
		return nil, fmt.Errorf("dsi/acc blocks: %w: need %d bytes, have %d",
			ErrShortInput, dsiRecordLength+accRecordLength, len(rest))
	}
	rest = rest[dsiRecordLength+accRecordLength:]

	records := make([]RawDTEDRecord, 0, header.Count.Lon)
	for i := uint32(0); i < header.Count.Lon; i++ {
		var rec RawDTEDRecord
		rec, rest, err = DecodeRecord(rest, int(header.Count.Lat))
		if err != nil {
			return nil, fmt.Errorf("record %d of %d: %w", i, header.Count.Lon, err)
		}
		records = append(records, rec)
	}

	return &RawDTEDFile{Header: header, Records: records}, nil
}
