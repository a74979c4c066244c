package dted

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Sign-magnitude layout of a 16-bit elevation sample.
const (
	signBit16 uint16 = 0x8000
	magMask16 uint16 = 0x7FFF
)

// DecodeUint interprets the first width bytes of b as an unsigned
// ASCII decimal number (no sign, no whitespace) and returns the value
// and the unconsumed tail. Field widths in DTED never exceed the
// capacity of a uint32, so no overflow check is made.
func DecodeUint(b []byte, width int) (uint32, []byte, error) {
	if len(b) < width {
		return 0, nil, fmt.Errorf("%w: need %d bytes, have %d", ErrShortInput, width, len(b))
	}
	var v uint32
	for i := 0; i < width; i++ {
		c := b[i]
		if c < '0' || c > '9' {
			return 0, nil, fmt.Errorf("%w: byte %d is %#x, want ASCII digit", ErrBadDigit, i, c)
		}
		v = v*10 + uint32(c-'0')
	}
	return v, b[width:], nil
}

// DecodeUintDefault is DecodeUint with a distinct zero-width mode: a
// width of 0 consumes nothing and yields def. Header layouts use this
// for trailing fields that older format variants omit.
func DecodeUintDefault(b []byte, width int, def uint32) (uint32, []byte, error) {
	if width == 0 {
		return def, b, nil
	}
	return DecodeUint(b, width)
}

// DecodeNA decodes a width-byte numeric field that may instead hold
// the "not available" sentinel. Sentinel detection takes priority over
// numeric decoding: a field beginning with "NA" consumes the full
// width and returns nil, and is never misread as a number.
func DecodeNA(b []byte, width int) (*uint32, []byte, error) {
	if bytes.HasPrefix(b, sentinelNA) {
		if len(b) < width {
			return nil, nil, fmt.Errorf("%w: need %d bytes, have %d", ErrShortInput, width, len(b))
		}
		return nil, b[width:], nil
	}
	v, rest, err := DecodeUint(b, width)
	if err != nil {
		return nil, nil, err
	}
	return &v, rest, nil
}

// SignedMag16 converts a raw 16-bit pattern from sign-magnitude
// representation: bit 15 is the sign, bits 0-14 the magnitude. This is
// not two's complement; 0x8003 is -3. Both 0x0000 and 0x8000 decode to
// zero, and -32768 is unrepresentable in the format. Branch-free:
// (1 - 2*sign) * magnitude.
func SignedMag16(x uint16) int16 {
	mag := int16(x & magMask16)
	sign := int16((x & signBit16) >> 15)
	return (1 - sign<<1) * mag
}

// DecodeSignedMag reads exactly two bytes as a big-endian
// sign-magnitude elevation sample.
func DecodeSignedMag(b []byte) (int16, []byte, error) {
	if len(b) < 2 {
		return 0, nil, fmt.Errorf("%w: need 2 bytes, have %d", ErrShortInput, len(b))
	}
	return SignedMag16(binary.BigEndian.Uint16(b)), b[2:], nil
}

// DecodeAngle decodes a degrees/minutes/seconds angle with the given
// field widths (each may be zero-width, defaulting that component to
// 0), then an optional single hemisphere character from {N, S, E, W}.
// S and W set the negative flag; absence of a hemisphere character
// leaves the angle non-negative. The same decoder serves latitude and
// longitude fields; direction is a caller-side labelling convention.
func DecodeAngle(b []byte, degWidth, minWidth, secWidth int) (Angle, []byte, error) {
	deg, rest, err := DecodeUintDefault(b, degWidth, 0)
	if err != nil {
		return Angle{}, nil, fmt.Errorf("degrees: %w", err)
	}
	min, rest, err := DecodeUintDefault(rest, minWidth, 0)
	if err != nil {
		return Angle{}, nil, fmt.Errorf("minutes: %w", err)
	}
	sec, rest, err := DecodeUintDefault(rest, secWidth, 0)
	if err != nil {
		return Angle{}, nil, fmt.Errorf("seconds: %w", err)
	}

	a := Angle{Deg: uint16(deg), Min: uint8(min), Sec: float64(sec)}
	if len(rest) > 0 {
		switch rest[0] {
		case 'N', 'E':
			rest = rest[1:]
		case 'S', 'W':
			a.Negative = true
			rest = rest[1:]
		}
	}
	return a, rest, nil
}
