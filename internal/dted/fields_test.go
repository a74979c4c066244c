package dted

import (
	"errors"
	"math"
	"testing"
)

func TestDecodeUint(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		want     uint32
		wantRest string
		wantErr  error
	}{
		{name: "three digits", input: "123", width: 3, want: 123, wantRest: ""},
		{name: "leading zeros", input: "0042", width: 4, want: 42, wantRest: ""},
		{name: "partial consume", input: "12345", width: 3, want: 123, wantRest: "45"},
		{name: "all zeros", input: "0000", width: 4, want: 0, wantRest: ""},
		{name: "short input", input: "12", width: 3, wantErr: ErrShortInput},
		{name: "non-digit", input: "12X4", width: 4, wantErr: ErrBadDigit},
		{name: "space is not a digit", input: " 123", width: 4, wantErr: ErrBadDigit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest, err := DecodeUint([]byte(tt.input), tt.width)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeUint error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeUint error = %v", err)
			}
			if got != tt.want {
				t.Errorf("value = %d, want %d", got, tt.want)
			}
			if string(rest) != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}

func TestDecodeUintDefault(t *testing.T) {
	// Zero width consumes nothing and yields the supplied default.
	for _, def := range []uint32{0, 7, 4096} {
		got, rest, err := DecodeUintDefault([]byte("123"), 0, def)
		if err != nil {
			t.Fatalf("DecodeUintDefault error = %v", err)
		}
		if got != def {
			t.Errorf("value = %d, want default %d", got, def)
		}
		if string(rest) != "123" {
			t.Errorf("rest = %q, want %q (nothing consumed)", rest, "123")
		}
	}

	// Non-zero width behaves exactly like DecodeUint.
	got, rest, err := DecodeUintDefault([]byte("123"), 3, 99)
	if err != nil {
		t.Fatalf("DecodeUintDefault error = %v", err)
	}
	if got != 123 || len(rest) != 0 {
		t.Errorf("got %d rest %q, want 123 with empty rest", got, rest)
	}
}

func TestDecodeNA(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		wantNA   bool
		want     uint32
		wantRest string
		wantErr  error
	}{
		{name: "sentinel consumes full width", input: "NA$$", width: 4, wantNA: true, wantRest: ""},
		{name: "sentinel with trailing bytes", input: "NA$$5", width: 4, wantNA: true, wantRest: "5"},
		{name: "digits decode as present", input: "12345", width: 4, want: 1234, wantRest: "5"},
		{name: "sentinel beats digit lookalike", input: "NA12", width: 4, wantNA: true, wantRest: ""},
		{name: "sentinel short field", input: "NA$", width: 4, wantErr: ErrShortInput},
		{name: "non-digit non-sentinel", input: "XY$$", width: 4, wantErr: ErrBadDigit},
		{name: "short numeric field", input: "12", width: 4, wantErr: ErrShortInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest, err := DecodeNA([]byte(tt.input), tt.width)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeNA error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeNA error = %v", err)
			}
			if tt.wantNA {
				if got != nil {
					t.Errorf("value = %d, want absent", *got)
				}
			} else {
				if got == nil {
					t.Fatalf("value absent, want %d", tt.want)
				}
				if *got != tt.want {
					t.Errorf("value = %d, want %d", *got, tt.want)
				}
			}
			if string(rest) != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}

func TestSignedMag16(t *testing.T) {
	tests := []struct {
		in   uint16
		want int16
	}{
		{0x0000, 0},
		{0x0003, 3},
		{0x8003, -3},
		{0x7FFF, 32767},
		{0xFFFF, -32767},
		{0x8000, 0}, // Negative zero decodes to zero.
		{0x0064, 100},
		{0x8064, -100},
	}

	for _, tt := range tests {
		if got := SignedMag16(tt.in); got != tt.want {
			t.Errorf("SignedMag16(%#04x) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSignedMag16RoundTrip(t *testing.T) {
	// Re-encoding magnitude + sign bit reproduces every pattern except
	// negative zero, which canonically encodes as 0x0000.
	for x := 0; x <= 0xFFFF; x++ {
		v := SignedMag16(uint16(x))

		var enc uint16
		if v < 0 {
			enc = uint16(-v) | 0x8000
		} else {
			enc = uint16(v)
		}

		want := uint16(x)
		if x == 0x8000 {
			want = 0x0000
		}
		if enc != want {
			t.Fatalf("round trip %#04x -> %d -> %#04x, want %#04x", x, v, enc, want)
		}
	}
}

func TestDecodeSignedMag(t *testing.T) {
	tests := []struct {
		in   []byte
		want int16
	}{
		{[]byte{0x00, 0x00}, 0},
		{[]byte{0x00, 0x03}, 3},
		{[]byte{0x80, 0x03}, -3},
		{[]byte{0x7F, 0xFF}, 32767},
		{[]byte{0xFF, 0xFF}, -32767},
	}

	for _, tt := range tests {
		got, rest, err := DecodeSignedMag(tt.in)
		if err != nil {
			t.Fatalf("DecodeSignedMag(% x) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("DecodeSignedMag(% x) = %d, want %d", tt.in, got, tt.want)
		}
		if len(rest) != 0 {
			t.Errorf("rest has %d bytes, want 0", len(rest))
		}
	}

	if _, _, err := DecodeSignedMag([]byte{0x01}); !errors.Is(err, ErrShortInput) {
		t.Errorf("one-byte input error = %v, want %v", err, ErrShortInput)
	}
}

func TestDecodeAngle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		widths   [3]int
		want     Angle
		wantRest string
	}{
		{
			name:   "east hemisphere",
			input:  "12345E",
			widths: [3]int{3, 1, 1},
			want:   Angle{Deg: 123, Min: 4, Sec: 5.0},
		},
		{
			name:   "west hemisphere",
			input:  "12345W",
			widths: [3]int{3, 1, 1},
			want:   Angle{Deg: 123, Min: 4, Sec: 5.0, Negative: true},
		},
		{
			name:   "no hemisphere defaults positive",
			input:  "12345",
			widths: [3]int{3, 1, 1},
			want:   Angle{Deg: 123, Min: 4, Sec: 5.0},
		},
		{
			name:   "south hemisphere",
			input:  "0431500S",
			widths: [3]int{3, 2, 2},
			want:   Angle{Deg: 43, Min: 15, Sec: 0, Negative: true},
		},
		{
			name:     "zero widths use defaults",
			input:    "045N77",
			widths:   [3]int{3, 0, 0},
			want:     Angle{Deg: 45},
			wantRest: "77",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest, err := DecodeAngle([]byte(tt.input), tt.widths[0], tt.widths[1], tt.widths[2])
			if err != nil {
				t.Fatalf("DecodeAngle error = %v", err)
			}
			if got != tt.want {
				t.Errorf("angle = %+v, want %+v", got, tt.want)
			}
			if string(rest) != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}

	if _, _, err := DecodeAngle([]byte("12"), 3, 2, 2); !errors.Is(err, ErrShortInput) {
		t.Errorf("short input error = %v, want %v", err, ErrShortInput)
	}
}

func TestAngleDecimal(t *testing.T) {
	tests := []struct {
		a    Angle
		want float64
	}{
		{Angle{Deg: 45}, 45.0},
		{Angle{Deg: 45, Min: 30}, 45.5},
		{Angle{Deg: 120, Min: 15, Sec: 36}, 120.26},
		{Angle{Deg: 45, Min: 30, Negative: true}, -45.5},
		{Angle{}, 0},
	}

	for _, tt := range tests {
		if got := tt.a.Decimal(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%+v Decimal() = %g, want %g", tt.a, got, tt.want)
		}
	}
}
