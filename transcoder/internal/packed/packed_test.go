package packed

import (
	"bytes"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		digits int
		scale  int
		want   string
	}{
		{"odd positive", []byte{0x00, 0x06, 0x50, 0x0C}, 7, 2, "00650.00"},
		{"odd negative", []byte{0x00, 0x06, 0x50, 0x0D}, 7, 2, "-00650.00"},
		{"unsigned F", []byte{0x12, 0x3F}, 3, 0, "123"},
		{"other sign positive", []byte{0x12, 0x3A}, 3, 0, "123"},
		{"single digit", []byte{0x7D}, 1, 0, "-7"},
		{"even length", []byte{0x12, 0x34, 0x0C}, 4, 0, "1234"},
		{"even length ignores high nibble", []byte{0x12, 0x34, 0x5D}, 4, 1, "-123.4"},
		{"all scale", []byte{0x05, 0x0C}, 2, 2, ".05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data, tt.digits, tt.scale)
			if err != nil {
				t.Fatalf("Decode(% x) error: %v", tt.data, err)
			}
			if got != tt.want {
				t.Errorf("Decode(% x) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		digits int
	}{
		{"bad high nibble", []byte{0xA0, 0x0C}, 3},
		{"bad low nibble", []byte{0x0B, 0x0C}, 3},
		{"bad final digit", []byte{0x00, 0xEC}, 3},
		{"empty", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data, tt.digits, 0); err == nil {
				t.Errorf("Decode(% x) should fail", tt.data)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		digits int
		want   []byte
	}{
		{"balance 650.00", "650.00", 7, []byte{0x00, 0x06, 0x50, 0x0C}},
		{"negative", "-650.00", 7, []byte{0x00, 0x06, 0x50, 0x0D}},
		{"explicit plus", "+12", 3, []byte{0x01, 0x2C}},
		{"zero", "0", 1, []byte{0x0C}},
		{"even length", "1234", 4, []byte{0x12, 0x34, 0x0C}},
		{"overflow keeps low digits", "123456", 3, []byte{0x45, 0x6C}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, Len(tt.digits))
			if err := Encode(dst, tt.text, tt.digits); err != nil {
				t.Fatalf("Encode(%q) error: %v", tt.text, err)
			}
			if !bytes.Equal(dst, tt.want) {
				t.Errorf("Encode(%q) = % x, want % x", tt.text, dst, tt.want)
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	if err := Encode(make([]byte, 2), "12a", 3); err == nil {
		t.Error("expected error for non-digit")
	}
	if err := Encode(make([]byte, 5), "1", 3); err == nil {
		t.Error("expected error for wrong buffer size")
	}
}

func TestSignFidelity(t *testing.T) {
	for _, digits := range []int{1, 2, 5, 6, 15} {
		for _, text := range []string{"1", "-1", "0"} {
			dst := make([]byte, Len(digits))
			if err := Encode(dst, text, digits); err != nil {
				t.Fatal(err)
			}
			sign := dst[len(dst)-1] & 0x0F
			wantSign := byte(SignPositive)
			if text[0] == '-' {
				wantSign = SignNegative
			}
			if sign != wantSign {
				t.Errorf("digits %d %s: sign nibble %X, want %X", digits, text, sign, wantSign)
			}
			got, err := Decode(dst, digits, 0)
			if err != nil {
				t.Fatal(err)
			}
			if (got[0] == '-') != (text[0] == '-') {
				t.Errorf("digits %d %s: decoded %s", digits, text, got)
			}
		}
	}
}
