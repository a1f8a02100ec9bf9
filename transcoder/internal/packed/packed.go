package packed

import (
	"fmt"
	"strings"
)

const (
	SignPositive  = 0x0C
	SignNegative  = 0x0D
	SignUnsigned  = 0x0F
	maxDigitValue = 9
)

// Len returns the byte length of a packed field of the given digit count.
func Len(digits int) int {
	return digits/2 + 1
}

// Decode unpacks data holding digits digits into text: an optional '-', the
// digits, and a point scale positions from the right when scale > 0.
func Decode(data []byte, digits, scale int) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty packed field")
	}

	out := make([]byte, 0, digits+2)
	last := len(data) - 1

	for i := 0; i < last; i++ {
		hi, lo := data[i]>>4, data[i]&0x0F
		if hi > maxDigitValue || lo > maxDigitValue {
			return "", fmt.Errorf("invalid digit nibble in byte %d (0x%02X)", i, data[i])
		}
		out = append(out, '0'+hi, '0'+lo)
	}

	if digits%2 == 1 {
		hi := data[last] >> 4
		if hi > maxDigitValue {
			return "", fmt.Errorf("invalid digit nibble in byte %d (0x%02X)", last, data[last])
		}
		out = append(out, '0'+hi)
	}

	negative := data[last]&0x0F == SignNegative

	var b strings.Builder
	b.Grow(len(out) + 2)
	if negative {
		b.WriteByte('-')
	}
	if scale > 0 && scale <= len(out) {
		insert := len(out) - scale
		b.Write(out[:insert])
		b.WriteByte('.')
		b.Write(out[insert:])
	} else {
		b.Write(out)
	}
	return b.String(), nil
}

// Encode packs text, an optional sign followed by digits and at most one
// point, into dst. The point is dropped; the digits are left padded with
// zeros to digits and only the least significant digits are kept on
// overflow.
func Encode(dst []byte, text string, digits int) error {
	negative := false
	if text != "" && (text[0] == '-' || text[0] == '+') {
		negative = text[0] == '-'
		text = text[1:]
	}

	raw := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= '0' && c <= '9':
			raw = append(raw, c-'0')
		case c == '.':
		default:
			return fmt.Errorf("invalid character %q in %q", c, text)
		}
	}

	if len(raw) > digits {
		raw = raw[len(raw)-digits:]
	}
	nibbles := make([]byte, digits)
	copy(nibbles[digits-len(raw):], raw)

	if len(dst) != Len(digits) {
		return fmt.Errorf("packed field of %d digits needs %d bytes, got %d", digits, Len(digits), len(dst))
	}

	sign := byte(SignPositive)
	if negative {
		sign = SignNegative
	}

	last := len(dst) - 1
	for i := 0; i < last; i++ {
		dst[i] = nibbles[2*i]<<4 | nibbles[2*i+1]
	}
	if digits%2 == 1 {
		dst[last] = nibbles[digits-1]<<4 | sign
	} else {
		dst[last] = sign
	}
	return nil
}
