package zoned

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wippyai/copybook"
)

// Signs maps digits to their overpunched characters.
type Signs struct {
	Positive [10]byte
	Negative [10]byte
}

// ASCII is the overpunch convention of ASCII hosts.
var ASCII = Signs{
	Positive: [10]byte{'{', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I'},
	Negative: [10]byte{'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y'},
}

// EBCDIC is the overpunch convention of EBCDIC data after translation to
// ASCII: zone C for positive and zone D for negative.
var EBCDIC = Signs{
	Positive: [10]byte{'{', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I'},
	Negative: [10]byte{'}', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R'},
}

// Unpunch returns the digit and sign held by c. ok is false when c is not
// an overpunch character.
func (s *Signs) Unpunch(c byte) (digit byte, negative, ok bool) {
	for d := byte(0); d < 10; d++ {
		if s.Positive[d] == c {
			return '0' + d, false, true
		}
		if s.Negative[d] == c {
			return '0' + d, true, true
		}
	}
	return 0, false, false
}

// DecodeNumber converts the display bytes of a numeric field into text: an
// optional '-', the digits, and a point for decimals.
// Characters that are neither digits nor overpunch are passed through so
// the numeric conversion reports them.
func DecodeNumber(data []byte, f copybook.Field, signs *Signs) string {
	if len(data) == 0 {
		return ""
	}

	raw := make([]byte, len(data))
	copy(raw, data)
	negative := false

	if f.Signed {
		last := len(raw) - 1
		if d, neg, ok := signs.Unpunch(raw[last]); ok {
			raw[last] = d
			negative = neg
		} else if raw[last] == '-' && f.Kind != copybook.Numeric {
			raw = raw[:last]
			negative = true
		}
	}

	var b strings.Builder
	b.Grow(len(raw) + 2)
	if negative {
		b.WriteByte('-')
	}

	if f.Kind == copybook.DecimalAssumed && f.Scale > 0 {
		insert := len(raw) - f.Scale
		if insert >= 0 {
			b.Write(raw[:insert])
			b.WriteByte('.')
			b.Write(raw[insert:])
			return b.String()
		}
	}

	b.Write(raw)
	return b.String()
}

// EncodeNumber writes d into dst as display digits. The value is truncated
// to the field scale and digits that do not fit are cut on the right. The
// sign is overpunched on the final digit only for signed negative values.
func EncodeNumber(dst []byte, f copybook.Field, d decimal.Decimal, signs *Signs) {
	d = d.Truncate(int32(f.Scale))
	negative := d.Sign() < 0
	digits := d.Abs().StringFixed(int32(f.Scale))

	intPart, fracPart := digits, ""
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		intPart, fracPart = digits[:i], digits[i+1:]
	}

	n := len(dst)
	if f.Kind == copybook.DecimalExplicit && f.Scale > 0 {
		width := n - f.Scale - 1
		if width <= 0 && strings.Trim(intPart, "0") == "" {
			intPart = ""
		}
		var b strings.Builder
		b.Grow(n + len(intPart))
		for i := len(intPart); i < width; i++ {
			b.WriteByte('0')
		}
		b.WriteString(intPart)
		b.WriteByte('.')
		b.WriteString(fracPart)
		out := b.String()
		copy(dst, out)
		for i := len(out); i < n; i++ {
			dst[i] = '0'
		}
	} else {
		all := intPart + fracPart
		if len(all) > n {
			all = all[:n]
		}
		pad := n - len(all)
		for i := 0; i < pad; i++ {
			dst[i] = '0'
		}
		copy(dst[pad:], all)
	}

	if f.Signed && negative && n > 0 {
		last := dst[n-1]
		if last >= '0' && last <= '9' {
			dst[n-1] = signs.Negative[last-'0']
		}
	}
}
