package numeric

import (
	stderrors "errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wippyai/copybook/errors"
)

// Target is the numeric type a text value is converted into.
type Target uint8

const (
	Int8 Target = iota
	Int16
	Int32
	Int64
	Decimal
)

var targetNames = [...]string{
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Decimal: "decimal",
}

func (t Target) String() string {
	if int(t) < len(targetNames) {
		return targetNames[t]
	}
	return "unknown"
}

// Bits returns the integer width of t, or 0 for Decimal.
func (t Target) Bits() int {
	switch t {
	case Int8:
		return 8
	case Int16:
		return 16
	case Int32:
		return 32
	case Int64:
		return 64
	default:
		return 0
	}
}

func (t Target) bounds() (int64, int64) {
	switch t {
	case Int8:
		return math.MinInt8, math.MaxInt8
	case Int16:
		return math.MinInt16, math.MaxInt16
	case Int32:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

var (
	errEmpty    = stderrors.New("empty input")
	errSyntax   = stderrors.New("not a number")
	errOverflow = stderrors.New("value out of range")
)

// ParseInt converts text into a signed integer that fits t.
func ParseInt(text string, t Target) (int64, error) {
	if t == Decimal {
		return 0, errors.New(errors.PhaseConvert, errors.KindUnsupported).
			Target(t.String()).
			Detail("ParseInt cannot produce a decimal, use ParseDecimal").
			Build()
	}

	s := strings.TrimSpace(text)
	if s == "" {
		return 0, errors.Conversion(text, t.String(), errEmpty)
	}
	if !isInteger(s) {
		return 0, errors.Conversion(text, t.String(), errSyntax)
	}

	v, err := strconv.ParseInt(s, 10, t.Bits())
	if err != nil {
		return 0, errors.Conversion(text, t.String(), errOverflow)
	}
	return v, nil
}

// ParseDecimal converts text holding an optional sign, digits and at most
// one decimal point into an exact decimal. Exponent notation is rejected.
func ParseDecimal(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, errors.Conversion(text, Decimal.String(), errEmpty)
	}
	if !isDecimal(s) {
		return decimal.Zero, errors.Conversion(text, Decimal.String(), errSyntax)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Conversion(text, Decimal.String(), err)
	}
	return d, nil
}

// Narrow checks that v fits t and returns it unchanged.
func Narrow(v int64, t Target) (int64, error) {
	lo, hi := t.bounds()
	if v < lo || v > hi {
		return 0, errors.Conversion(strconv.FormatInt(v, 10), t.String(), errOverflow)
	}
	return v, nil
}

// NarrowDecimal converts d into an integer of width t. Fractional digits
// must be zero.
func NarrowDecimal(d decimal.Decimal, t Target) (int64, error) {
	if !d.IsInteger() {
		return 0, errors.Conversion(d.String(), t.String(), errSyntax)
	}
	b := d.BigInt()
	if !b.IsInt64() {
		return 0, errors.Conversion(d.String(), t.String(), errOverflow)
	}
	return Narrow(b.Int64(), t)
}

// FromBig builds the decimal unscaled×10^-scale.
func FromBig(unscaled *big.Int, scale int) decimal.Decimal {
	return decimal.NewFromBigInt(unscaled, int32(-scale))
}

// Unscaled returns d×10^scale as an integer, dropping any digits past scale.
func Unscaled(d decimal.Decimal, scale int) *big.Int {
	return d.Shift(int32(scale)).Truncate(0).BigInt()
}

func isInteger(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isDecimal(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	digits, points := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			points++
		default:
			return false
		}
	}
	return digits > 0 && points <= 1
}
