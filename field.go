package copybook

import (
	"strconv"
	"strings"

	"github.com/wippyai/copybook/errors"
)

// Kind is the COBOL data class of a field.
type Kind uint8

const (
	Alphanumeric Kind = iota
	Numeric
	DecimalAssumed
	DecimalExplicit
)

var kindNames = [...]string{
	Alphanumeric:    "alphanumeric",
	Numeric:         "numeric",
	DecimalAssumed:  "decimal-assumed",
	DecimalExplicit: "decimal-explicit",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsNumeric reports whether k belongs to the numeric family.
func (k Kind) IsNumeric() bool {
	return k == Numeric || k == DecimalAssumed || k == DecimalExplicit
}

// Encoding is the storage usage of a field.
type Encoding uint8

const (
	Display Encoding = iota
	Binary
	PackedDecimal
)

var encodingNames = [...]string{
	Display:       "display",
	Binary:        "comp",
	PackedDecimal: "comp-3",
}

func (e Encoding) String() string {
	if int(e) < len(encodingNames) {
		return encodingNames[e]
	}
	return "unknown"
}

// MaxBinaryDigits is the largest declared length a COMP field may have.
const MaxBinaryDigits = 18

// Field describes one elementary item of a record layout.
// Length counts COBOL positions: digits for numerics, characters for
// alphanumerics, and digits plus the literal point for explicit decimals.
type Field struct {
	Kind        Kind
	Length      int
	Scale       int
	Signed      bool
	Encoding    Encoding
	Description string
}

// PicX declares an alphanumeric field of n characters.
func PicX(n int) Field {
	return Field{Kind: Alphanumeric, Length: n}
}

// Pic9 declares an integer field of n digits.
func Pic9(n int) Field {
	return Field{Kind: Numeric, Length: n}
}

// Pic9V9 declares a decimal with an assumed point: length digits in total,
// scale of them after the point.
func Pic9V9(length, scale int) Field {
	return Field{Kind: DecimalAssumed, Length: length, Scale: scale}
}

// Pic9Dot9 declares a decimal with a literal point. Length includes the
// point position.
func Pic9Dot9(length, scale int) Field {
	return Field{Kind: DecimalExplicit, Length: length, Scale: scale}
}

// WithSign returns a copy of f marked signed.
func (f Field) WithSign() Field {
	f.Signed = true
	return f
}

// Comp returns a copy of f stored as a binary integer.
func (f Field) Comp() Field {
	f.Encoding = Binary
	return f
}

// Comp3 returns a copy of f stored as packed decimal.
func (f Field) Comp3() Field {
	f.Encoding = PackedDecimal
	return f
}

// Describe returns a copy of f with a description attached.
func (f Field) Describe(s string) Field {
	f.Description = s
	return f
}

// Digits returns the number of decimal digits the field holds.
func (f Field) Digits() int {
	if f.Kind == DecimalExplicit && f.Scale > 0 && f.Encoding == Display {
		return f.Length - 1
	}
	return f.Length
}

// IntDigits returns the number of digits before the decimal point.
func (f Field) IntDigits() int {
	return f.Digits() - f.Scale
}

// Validate checks the descriptor invariants.
func (f Field) Validate() error {
	if f.Kind > DecimalExplicit {
		return errors.InvalidSchema(nil, "unknown kind %d", f.Kind)
	}
	if f.Encoding > PackedDecimal {
		return errors.InvalidSchema(nil, "unknown encoding %d", f.Encoding)
	}
	if f.Length <= 0 {
		return errors.InvalidSchema(nil, "length must be positive, got %d", f.Length)
	}
	if f.Scale < 0 || f.Scale > f.Length {
		return errors.InvalidSchema(nil, "scale %d outside [0,%d]", f.Scale, f.Length)
	}
	if f.Encoding != Display && !f.Kind.IsNumeric() {
		return errors.InvalidSchema(nil, "%s usage requires a numeric field, got %s", f.Encoding, f.Kind)
	}
	if f.Encoding == Binary && f.Length > MaxBinaryDigits {
		return errors.InvalidSchema(nil, "comp length %d exceeds %d digits", f.Length, MaxBinaryDigits)
	}
	if f.Kind == Numeric && f.Scale != 0 {
		return errors.InvalidSchema(nil, "numeric field cannot have scale %d", f.Scale)
	}
	if f.Kind == DecimalExplicit && f.Scale > 0 && f.Length < f.Scale+1 {
		return errors.InvalidSchema(nil, "explicit decimal of length %d has no room for the point and %d decimals", f.Length, f.Scale)
	}
	return nil
}

// Picture renders the COBOL picture clause, e.g. "S9(5)V9(2) COMP-3".
func (f Field) Picture() string {
	var b strings.Builder

	if f.Kind == Alphanumeric {
		pic(&b, 'X', f.Length)
		return b.String()
	}

	if f.Signed {
		b.WriteByte('S')
	}

	switch {
	case f.Kind == Numeric || f.Scale == 0:
		pic(&b, '9', f.Length)
	case f.Kind == DecimalAssumed || f.Encoding != Display:
		if n := f.Length - f.Scale; n > 0 {
			pic(&b, '9', n)
		}
		b.WriteByte('V')
		pic(&b, '9', f.Scale)
	default:
		if n := f.Length - f.Scale - 1; n > 0 {
			pic(&b, '9', n)
		}
		b.WriteByte('.')
		pic(&b, '9', f.Scale)
	}

	switch f.Encoding {
	case Binary:
		b.WriteString(" COMP")
	case PackedDecimal:
		b.WriteString(" COMP-3")
	}
	return b.String()
}

func pic(b *strings.Builder, c byte, n int) {
	b.WriteByte(c)
	b.WriteByte('(')
	b.WriteString(strconv.Itoa(n))
	b.WriteByte(')')
}
