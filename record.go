package copybook

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wippyai/copybook/errors"
	"github.com/wippyai/copybook/numeric"
)

// FieldRange locates one leaf field inside an encoded record.
// Start and End are byte offsets relative to the record start.
type FieldRange struct {
	Path  []string
	Field Field
	Start int
	End   int
}

// Len returns the byte length of the range.
func (r FieldRange) Len() int {
	return r.End - r.Start
}

// Name returns the dotted field path.
func (r FieldRange) Name() string {
	return strings.Join(r.Path, ".")
}

// Blank returns a record holding the initial value of every field: spaces
// for alphanumerics and zero for numerics, recursing into groups.
func Blank(s *Schema) Record {
	r := make(Record, len(s.Entries))
	for _, e := range s.Entries {
		if e.Group != nil {
			r[e.Name] = Group(Blank(e.Group))
			continue
		}
		r[e.Name] = Zero(e.Field)
	}
	return r
}

// Zero returns the initial value of a single field.
func Zero(f Field) Value {
	switch f.Kind {
	case Alphanumeric:
		return Text(strings.Repeat(" ", f.Length))
	case Numeric:
		return Int(0)
	default:
		return Decimal(decimal.New(0, int32(-f.Scale)))
	}
}

// FromNative builds a record from plain Go values, such as the result of
// decoding JSON into map[string]any. Names absent from m are left out.
// Numeric fields accept integers, floats, json.Number and numeric strings.
func FromNative(s *Schema, m map[string]any) (Record, error) {
	return fromNative(s, m, nil)
}

func fromNative(s *Schema, m map[string]any, path []string) (Record, error) {
	r := make(Record, len(s.Entries))
	for _, e := range s.Entries {
		raw, ok := m[e.Name]
		if !ok || raw == nil {
			continue
		}
		p := append(append([]string(nil), path...), e.Name)

		if e.Group != nil {
			sub, ok := raw.(map[string]any)
			if !ok {
				return nil, errors.TypeMismatch(errors.PhaseConvert, p, "group", fmt.Sprintf("%T", raw))
			}
			rec, err := fromNative(e.Group, sub, p)
			if err != nil {
				return nil, err
			}
			r[e.Name] = Group(rec)
			continue
		}

		v, err := nativeValue(e.Field, raw)
		if err != nil {
			return nil, errors.WithPath(err, errors.PhaseConvert, p)
		}
		r[e.Name] = v
	}
	return r, nil
}

func nativeValue(f Field, raw any) (Value, error) {
	if f.Kind == Alphanumeric {
		switch x := raw.(type) {
		case string:
			return Text(x), nil
		default:
			return Text(fmt.Sprint(x)), nil
		}
	}

	var d decimal.Decimal
	switch x := raw.(type) {
	case int:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case int32:
		return Int(int64(x)), nil
	case uint64:
		if x <= math.MaxInt64 {
			return Int(int64(x)), nil
		}
		d = decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0)
	case float64:
		d = decimal.NewFromFloat(x)
	case json.Number:
		p, err := numeric.ParseDecimal(string(x))
		if err != nil {
			return Value{}, err
		}
		d = p
	case string:
		p, err := numeric.ParseDecimal(x)
		if err != nil {
			return Value{}, err
		}
		d = p
	case decimal.Decimal:
		d = x
	default:
		return Value{}, errors.TypeMismatch(errors.PhaseConvert, nil, f.Picture(), fmt.Sprintf("%T", raw))
	}

	if f.Kind == Numeric && d.IsInteger() {
		if b := d.BigInt(); b.IsInt64() {
			return Int(b.Int64()), nil
		}
	}
	return Decimal(d), nil
}
