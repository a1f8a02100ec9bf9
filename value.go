package copybook

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wippyai/copybook/errors"
	"github.com/wippyai/copybook/numeric"
)

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

const (
	InvalidValue ValueKind = iota
	TextValue
	IntValue
	DecimalValue
	GroupValue
)

var valueKindNames = [...]string{
	InvalidValue: "invalid",
	TextValue:    "text",
	IntValue:     "int",
	DecimalValue: "decimal",
	GroupValue:   "group",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "unknown"
}

// Value is a decoded field value: text, integer, decimal or nested record.
// The zero Value is invalid.
type Value struct {
	dec  decimal.Decimal
	rec  Record
	str  string
	i    int64
	kind ValueKind
}

// Text wraps a string.
func Text(s string) Value {
	return Value{kind: TextValue, str: s}
}

// Int wraps an integer.
func Int(i int64) Value {
	return Value{kind: IntValue, i: i}
}

// Decimal wraps an exact decimal.
func Decimal(d decimal.Decimal) Value {
	return Value{kind: DecimalValue, dec: d}
}

// DecimalString parses s as a decimal and panics if it is malformed.
// Intended for literals.
func DecimalString(s string) Value {
	d, err := numeric.ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return Decimal(d)
}

// Group wraps a nested record.
func Group(r Record) Value {
	return Value{kind: GroupValue, rec: r}
}

// Kind returns the variant held by v.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsValid reports whether v holds any variant.
func (v Value) IsValid() bool {
	return v.kind != InvalidValue
}

// Str returns the text of a Text value, or the canonical string otherwise.
func (v Value) Str() string {
	if v.kind == TextValue {
		return v.str
	}
	return v.String()
}

// Int64 returns the integer of an Int value, or the integral part of a
// Decimal value. Other variants return 0.
func (v Value) Int64() int64 {
	switch v.kind {
	case IntValue:
		return v.i
	case DecimalValue:
		return v.dec.IntPart()
	}
	return 0
}

// Dec returns the numeric value as a decimal. Non-numeric variants return zero.
func (v Value) Dec() decimal.Decimal {
	switch v.kind {
	case IntValue:
		return decimal.NewFromInt(v.i)
	case DecimalValue:
		return v.dec
	}
	return decimal.Zero
}

// Record returns the nested record of a Group value.
func (v Value) Record() Record {
	return v.rec
}

// AsInt8 converts v to an int8, failing on overflow or non-numeric text.
func (v Value) AsInt8() (int8, error) {
	i, err := v.asInt(numeric.Int8)
	return int8(i), err
}

// AsInt16 converts v to an int16.
func (v Value) AsInt16() (int16, error) {
	i, err := v.asInt(numeric.Int16)
	return int16(i), err
}

// AsInt32 converts v to an int32.
func (v Value) AsInt32() (int32, error) {
	i, err := v.asInt(numeric.Int32)
	return int32(i), err
}

// AsInt64 converts v to an int64.
func (v Value) AsInt64() (int64, error) {
	return v.asInt(numeric.Int64)
}

func (v Value) asInt(t numeric.Target) (int64, error) {
	switch v.kind {
	case IntValue:
		return numeric.Narrow(v.i, t)
	case DecimalValue:
		return numeric.NarrowDecimal(v.dec, t)
	case TextValue:
		return numeric.ParseInt(v.str, t)
	}
	return 0, errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
		Target(t.String()).
		Detail("cannot convert %s value", v.kind).
		Build()
}

// AsDecimal converts v to a decimal. Text is parsed.
func (v Value) AsDecimal() (decimal.Decimal, error) {
	switch v.kind {
	case IntValue:
		return decimal.NewFromInt(v.i), nil
	case DecimalValue:
		return v.dec, nil
	case TextValue:
		return numeric.ParseDecimal(v.str)
	}
	return decimal.Zero, errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
		Target(numeric.Decimal.String()).
		Detail("cannot convert %s value", v.kind).
		Build()
}

// Equal reports whether v and o hold the same variant and content.
// Decimals compare numerically.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case TextValue:
		return v.str == o.str
	case IntValue:
		return v.i == o.i
	case DecimalValue:
		return v.dec.Equal(o.dec)
	case GroupValue:
		return v.rec.Equal(o.rec)
	}
	return true
}

// String returns the canonical representation: text as is, numbers in plain
// decimal notation, groups as {name: value, ...} in name order.
func (v Value) String() string {
	switch v.kind {
	case TextValue:
		return v.str
	case IntValue:
		return strconv.FormatInt(v.i, 10)
	case DecimalValue:
		return v.dec.String()
	case GroupValue:
		return v.rec.String()
	}
	return "<invalid>"
}

// Native converts v into plain Go values: string, int64, json.Number for
// decimals, map[string]any for groups.
func (v Value) Native() any {
	switch v.kind {
	case TextValue:
		return v.str
	case IntValue:
		return v.i
	case DecimalValue:
		return json.Number(v.dec.String())
	case GroupValue:
		return v.rec.Native()
	}
	return nil
}

// MarshalJSON encodes numbers unquoted so decimals keep every digit.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case IntValue:
		return strconv.AppendInt(nil, v.i, 10), nil
	case DecimalValue:
		return []byte(v.dec.String()), nil
	case GroupValue:
		return json.Marshal(v.rec)
	case TextValue:
		return json.Marshal(v.str)
	}
	return []byte("null"), nil
}

// Record maps entry names to values.
type Record map[string]Value

// Get follows path through nested groups.
func (r Record) Get(path ...string) (Value, bool) {
	cur := r
	for i, name := range path {
		v, ok := cur[name]
		if !ok {
			return Value{}, false
		}
		if i == len(path)-1 {
			return v, true
		}
		if v.kind != GroupValue {
			return Value{}, false
		}
		cur = v.rec
	}
	return Value{}, false
}

// Equal reports whether both records hold equal values under the same names.
func (r Record) Equal(o Record) bool {
	if len(r) != len(o) {
		return false
	}
	for k, v := range r {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Native converts the record into map[string]any using Value.Native.
func (r Record) Native() map[string]any {
	m := make(map[string]any, len(r))
	for k, v := range r {
		m[k] = v.Native()
	}
	return m
}

func (r Record) String() string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", k, r[k])
	}
	b.WriteByte('}')
	return b.String()
}
