package types

import "github.com/wippyai/copybook"

// Kind selects the codec used for a compiled field.
type Kind uint8

const (
	KindText Kind = iota
	KindZoned
	KindBinary
	KindPacked
	KindGroup
)

var kindNames = [...]string{
	KindText:   "text",
	KindZoned:  "zoned",
	KindBinary: "binary",
	KindPacked: "packed",
	KindGroup:  "group",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsNumeric reports whether the codec produces numbers.
func (k Kind) IsNumeric() bool {
	return k == KindZoned || k == KindBinary || k == KindPacked
}

// KindOf returns the codec kind for a leaf field descriptor.
func KindOf(f copybook.Field) Kind {
	switch f.Encoding {
	case copybook.Binary:
		return KindBinary
	case copybook.PackedDecimal:
		return KindPacked
	}
	if f.Kind == copybook.Alphanumeric {
		return KindText
	}
	return KindZoned
}
