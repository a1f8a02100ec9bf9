package schema

import (
	"fmt"
	"strings"
	"unicode"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/copybook"
)

// WIT describes the decoded record shape of s as a WIT record type.
// Integers become sized signed or unsigned types, decimals and
// alphanumerics become strings, and groups become nested named records.
func WIT(s *copybook.Schema) *wit.TypeDef {
	name := Ident(s.Name)
	fields := make([]wit.Field, 0, len(s.Entries))
	for _, e := range s.Entries {
		fields = append(fields, wit.Field{Name: Ident(e.Name), Type: entryType(e)})
	}
	return &wit.TypeDef{
		Name: &name,
		Kind: &wit.Record{Fields: fields},
	}
}

func entryType(e copybook.Entry) wit.Type {
	if e.Group != nil {
		td := WIT(e.Group)
		if e.Group.Name == "" {
			n := Ident(e.Name)
			td.Name = &n
		}
		return td
	}
	return FieldType(e.Field)
}

// FieldType returns the WIT type a decoded value of f fits in.
func FieldType(f copybook.Field) wit.Type {
	if f.Kind != copybook.Numeric || f.Scale != 0 {
		return wit.String{}
	}
	switch d := f.Digits(); {
	case d <= 2:
		if f.Signed {
			return wit.S8{}
		}
		return wit.U8{}
	case d <= 4:
		if f.Signed {
			return wit.S16{}
		}
		return wit.U16{}
	case d <= 9:
		if f.Signed {
			return wit.S32{}
		}
		return wit.U32{}
	case d <= copybook.MaxBinaryDigits:
		if f.Signed {
			return wit.S64{}
		}
		return wit.U64{}
	default:
		return wit.String{}
	}
}

// Ident converts a schema name into a WIT identifier: lower case words
// joined by hyphens. Occurs indexes are folded into the preceding word,
// so "PHONE_NO[1]" becomes "phone-no1".
func Ident(name string) string {
	var b strings.Builder
	sep := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r):
			if sep && b.Len() > 0 {
				b.WriteByte('-')
			}
			sep = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsDigit(r):
			if b.Len() == 0 {
				b.WriteByte('f')
			} else if sep {
				// a word cannot start with a digit
				sep = false
			}
			b.WriteRune(r)
		default:
			sep = true
		}
	}
	if b.Len() == 0 {
		return "field"
	}
	return b.String()
}

// Format renders td and every nested record it references as WIT
// source, innermost records first.
func Format(td *wit.TypeDef) string {
	var b strings.Builder
	seen := map[string]bool{}
	format(&b, td, seen)
	return b.String()
}

func format(b *strings.Builder, td *wit.TypeDef, seen map[string]bool) {
	r, ok := td.Kind.(*wit.Record)
	if !ok {
		return
	}
	name := TypeName(td)
	if seen[name] {
		return
	}
	seen[name] = true

	for _, f := range r.Fields {
		if nested, ok := f.Type.(*wit.TypeDef); ok {
			format(b, nested, seen)
		}
	}

	fmt.Fprintf(b, "record %s {\n", name)
	for _, f := range r.Fields {
		fmt.Fprintf(b, "    %s: %s,\n", f.Name, TypeName(f.Type))
	}
	b.WriteString("}\n\n")
}

// TypeName returns the WIT spelling of t.
func TypeName(t wit.Type) string {
	switch t := t.(type) {
	case *wit.TypeDef:
		if t.Name != nil {
			return *t.Name
		}
		return "record"
	case wit.String:
		return "string"
	case wit.S8:
		return "s8"
	case wit.U8:
		return "u8"
	case wit.S16:
		return "s16"
	case wit.U16:
		return "u16"
	case wit.S32:
		return "s32"
	case wit.U32:
		return "u32"
	case wit.S64:
		return "s64"
	case wit.U64:
		return "u64"
	default:
		return fmt.Sprintf("%T", t)
	}
}
