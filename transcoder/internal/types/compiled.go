package types

import "github.com/wippyai/copybook"

type CompiledRecord struct {
	Schema *copybook.Schema
	Name   string
	Fields []Field
	Size   int
}

// Field is one compiled schema entry. Offset is relative to the start of
// the enclosing record.
type Field struct {
	Group   *CompiledRecord
	Name    string
	Picture string
	Desc    copybook.Field
	Offset  int
	Size    int
	Kind    Kind
}

// End returns the offset just past the field.
func (f *Field) End() int {
	return f.Offset + f.Size
}

// LeafCount returns the number of leaf fields, counting into groups.
func (cr *CompiledRecord) LeafCount() int {
	n := 0
	for i := range cr.Fields {
		if g := cr.Fields[i].Group; g != nil {
			n += g.LeafCount()
		} else {
			n++
		}
	}
	return n
}

// IsPure reports whether every leaf is a binary or packed number, so the
// record contains no character data and needs no charset.
func (cr *CompiledRecord) IsPure() bool {
	for i := range cr.Fields {
		f := &cr.Fields[i]
		switch f.Kind {
		case KindGroup:
			if !f.Group.IsPure() {
				return false
			}
		case KindBinary, KindPacked:
		default:
			return false
		}
	}
	return true
}
