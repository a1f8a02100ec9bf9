package copybook

import (
	"github.com/wippyai/copybook/errors"
)

// Entry is one element of a Schema: a leaf field when Group is nil,
// otherwise a nested record.
type Entry struct {
	Group    *Schema
	Name     string
	Field    Field
	Repeated bool
}

// IsGroup reports whether the entry is a nested record.
func (e Entry) IsGroup() bool {
	return e.Group != nil
}

// Schema is an ordered record layout. Entry order defines wire order.
// A Schema must not be modified after it is first used for transcoding.
type Schema struct {
	Name    string
	Entries []Entry
}

// NewSchema creates an empty schema.
func NewSchema(name string) *Schema {
	return &Schema{Name: name}
}

// Add appends a leaf field.
func (s *Schema) Add(name string, f Field) *Schema {
	s.Entries = append(s.Entries, Entry{Name: name, Field: f})
	return s
}

// Group appends a nested record.
func (s *Schema) Group(name string, g *Schema) *Schema {
	s.Entries = append(s.Entries, Entry{Name: name, Group: g})
	return s
}

// RepeatedGroup appends a nested record marked as one occurrence of a
// repeating item. Transcoding processes exactly one record per entry;
// repeat counts are expanded by the schema layer.
func (s *Schema) RepeatedGroup(name string, g *Schema) *Schema {
	s.Entries = append(s.Entries, Entry{Name: name, Group: g, Repeated: true})
	return s
}

// Len returns the number of entries.
func (s *Schema) Len() int {
	return len(s.Entries)
}

// Lookup returns the entry named name.
func (s *Schema) Lookup(name string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Validate checks every field descriptor and the entry names, recursing
// into groups.
func (s *Schema) Validate() error {
	if s == nil {
		return errors.New(errors.PhaseCompile, errors.KindInvalidSchema).
			Detail("nil schema").
			Build()
	}
	return s.validate(nil, map[*Schema]bool{})
}

func (s *Schema) validate(path []string, active map[*Schema]bool) error {
	if active[s] {
		return errors.InvalidSchema(path, "schema %q contains itself", s.Name)
	}
	active[s] = true
	defer delete(active, s)

	seen := make(map[string]bool, len(s.Entries))
	for _, e := range s.Entries {
		p := append(append([]string(nil), path...), e.Name)
		if e.Name == "" {
			return errors.InvalidSchema(path, "entry with empty name")
		}
		if seen[e.Name] {
			return errors.InvalidSchema(p, "duplicate entry name")
		}
		seen[e.Name] = true

		if e.Group != nil {
			if err := e.Group.validate(p, active); err != nil {
				return err
			}
			continue
		}
		if err := e.Field.Validate(); err != nil {
			return errors.WithPath(err, errors.PhaseCompile, p)
		}
	}
	return nil
}

// Walk calls fn for every leaf field in wire order with its full path.
// Returning false stops the walk.
func (s *Schema) Walk(fn func(path []string, f Field) bool) {
	s.walk(nil, fn)
}

func (s *Schema) walk(path []string, fn func([]string, Field) bool) bool {
	for _, e := range s.Entries {
		p := append(append([]string(nil), path...), e.Name)
		if e.Group != nil {
			if !e.Group.walk(p, fn) {
				return false
			}
			continue
		}
		if !fn(p, e.Field) {
			return false
		}
	}
	return true
}
