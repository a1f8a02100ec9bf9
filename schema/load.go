package schema

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/copybook"
	"github.com/wippyai/copybook/errors"
)

// Format identifies the syntax of a schema file.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSONC Format = "jsonc"
)

// FormatOf picks the format from a file extension. Unknown extensions
// are read as YAML, which also accepts plain JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSONC
	default:
		return FormatYAML
	}
}

type document struct {
	Name   string  `yaml:"name" json:"name"`
	Fields []entry `yaml:"fields" json:"fields"`
}

type entry struct {
	Name        string  `yaml:"name" json:"name"`
	Type        string  `yaml:"type" json:"type"`
	Length      int     `yaml:"length" json:"length"`
	Scale       int     `yaml:"scale" json:"scale"`
	Signed      bool    `yaml:"signed" json:"signed"`
	Usage       string  `yaml:"usage" json:"usage"`
	Description string  `yaml:"description" json:"description"`
	Occurs      int     `yaml:"occurs" json:"occurs"`
	Fields      []entry `yaml:"fields" json:"fields"`
}

// LoadFile reads and parses the schema file at path.
func LoadFile(path string) (*copybook.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "read "+path)
	}
	s, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		base := filepath.Base(path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return s, nil
}

// Parse builds a schema from data in the given format and validates it.
func Parse(data []byte, format Format) (*copybook.Schema, error) {
	var doc document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidSchema, err, "parse yaml")
		}
	case FormatJSONC:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidSchema, err, "parse jsonc")
		}
	default:
		return nil, errors.Unsupported(errors.PhaseLoad, fmt.Sprintf("schema format %q", format))
	}

	if len(doc.Fields) == 0 {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidSchema).
			Detail("schema %q has no fields", doc.Name).
			Build()
	}

	s, err := build(doc.Name, doc.Fields, nil)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, asLoad(err)
	}
	return s, nil
}

func build(name string, entries []entry, path []string) (*copybook.Schema, error) {
	s := copybook.NewSchema(name)
	for _, e := range entries {
		p := append(append([]string(nil), path...), e.Name)
		if e.Name == "" {
			return nil, invalid(path, "entry with empty name")
		}
		if e.Occurs < 0 {
			return nil, invalid(p, "negative occurs %d", e.Occurs)
		}

		names := []string{e.Name}
		if e.Occurs > 0 {
			names = names[:0]
			for i := 0; i < e.Occurs; i++ {
				names = append(names, fmt.Sprintf("%s[%d]", e.Name, i))
			}
		}

		if len(e.Fields) > 0 {
			if e.Type != "" {
				return nil, invalid(p, "group cannot have type %q", e.Type)
			}
			g, err := build(e.Name, e.Fields, p)
			if err != nil {
				return nil, err
			}
			for _, n := range names {
				s.Group(n, g)
			}
			continue
		}

		f, err := field(e)
		if err != nil {
			return nil, errors.WithPath(err, errors.PhaseLoad, p)
		}
		for _, n := range names {
			s.Add(n, f)
		}
	}
	return s, nil
}

func field(e entry) (copybook.Field, error) {
	var f copybook.Field
	switch strings.ToLower(e.Type) {
	case "x", "alphanumeric", "text":
		f = copybook.PicX(e.Length)
	case "9", "numeric", "integer":
		f = copybook.Pic9(e.Length)
	case "v", "decimal", "assumed":
		f = copybook.Pic9V9(e.Length, e.Scale)
	case ".", "explicit":
		f = copybook.Pic9Dot9(e.Length, e.Scale)
	case "":
		return f, invalid(nil, "missing type")
	default:
		return f, invalid(nil, "unknown type %q", e.Type)
	}

	if e.Scale != 0 && (f.Kind == copybook.Alphanumeric || f.Kind == copybook.Numeric) {
		return f, invalid(nil, "scale %d on %s field", e.Scale, f.Kind)
	}
	if e.Signed {
		f = f.WithSign()
	}

	switch strings.ToLower(e.Usage) {
	case "", "display":
	case "comp", "binary", "comp-4":
		f = f.Comp()
	case "comp-3", "packed":
		f = f.Comp3()
	default:
		return f, invalid(nil, "unknown usage %q", e.Usage)
	}

	if e.Description != "" {
		f = f.Describe(e.Description)
	}
	return f, nil
}

func invalid(path []string, detail string, args ...any) *errors.Error {
	e := errors.InvalidSchema(path, detail, args...)
	e.Phase = errors.PhaseLoad
	return e
}

func asLoad(err error) error {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return err
	}
	c := *e
	c.Phase = errors.PhaseLoad
	return &c
}
