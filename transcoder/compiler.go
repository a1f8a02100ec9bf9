package transcoder

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/copybook"
	"github.com/wippyai/copybook/errors"
	"github.com/wippyai/copybook/transcoder/internal/layout"
	"github.com/wippyai/copybook/transcoder/internal/types"
)

// Plan is a compiled schema: every field's offset, byte length and codec,
// and the total record length. Plans are immutable and safe for concurrent
// use.
type Plan struct {
	record *CompiledRecord
	ranges []copybook.FieldRange
}

// Schema returns the schema the plan was compiled from.
func (p *Plan) Schema() *copybook.Schema {
	return p.record.Schema
}

// Size returns the encoded record length in bytes.
func (p *Plan) Size() int {
	return p.record.Size
}

// Leaves returns the number of leaf fields, counting into groups.
func (p *Plan) Leaves() int {
	return p.record.LeafCount()
}

// BinaryOnly reports whether every leaf is COMP or COMP-3, so the record
// holds no display bytes and the charset has no effect on it.
func (p *Plan) BinaryOnly() bool {
	return p.record.IsPure()
}

// Record returns the compiled field tree.
func (p *Plan) Record() *CompiledRecord {
	return p.record
}

// Ranges returns the byte range of every leaf field in wire order,
// relative to the record start. The slice is a copy.
func (p *Plan) Ranges() []copybook.FieldRange {
	out := make([]copybook.FieldRange, len(p.ranges))
	copy(out, p.ranges)
	return out
}

// Range returns the byte range of the leaf at path.
func (p *Plan) Range(path ...string) (copybook.FieldRange, bool) {
	want := strings.Join(path, ".")
	for _, r := range p.ranges {
		if r.Name() == want {
			return r, true
		}
	}
	return copybook.FieldRange{}, false
}

type Compiler struct {
	layout *LayoutCalculator
	cache  sync.Map // *copybook.Schema -> *Plan
}

func NewCompiler() *Compiler {
	return &Compiler{
		layout: NewLayoutCalculator(),
	}
}

// Compile validates s and computes its plan. Plans are cached per schema
// pointer, so a schema must not change after its first use.
func (c *Compiler) Compile(s *copybook.Schema) (*Plan, error) {
	if s == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindInvalidSchema).
			Detail("schema cannot be nil").
			Build()
	}

	if cached, ok := c.cache.Load(s); ok {
		return cached.(*Plan), nil
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	info := c.layout.Calculate(s)
	plan := &Plan{
		record: c.compile(s),
		ranges: info.Fields,
	}

	Logger().Debug("compiled record plan",
		zap.String("schema", s.Name),
		zap.Int("size", plan.Size()),
		zap.Int("fields", plan.Leaves()),
		zap.Bool("binary_only", plan.BinaryOnly()))

	actual, _ := c.cache.LoadOrStore(s, plan)
	return actual.(*Plan), nil
}

func (c *Compiler) compile(s *copybook.Schema) *CompiledRecord {
	cr := &CompiledRecord{
		Schema: s,
		Name:   s.Name,
		Fields: make([]CompiledField, 0, len(s.Entries)),
	}

	offset := 0
	for _, e := range s.Entries {
		if e.Group != nil {
			g := c.compile(e.Group)
			cr.Fields = append(cr.Fields, CompiledField{
				Group:  g,
				Name:   e.Name,
				Offset: offset,
				Size:   g.Size,
				Kind:   types.KindGroup,
			})
			offset += g.Size
			continue
		}

		n := layout.ByteLength(e.Field)
		cr.Fields = append(cr.Fields, CompiledField{
			Name:    e.Name,
			Picture: e.Field.Picture(),
			Desc:    e.Field,
			Offset:  offset,
			Size:    n,
			Kind:    types.KindOf(e.Field),
		})
		offset += n
	}

	cr.Size = offset
	return cr
}
