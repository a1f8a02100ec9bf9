package layout

import (
	"sync"

	"github.com/wippyai/copybook"
)

// ByteLength returns the number of bytes f occupies on the wire.
func ByteLength(f copybook.Field) int {
	switch f.Encoding {
	case copybook.Binary:
		return BinaryWidth(f.Length)
	case copybook.PackedDecimal:
		return f.Length/2 + 1
	default:
		return f.Length
	}
}

// BinaryWidth returns the COMP storage width for the given digit count.
func BinaryWidth(digits int) int {
	switch {
	case digits <= 4:
		return 2
	case digits <= 9:
		return 4
	default:
		return 8
	}
}

// Info is the computed layout of a schema. Field offsets are relative to
// the record start.
type Info struct {
	Fields []copybook.FieldRange
	Size   int
}

// Calculator computes schema layouts. Results are cached per schema, so
// shared groups are measured once. Safe for concurrent use.
type Calculator struct {
	cache map[*copybook.Schema]Info
	mu    sync.Mutex
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*copybook.Schema]Info),
	}
}

// Calculate returns the layout of s. The schema must be valid; a schema
// that contains itself does not terminate.
func (c *Calculator) Calculate(s *copybook.Schema) Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calculate(s)
}

// Size returns the encoded length of s.
func (c *Calculator) Size(s *copybook.Schema) int {
	return c.Calculate(s).Size
}

func (c *Calculator) calculate(s *copybook.Schema) Info {
	if cached, ok := c.cache[s]; ok {
		return cached
	}

	var fields []copybook.FieldRange
	offset := 0

	for _, e := range s.Entries {
		if e.Group != nil {
			sub := c.calculate(e.Group)
			for _, r := range sub.Fields {
				path := make([]string, 0, len(r.Path)+1)
				path = append(path, e.Name)
				path = append(path, r.Path...)
				fields = append(fields, copybook.FieldRange{
					Path:  path,
					Field: r.Field,
					Start: r.Start + offset,
					End:   r.End + offset,
				})
			}
			offset += sub.Size
			continue
		}

		n := ByteLength(e.Field)
		fields = append(fields, copybook.FieldRange{
			Path:  []string{e.Name},
			Field: e.Field,
			Start: offset,
			End:   offset + n,
		})
		offset += n
	}

	info := Info{Size: offset, Fields: fields}
	c.cache[s] = info
	return info
}
