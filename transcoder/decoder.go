package transcoder

import (
	stderrors "errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wippyai/copybook"
	"github.com/wippyai/copybook/errors"
	"github.com/wippyai/copybook/numeric"
	"github.com/wippyai/copybook/transcoder/internal/charset"
	"github.com/wippyai/copybook/transcoder/internal/comp"
	"github.com/wippyai/copybook/transcoder/internal/packed"
	"github.com/wippyai/copybook/transcoder/internal/zoned"
)

type Decoder struct {
	compiler *Compiler
	charset  *charset.Charset
	signs    *zoned.Signs
	trim     bool
}

func NewDecoder() *Decoder {
	return NewDecoderWithOptions(NewCompiler(), DefaultOptions())
}

func NewDecoderWithCompiler(c *Compiler) *Decoder {
	return NewDecoderWithOptions(c, DefaultOptions())
}

func NewDecoderWithOptions(c *Compiler, opts Options) *Decoder {
	return &Decoder{
		compiler: c,
		charset:  opts.Charset,
		signs:    opts.signs(),
		trim:     opts.TrimText,
	}
}

// Compiler returns the compiler used for plan lookups.
func (d *Decoder) Compiler() *Compiler {
	return d.compiler
}

// Decode reads one record laid out by s from buf starting at start. It
// returns the record and the number of bytes consumed. On failure the
// fields decoded so far are returned with the bytes they consumed.
func (d *Decoder) Decode(s *copybook.Schema, buf []byte, start int) (copybook.Record, int, error) {
	p, err := d.compiler.Compile(s)
	if err != nil {
		return nil, 0, err
	}
	return d.DecodePlan(p, buf, start)
}

// DecodePlan is Decode with a precompiled plan.
func (d *Decoder) DecodePlan(p *Plan, buf []byte, start int) (copybook.Record, int, error) {
	if start < 0 || start > len(buf) {
		return nil, 0, errors.New(errors.PhaseDecode, errors.KindLayout).
			Value(start).
			Detail("start offset %d outside buffer of length %d", start, len(buf)).
			Build()
	}

	rec := make(copybook.Record, len(p.record.Fields))
	end, err := d.decodeRecord(p.record, buf, start, nil, rec)
	return rec, end - start, err
}

// decodeRecord fills rec from the record at base and returns the offset
// after the last successfully decoded field.
func (d *Decoder) decodeRecord(cr *CompiledRecord, buf []byte, base int, path []string, rec copybook.Record) (int, error) {
	offset := base
	for i := range cr.Fields {
		f := &cr.Fields[i]
		fieldPath := appendPath(path, f.Name)

		if f.Group != nil {
			sub := make(copybook.Record, len(f.Group.Fields))
			end, err := d.decodeRecord(f.Group, buf, offset, fieldPath, sub)
			rec[f.Name] = copybook.Group(sub)
			if err != nil {
				return end, err
			}
			offset = end
			continue
		}

		start, end := base+f.Offset, base+f.End()
		if end > len(buf) {
			return offset, errors.Layout(errors.PhaseDecode, fieldPath, start, end, len(buf))
		}

		v, err := d.decodeField(f, buf[start:end], fieldPath)
		if err != nil {
			return offset, err
		}
		rec[f.Name] = v
		offset = end
	}
	return offset, nil
}

func (d *Decoder) decodeField(f *CompiledField, data []byte, path []string) (copybook.Value, error) {
	switch f.Kind {
	case KindText:
		text := d.charset.DecodeText(data)
		if d.trim {
			text = strings.TrimRight(text, " ")
		}
		return copybook.Text(text), nil

	case KindZoned:
		var text string
		if d.charset.IsIdentity() {
			text = zoned.DecodeNumber(data, f.Desc, d.signs)
		} else {
			scratch := getScratch(len(data))
			d.charset.ToASCII(*scratch, data)
			text = zoned.DecodeNumber(*scratch, f.Desc, d.signs)
			putScratch(scratch)
		}
		return textValue(text, f, path)

	case KindPacked:
		text, err := packed.Decode(data, f.Desc.Digits(), f.Desc.Scale)
		if err != nil {
			return copybook.Value{}, errors.Encoding(errors.PhaseDecode, path, f.Picture, data, err.Error())
		}
		return textValue(text, f, path)

	case KindBinary:
		scale := f.Desc.Scale
		if v, ok := comp.Decode(data); ok {
			if scale > 0 {
				return copybook.Decimal(decimal.New(v, int32(-scale))), nil
			}
			return copybook.Int(v), nil
		}
		return copybook.Decimal(numeric.FromBig(comp.DecodeBig(data), scale)), nil

	default:
		return copybook.Value{}, errors.New(errors.PhaseDecode, errors.KindUnsupported).
			Path(path...).
			Detail("unsupported field kind: %s", f.Kind).
			Build()
	}
}

// textValue converts decoded digit text into an Int for integer fields
// that fit int64, and a Decimal otherwise.
func textValue(text string, f *CompiledField, path []string) (copybook.Value, error) {
	if f.Desc.Kind == copybook.Numeric {
		v, err := numeric.ParseInt(text, numeric.Int64)
		if err == nil {
			return copybook.Int(v), nil
		}
		if !strings.Contains(text, ".") {
			if dec, derr := numeric.ParseDecimal(text); derr == nil {
				return copybook.Decimal(dec), nil
			}
		}
		return copybook.Value{}, annotate(err, errors.PhaseDecode, f, path)
	}

	dec, err := numeric.ParseDecimal(text)
	if err != nil {
		return copybook.Value{}, annotate(err, errors.PhaseDecode, f, path)
	}
	return copybook.Decimal(dec), nil
}

// annotate attaches the field path and picture to a conversion error.
func annotate(err error, phase errors.Phase, f *CompiledField, path []string) error {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return errors.WithPath(err, phase, path)
	}
	c := *e
	c.Path = path
	c.Picture = f.Picture
	return &c
}

func appendPath(path []string, name string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = name
	return out
}
