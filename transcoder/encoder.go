package transcoder

import (
	"github.com/shopspring/decimal"

	"github.com/wippyai/copybook"
	"github.com/wippyai/copybook/errors"
	"github.com/wippyai/copybook/numeric"
	"github.com/wippyai/copybook/transcoder/internal/charset"
	"github.com/wippyai/copybook/transcoder/internal/comp"
	"github.com/wippyai/copybook/transcoder/internal/packed"
	"github.com/wippyai/copybook/transcoder/internal/zoned"
)

type Encoder struct {
	compiler *Compiler
	charset  *charset.Charset
	signs    *zoned.Signs
}

func NewEncoder() *Encoder {
	return NewEncoderWithOptions(NewCompiler(), DefaultOptions())
}

func NewEncoderWithCompiler(c *Compiler) *Encoder {
	return NewEncoderWithOptions(c, DefaultOptions())
}

func NewEncoderWithOptions(c *Compiler, opts Options) *Encoder {
	return &Encoder{
		compiler: c,
		charset:  opts.Charset,
		signs:    opts.signs(),
	}
}

// Encode serializes rec with the layout of s into a new buffer of exactly
// the record length. Every schema entry must be present in rec.
func (e *Encoder) Encode(s *copybook.Schema, rec copybook.Record) ([]byte, error) {
	p, err := e.compiler.Compile(s)
	if err != nil {
		return nil, err
	}
	return e.EncodePlan(p, rec)
}

// EncodePlan is Encode with a precompiled plan.
func (e *Encoder) EncodePlan(p *Plan, rec copybook.Record) ([]byte, error) {
	buf := make([]byte, p.Size())
	if err := e.encodeRecord(p.record, buf, 0, nil, rec); err != nil {
		return nil, err
	}
	return buf, nil
}

// EncodeInto writes rec into dst at offset and returns the bytes written.
func (e *Encoder) EncodeInto(s *copybook.Schema, dst []byte, offset int, rec copybook.Record) (int, error) {
	p, err := e.compiler.Compile(s)
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset+p.Size() > len(dst) {
		return 0, errors.Layout(errors.PhaseEncode, nil, offset, offset+p.Size(), len(dst))
	}
	if err := e.encodeRecord(p.record, dst, offset, nil, rec); err != nil {
		return 0, err
	}
	return p.Size(), nil
}

// Blank encodes the initial values of s: spaces for alphanumerics and
// zeros for numerics.
func (e *Encoder) Blank(s *copybook.Schema) ([]byte, error) {
	return e.Encode(s, copybook.Blank(s))
}

func (e *Encoder) encodeRecord(cr *CompiledRecord, buf []byte, base int, path []string, rec copybook.Record) error {
	for i := range cr.Fields {
		f := &cr.Fields[i]
		fieldPath := appendPath(path, f.Name)

		v, ok := rec[f.Name]
		if !ok || !v.IsValid() {
			return errors.FieldMissing(errors.PhaseEncode, path, f.Name)
		}

		if f.Group != nil {
			if v.Kind() != copybook.GroupValue {
				return errors.TypeMismatch(errors.PhaseEncode, fieldPath, "group", v.Kind().String())
			}
			if err := e.encodeRecord(f.Group, buf, base+f.Offset, fieldPath, v.Record()); err != nil {
				return err
			}
			continue
		}

		start := base + f.Offset
		if err := e.encodeField(f, buf[start:base+f.End()], v, fieldPath); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeField(f *CompiledField, dst []byte, v copybook.Value, path []string) error {
	if v.Kind() == copybook.GroupValue {
		return errors.TypeMismatch(errors.PhaseEncode, path, f.Picture, "group")
	}

	if f.Kind == KindText {
		e.charset.EncodeText(dst, v.Str())
		return nil
	}

	d, err := v.AsDecimal()
	if err != nil {
		return annotate(err, errors.PhaseEncode, f, path)
	}
	scale := int32(f.Desc.Scale)

	switch f.Kind {
	case KindZoned:
		if e.charset.IsIdentity() {
			zoned.EncodeNumber(dst, f.Desc, d, e.signs)
			return nil
		}
		scratch := getScratch(len(dst))
		zoned.EncodeNumber(*scratch, f.Desc, d, e.signs)
		e.charset.FromASCII(dst, *scratch)
		putScratch(scratch)
		return nil

	case KindPacked:
		text := d.Truncate(scale).StringFixed(scale)
		if err := packed.Encode(dst, text, f.Desc.Digits()); err != nil {
			return errors.New(errors.PhaseEncode, errors.KindEncoding).
				Path(path...).
				Picture(f.Picture).
				Value(text).
				Cause(err).
				Build()
		}
		return nil

	case KindBinary:
		return e.encodeBinary(f, dst, d, path)

	default:
		return errors.New(errors.PhaseEncode, errors.KindUnsupported).
			Path(path...).
			Detail("unsupported field kind: %s", f.Kind).
			Build()
	}
}

// encodeBinary writes the value scaled to an integer. Integers wider than
// the field wrap to its low order bytes.
func (e *Encoder) encodeBinary(f *CompiledField, dst []byte, d decimal.Decimal, path []string) error {
	unscaled := numeric.Unscaled(d, f.Desc.Scale)
	if !unscaled.IsInt64() {
		return annotate(errors.Conversion(unscaled.String(), numeric.Int64.String(), nil), errors.PhaseEncode, f, path)
	}
	if !comp.Encode(dst, unscaled.Int64()) {
		return errors.New(errors.PhaseEncode, errors.KindEncoding).
			Path(path...).
			Picture(f.Picture).
			Detail("unsupported binary width %d", len(dst)).
			Build()
	}
	return nil
}
