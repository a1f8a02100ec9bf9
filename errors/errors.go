package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // schema validation and planning
	PhaseDecode  Phase = "decode"  // bytes to record
	PhaseEncode  Phase = "encode"  // record to bytes
	PhaseConvert Phase = "convert" // text to number
	PhaseStream  Phase = "stream"  // multi-record segmentation
	PhaseLoad    Phase = "load"    // schema file loading
	PhaseExport  Phase = "export"  // record sinks
)

// Kind categorizes the error
type Kind string

const (
	KindLayout        Kind = "layout"
	KindConversion    Kind = "conversion"
	KindEncoding      Kind = "encoding"
	KindInvalidSchema Kind = "invalid_schema"
	KindFieldMissing  Kind = "field_missing"
	KindTypeMismatch  Kind = "type_mismatch"
	KindUnsupported   Kind = "unsupported"
	KindInvalidInput  Kind = "invalid_input"
)

// Sentinels for errors.Is checks that ignore the phase.
var (
	ErrLayout       = &Error{Kind: KindLayout}
	ErrConversion   = &Error{Kind: KindConversion}
	ErrEncoding     = &Error{Kind: KindEncoding}
	ErrUnsupported  = &Error{Kind: KindUnsupported}
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Picture string
	Target  string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Picture != "" || e.Target != "" {
		b.WriteString(": ")
		if e.Picture != "" && e.Target != "" {
			b.WriteString("PIC ")
			b.WriteString(e.Picture)
			b.WriteString(", target ")
			b.WriteString(e.Target)
		} else if e.Picture != "" {
			b.WriteString("PIC ")
			b.WriteString(e.Picture)
		} else {
			b.WriteString("target ")
			b.WriteString(e.Target)
		}
	}

	if e.Detail != "" {
		if e.Picture != "" || e.Target != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without a phase
// matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Picture sets the COBOL picture of the field involved
func (b *Builder) Picture(pic string) *Builder {
	b.err.Picture = pic
	return b
}

// Target sets the conversion target type name
func (b *Builder) Target(t string) *Builder {
	b.err.Target = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Layout creates a layout error for a range that does not fit the buffer.
func Layout(phase Phase, path []string, start, end, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLayout,
		Path:   path,
		Detail: fmt.Sprintf("range [%d,%d) exceeds buffer length %d", start, end, length),
		Value:  end,
	}
}

// Misaligned creates a layout error for a stream whose tail does not hold a
// whole record.
func Misaligned(offset, recordLen, length int) *Error {
	return &Error{
		Phase: PhaseStream,
		Kind:  KindLayout,
		Detail: fmt.Sprintf("record at offset %d needs %d bytes, only %d remain (buffer length %d)",
			offset, recordLen, length-offset, length),
		Value: offset,
	}
}

// Conversion creates a conversion error naming the offending text and target.
func Conversion(text, target string, cause error) *Error {
	return &Error{
		Phase:  PhaseConvert,
		Kind:   KindConversion,
		Target: target,
		Detail: fmt.Sprintf("cannot convert %q", text),
		Value:  text,
		Cause:  cause,
	}
}

// Encoding creates an error for bytes that are not valid for the field usage.
func Encoding(phase Phase, path []string, picture string, data []byte, detail string) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:   phase,
		Kind:    KindEncoding,
		Path:    path,
		Picture: picture,
		Detail:  fmt.Sprintf("%s: % x", detail, preview),
		Value:   data,
	}
}

// InvalidSchema creates a schema validation error
func InvalidSchema(path []string, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindInvalidSchema,
		Path:   path,
		Detail: detail,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, picture, got string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTypeMismatch,
		Path:    path,
		Picture: picture,
		Detail:  fmt.Sprintf("cannot hold a %s value", got),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// WithPath returns err with path attached when err is an *Error that has
// none yet. Other errors are wrapped in a conversion error at path.
func WithPath(err error, phase Phase, path []string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		if len(e.Path) == 0 {
			c := *e
			c.Path = path
			return &c
		}
		return e
	}
	return &Error{
		Phase: phase,
		Kind:  KindConversion,
		Path:  path,
		Cause: err,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
