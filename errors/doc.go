// Package errors provides structured error types for the copybook transcoder.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes context: field path, COBOL picture, conversion
// target, offending value, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindEncoding).
//		Path("account", "balance").
//		Picture("S9(7)V99 COMP-3").
//		Detail("invalid digit nibble 0xA").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Layout(errors.PhaseDecode, path, 10, 14, 12)
//	err := errors.Conversion("12x", "int32", nil)
//
// The sentinels ErrLayout, ErrConversion and ErrEncoding match an error of
// that kind raised in any phase:
//
//	if errors.Is(err, cberrors.ErrLayout) { ... }
package errors
