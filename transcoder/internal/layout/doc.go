// Package layout computes byte lengths and offsets for copybook record layouts.
//
// # Layout Rules
//
// Fields are packed back to back with no alignment padding:
//   - Display: one byte per declared position (explicit decimals count the point)
//   - COMP: 2 bytes up to 4 digits, 4 up to 9, 8 beyond
//   - COMP-3: two digits per byte plus a sign nibble, length/2 + 1 bytes
//   - Groups: the sum of their members
//
// # Usage
//
//	n := layout.ByteLength(field)
//	info := layout.NewCalculator().Calculate(schema)
//	// info.Size, info.Fields available
//
// This package is internal to the transcoder.
package layout
