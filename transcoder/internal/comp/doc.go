// Package comp implements the COMP (binary integer) field codec.
//
// Values are big-endian two's complement integers in 2, 4 or 8 bytes.
// Decoding accepts any width; encoding only the three fixed widths.
//
// This package is internal to the transcoder.
package comp
