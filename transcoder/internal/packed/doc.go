// Package packed implements the COMP-3 (packed decimal) field codec.
//
// Two digits share a byte, high nibble first. The low nibble of the last
// byte is the sign: 0xD negative, 0xC positive (0xF and other values decode
// as positive). The high nibble of the last byte holds the final digit when
// the declared length is odd; for even lengths it is zero.
//
//	S9(5)V99 COMP-3, value -650.00:
//	  00 06 50 0D    digits 0065000, sign D
//
// This package is internal to the transcoder.
package packed
