// Package zoned implements the display (zoned decimal) field codec.
//
// Each digit occupies one character. A signed field carries its sign in the
// final character using overpunch: the digit and the sign share one
// position.
//
//	digit   0   1   2   3   4   5   6   7   8   9
//	+       {   A   B   C   D   E   F   G   H   I
//	-  ASCII p   q   r   s   t   u   v   w   x   y
//	- EBCDIC }   J   K   L   M   N   O   P   Q   R
//
// Decode produces text suitable for the numeric package. Encode writes the
// ASCII form; charset translation happens in the caller.
//
// This package is internal to the transcoder.
package zoned
