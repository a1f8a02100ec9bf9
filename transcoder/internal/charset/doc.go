// Package charset translates display field bytes between the record
// character set and ASCII.
//
// Supported sets are "ascii" (bytes pass through), "latin1", and the EBCDIC
// code pages "cp037" and "cp1047". Translation tables are built once from
// golang.org/x/text/encoding/charmap.
//
// This package is internal to the transcoder.
package charset
