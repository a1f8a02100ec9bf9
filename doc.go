// Package copybook transcodes between typed records and the fixed-layout
// binary representations described by COBOL copybooks.
//
// A record layout is declared as a Schema: an ordered list of named fields
// and nested groups. Each Field carries its COBOL data class (Kind), its
// declared length in COBOL positions, its scale and sign, and its storage
// usage (Encoding). Order is significant: it defines wire order and offsets.
//
// # Architecture Overview
//
//	copybook/            Field, Schema, Value and Record types
//	├── numeric/         Text to integer/decimal conversion with range checks
//	├── transcoder/      Layout planning, record decode/encode, stream segmentation
//	│   └── internal/    Per-usage codecs: zoned, comp, packed; byte lengths; charsets
//	├── schema/          YAML/JSONC schema files and WIT type export
//	├── sink/sqlite/     Decoded record export to SQLite
//	├── errors/          Structured error types for diagnostics
//	└── cmd/cpyconv/     Command line decoder, encoder and record browser
//
// # Quick Start
//
// Declare a layout and round-trip a record:
//
//	s := copybook.NewSchema("employee").
//	    Add("id", copybook.PicX(10)).
//	    Add("age", copybook.Pic9(4).Comp()).
//	    Add("balance", copybook.Pic9V9(7, 2).Comp3())
//
//	enc := transcoder.NewEncoder()
//	buf, err := enc.Encode(s, copybook.Record{
//	    "id":      copybook.Text("EMP001"),
//	    "age":     copybook.Int(42),
//	    "balance": copybook.DecimalString("650.00"),
//	})
//
//	dec := transcoder.NewDecoder()
//	rec, n, err := dec.Decode(s, buf, 0)
//
// # Data Classes and Usages
//
// Kind and Encoding are orthogonal:
//
//	Kind              Picture       Display bytes      Notes
//	Alphanumeric      X(n)          n                  space padded on the right
//	Numeric           9(n)          n                  overpunch sign when signed
//	DecimalAssumed    9(i)V9(s)     i+s                no point on the wire
//	DecimalExplicit   9(i).9(s)     i+s+1              literal point on the wire
//
//	Encoding          Clause        Bytes
//	Display           (none)        as above
//	Binary            COMP          2 (<=4 digits), 4 (<=9), 8 (<=18)
//	PackedDecimal     COMP-3        length/2 + 1
//
// # Thread Safety
//
// Schemas are read-only once built and may be shared. Records are plain maps
// owned by the caller.
package copybook
