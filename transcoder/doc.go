// Package transcoder provides copybook record encoding and decoding.
//
// This package handles bidirectional conversion between copybook.Record
// values and the fixed-layout byte records exchanged with mainframe and
// legacy systems.
//
// # Record Layout
//
// Fields are laid out back to back in schema order. Nested groups occupy
// the sum of their members:
//
//	┌──────────────┬────────┬──────────────┐
//	│ id X(10)     │ age    │ balance      │
//	│              │ 9(4)   │ 9(5)V99      │
//	│              │ COMP   │ COMP-3       │
//	├──────────────┼────────┼──────────────┤
//	│ 0..10        │ 10..12 │ 12..16       │
//	└──────────────┴────────┴──────────────┘
//
// # Field Codecs
//
//	Codec     Usage      Bytes            Value
//	───────────────────────────────────────────────────────────
//	text      X(n)       n                Text
//	zoned     9(n)       n                Int or Decimal
//	binary    COMP       2 / 4 / 8        Int, Decimal when scaled
//	packed    COMP-3     n/2 + 1          Int or Decimal
//
// Numeric fields of kind Numeric decode to Int when the value fits int64.
// Decimal kinds always decode to Decimal.
//
// # Key Types
//
//	Compiler      - Validates schemas and caches Plans
//	Plan          - Offsets, lengths and codecs of a schema
//	Decoder       - Reads records from byte buffers and streams
//	Encoder       - Writes records into byte buffers
//	StreamReader  - Reads records one at a time from an io.Reader
//
// # Decoding Flow
//
//  1. Compiler.Compile(schema) → Plan
//  2. Decoder.Decode(schema, buf, offset) → Record, consumed
//     or Decoder.DecodeStream(schema, buf) → []Record
//
// # Encoding Flow
//
//  1. Compiler.Compile(schema) → Plan
//  2. Encoder.Encode(schema, record) → []byte
//     or Encoder.EncodeInto(schema, dst, offset, record)
//
// # Character Sets
//
// Display fields are ASCII by default. EBCDIC records use code page 037 or
// 1047; zoned numbers then carry the EBCDIC zone sign nibble:
//
//	opts := transcoder.DefaultOptions()
//	opts.Charset = transcoder.CP037
//	dec := transcoder.NewDecoderWithOptions(transcoder.NewCompiler(), opts)
//
// # Errors
//
// A field whose range ends past the buffer fails with a layout error before
// its bytes are read. Malformed digits fail with a conversion error and
// invalid packed nibbles with an encoding error. Decode returns the fields
// decoded before the failure together with the error.
//
// # Thread Safety
//
// Compiler, Plan, Decoder and Encoder are safe for concurrent use.
// StreamReader is not.
package transcoder
