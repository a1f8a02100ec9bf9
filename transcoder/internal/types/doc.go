// Package types defines the compiled record structures for fast transcoding.
//
// CompiledRecord holds precomputed offsets, byte lengths and codec kinds for
// every entry of a schema. By compiling layout metadata once, the
// transcoder avoids repeated length calculations during hot paths.
//
// # Key Types
//
//   - CompiledRecord: Cached record metadata with total size
//   - Field: One entry with its offset, size and codec
//   - Kind: Codec discriminator (text, zoned, binary, packed, group)
//
// This package is internal to the transcoder.
package types
