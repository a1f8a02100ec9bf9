package comp

import (
	"encoding/binary"
	"math/big"
)

// Decode reads a big-endian two's complement integer. ok is false when the
// value does not fit an int64; use DecodeBig for those.
func Decode(data []byte) (v int64, ok bool) {
	switch len(data) {
	case 2:
		return int64(int16(binary.BigEndian.Uint16(data))), true
	case 4:
		return int64(int32(binary.BigEndian.Uint32(data))), true
	case 8:
		return int64(binary.BigEndian.Uint64(data)), true
	}
	b := DecodeBig(data)
	if !b.IsInt64() {
		return 0, false
	}
	return b.Int64(), true
}

// DecodeBig reads a big-endian two's complement integer of any width.
func DecodeBig(data []byte) *big.Int {
	v := new(big.Int).SetBytes(data)
	if len(data) > 0 && data[0]&0x80 != 0 {
		// subtract 2^(8n) for negative values
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(len(data)*8)))
	}
	return v
}

// Encode writes v big-endian into dst. Values wider than dst keep their low
// order bytes. ok is false for widths other than 2, 4 and 8.
func Encode(dst []byte, v int64) (ok bool) {
	switch len(dst) {
	case 2:
		binary.BigEndian.PutUint16(dst, uint16(v))
	case 4:
		binary.BigEndian.PutUint32(dst, uint32(v))
	case 8:
		binary.BigEndian.PutUint64(dst, uint64(v))
	default:
		return false
	}
	return true
}
