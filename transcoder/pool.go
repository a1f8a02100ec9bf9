package transcoder

import "sync"

const (
	// Pool limits to prevent memory bloat
	poolMaxCap  = 256 // max scratch bytes kept
	poolInitCap = 32
)

// scratch buffer pool for charset translation of zoned numbers
var scratchPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, poolInitCap)
		return &buf
	},
}

func getScratch(n int) *[]byte {
	buf := scratchPool.Get().(*[]byte)
	if cap(*buf) < n {
		*buf = make([]byte, n)
	}
	*buf = (*buf)[:n]
	return buf
}

func putScratch(buf *[]byte) {
	if buf == nil || cap(*buf) > poolMaxCap {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	scratchPool.Put(buf)
}
