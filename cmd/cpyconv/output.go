package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"

	"github.com/wippyai/copybook"
)

// digestKey holds the BLAKE3 digest of the raw record bytes when
// --digest is set.
const digestKey = "_digest"

type recordWriter interface {
	Write(rec copybook.Record, raw []byte) error
	Flush() error
}

func newRecordWriter(format string, w io.Writer, digest bool) (recordWriter, error) {
	bw := bufio.NewWriter(w)
	switch format {
	case "", "json", "jsonl":
		return &jsonWriter{w: bw, enc: json.NewEncoder(bw), digest: digest}, nil
	case "cbor":
		mode, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return nil, fmt.Errorf("cbor encoder: %w", err)
		}
		return &cborWriter{w: bw, enc: mode.NewEncoder(bw), digest: digest}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json or cbor)", format)
	}
}

type jsonWriter struct {
	w      *bufio.Writer
	enc    *json.Encoder
	digest bool
}

func (j *jsonWriter) Write(rec copybook.Record, raw []byte) error {
	if j.digest {
		out := make(copybook.Record, len(rec)+1)
		for k, v := range rec {
			out[k] = v
		}
		out[digestKey] = copybook.Text(digestOf(raw))
		rec = out
	}
	return j.enc.Encode(rec)
}

func (j *jsonWriter) Flush() error {
	return j.w.Flush()
}

type cborWriter struct {
	w      *bufio.Writer
	enc    *cbor.Encoder
	digest bool
}

func (c *cborWriter) Write(rec copybook.Record, raw []byte) error {
	m := cborRecord(rec)
	if c.digest {
		m[digestKey] = digestOf(raw)
	}
	return c.enc.Encode(m)
}

func (c *cborWriter) Flush() error {
	return c.w.Flush()
}

// cborRecord maps a record onto CBOR friendly values. Decimals are kept as
// text so no digits are lost.
func cborRecord(rec copybook.Record) map[string]any {
	m := make(map[string]any, len(rec))
	for k, v := range rec {
		switch v.Kind() {
		case copybook.TextValue:
			m[k] = v.Str()
		case copybook.IntValue:
			m[k] = v.Int64()
		case copybook.DecimalValue:
			m[k] = v.Dec().String()
		case copybook.GroupValue:
			m[k] = cborRecord(v.Record())
		default:
			m[k] = nil
		}
	}
	return m
}

func digestOf(raw []byte) string {
	sum := blake3.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
