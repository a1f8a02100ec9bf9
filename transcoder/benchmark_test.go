package transcoder

import (
	"context"
	"testing"

	"github.com/wippyai/copybook"
)

func BenchmarkEncode(b *testing.B) {
	enc := NewEncoder()
	s := employeeSchema()
	p, err := enc.compiler.Compile(s)
	if err != nil {
		b.Fatal(err)
	}
	rec := copybook.Record{
		"id":      copybook.Text("EMP001"),
		"age":     copybook.Int(42),
		"balance": copybook.DecimalString("650.00"),
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := enc.EncodePlan(p, rec); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	dec := NewDecoder()
	p, err := dec.Compiler().Compile(employeeSchema())
	if err != nil {
		b.Fatal(err)
	}
	buf := append([]byte("EMP001    "), 0x00, 0x2A, 0x00, 0x06, 0x50, 0x0C)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := dec.DecodePlan(p, buf, 0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeStream(b *testing.B) {
	benchmarks := []struct {
		name    string
		workers int
	}{
		{"serial", 0},
		{"parallel4", 4},
	}

	rec := append([]byte("EMP001    "), 0x00, 0x2A, 0x00, 0x06, 0x50, 0x0C)
	buf := make([]byte, 0, len(rec)*1000)
	for i := 0; i < 1000; i++ {
		buf = append(buf, rec...)
	}
	s := employeeSchema()

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			dec := NewDecoder()
			b.SetBytes(int64(len(buf)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				var err error
				if bm.workers == 0 {
					_, err = dec.DecodeStream(s, buf)
				} else {
					_, err = dec.DecodeStreamParallel(context.Background(), s, buf, bm.workers)
				}
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
