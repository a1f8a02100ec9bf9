package transcoder

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"strconv"
	"testing"
	"testing/iotest"

	"github.com/wippyai/copybook"
	"github.com/wippyai/copybook/errors"
)

func employeeStream(t *testing.T, k int) []byte {
	t.Helper()
	enc := NewEncoder()
	var buf bytes.Buffer
	for i := 0; i < k; i++ {
		b, err := enc.Encode(employeeSchema(), copybook.Record{
			"id":      copybook.Text("EMP" + strconv.Itoa(i)),
			"age":     copybook.Int(int64(20 + i)),
			"balance": copybook.DecimalString(strconv.Itoa(i*100) + ".25"),
		})
		if err != nil {
			t.Fatal(err)
		}
		buf.Write(b)
	}
	return buf.Bytes()
}

func TestDecodeStream(t *testing.T) {
	for _, k := range []int{0, 1, 3, 50} {
		t.Run(strconv.Itoa(k), func(t *testing.T) {
			buf := employeeStream(t, k)
			records, err := NewDecoder().DecodeStream(employeeSchema(), buf)
			if err != nil {
				t.Fatalf("DecodeStream failed: %v", err)
			}
			if len(records) != k {
				t.Fatalf("got %d records, want %d", len(records), k)
			}
			for i, r := range records {
				if r["age"].Int64() != int64(20+i) {
					t.Errorf("record %d age = %v", i, r["age"])
				}
			}
		})
	}
}

func TestDecodeStream_Misaligned(t *testing.T) {
	buf := employeeStream(t, 2)
	buf = append(buf, 'x', 'y', 'z')

	records, err := NewDecoder().DecodeStream(employeeSchema(), buf)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindLayout || e.Phase != errors.PhaseStream {
		t.Fatalf("DecodeStream error = %v, want stream layout error", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records before the failure, want 2", len(records))
	}
}

func TestDecodeStream_ZeroLength(t *testing.T) {
	s := copybook.NewSchema("empty")

	records, err := NewDecoder().DecodeStream(s, nil)
	if err != nil || len(records) != 0 {
		t.Errorf("empty buffer: %v, %v", records, err)
	}

	if _, err := NewDecoder().DecodeStream(s, []byte("abc")); !stderrors.Is(err, errors.ErrLayout) {
		t.Errorf("zero length schema error = %v, want layout error", err)
	}
}

func TestDecodeStreamParallel(t *testing.T) {
	buf := employeeStream(t, 200)
	d := NewDecoder()

	serial, err := d.DecodeStream(employeeSchema(), buf)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := d.DecodeStreamParallel(context.Background(), employeeSchema(), buf, 8)
	if err != nil {
		t.Fatalf("DecodeStreamParallel failed: %v", err)
	}

	if len(parallel) != len(serial) {
		t.Fatalf("got %d records, want %d", len(parallel), len(serial))
	}
	for i := range serial {
		if !parallel[i].Equal(serial[i]) {
			t.Fatalf("record %d differs: %v vs %v", i, parallel[i], serial[i])
		}
	}
}

func TestDecodeStreamParallel_Errors(t *testing.T) {
	d := NewDecoder()
	buf := employeeStream(t, 3)

	if _, err := d.DecodeStreamParallel(context.Background(), employeeSchema(), buf[:len(buf)-1], 4); !stderrors.Is(err, errors.ErrLayout) {
		t.Errorf("misaligned error = %v, want layout error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.DecodeStreamParallel(ctx, employeeSchema(), buf, 2); !stderrors.Is(err, context.Canceled) {
		t.Errorf("canceled error = %v, want context.Canceled", err)
	}

	bad := append([]byte(nil), buf...)
	bad[16+12] = 0xAA // second record's packed balance
	if _, err := d.DecodeStreamParallel(context.Background(), employeeSchema(), bad, 2); !stderrors.Is(err, errors.ErrEncoding) {
		t.Errorf("bad record error = %v, want encoding error", err)
	}
}

func TestStreamReader(t *testing.T) {
	buf := employeeStream(t, 3)
	p, err := NewCompiler().Compile(employeeSchema())
	if err != nil {
		t.Fatal(err)
	}

	sr := NewStreamReader(bytes.NewReader(buf), p, nil)
	var count int
	for {
		rec, err := sr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if rec["age"].Int64() != int64(20+count) {
			t.Errorf("record %d age = %v", count, rec["age"])
		}
		if len(sr.Raw()) != 16 {
			t.Errorf("Raw len = %d", len(sr.Raw()))
		}
		count++
	}
	if count != 3 || sr.Offset() != 48 {
		t.Errorf("read %d records to offset %d", count, sr.Offset())
	}
}

func TestStreamReader_Truncated(t *testing.T) {
	buf := employeeStream(t, 2)
	p, err := NewCompiler().Compile(employeeSchema())
	if err != nil {
		t.Fatal(err)
	}

	sr := NewStreamReader(bytes.NewReader(buf[:20]), p, NewDecoder())
	if _, err := sr.Next(); err != nil {
		t.Fatalf("first record: %v", err)
	}
	_, err = sr.Next()
	if !stderrors.Is(err, errors.ErrLayout) {
		t.Fatalf("Next error = %v, want layout error", err)
	}
	if !stderrors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("error should wrap io.ErrUnexpectedEOF")
	}
}

func TestStreamReader_ReadError(t *testing.T) {
	p, err := NewCompiler().Compile(employeeSchema())
	if err != nil {
		t.Fatal(err)
	}

	cause := stderrors.New("device gone")
	sr := NewStreamReader(iotest.ErrReader(cause), p, nil)
	_, err = sr.Next()
	if !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("Next error = %v, want invalid input error", err)
	}
	if !stderrors.Is(err, cause) {
		t.Errorf("error should wrap the read failure")
	}
	var e *errors.Error
	if stderrors.As(err, &e) && e.Phase != errors.PhaseStream {
		t.Errorf("Phase = %s, want %s", e.Phase, errors.PhaseStream)
	}
}
