package transcoder

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/copybook"
	"github.com/wippyai/copybook/errors"
)

// DecodeStream splits buf into consecutive records laid out by s. The
// buffer must hold a whole number of records. Records decoded before a
// failure are returned with the error.
func (d *Decoder) DecodeStream(s *copybook.Schema, buf []byte) ([]copybook.Record, error) {
	p, err := d.compiler.Compile(s)
	if err != nil {
		return nil, err
	}
	return d.DecodeStreamPlan(p, buf)
}

// DecodeStreamPlan is DecodeStream with a precompiled plan.
func (d *Decoder) DecodeStreamPlan(p *Plan, buf []byte) ([]copybook.Record, error) {
	size := p.Size()
	records := make([]copybook.Record, 0, recordCount(len(buf), size))

	offset := 0
	for offset < len(buf) {
		if size > 0 && len(buf)-offset < size {
			return records, errors.Misaligned(offset, size, len(buf))
		}

		rec, n, err := d.DecodePlan(p, buf, offset)
		if err != nil {
			return records, err
		}
		if n == 0 {
			return records, errors.New(errors.PhaseStream, errors.KindLayout).
				Value(offset).
				Detail("record at offset %d consumed no bytes", offset).
				Build()
		}
		records = append(records, rec)
		offset += n
	}

	Logger().Debug("decoded record stream",
		zap.String("schema", p.record.Name),
		zap.Int("records", len(records)),
		zap.Int("bytes", len(buf)))

	return records, nil
}

// DecodeStreamParallel decodes the records of buf on up to workers
// goroutines, preserving order. Record boundaries are computed up front
// from the fixed record length, so a misaligned buffer fails before any
// record is decoded.
func (d *Decoder) DecodeStreamParallel(ctx context.Context, s *copybook.Schema, buf []byte, workers int) ([]copybook.Record, error) {
	p, err := d.compiler.Compile(s)
	if err != nil {
		return nil, err
	}

	size := p.Size()
	if size == 0 {
		if len(buf) == 0 {
			return []copybook.Record{}, nil
		}
		return nil, errors.New(errors.PhaseStream, errors.KindLayout).
			Detail("schema %q has zero length", p.record.Name).
			Build()
	}
	if rem := len(buf) % size; rem != 0 {
		return nil, errors.Misaligned(len(buf)-rem, size, len(buf))
	}

	count := len(buf) / size
	if workers <= 0 {
		workers = 1
	}

	Logger().Debug("parallel stream decode",
		zap.String("schema", p.record.Name),
		zap.Int("records", count),
		zap.Int("workers", workers))

	records := make([]copybook.Record, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < count; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, _, err := d.DecodePlan(p, buf, i*size)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func recordCount(n, size int) int {
	if size <= 0 {
		return 0
	}
	return n / size
}

// StreamReader decodes fixed length records from an io.Reader one at a
// time. Not safe for concurrent use.
type StreamReader struct {
	r       io.Reader
	plan    *Plan
	decoder *Decoder
	buf     []byte
	offset  int64
}

// NewStreamReader creates a reader of records laid out by p.
func NewStreamReader(r io.Reader, p *Plan, d *Decoder) *StreamReader {
	if d == nil {
		d = NewDecoder()
	}
	return &StreamReader{
		r:       r,
		plan:    p,
		decoder: d,
		buf:     make([]byte, p.Size()),
	}
}

// Next reads and decodes the next record. It returns io.EOF after the last
// whole record and a layout error when the input ends inside a record.
func (sr *StreamReader) Next() (copybook.Record, error) {
	if len(sr.buf) == 0 {
		return nil, errors.New(errors.PhaseStream, errors.KindLayout).
			Detail("schema %q has zero length", sr.plan.record.Name).
			Build()
	}

	n, err := io.ReadFull(sr.r, sr.buf)
	switch {
	case err == io.EOF:
		return nil, io.EOF
	case stderrors.Is(err, io.ErrUnexpectedEOF):
		e := errors.Misaligned(int(sr.offset), len(sr.buf), int(sr.offset)+n)
		e.Cause = err
		return nil, e
	case err != nil:
		e := errors.InvalidInput(errors.PhaseStream, fmt.Sprintf("read record at offset %d", sr.offset))
		e.Cause = err
		return nil, e
	}

	rec, _, err := sr.decoder.DecodePlan(sr.plan, sr.buf, 0)
	if err != nil {
		return nil, err
	}
	sr.offset += int64(n)
	return rec, nil
}

// Raw returns the bytes of the record last returned by Next. The slice is
// reused by the following call.
func (sr *StreamReader) Raw() []byte {
	return sr.buf
}

// Offset returns the input offset just past the last record read.
func (sr *StreamReader) Offset() int64 {
	return sr.offset
}
