package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/copybook/transcoder"
)

func runDecode(args []string, e *env) error {
	c := newCommon("decode")
	format := c.flags.StringP("format", "f", "json", "output format: json or cbor")
	digest := c.flags.Bool("digest", false, "add a BLAKE3 digest of each raw record")
	workers := c.flags.IntP("workers", "w", 1, "decode on this many goroutines")
	output := c.flags.StringP("output", "o", "-", "output file")
	if err := c.parse(args, e); err != nil {
		return err
	}
	if !c.flags.Changed("format") && c.cfg.Format != "" {
		*format = c.cfg.Format
	}
	if !c.flags.Changed("workers") && c.cfg.Workers > 0 {
		*workers = c.cfg.Workers
	}

	j, err := c.setup(e)
	if err != nil {
		return err
	}
	in, err := c.input()
	if err != nil {
		return err
	}

	r, err := openInput(in, e.stdin)
	if err != nil {
		return err
	}
	defer r.Close()

	out, err := openOutput(*output, e.stdout)
	if err != nil {
		return err
	}
	defer out.Close()

	w, err := newRecordWriter(*format, out, *digest)
	if err != nil {
		return err
	}

	n, err := decodeTo(e.ctx, j, r, w, *workers)
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", in, err)
	}

	j.log.Info("decoded records",
		zap.String("input", in),
		zap.Int("records", n))
	return out.Close()
}

// decodeTo decodes every record of r into w and returns how many were
// written. With more than one worker the input is read fully and decoded
// in parallel.
func decodeTo(ctx context.Context, j *job, r io.Reader, w recordWriter, workers int) (int, error) {
	if workers > 1 {
		data, err := io.ReadAll(r)
		if err != nil {
			return 0, err
		}
		records, err := j.decoder.DecodeStreamParallel(ctx, j.schema, data, workers)
		if err != nil {
			return 0, err
		}
		size := j.plan.Size()
		for i, rec := range records {
			if err := w.Write(rec, data[i*size:(i+1)*size]); err != nil {
				return i, err
			}
		}
		return len(records), nil
	}

	sr := transcoder.NewStreamReader(r, j.plan, j.decoder)
	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		rec, err := sr.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if err := w.Write(rec, sr.Raw()); err != nil {
			return n, err
		}
		n++
	}
}
