package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/copybook"
)

func runEncode(args []string, e *env) error {
	c := newCommon("encode")
	output := c.flags.StringP("output", "o", "-", "output file")
	if err := c.parse(args, e); err != nil {
		return err
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

	bw := bufio.NewWriter(out)
	n, err := encodeTo(j, r, bw)
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", in, err)
	}

	j.log.Info("encoded records",
		zap.String("input", in),
		zap.Int("records", n))
	return out.Close()
}

// encodeTo reads one JSON object per record from r and writes the
// encoded bytes to w.
func encodeTo(j *job, r io.Reader, w io.Writer) (int, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	n := 0
	for {
		var m map[string]any
		err := dec.Decode(&m)
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("record %d: %w", n, err)
		}
		delete(m, digestKey)

		rec, err := copybook.FromNative(j.schema, m)
		if err != nil {
			return n, fmt.Errorf("record %d: %w", n, err)
		}
		buf, err := j.encoder.EncodePlan(j.plan, rec)
		if err != nil {
			return n, fmt.Errorf("record %d: %w", n, err)
		}
		if _, err := w.Write(buf); err != nil {
			return n, err
		}
		n++
	}
}
