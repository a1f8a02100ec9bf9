package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/copybook"
	"github.com/wippyai/copybook/sink/sqlite"
	"github.com/wippyai/copybook/transcoder"
)

func runExport(args []string, e *env) error {
	c := newCommon("export")
	db := c.flags.String("db", "records.db", "SQLite database file")
	batch := c.flags.Int("batch", 500, "records per transaction")
	if err := c.parse(args, e); err != nil {
		return err
	}
	if !c.flags.Changed("batch") && c.cfg.Batch > 0 {
		*batch = c.cfg.Batch
	}
	if *batch <= 0 {
		return fmt.Errorf("--batch must be positive")
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

	sink, err := sqlite.Open(*db)
	if err != nil {
		return err
	}
	defer sink.Close()

	table, err := sink.CreateTable(e.ctx, j.schema)
	if err != nil {
		return err
	}

	total, err := exportTo(e, j, r, table, *batch)
	if err != nil {
		return fmt.Errorf("export %s: %w", in, err)
	}

	j.log.Info("exported records",
		zap.String("input", in),
		zap.String("db", *db),
		zap.String("table", table.Name()),
		zap.Int("records", total))
	return nil
}

func exportTo(e *env, j *job, r io.Reader, table *sqlite.Table, batch int) (int, error) {
	sr := transcoder.NewStreamReader(r, j.plan, j.decoder)
	pending := make([]copybook.Record, 0, batch)
	total := 0

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		n, err := table.Insert(e.ctx, pending)
		total += n
		pending = pending[:0]
		return err
	}

	for {
		rec, err := sr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, err
		}
		pending = append(pending, rec)
		if len(pending) == batch {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	return total, flush()
}
