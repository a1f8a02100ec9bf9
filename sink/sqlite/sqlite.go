package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/wippyai/copybook"
	"github.com/wippyai/copybook/errors"
)

// Sink wraps the SQLite database connection.
type Sink struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite file at path.
func Open(path string) (*Sink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer
	conn.SetMaxOpenConns(1)

	return &Sink{conn: conn}, nil
}

// Close closes the database connection.
func (s *Sink) Close() error {
	return s.conn.Close()
}

// Conn returns the underlying database connection.
func (s *Sink) Conn() *sql.DB {
	return s.conn
}

type column struct {
	name    string
	path    []string
	field   copybook.Field
	integer bool
}

// Table is a SQLite table laid out for one schema.
type Table struct {
	sink    *Sink
	name    string
	columns []column
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Columns returns the column names in schema order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}

// CreateTable creates the table for schema if it does not exist yet. The
// table is named after the schema.
func (s *Sink) CreateTable(ctx context.Context, schema *copybook.Schema) (*Table, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	t := &Table{sink: s, name: Identifier(schema.Name)}
	seen := map[string]bool{}
	var dup string
	schema.Walk(func(path []string, f copybook.Field) bool {
		c := column{
			name:    Identifier(strings.Join(path, "_")),
			path:    path,
			field:   f,
			integer: isInteger(f),
		}
		if seen[c.name] {
			dup = c.name
			return false
		}
		seen[c.name] = true
		t.columns = append(t.columns, c)
		return true
	})
	if dup != "" {
		return nil, errors.New(errors.PhaseExport, errors.KindInvalidSchema).
			Detail("column %q produced by more than one field", dup).
			Build()
	}
	if len(t.columns) == 0 {
		return nil, errors.New(errors.PhaseExport, errors.KindInvalidSchema).
			Detail("schema %q has no fields", schema.Name).
			Build()
	}

	defs := make([]string, len(t.columns))
	for i, c := range t.columns {
		typ := "TEXT"
		if c.integer {
			typ = "INTEGER"
		}
		defs[i] = quote(c.name) + " " + typ
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(t.name), strings.Join(defs, ", "))
	if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
		return nil, errors.Wrap(errors.PhaseExport, errors.KindInvalidInput, err, "create table "+t.name)
	}

	Logger().Debug("created table",
		zap.String("table", t.name),
		zap.Int("columns", len(t.columns)))

	return t, nil
}

// Insert writes records in a single transaction and returns how many were
// stored. Nothing is stored when any record fails.
func (t *Table) Insert(ctx context.Context, records []copybook.Record) (int, error) {
	tx, err := t.sink.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseExport, errors.KindInvalidInput, err, "begin transaction")
	}
	defer tx.Rollback()

	names := make([]string, len(t.columns))
	marks := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = quote(c.name)
		marks[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(t.name), strings.Join(names, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return 0, errors.Wrap(errors.PhaseExport, errors.KindInvalidInput, err, "prepare insert")
	}
	defer stmt.Close()

	args := make([]any, len(t.columns))
	for i, rec := range records {
		for j, c := range t.columns {
			arg, err := columnValue(rec, c)
			if err != nil {
				return 0, fmt.Errorf("record %d: %w", i, err)
			}
			args[j] = arg
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, errors.Wrap(errors.PhaseExport, errors.KindInvalidInput, err, fmt.Sprintf("insert record %d", i))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(errors.PhaseExport, errors.KindInvalidInput, err, "commit")
	}

	Logger().Debug("inserted records",
		zap.String("table", t.name),
		zap.Int("records", len(records)))

	return len(records), nil
}

func columnValue(rec copybook.Record, c column) (any, error) {
	v, ok := rec.Get(c.path...)
	if !ok {
		return nil, errors.FieldMissing(errors.PhaseExport, c.path, c.path[len(c.path)-1])
	}

	switch v.Kind() {
	case copybook.TextValue:
		return v.Str(), nil
	case copybook.IntValue:
		if c.integer {
			return v.Int64(), nil
		}
		return v.String(), nil
	case copybook.DecimalValue:
		if c.integer && v.Dec().IsInteger() {
			if n, err := v.AsInt64(); err == nil {
				return n, nil
			}
		}
		return v.Dec().StringFixed(int32(c.field.Scale)), nil
	default:
		return nil, errors.TypeMismatch(errors.PhaseExport, c.path, c.field.Picture(), v.Kind().String())
	}
}

func isInteger(f copybook.Field) bool {
	return f.Kind == copybook.Numeric && f.Scale == 0 && f.Digits() <= copybook.MaxBinaryDigits
}

// Identifier maps a schema or field name to a SQL identifier made of
// letters, digits and underscores.
func Identifier(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ']':
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
