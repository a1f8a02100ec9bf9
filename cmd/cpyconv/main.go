// Command cpyconv converts fixed length COBOL records described by a
// copybook schema file.
//
//	cpyconv decode --schema employee.yaml records.dat > records.jsonl
//	cpyconv encode --schema employee.yaml records.jsonl > records.dat
//	cpyconv layout --schema employee.yaml
//	cpyconv wit --schema employee.yaml
//	cpyconv export --schema employee.yaml --db out.db records.dat.zst
//	cpyconv watch --schema employee.yaml --dir inbox --out decoded
//	cpyconv browse --schema employee.yaml records.dat
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"
)

type env struct {
	ctx    context.Context
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	name    string
	summary string
	run     func(args []string, e *env) error
}

var commands []command

func init() {
	commands = []command{
		{"decode", "decode records to JSON lines or CBOR", runDecode},
		{"encode", "encode JSON lines to records", runEncode},
		{"layout", "print field offsets and pictures", runLayout},
		{"wit", "print the WIT record type of the schema", runWIT},
		{"export", "decode records into a SQLite table", runExport},
		{"watch", "decode files as they appear in a directory", runWatch},
		{"browse", "browse records in a terminal UI", runBrowse},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	e := &env{ctx: ctx, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	err := run(os.Args[1:], e)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, e *env) error {
	if len(args) == 0 {
		usage(e.stderr)
		return fmt.Errorf("missing command")
	}

	name := args[0]
	switch name {
	case "-h", "--help", "help":
		usage(e.stdout)
		return nil
	}

	for _, c := range commands {
		if c.name == name {
			err := c.run(args[1:], e)
			if stderrors.Is(err, pflag.ErrHelp) {
				return nil
			}
			return err
		}
	}
	usage(e.stderr)
	return fmt.Errorf("unknown command %q", name)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cpyconv <command> --schema <file> [flags] [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	width := 0
	for _, c := range commands {
		width = max(width, len(c.name))
	}
	for _, c := range commands {
		fmt.Fprintf(w, "  %s%s  %s\n", c.name, strings.Repeat(" ", width-len(c.name)), c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cpyconv <command> --help' for command flags.")
}
