package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/copybook/schema"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

func runLayout(args []string, e *env) error {
	c := newCommon("layout")
	if err := c.parse(args, e); err != nil {
		return err
	}
	j, err := c.setup(e)
	if err != nil {
		return err
	}

	header := "OFFSET\tLENGTH\tPICTURE\tFIELD"
	if isTerminal(e.stdout) {
		header = headerStyle.Render(header)
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, r := range j.plan.Ranges() {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", r.Start, r.Len(), r.Field.Picture(), strings.Join(r.Path, "."))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.stdout, "record %s: %d bytes, %d fields\n", j.schema.Name, j.plan.Size(), j.plan.Leaves())
	return err
}

func runWIT(args []string, e *env) error {
	c := newCommon("wit")
	if err := c.parse(args, e); err != nil {
		return err
	}
	j, err := c.setup(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(e.stdout, schema.Format(schema.WIT(j.schema)))
	return err
}
