package main

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/copybook"
	"github.com/wippyai/copybook/schema"
	"github.com/wippyai/copybook/transcoder"
)

func testJob(t *testing.T) *job {
	t.Helper()
	s, err := schema.Parse([]byte(employeeYAML), schema.FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	c := transcoder.NewCompiler()
	p, err := c.Compile(s)
	if err != nil {
		t.Fatal(err)
	}
	opts := transcoder.DefaultOptions()
	opts.TrimText = true
	return &job{schema: s, plan: p, decoder: transcoder.NewDecoderWithOptions(c, opts)}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestReadRecords(t *testing.T) {
	j := testJob(t)

	records, raw, err := readRecords(bytes.NewReader(employeeBytes()), j, 0)
	if err != nil || len(records) != 2 || len(raw) != 2 {
		t.Fatalf("readRecords = %d records, %d raw, %v", len(records), len(raw), err)
	}
	if !bytes.Equal(raw[1], employeeBytes()[16:]) {
		t.Errorf("raw[1] = % x", raw[1])
	}

	records, _, err = readRecords(bytes.NewReader(employeeBytes()), j, 1)
	if err != nil || len(records) != 1 {
		t.Errorf("limited readRecords = %d records, %v", len(records), err)
	}
}

func TestBrowseModel(t *testing.T) {
	j := testJob(t)
	load := func() ([]copybook.Record, [][]byte, error) {
		return readRecords(bytes.NewReader(employeeBytes()), j, 0)
	}
	m := newBrowseModel("employee.dat", j.plan, load)

	if got := m.View(); !strings.Contains(got, "Loading") {
		t.Errorf("initial view = %q", got)
	}

	m.Update(m.Init()())
	if len(m.records) != 2 {
		t.Fatalf("loaded %d records", len(m.records))
	}
	if got := m.View(); !strings.Contains(got, "EMP001") || !strings.Contains(got, "EMP002") {
		t.Errorf("list view = %q", got)
	}

	m.Update(key("down"))
	m.Update(key("enter"))
	if m.state != stateDetail || m.selected != 1 {
		t.Fatalf("state = %v, selected = %d", m.state, m.selected)
	}
	if got := m.View(); !strings.Contains(got, "-12.5") || !strings.Contains(got, "S9(5)V9(2) COMP-3") {
		t.Errorf("detail view = %q", got)
	}

	m.Update(key("esc"))
	m.Update(key("g"))
	if m.state != stateGoto {
		t.Fatalf("state = %v, want goto", m.state)
	}
	m.Update(key("1"))
	m.Update(key("enter"))
	if m.state != stateDetail || m.selected != 0 {
		t.Errorf("goto: state = %v, selected = %d", m.state, m.selected)
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should quit")
	}
}
