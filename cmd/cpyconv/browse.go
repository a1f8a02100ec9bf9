package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/copybook"
	"github.com/wippyai/copybook/schema"
	"github.com/wippyai/copybook/transcoder"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browseState int

const (
	stateList browseState = iota
	stateDetail
	stateGoto
)

// pageSize is the number of records shown in the list view.
const pageSize = 20

type browseModel struct {
	err      error
	filename string
	plan     *transcoder.Plan
	load     func() ([]copybook.Record, [][]byte, error)
	records  []copybook.Record
	raw      [][]byte
	input    textinput.Model
	selected int
	state    browseState
	loaded   bool
}

type recordsMsg struct {
	err     error
	records []copybook.Record
	raw     [][]byte
}

func newBrowseModel(filename string, plan *transcoder.Plan, load func() ([]copybook.Record, [][]byte, error)) *browseModel {
	ti := textinput.New()
	ti.Prompt = "record #: "
	ti.Placeholder = "1"
	ti.Width = 12
	return &browseModel{
		filename: filename,
		plan:     plan,
		load:     load,
		input:    ti,
		state:    stateList,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadRecords
}

func (m *browseModel) loadRecords() tea.Msg {
	records, raw, err := m.load()
	return recordsMsg{records: records, raw: raw, err: err}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateGoto {
			return m.updateGoto(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.records)-1 {
				m.selected++
			}

		case "pgup":
			m.selected = max(m.selected-pageSize, 0)

		case "pgdown":
			m.selected = max(min(m.selected+pageSize, len(m.records)-1), 0)

		case "g":
			if len(m.records) > 0 {
				m.state = stateGoto
				m.input.SetValue("")
				m.input.Focus()
				return m, textinput.Blink
			}

		case "enter":
			if m.state == stateList && len(m.records) > 0 {
				m.state = stateDetail
			} else {
				m.state = stateList
			}

		case "esc":
			m.state = stateList
		}

	case recordsMsg:
		m.loaded = true
		m.records = msg.records
		m.raw = msg.raw
		m.err = msg.err
	}

	return m, nil
}

func (m *browseModel) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.input.Blur()
		m.state = stateList
		return m, nil
	case "enter":
		m.input.Blur()
		m.state = stateList
		if n, err := strconv.Atoi(strings.TrimSpace(m.input.Value())); err == nil && n >= 1 && n <= len(m.records) {
			m.selected = n - 1
			m.state = stateDetail
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *browseModel) View() string {
	if !m.loaded {
		return "Loading records..."
	}
	if m.err != nil && len(m.records) == 0 {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Record Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(fmt.Sprintf(" (%d records of %d bytes)\n\n", len(m.records), m.plan.Size()))

	switch m.state {
	case stateList:
		m.viewList(&b)
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • pgup/pgdown page • enter open • g go to • q quit"))

	case stateGoto:
		m.viewList(&b)
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter open • esc back"))

	case stateDetail:
		m.viewDetail(&b)
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ previous/next • enter/esc back • q quit"))
	}

	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Stopped early: %v", m.err)))
	}

	return b.String()
}

func (m *browseModel) viewList(b *strings.Builder) {
	start := (m.selected / pageSize) * pageSize
	end := min(start+pageSize, len(m.records))
	for i := start; i < end; i++ {
		line := fmt.Sprintf("%6d  %s", i+1, summary(m.records[i], m.plan))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
}

func (m *browseModel) viewDetail(b *strings.Builder) {
	rec := m.records[m.selected]
	b.WriteString(fmt.Sprintf("Record %d at offset %d\n\n", m.selected+1, m.selected*m.plan.Size()))

	for _, r := range m.plan.Ranges() {
		v, _ := rec.Get(r.Path...)
		b.WriteString(fmt.Sprintf("%-24s %-20s %-7s %s\n",
			nameStyle.Render(strings.Join(r.Path, ".")),
			typeStyle.Render(r.Field.Picture()),
			typeStyle.Render(schema.TypeName(schema.FieldType(r.Field))),
			valueStyle.Render(strconv.Quote(v.String()))))
	}

	if m.selected < len(m.raw) {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("% x", m.raw[m.selected])))
		b.WriteString("\n")
	}
}

// summary renders the leading fields of rec on one line.
func summary(rec copybook.Record, plan *transcoder.Plan) string {
	var parts []string
	width := 0
	for _, r := range plan.Ranges() {
		v, _ := rec.Get(r.Path...)
		s := strings.TrimRight(v.String(), " ")
		parts = append(parts, s)
		width += len(s) + 2
		if width > 60 {
			break
		}
	}
	return strings.Join(parts, "  ")
}

// readRecords decodes up to limit records from r, keeping a copy of each
// record's bytes. Records read before an error are returned with it.
func readRecords(r io.Reader, j *job, limit int) ([]copybook.Record, [][]byte, error) {
	sr := transcoder.NewStreamReader(r, j.plan, j.decoder)
	var records []copybook.Record
	var raw [][]byte
	for limit <= 0 || len(records) < limit {
		rec, err := sr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, raw, err
		}
		records = append(records, rec)
		raw = append(raw, append([]byte(nil), sr.Raw()...))
	}
	return records, raw, nil
}

func runBrowse(args []string, e *env) error {
	c := newCommon("browse")
	limit := c.flags.Int("limit", 10000, "maximum number of records to load (0 for all)")
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
	if in == "-" {
		return fmt.Errorf("browse needs an input file")
	}
	if !isTerminal(e.stdout) {
		return fmt.Errorf("browse needs a terminal")
	}

	load := func() ([]copybook.Record, [][]byte, error) {
		r, err := openInput(in, e.stdin)
		if err != nil {
			return nil, nil, err
		}
		defer r.Close()
		return readRecords(r, j, *limit)
	}

	p := tea.NewProgram(newBrowseModel(in, j.plan, load), tea.WithAltScreen(), tea.WithContext(e.ctx))
	_, err = p.Run()
	return err
}
