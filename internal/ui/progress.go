package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"liberty/internal/driver"
)

const statusWidth = 10

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	busyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// fileItem is one row of the view.
type fileItem struct {
	path   string
	status string
	share  float64 // доля готовности файла, 0..1
}

func (it fileItem) finished() bool { return it.status == "done" || it.status == "error" }

type (
	eventMsg driver.PhaseEvent
	doneMsg  struct{}
)

type progressModel struct {
	title   string
	events  <-chan driver.PhaseEvent
	spinner spinner.Model
	bar     progress.Model
	items   []fileItem
	rows    map[string]int // путь -> индекс в items
	width   int
	done    bool
}

// NewProgressModel returns a Bubble Tea model with one row per file of a
// directory parse. It quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.PhaseEvent) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(busyStyle)),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		items:   make([]fileItem, len(files)),
		rows:    make(map[string]int, len(files)),
		width:   80,
	}
	for i, path := range files {
		m.items[i] = fileItem{path: path, status: "queued"}
		m.rows[path] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.applyEvent(driver.PhaseEvent(msg)), m.listenForEvent())
	case doneMsg:
		m.done = true
		cmd = tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			cmd = tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case spinner.TickMsg:
		if !m.done {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder

	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}
	b.WriteString(titleStyle.Render(header) + "\n\n")

	nameWidth := max(m.width-statusWidth-4, 20)
	for _, it := range m.items {
		status := styleStatus(it.status).Render(fmt.Sprintf("%*s", statusWidth, it.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(it.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

// applyEvent updates the row of ev.Path. Finished rows and unknown paths
// are left alone.
func (m *progressModel) applyEvent(ev driver.PhaseEvent) tea.Cmd {
	i, ok := m.rows[ev.Path]
	if !ok || m.items[i].finished() {
		return nil
	}
	status, share := phaseStatus(ev)
	if status == "" {
		return nil
	}
	m.items[i].status, m.items[i].share = status, share
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range m.items {
		sum += it.share
	}
	return sum / float64(len(m.items))
}

func (m *progressModel) finished() int {
	n := 0
	for _, it := range m.items {
		if it.finished() {
			n++
		}
	}
	return n
}

type phaseKey struct {
	name string
	end  bool
	ok   bool
}

type phaseRow struct {
	status string
	share  float64
}

// phaseRows maps a driver event to the row label and the share of the
// file's work done so far. A failed load and the "file" event finish the row.
var phaseRows = map[phaseKey]phaseRow{
	{"load", false, false}:  {"loading", 0.1},
	{"load", true, true}:    {"loaded", 0.2},
	{"load", true, false}:   {"error", 1},
	{"cache", false, false}: {"cache", 0.3},
	{"cache", true, true}:   {"cached", 0.9},
	{"cache", true, false}:  {"parsing", 0.4},
	{"parse", false, false}: {"parsing", 0.4},
	{"parse", true, true}:   {"storing", 0.9},
	{"parse", true, false}:  {"storing", 0.9},
	{"file", true, true}:    {"done", 1},
	{"file", true, false}:   {"error", 1},
}

func phaseStatus(ev driver.PhaseEvent) (string, float64) {
	key := phaseKey{name: ev.Name, end: ev.Status == driver.PhaseEnd}
	if key.end {
		key.ok = ev.OK
	}
	row := phaseRows[key]
	return row.status, row.share
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done", "cached":
		return okStyle
	case "error":
		return failStyle
	case "queued", "":
		return idleStyle
	}
	return busyStyle
}

// truncate shortens value to width display cells with a "..." tail.
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
