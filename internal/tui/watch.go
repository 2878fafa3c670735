package tui

import (
	"fmt"
	"strings"

	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type WatchState int

const (
	StateWatching WatchState = iota
	StateFinished
	StateGone
	StateFailed
	StateAborted
)

type jobEventMsg printer.JobEvent

type watchClosedMsg struct{}

// WatchModel follows one job's events until the job reaches a terminal state.
type WatchModel struct {
	styles  Styles
	spinner spinner.Model
	events  <-chan printer.JobEvent

	printerName string
	jobID       int

	state   WatchState
	history []printer.JobEvent
	err     error
}

func NewWatchModel(printerName string, jobID int, events <-chan printer.JobEvent) WatchModel {
	styles := NewStyles()
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Title

	return WatchModel{
		styles:      styles,
		spinner:     s,
		events:      events,
		printerName: printerName,
		jobID:       jobID,
		state:       StateWatching,
	}
}

func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvents())
}

func (m WatchModel) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return watchClosedMsg{}
		}
		return jobEventMsg(ev)
	}
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.state = StateAborted
			return m, tea.Quit
		}
		return m, nil

	case jobEventMsg:
		ev := printer.JobEvent(msg)
		m.history = append(m.history, ev)
		switch {
		case ev.Err != nil:
			m.state = StateFailed
			m.err = ev.Err
		case ev.Gone:
			m.state = StateGone
		case ev.Job.Finished():
			m.state = StateFinished
		}
		return m, m.listenForEvents()

	case watchClosedMsg:
		if m.state == StateWatching {
			m.state = StateAborted
		}
		return m, tea.Quit

	case spinner.TickMsg:
		if m.state != StateWatching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Job %s-%d", m.printerName, m.jobID)))
	b.WriteString("\n\n")

	for _, ev := range m.history {
		b.WriteString(m.styles.Subtle.Render(ev.Time.Format("15:04:05")))
		b.WriteString("  ")
		status := strings.Join(ev.Job.Status, ",")
		if status == "" {
			status = string(printer.StatusUnknown)
		}
		b.WriteString(m.styles.StatusStyle(firstStatus(ev.Job.Status)).Render(status))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.state {
	case StateWatching:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.styles.Normal.Render("Watching job..."))
		b.WriteString("\n")
		b.WriteString(m.styles.Subtle.Render("Press q to stop"))
	case StateFinished:
		b.WriteString(m.styles.Success.Render("✓ Job finished"))
	case StateGone:
		b.WriteString(m.styles.Warning.Render("Job is no longer known to the printer"))
	case StateFailed:
		b.WriteString(m.styles.Error.Render("✗ " + m.err.Error()))
	case StateAborted:
		b.WriteString(m.styles.Subtle.Render("Stopped watching"))
	}
	b.WriteString("\n")
	return b.String()
}

func firstStatus(statuses []string) string {
	if len(statuses) == 0 {
		return ""
	}
	return statuses[0]
}

func (m WatchModel) State() WatchState {
	return m.state
}

func (m WatchModel) Err() error {
	return m.err
}
