package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lrcdl/internal/formatter"
	"github.com/desertthunder/lrcdl/internal/tasks"
)

// maxLines bounds the scrollback of per-file status lines kept on screen.
const maxLines = 10

// UpdateMsg wraps a [tasks.ProgressUpdate] for the bubbletea event loop.
type UpdateMsg tasks.ProgressUpdate

// closedMsg signals that the progress channel was closed by the producer.
type closedMsg struct{}

// Model renders a live view of a batch run: spinner, progress bar, recent
// file outcomes, and running counts.
type Model struct {
	updates  <-chan tasks.ProgressUpdate
	spinner  spinner.Model
	bar      progress.Model
	current  string
	lines    []string
	stats    tasks.Stats
	step     int
	total    int
	width    int
	done     bool
	quitting bool
}

// NewModel creates a progress Model consuming updates until the channel
// closes or the run completes.
func NewModel(updates <-chan tasks.ProgressUpdate) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		updates: updates,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient()),
		width:   80,
	}
}

func waitForUpdate(updates <-chan tasks.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return closedMsg{}
		}
		return UpdateMsg(update)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForUpdate(m.updates))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(msg.Width-8, 60)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case UpdateMsg:
		return m.applyUpdate(tasks.ProgressUpdate(msg))

	case closedMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) applyUpdate(update tasks.ProgressUpdate) (tea.Model, tea.Cmd) {
	switch update.Phase {
	case tasks.Scan:
		m.total = update.Total

	case tasks.Process:
		m.step = update.Step
		m.current = update.Message

	case tasks.FileDone:
		if update.Outcome != nil {
			m.countOutcome(*update.Outcome)
			m.lines = append(m.lines, formatter.StatusLine(*update.Outcome, true))
			if len(m.lines) > maxLines {
				m.lines = m.lines[len(m.lines)-maxLines:]
			}
		}

	case tasks.RunDone:
		m.done = true
		m.current = ""
		return m, tea.Quit
	}

	return m, waitForUpdate(m.updates)
}

func (m *Model) countOutcome(o tasks.Outcome) {
	m.stats.Total++
	switch o.Status {
	case tasks.StatusDownloaded:
		m.stats.Downloaded++
	case tasks.StatusSkipped:
		m.stats.Skipped++
	case tasks.StatusFailed:
		m.stats.Failed++
	case tasks.StatusNoMatch:
		m.stats.NoMatch++
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := titleStyle.Render("lrcdl") + "\n\n"

	if m.total > 0 {
		percent := float64(m.step) / float64(m.total)
		s += m.bar.ViewAs(percent) + "\n\n"
	}

	if m.current != "" && !m.done {
		s += m.spinner.View() + " " + m.current + "\n\n"
	}

	for _, line := range m.lines {
		s += line + "\n"
	}

	s += "\n" + footerStyle.Render(m.footer())
	return s
}

func (m Model) footer() string {
	if m.done {
		return "done - press q to exit"
	}
	return statsLine(m.stats) + "  •  q to quit"
}
