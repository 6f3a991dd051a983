// Package statusbar renders a one-line sync status display that refreshes
// once per second while a watch session runs.
package statusbar

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/autosync/pkg/syncer"
	"github.com/grovetools/autosync/tui/theme"
)

// tickMsg is sent periodically to refresh the status line.
type tickMsg time.Time

// Model is the bubbletea model for the status bar.
type Model struct {
	presenter *syncer.Presenter
	repoName  string
	width     int

	tagStyle  lipgloss.Style
	lineStyle lipgloss.Style
	quitStyle lipgloss.Style
}

// New creates a status bar fed by the presenter.
func New(presenter *syncer.Presenter, repoName string) Model {
	t := theme.DefaultTheme
	return Model{
		presenter: presenter,
		repoName:  repoName,
		tagStyle:  lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Cyan),
		lineStyle: lipgloss.NewStyle().Foreground(t.Colors.LightText),
		quitStyle: t.Muted,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	line := m.tagStyle.Render(m.repoName) + " " + m.lineStyle.Render(m.presenter.Line())
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line + "\n" + m.quitStyle.Render("press q to quit") + "\n"
}
