package headcount

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"rollcall/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	numberStyle = lipgloss.NewStyle().
			Bold(true).
			Width(5).
			Align(lipgloss.Right)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	breakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	leaveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	offStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model renders the one-day headcount breakdown.
type Model struct {
	summary models.Summary
	width   int
	height  int
	loaded  bool
}

func New() Model {
	return Model{}
}

func (m *Model) SetSummary(summary models.Summary) {
	m.summary = summary
	m.loaded = true
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) View() string {
	if !m.loaded {
		return footerStyle.Render("Fetching summary...")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Headcount for %s", m.summary.Date)),
		"",
		counter(m.summary.Working, "working", workingStyle),
		counter(m.summary.OnBreak, "on break", breakStyle),
		counter(m.summary.OnLeave, "on leave", leaveStyle),
		counter(m.summary.Done, "done for the day", doneStyle),
		counter(m.summary.Off, "off", offStyle),
		"",
		footerStyle.Render(fmt.Sprintf("%d on the roster", m.summary.Total)),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func counter(n int, label string, style lipgloss.Style) string {
	return numberStyle.Render(fmt.Sprintf("%d", n)) + " " + style.Render(label)
}
