package activityfeed

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rollcall/internal/models"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// Model renders the recent punches and leave decisions, newest first.
type Model struct {
	viewport viewport.Model
	entries  []models.ActivityEntry
	loc      *time.Location
	loaded   bool
}

func New(loc *time.Location) Model {
	return Model{
		viewport: viewport.New(0, 0),
		loc:      loc,
	}
}

func (m *Model) SetEntries(entries []models.ActivityEntry) {
	m.entries = entries
	m.loaded = true
	m.viewport.SetContent(m.content())
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.loaded {
		return detailStyle.Render("Fetching activity...")
	}
	if len(m.entries) == 0 {
		return detailStyle.Render("No punches or leave decisions yet.")
	}
	return m.viewport.View()
}

func (m Model) content() string {
	var b strings.Builder
	for _, entry := range m.entries {
		line := fmt.Sprintf("%s %s %s",
			timeStyle.Render(entry.At.In(m.loc).Format("Jan 02 15:04")),
			nameStyle.Render(entry.EmployeeName),
			detailStyle.Render(entry.Detail),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
