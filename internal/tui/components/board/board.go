package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rollcall/internal/constants"
	"rollcall/internal/models"
	"rollcall/internal/poller"
	"rollcall/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	liveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	plainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	breakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	leaveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const (
	nameWidth   = 22
	statusWidth = 16
	breakWidth  = 20
	logoutWidth = 12
	workedWidth = 8
)

// Model renders the live attendance table. Rows come from the poller; the
// logout column carries the current estimate and is marked while it is moving.
type Model struct {
	viewport viewport.Model
	rows     []poller.State
	loc      *time.Location
	loaded   bool
}

func New(loc *time.Location) Model {
	return Model{
		viewport: viewport.New(0, 0),
		loc:      loc,
	}
}

// SetRows replaces the table contents with a fresh view of the roster.
func (m *Model) SetRows(rows []poller.State) {
	m.rows = rows
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
		return dimStyle.Render("Fetching attendance...")
	}
	if len(m.rows) == 0 {
		return dimStyle.Render("No employees yet. Add one with 'rollcall employee add'.")
	}
	return m.viewport.View()
}

func (m Model) content() string {
	var b strings.Builder

	header := fmt.Sprintf("%s %s %s %s %s %s",
		pad("EMPLOYEE", nameWidth),
		pad("STATUS", statusWidth),
		pad("BREAK", breakWidth),
		pad("LOGOUT", logoutWidth),
		pad("WORKED", workedWidth),
		"BREAKS",
	)
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for _, row := range m.rows {
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(row poller.State) string {
	snap := row.Snapshot

	cells := []string{
		nameStyle.Render(pad(snap.EmployeeName, nameWidth)),
		statusStyle(snap.Status).Render(pad(snap.Status.Label(), statusWidth)),
		dimStyle.Render(pad(m.breakCell(snap), breakWidth)),
		m.logoutCell(row),
		plainStyle.Render(pad(workedCell(snap), workedWidth)),
		dimStyle.Render(breaksCell(snap)),
	}
	return strings.Join(cells, " ")
}

func (m Model) breakCell(snap models.AttendanceSnapshot) string {
	if snap.Break == nil {
		return ""
	}
	return fmt.Sprintf("%s since %s", snap.Break.Type, snap.Break.StartedAt.In(m.loc).Format(constants.TimeFormat))
}

// logoutCell shows the displayed logout estimate. A moving estimate gets a
// marker and color so a glance tells live apart from static.
func (m Model) logoutCell(row poller.State) string {
	if row.Displayed == nil {
		return dimStyle.Render(pad("-", logoutWidth))
	}

	text := row.Displayed.In(m.loc).Format(constants.ClockFormat)
	if row.Live {
		return liveStyle.Render(pad(text+" ▲", logoutWidth))
	}
	return plainStyle.Render(pad(text, logoutWidth))
}

func workedCell(snap models.AttendanceSnapshot) string {
	if snap.ClockedInAt == nil {
		return ""
	}
	return utils.FormatMinutes(snap.WorkedMinutes)
}

func breaksCell(snap models.AttendanceSnapshot) string {
	if snap.ClockedInAt == nil || snap.BreakMinutes == 0 {
		return ""
	}
	return utils.FormatMinutes(snap.BreakMinutes)
}

func statusStyle(status models.AttendanceStatus) lipgloss.Style {
	switch status {
	case models.StatusWorking:
		return workingStyle
	case models.StatusOnBreak:
		return breakStyle
	case models.StatusOnLeave:
		return leaveStyle
	case models.StatusDone:
		return doneStyle
	default:
		return dimStyle
	}
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
