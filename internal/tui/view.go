package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rollcall/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateBoard:
		content = docStyle.Render(m.boardModel.View())
	case constants.StateSummary:
		content = docStyle.Render(m.headcountModel.View())
	case constants.StateLeave:
		content = docStyle.Render(m.leaveModel.View())
	case constants.StateActivity:
		content = docStyle.Render(m.activityModel.View())
	case constants.StateRejectNote, constants.StateConfirmation:
		content = docStyle.Render(m.form.View())
	}

	rows := []string{
		m.viewTabs(),
		content,
	}
	if m.formError != "" {
		rows = append(rows, dangerStyle.Render(m.formError))
	}
	rows = append(rows, m.viewStatusBar(), m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Board", "Summary", "Leave", "Activity"}
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// viewStatusBar shows the wall clock, poll health, and the last action.
func (m Model) viewStatusBar() string {
	parts := []string{m.now.Format(constants.ClockFormat)}

	if err := m.poller.LastError(); err != nil {
		parts = append(parts, warningStyle.Render("poll failing, showing last known state"))
	} else {
		parts = append(parts, "live")
	}

	if m.flash != "" {
		parts = append(parts, flashStyle.Render(m.flash))
	}

	return statusBarStyle.Render(strings.Join(parts, " | "))
}
