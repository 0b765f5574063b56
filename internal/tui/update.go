package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"rollcall/internal/cli"
	"rollcall/internal/constants"
	"rollcall/internal/tui/components/leavelist"
)

const flashDuration = 5 * time.Second

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle Reject Note State
	if m.state == constants.StateRejectNote {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.rejectTarget = nil
			m.formError = ""
			m.state = constants.StateLeave
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			target := m.rejectTarget
			m.rejectTarget = nil
			m.formError = ""
			m.state = constants.StateLeave
			if target != nil {
				cmds = append(cmds, rejectLeave(m.ctx, m.client, target.Request.ID, target.Name, cli.DeciderName(""), m.rejectForm.Note))
			}
		case huh.StateAborted:
			m.rejectTarget = nil
			m.formError = ""
			m.state = constants.StateLeave
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Confirmation State
	if m.state == constants.StateConfirmation {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.pendingAction = nil
			m.formError = ""
			m.state = m.previousState
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if m.confirmationForm.Confirmed && m.pendingAction != nil {
				cmds = append(cmds, m.pendingAction())
			}
			m.pendingAction = nil
			m.formError = ""
			m.state = m.previousState
		case huh.StateAborted:
			m.pendingAction = nil
			m.formError = ""
			m.state = m.previousState
		}
		return m, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Tabs, status bar, and help take the rest of the terminal.
		contentHeight := msg.Height - 4

		h, v := docStyle.GetFrameSize()
		m.boardModel.SetSize(msg.Width-h, contentHeight-v)
		m.headcountModel.SetSize(msg.Width-h, contentHeight-v)
		m.leaveModel.SetSize(msg.Width-h, contentHeight-v)
		m.activityModel.SetSize(msg.Width-h, contentHeight-v)

	case clockTickMsg:
		m.now = time.Time(msg).In(m.loc)
		if m.flash != "" && m.now.Sub(m.flashAt) > flashDuration {
			m.flash = ""
		}
		return m, tickClock()

	case boardUpdateMsg:
		// Every update carries full state, so re-derive the whole table and
		// let removals fall out on their own.
		m.boardModel.SetRows(m.poller.States())
		return m, waitForUpdate(m.poller.Updates())

	case pollerClosedMsg:
		return m, nil

	case polledMsg:
		return m, nil

	case RefreshMsg:
		m.setFlash(fmt.Sprintf("refreshed: %s", msg.Reason))
		return m, m.refetchAll()

	case summaryMsg:
		if msg.err != nil {
			m.formError = fmt.Sprintf("Failed to load summary: %v", msg.err)
			return m, nil
		}
		m.formError = ""
		m.headcountModel.SetSummary(msg.summary)
		return m, nil

	case leaveLoadedMsg:
		if msg.err != nil {
			m.formError = fmt.Sprintf("Failed to load leave requests: %v", msg.err)
			return m, nil
		}
		m.formError = ""
		m.leaveModel.SetRequests(msg.requests, msg.names)
		return m, nil

	case activityMsg:
		if msg.err != nil {
			m.formError = fmt.Sprintf("Failed to load activity: %v", msg.err)
			return m, nil
		}
		m.formError = ""
		m.activityModel.SetEntries(msg.entries)
		return m, nil

	case leavelist.ApproveMsg:
		ctx, client := m.ctx, m.client
		request, name := msg.Request, msg.Name
		decidedBy := cli.DeciderName("")
		return m, func() tea.Msg {
			return constants.ConfirmationMsg{
				Message: fmt.Sprintf("Approve %s leave for %s (%s to %s)?", request.Kind, name, request.From, request.To),
				Action: func() tea.Cmd {
					return approveLeave(ctx, client, request.ID, name, decidedBy)
				},
			}
		}

	case leavelist.RejectMsg:
		item := leavelist.Item{Request: msg.Request, Name: msg.Name}
		m.rejectTarget = &item
		m.rejectForm = &RejectFormModel{}
		m.form = NewRejectForm(m.rejectForm)
		m.previousState = m.state
		m.state = constants.StateRejectNote
		return m, m.form.Init()

	case constants.ConfirmationMsg:
		m.confirmationForm = &ConfirmationFormModel{Message: msg.Message}
		m.pendingAction = msg.Action
		m.form = NewConfirmationForm(m.confirmationForm)
		m.previousState = m.state
		m.state = constants.StateConfirmation
		return m, m.form.Init()

	case leaveDecidedMsg:
		if msg.err != nil {
			m.formError = fmt.Sprintf("Leave decision failed: %v", msg.err)
			return m, nil
		}
		m.formError = ""
		m.setFlash(fmt.Sprintf("%s leave for %s", msg.verb, msg.name))
		// An approval can put someone on leave today, so repoll the board
		// along with the lists.
		return m, m.refetchAll()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + constants.NumMainTabs) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.setFlash("refreshing")
			return m, m.refetchAll()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateBoard:
		m.boardModel, cmd = m.boardModel.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StateLeave:
		m.leaveModel, cmd = m.leaveModel.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StateActivity:
		m.activityModel, cmd = m.activityModel.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) setFlash(text string) {
	m.flash = text
	m.flashAt = m.now
}

func (m Model) refetchAll() tea.Cmd {
	return tea.Batch(
		pollNow(m.poller, m.ctx),
		fetchSummary(m.ctx, m.client),
		fetchLeave(m.ctx, m.client),
		fetchActivity(m.ctx, m.client),
	)
}
