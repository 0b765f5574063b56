package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rollcall/internal/api"
	"rollcall/internal/models"
	"rollcall/internal/poller"
)

const activityFeedLimit = 50

// RefreshMsg is sent into the program when an admin command nudges the board
// through the refresh listener.
type RefreshMsg struct {
	Reason string
}

type clockTickMsg time.Time

type boardUpdateMsg poller.Update

type pollerClosedMsg struct{}

type polledMsg struct{}

type summaryMsg struct {
	summary models.Summary
	err     error
}

type leaveLoadedMsg struct {
	requests []models.LeaveRequest
	names    map[string]string
	err      error
}

type activityMsg struct {
	entries []models.ActivityEntry
	err     error
}

type leaveDecidedMsg struct {
	name string
	verb string
	err  error
}

func tickClock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// runPoller blocks inside the command goroutine until the model's context is
// cancelled. The poller owns its shutdown; nothing to report afterwards.
func runPoller(p *poller.Poller, ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		p.Run(ctx)
		return nil
	}
}

// waitForUpdate bridges the poller's update stream into the program, one
// message per command. The update handler re-issues it to keep the loop going.
func waitForUpdate(updates <-chan poller.Update) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return pollerClosedMsg{}
		}
		return boardUpdateMsg(update)
	}
}

func pollNow(p *poller.Poller, ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		p.Poll(ctx)
		return polledMsg{}
	}
}

func fetchSummary(ctx context.Context, client api.Client) tea.Cmd {
	return func() tea.Msg {
		summary, err := client.Summary(ctx)
		return summaryMsg{summary: summary, err: err}
	}
}

func fetchLeave(ctx context.Context, client api.Client) tea.Cmd {
	return func() tea.Msg {
		requests, err := client.Leave(ctx, models.LeavePending)
		if err != nil {
			return leaveLoadedMsg{err: err}
		}

		// The full roster, so requests from removed employees still resolve.
		employees, err := client.Employees(ctx, true)
		if err != nil {
			return leaveLoadedMsg{err: err}
		}
		names := make(map[string]string, len(employees))
		for _, employee := range employees {
			names[employee.ID] = employee.Name
		}

		return leaveLoadedMsg{requests: requests, names: names}
	}
}

func fetchActivity(ctx context.Context, client api.Client) tea.Cmd {
	return func() tea.Msg {
		entries, err := client.Activity(ctx, activityFeedLimit)
		return activityMsg{entries: entries, err: err}
	}
}

func approveLeave(ctx context.Context, client api.Client, id, name, decidedBy string) tea.Cmd {
	return func() tea.Msg {
		err := client.ApproveLeave(ctx, id, decidedBy)
		return leaveDecidedMsg{name: name, verb: "Approved", err: err}
	}
}

func rejectLeave(ctx context.Context, client api.Client, id, name, decidedBy, note string) tea.Cmd {
	return func() tea.Msg {
		err := client.RejectLeave(ctx, id, decidedBy, note)
		return leaveDecidedMsg{name: name, verb: "Rejected", err: err}
	}
}
