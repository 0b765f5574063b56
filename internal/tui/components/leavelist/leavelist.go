package leavelist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"rollcall/internal/models"
)

// ApproveMsg asks the root model to confirm and submit an approval.
type ApproveMsg struct {
	Request models.LeaveRequest
	Name    string
}

// RejectMsg asks the root model to collect a note and submit a rejection.
type RejectMsg struct {
	Request models.LeaveRequest
	Name    string
}

type Item struct {
	Request models.LeaveRequest
	Name    string
}

func (i Item) Title() string {
	return fmt.Sprintf("%s: %s leave %s to %s", i.Name, i.Request.Kind, i.Request.From, i.Request.To)
}

func (i Item) Description() string {
	if i.Request.Reason != "" {
		return i.Request.Reason
	}
	return "No reason given"
}

func (i Item) FilterValue() string { return i.Name }

type KeyMap struct {
	Approve key.Binding
	Reject  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Approve: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "approve"),
		),
		Reject: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reject"),
		),
	}
}

type Model struct {
	list   list.Model
	keys   KeyMap
	loaded bool
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Pending leave"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	// Typing in a filter would collide with the global single-key bindings.
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Approve, keys.Reject}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Approve, keys.Reject}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

// SetRequests replaces the list contents. names maps employee IDs to display
// names; unknown IDs fall back to the raw ID.
func (m *Model) SetRequests(requests []models.LeaveRequest, names map[string]string) {
	items := make([]list.Item, len(requests))
	for i, r := range requests {
		name := names[r.EmployeeID]
		if name == "" {
			name = r.EmployeeID
		}
		items[i] = Item{Request: r, Name: name}
	}
	m.list.SetItems(items)
	m.loaded = true
}

// HelpKeys exposes the component bindings for the root help view.
func (m Model) HelpKeys() []key.Binding {
	return []key.Binding{m.keys.Approve, m.keys.Reject}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Approve):
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg {
					return ApproveMsg{Request: item.Request, Name: item.Name}
				}
			}
		case key.Matches(msg, m.keys.Reject):
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg {
					return RejectMsg{Request: item.Request, Name: item.Name}
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.loaded {
		return "Fetching leave requests..."
	}
	if len(m.list.Items()) == 0 {
		return "No pending leave requests."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
