package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"rollcall/internal/api"
	"rollcall/internal/constants"
	"rollcall/internal/poller"
	"rollcall/internal/tui/components/activityfeed"
	"rollcall/internal/tui/components/board"
	"rollcall/internal/tui/components/headcount"
	"rollcall/internal/tui/components/leavelist"
)

// RejectFormModel holds the note entered before a rejection is submitted.
type RejectFormModel struct {
	Note string
}

// ConfirmationFormModel backs the generic confirmation dialog.
type ConfirmationFormModel struct {
	Message   string
	Confirmed bool
}

// Options configures the board program.
type Options struct {
	Client   api.Client
	Interval time.Duration
	Location *time.Location
	Version  string
}

type Model struct {
	client api.Client
	poller *poller.Poller
	ctx    context.Context
	cancel context.CancelFunc

	loc     *time.Location
	version string

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	boardModel     board.Model
	headcountModel headcount.Model
	leaveModel     leavelist.Model
	activityModel  activityfeed.Model

	form             *huh.Form
	rejectForm       *RejectFormModel
	confirmationForm *ConfirmationFormModel
	pendingAction    func() tea.Cmd
	rejectTarget     *leavelist.Item

	now       time.Time
	flash     string
	flashAt   time.Time
	formError string
	quitting  bool
	width     int
	height    int
}

func NewModel(opts Options) Model {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		client:         opts.Client,
		poller:         poller.New(poller.Config{Client: opts.Client, Interval: opts.Interval}),
		ctx:            ctx,
		cancel:         cancel,
		loc:            loc,
		version:        opts.Version,
		state:          constants.StateBoard,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		boardModel:     board.New(loc),
		headcountModel: headcount.New(),
		leaveModel:     leavelist.New(0, 0),
		activityModel:  activityfeed.New(loc),
		now:            time.Now().In(loc),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Refresh, m.keys.Quit, m.keys.Help}
	if m.state == constants.StateLeave {
		keys = append(keys, m.leaveModel.HelpKeys()...)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Refresh, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == constants.StateLeave {
		actions = m.leaveModel.HelpKeys()
	}

	return [][]key.Binding{global, navigation, actions}
}

// Init starts the poller, bridges its update stream into the program, and
// fetches the other tabs up front so switching is instant.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		runPoller(m.poller, m.ctx),
		waitForUpdate(m.poller.Updates()),
		tickClock(),
		fetchSummary(m.ctx, m.client),
		fetchLeave(m.ctx, m.client),
		fetchActivity(m.ctx, m.client),
	)
}
