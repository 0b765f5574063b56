package poller

import (
	"context"
	"sort"
	"sync"
	"time"

	"rollcall/internal/api"
	"rollcall/internal/constants"
	"rollcall/internal/estimator"
	"rollcall/internal/logger"
	"rollcall/internal/models"
)

const (
	eventBuffer  = 8
	updateBuffer = 64
)

// State pairs an employee's last server snapshot with the logout time the
// estimator says to display right now.
type State struct {
	Snapshot  models.AttendanceSnapshot
	Displayed *time.Time
	Live      bool
}

// Update is one change published by the poller: either a fresh State for an
// employee, or Removed when the employee left the roster.
type Update struct {
	EmployeeID string
	State      State
	Removed    bool
}

// Config contains runtime options for a Poller.
type Config struct {
	Client   api.Client
	Interval time.Duration
	// Tick is the republish cadence of live estimates.
	Tick  time.Duration
	Clock estimator.Clock
}

type entry struct {
	est  *estimator.Estimator
	snap models.AttendanceSnapshot
}

// Poller fetches the attendance board from the server on a fixed cadence and
// keeps one estimator per employee fed with the latest snapshot. Estimator
// events are fanned into a single update stream. A failed poll keeps the last
// known state; stale estimates beat an empty board.
type Poller struct {
	client   api.Client
	interval time.Duration
	tick     time.Duration
	clock    estimator.Clock

	mu       sync.Mutex
	entries  map[string]*entry
	failures int
	lastErr  error
	closed   bool

	wg      sync.WaitGroup
	updates chan Update
}

// New creates a Poller with the provided options.
func New(options Config) *Poller {
	if options.Interval <= 0 {
		options.Interval = constants.DefaultPollIntervalSec * time.Second
	}
	if options.Tick <= 0 {
		options.Tick = constants.EstimateInterval
	}

	return &Poller{
		client:   options.Client,
		interval: options.Interval,
		tick:     options.Tick,
		clock:    options.Clock,
		entries:  make(map[string]*entry),
		updates:  make(chan Update, updateBuffer),
	}
}

// Updates returns the fan-in stream of estimator events and roster removals.
// The channel is closed when the poller shuts down. Updates are dropped
// rather than queued when the consumer falls behind; every update carries the
// full state, so the next one corrects the miss.
func (p *Poller) Updates() <-chan Update {
	return p.updates
}

// Run polls immediately, then on every interval until the context is
// cancelled. It owns the poller lifecycle: when it returns, all estimators
// are stopped and the update channel is closed.
func (p *Poller) Run(ctx context.Context) error {
	p.Poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.Close()
			return nil
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll fetches the board once and applies it. Board refresh notifications
// call this between ticks.
func (p *Poller) Poll(ctx context.Context) {
	snapshots, err := p.client.AllAttendance(ctx)
	if err != nil {
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return
		}
		p.failures++
		failures := p.failures
		p.lastErr = err
		p.mu.Unlock()

		logger.Warn("attendance poll failed, keeping last state", "error", err, "consecutive", failures)
		return
	}

	type target struct {
		est  *estimator.Estimator
		snap estimator.Snapshot
	}
	var targets []target
	var removed []string

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.failures = 0
	p.lastErr = nil

	seen := make(map[string]bool, len(snapshots))
	for _, snap := range snapshots {
		seen[snap.EmployeeID] = true

		e, ok := p.entries[snap.EmployeeID]
		if !ok {
			e = &entry{est: estimator.New(estimator.Config{Clock: p.clock, Interval: p.tick})}
			p.entries[snap.EmployeeID] = e
			events := e.est.Subscribe(eventBuffer)
			p.wg.Add(1)
			go p.forward(snap.EmployeeID, events)
			logger.Debug("tracking employee", "employee", snap.EmployeeID)
		}
		e.snap = snap
		targets = append(targets, target{est: e.est, snap: estimator.Snapshot{
			RequiredLogout: snap.RequiredLogout,
			Break:          snap.Break,
		}})
	}

	var stopped []*estimator.Estimator
	for id, e := range p.entries {
		if seen[id] {
			continue
		}
		stopped = append(stopped, e.est)
		delete(p.entries, id)
		removed = append(removed, id)
		logger.Debug("employee left the roster", "employee", id)
	}
	p.mu.Unlock()

	// Apply outside the lock; each Apply emits a snapshot event through the
	// forwarders, which take the lock themselves.
	for _, t := range targets {
		t.est.Apply(t.snap)
	}
	for _, est := range stopped {
		est.Stop()
	}
	for _, id := range removed {
		p.publish(Update{EmployeeID: id, Removed: true})
	}
}

// forward turns one estimator's events into tagged updates. It exits when the
// estimator stops and closes its event channel.
func (p *Poller) forward(employeeID string, events <-chan estimator.Event) {
	defer p.wg.Done()

	for event := range events {
		p.mu.Lock()
		e, ok := p.entries[employeeID]
		if !ok {
			p.mu.Unlock()
			continue
		}
		state := State{Snapshot: e.snap, Displayed: event.Displayed, Live: event.Live}
		p.mu.Unlock()

		p.publish(Update{EmployeeID: employeeID, State: state})
	}
}

func (p *Poller) publish(update Update) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	select {
	case p.updates <- update:
	default:
		logger.Debug("dropping update, consumer is behind", "employee", update.EmployeeID)
	}
}

// States returns the current state of every tracked employee, ordered by
// name. Displayed values are derived at call time, not replayed from events.
func (p *Poller) States() []State {
	p.mu.Lock()
	defer p.mu.Unlock()

	states := make([]State, 0, len(p.entries))
	for _, e := range p.entries {
		displayed, live := e.est.Displayed()
		states = append(states, State{Snapshot: e.snap, Displayed: displayed, Live: live})
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].Snapshot.EmployeeName < states[j].Snapshot.EmployeeName
	})
	return states
}

// LastError returns the error from the most recent poll, or nil when it
// succeeded. Consumers use it to flag the board as stale.
func (p *Poller) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Close stops every estimator and closes the update channel. It is safe to
// call more than once.
func (p *Poller) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	entries := p.entries
	p.entries = make(map[string]*entry)
	p.mu.Unlock()

	for _, e := range entries {
		e.est.Stop()
	}
	p.wg.Wait()
	close(p.updates)
}
