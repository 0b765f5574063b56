package estimator

import (
	"sync"
	"time"

	"rollcall/internal/models"
)

// Snapshot is the slice of an attendance snapshot the estimator works from:
// the server-derived required logout time and the break currently running,
// both of which may be absent.
type Snapshot struct {
	RequiredLogout *time.Time
	Break          *models.ActiveBreak
}

// Config contains runtime options for an Estimator.
type Config struct {
	Clock    Clock
	Interval time.Duration
}

// Estimator derives the logout time to display for one employee. While a
// shift-extending break is running it owns a ticker that republishes the
// estimate every second; otherwise it passes the snapshot value through
// untouched. The displayed value is always re-derived from the snapshot
// baseline plus wall clock elapsed since receipt, so a delayed tick delays
// publication but never skews the value.
type Estimator struct {
	mu         sync.Mutex
	clock      Clock
	interval   time.Duration
	baseline   *time.Time
	breakType  models.BreakType
	receivedAt time.Time
	live       bool
	cycle      uint64
	cancel     chan struct{}
	events     []chan Event
	closed     bool
}

// New creates an Estimator with the provided options.
func New(options Config) *Estimator {
	if options.Clock == nil {
		options.Clock = RealClock{}
	}
	if options.Interval <= 0 {
		options.Interval = time.Second
	}

	return &Estimator{
		clock:    options.Clock,
		interval: options.Interval,
	}
}

// Subscribe registers a new observer channel. The channel is closed when the
// estimator stops. Observers that fall behind miss events rather than block
// the estimator.
func (est *Estimator) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	est.mu.Lock()
	if est.closed {
		est.mu.Unlock()
		close(ch)
		return ch
	}
	est.events = append(est.events, ch)
	est.mu.Unlock()
	return ch
}

// Apply replaces the current snapshot. Any in-flight estimate cycle is
// cancelled first; a tick from a superseded cycle can never publish. When the
// new snapshot carries a baseline and a shift-extending break, a fresh cycle
// starts ticking immediately. Apply is a no-op after Stop.
func (est *Estimator) Apply(snap Snapshot) {
	est.mu.Lock()
	if est.closed {
		est.mu.Unlock()
		return
	}

	est.cancelCycleLocked()

	est.baseline = nil
	est.breakType = ""
	est.live = false
	est.receivedAt = est.clock.Now()

	if snap.RequiredLogout != nil {
		baseline := *snap.RequiredLogout
		est.baseline = &baseline

		if snap.Break != nil {
			est.breakType = snap.Break.Type
			est.live = snap.Break.Type.ExtendsShift()
		}
	}

	if est.live {
		cancel := make(chan struct{})
		est.cancel = cancel
		go est.run(est.cycle, cancel)
	}

	est.emitLocked(Event{
		Type:      EventSnapshot,
		Displayed: est.displayedLocked(),
		Live:      est.live,
		At:        est.receivedAt,
	})
	est.mu.Unlock()
}

// Displayed returns the logout time to show right now, which is nil whenever
// the snapshot had none, and whether a live estimate cycle is running.
func (est *Estimator) Displayed() (*time.Time, bool) {
	est.mu.Lock()
	defer est.mu.Unlock()
	if est.closed {
		return nil, false
	}
	return est.displayedLocked(), est.live
}

// BreakType returns the type of the break in the current snapshot, if any.
func (est *Estimator) BreakType() models.BreakType {
	est.mu.Lock()
	defer est.mu.Unlock()
	return est.breakType
}

// Stop cancels any running cycle and closes observer channels. It is safe to
// call at any point in the lifecycle, including mid-cycle, and is idempotent.
func (est *Estimator) Stop() {
	est.mu.Lock()
	if est.closed {
		est.mu.Unlock()
		return
	}
	est.closed = true
	est.cancelCycleLocked()
	events := est.events
	est.events = nil
	est.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (est *Estimator) run(cycle uint64, cancel chan struct{}) {
	ticker := time.NewTicker(est.interval)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			est.tick(cycle)
		}
	}
}

func (est *Estimator) tick(cycle uint64) {
	est.mu.Lock()
	// A tick that lost the race with Apply or Stop belongs to a dead cycle.
	if est.closed || cycle != est.cycle {
		est.mu.Unlock()
		return
	}

	est.emitLocked(Event{
		Type:      EventEstimate,
		Displayed: est.displayedLocked(),
		Live:      true,
		At:        est.clock.Now(),
	})
	est.mu.Unlock()
}

// cancelCycleLocked invalidates the current cycle and stops its ticker.
func (est *Estimator) cancelCycleLocked() {
	est.cycle++
	if est.cancel != nil {
		close(est.cancel)
		est.cancel = nil
	}
}

func (est *Estimator) displayedLocked() *time.Time {
	if est.baseline == nil {
		return nil
	}

	displayed := *est.baseline
	if est.live {
		displayed = displayed.Add(est.clock.Now().Sub(est.receivedAt))
	}
	return &displayed
}

func (est *Estimator) emitLocked(event Event) {
	events := append([]chan Event(nil), est.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
