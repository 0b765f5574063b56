package attendance

import (
	"sort"
	"time"

	"rollcall/internal/constants"
	"rollcall/internal/logger"
	"rollcall/internal/models"
)

// Span is one break within a day. EndAt is nil while the break is running.
type Span struct {
	Type    models.BreakType
	StartAt time.Time
	EndAt   *time.Time
}

// Day is the replayed state of one employee's punches for a single day.
type Day struct {
	ClockIn  *time.Time
	ClockOut *time.Time
	Breaks   []Span
}

// Replay folds a day's punches into a Day. Punches that do not fit the
// current state (a second clock-in, a break end without a break, a break
// before clock-in) are skipped; irregular data degrades the derived values,
// it never produces an error.
func Replay(punches []models.Punch) Day {
	sorted := append([]models.Punch(nil), punches...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].At.Before(sorted[j].At) })

	var day Day
	for _, p := range sorted {
		switch p.Kind {
		case models.PunchClockIn:
			if day.ClockIn != nil {
				logger.Debug("skipping duplicate clock-in punch", "punch", p.ID)
				continue
			}
			at := p.At
			day.ClockIn = &at
		case models.PunchClockOut:
			if day.ClockIn == nil || day.ClockOut != nil {
				logger.Debug("skipping out-of-order clock-out punch", "punch", p.ID)
				continue
			}
			at := p.At
			day.ClockOut = &at
			// A break still open at clock-out ends with the shift.
			if open := day.openIndex(); open >= 0 {
				day.Breaks[open].EndAt = &at
			}
		case models.PunchBreakStart:
			if day.ClockIn == nil || day.ClockOut != nil || day.openIndex() >= 0 {
				logger.Debug("skipping out-of-order break-start punch", "punch", p.ID)
				continue
			}
			day.Breaks = append(day.Breaks, Span{Type: p.BreakType, StartAt: p.At})
		case models.PunchBreakEnd:
			open := day.openIndex()
			if open < 0 {
				logger.Debug("skipping unmatched break-end punch", "punch", p.ID)
				continue
			}
			at := p.At
			day.Breaks[open].EndAt = &at
		default:
			logger.Debug("skipping punch with unknown kind", "punch", p.ID, "kind", p.Kind)
		}
	}
	return day
}

func (d Day) openIndex() int {
	for i := range d.Breaks {
		if d.Breaks[i].EndAt == nil {
			return i
		}
	}
	return -1
}

// OpenBreak returns the break currently running, if any.
func (d Day) OpenBreak() *Span {
	if i := d.openIndex(); i >= 0 {
		span := d.Breaks[i]
		return &span
	}
	return nil
}

// RequiredLogout derives when the employee may leave: clock-in plus the
// workday plus every completed shift-extending break. A break still running
// is deliberately left out; consumers extrapolate it live from the snapshot.
func (d Day) RequiredLogout(workday time.Duration) *time.Time {
	if d.ClockIn == nil {
		return nil
	}

	logout := d.ClockIn.Add(workday)
	for _, b := range d.Breaks {
		if b.EndAt == nil || !b.Type.ExtendsShift() {
			continue
		}
		logout = logout.Add(b.EndAt.Sub(b.StartAt))
	}
	return &logout
}

// BreakTime is the total time spent on breaks of any type up to now,
// counting a running break as ongoing.
func (d Day) BreakTime(now time.Time) time.Duration {
	var total time.Duration
	for _, b := range d.Breaks {
		end := now
		if b.EndAt != nil {
			end = *b.EndAt
		}
		if end.After(b.StartAt) {
			total += end.Sub(b.StartAt)
		}
	}
	return total
}

// WorkedTime is time on the clock minus time on break, up to now or the
// clock-out, whichever came first.
func (d Day) WorkedTime(now time.Time) time.Duration {
	if d.ClockIn == nil {
		return 0
	}

	end := now
	if d.ClockOut != nil {
		end = *d.ClockOut
	}
	if !end.After(*d.ClockIn) {
		return 0
	}

	worked := end.Sub(*d.ClockIn) - d.BreakTime(end)
	if worked < 0 {
		return 0
	}
	return worked
}

// Derive builds the attendance snapshot for one employee from today's
// punches. onLeave marks an approved leave request covering today; it only
// matters while there are no punches, a clock-in always wins.
func Derive(employee models.Employee, punches []models.Punch, onLeave bool, now time.Time) models.AttendanceSnapshot {
	snap := models.AttendanceSnapshot{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Status:       models.StatusOff,
	}

	day := Replay(punches)
	if day.ClockIn == nil {
		if onLeave {
			snap.Status = models.StatusOnLeave
		}
		return snap
	}

	workday := time.Duration(employee.WorkdayMinutes) * time.Minute
	if workday <= 0 {
		workday = time.Duration(constants.DefaultWorkdayMinutes) * time.Minute
	}

	snap.ClockedInAt = day.ClockIn
	snap.RequiredLogout = day.RequiredLogout(workday)
	snap.WorkedMinutes = int(day.WorkedTime(now).Minutes())
	snap.BreakMinutes = int(day.BreakTime(now).Minutes())

	switch {
	case day.ClockOut != nil:
		snap.Status = models.StatusDone
	case day.OpenBreak() != nil:
		open := day.OpenBreak()
		snap.Status = models.StatusOnBreak
		snap.Break = &models.ActiveBreak{Type: open.Type, StartedAt: open.StartAt}
	default:
		snap.Status = models.StatusWorking
	}

	return snap
}
