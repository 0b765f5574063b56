package constants

import "time"

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// ClockFormat is the wall-clock format used for logout times (HH:MM:SS)
	ClockFormat = "15:04:05"

	// EstimateInterval is the cadence at which a live logout estimate is re-derived
	EstimateInterval = time.Second

	// DefaultPollIntervalSec is the default cadence for polling the attendance service
	DefaultPollIntervalSec = 30

	// MinPollIntervalSec is the floor for the configured poll cadence
	MinPollIntervalSec = 5

	// DefaultWorkdayMinutes is the required shift length when an employee has no override
	DefaultWorkdayMinutes = 8 * 60

	NotifyRetryDelay = 100 * time.Millisecond
)
