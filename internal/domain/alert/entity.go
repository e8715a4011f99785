package alert

import (
	"time"

	"github.com/google/uuid"
)

type Frequency string

const (
	FrequencyImmediate Frequency = "immediate"
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyImmediate, FrequencyDaily, FrequencyWeekly:
		return true
	}
	return false
}

// Window is how long after the last check an alert of this frequency stays
// quiet. Immediate alerts are always due.
func (f Frequency) Window() time.Duration {
	switch f {
	case FrequencyDaily:
		return 24 * time.Hour
	case FrequencyWeekly:
		return 7 * 24 * time.Hour
	default:
		return 0
	}
}

type Alert struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Keywords       string // comma-separated
	Location       string
	MinMatchScore  int
	Active         bool
	Frequency      Frequency
	LastCheckedAt  *time.Time
	LastNotifiedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Due reports whether the alert should be checked now given its frequency
// and last check time.
func (a Alert) Due(now time.Time) bool {
	if !a.Active {
		return false
	}
	w := a.Frequency.Window()
	if w == 0 || a.LastCheckedAt == nil {
		return true
	}
	return now.Sub(*a.LastCheckedAt) >= w
}
