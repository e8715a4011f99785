package user

import (
	"time"

	"github.com/google/uuid"
)

type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
	WorkModeOnsite WorkMode = "onsite"
)

func (m WorkMode) Valid() bool {
	switch m {
	case WorkModeRemote, WorkModeHybrid, WorkModeOnsite:
		return true
	}
	return false
}

type User struct {
	ID                 uuid.UUID
	Email              string
	FullName           string
	TargetRole         string
	Skills             string // comma-separated, normalized on write
	LocationPreference string
	WorkMode           WorkMode
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
