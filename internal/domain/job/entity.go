package job

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusSaved     Status = "saved"
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

func Statuses() []Status {
	return []Status{StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected}
}

type Job struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Company     string
	Location    string
	Description string
	ApplyURL    string
	MatchScore  *int
	Notes       string
	AppliedAt   *time.Time
	InterviewAt *time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
