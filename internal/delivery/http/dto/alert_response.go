package dto

import (
	"time"

	"jobmate/internal/domain/alert"
	"jobmate/internal/usecase"

	"github.com/google/uuid"
)

type AlertResponse struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	Keywords       string     `json:"keywords"`
	Location       string     `json:"location"`
	MinMatchScore  int        `json:"min_match_score"`
	Active         bool       `json:"active"`
	Frequency      string     `json:"frequency"`
	LastCheckedAt  *time.Time `json:"last_checked_at"`
	LastNotifiedAt *time.Time `json:"last_notified_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func NewAlertResponse(a alert.Alert) AlertResponse {
	return AlertResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		Keywords:       a.Keywords,
		Location:       a.Location,
		MinMatchScore:  a.MinMatchScore,
		Active:         a.Active,
		Frequency:      string(a.Frequency),
		LastCheckedAt:  a.LastCheckedAt,
		LastNotifiedAt: a.LastNotifiedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func NewAlertListResponse(items []alert.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewAlertResponse(a))
	}
	return out
}

type AlertMatchResponse struct {
	JobID         uuid.UUID `json:"job_id"`
	Title         string    `json:"title"`
	Company       string    `json:"company"`
	Location      string    `json:"location"`
	MatchScore    int       `json:"match_score"`
	MatchedSkills []string  `json:"matched_skills"`
}

type AlertCheckResponse struct {
	AlertID   uuid.UUID            `json:"alert_id"`
	CheckedAt time.Time            `json:"checked_at"`
	Scanned   int                  `json:"scanned"`
	Matches   []AlertMatchResponse `json:"matches"`
}

func NewAlertCheckResponse(check usecase.AlertCheck) AlertCheckResponse {
	out := AlertCheckResponse{
		AlertID:   check.AlertID,
		CheckedAt: check.CheckedAt,
		Scanned:   check.Scanned,
		Matches:   make([]AlertMatchResponse, 0, len(check.Matches)),
	}
	for _, m := range check.Matches {
		out.Matches = append(out.Matches, AlertMatchResponse{
			JobID:         m.JobID,
			Title:         m.Title,
			Company:       m.Company,
			Location:      m.Location,
			MatchScore:    m.MatchScore,
			MatchedSkills: m.MatchedSkills,
		})
	}
	return out
}

func NewAlertCheckListResponse(checks []usecase.AlertCheck) []AlertCheckResponse {
	out := make([]AlertCheckResponse, 0, len(checks))
	for _, c := range checks {
		out = append(out, NewAlertCheckResponse(c))
	}
	return out
}
