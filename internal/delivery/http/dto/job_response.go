package dto

import (
	"time"

	"jobmate/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	ApplyURL    string     `json:"apply_url"`
	MatchScore  *int       `json:"match_score"`
	Notes       string     `json:"notes"`
	AppliedAt   *time.Time `json:"applied_at"`
	InterviewAt *time.Time `json:"interview_at"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		UserID:      j.UserID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Description: j.Description,
		ApplyURL:    j.ApplyURL,
		MatchScore:  j.MatchScore,
		Notes:       j.Notes,
		AppliedAt:   j.AppliedAt,
		InterviewAt: j.InterviewAt,
		Status:      string(j.Status),
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func NewJobListResponse(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}
