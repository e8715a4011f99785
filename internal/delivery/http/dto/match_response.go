package dto

import "github.com/google/uuid"

type MatchResponse struct {
	JobID         uuid.UUID `json:"job_id"`
	MatchScore    int       `json:"match_score"`
	MatchedSkills []string  `json:"matched_skills"`
	MissingSkills []string  `json:"missing_skills"`
}

type RescoreResponse struct {
	Total  int `json:"total"`
	Scored int `json:"scored"`
	Failed int `json:"failed"`
}
