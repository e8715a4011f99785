package dto

import (
	"time"

	"jobmate/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	TargetRole         string    `json:"target_role"`
	Skills             string    `json:"skills"`
	LocationPreference string    `json:"location_preference"`
	WorkMode           string    `json:"work_mode"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		FullName:           u.FullName,
		TargetRole:         u.TargetRole,
		Skills:             u.Skills,
		LocationPreference: u.LocationPreference,
		WorkMode:           string(u.WorkMode),
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}
