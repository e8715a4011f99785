package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobmate/internal/domain/job"
	"jobmate/internal/repository"

	"github.com/google/uuid"
)

type CreateJobParams struct {
	Title       string
	Company     string
	Location    string
	Description string
	ApplyURL    string
	Notes       string
	Status      string
}

type UpdateJobParams struct {
	Title       *string
	Company     *string
	Location    *string
	Description *string
	ApplyURL    *string
	Notes       *string
	Status      *string
	InterviewAt *time.Time
}

type JobUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, p CreateJobParams) (job.Job, error)
	Get(ctx context.Context, id uuid.UUID) (job.Job, error)
	List(ctx context.Context, userID uuid.UUID, status string) ([]job.Job, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateJobParams) (job.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Jobs struct {
	jobs  repository.JobRepository
	users repository.UserRepository
	cache Cache
	now   func() time.Time
}

func NewJobUsecase(jobs repository.JobRepository, users repository.UserRepository, cache Cache) *Jobs {
	return &Jobs{jobs: jobs, users: users, cache: cache, now: time.Now}
}

func (u *Jobs) Create(ctx context.Context, userID uuid.UUID, p CreateJobParams) (job.Job, error) {
	if userID == uuid.Nil {
		return job.Job{}, ErrUserNotFound
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return job.Job{}, ErrInvalidInput
	}

	status := job.StatusSaved
	if s := strings.ToLower(strings.TrimSpace(p.Status)); s != "" {
		status = job.Status(s)
		if !status.Valid() {
			return job.Job{}, ErrInvalidInput
		}
	}

	if _, err := u.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return job.Job{}, ErrUserNotFound
		}
		return job.Job{}, ErrInternal
	}

	j := job.Job{
		UserID:      userID,
		Title:       title,
		Company:     strings.TrimSpace(p.Company),
		Location:    strings.TrimSpace(p.Location),
		Description: p.Description,
		ApplyURL:    strings.TrimSpace(p.ApplyURL),
		Notes:       p.Notes,
		Status:      status,
	}
	if status == job.StatusApplied {
		now := u.now()
		j.AppliedAt = &now
	}

	created, err := u.jobs.Create(ctx, j)
	if err != nil {
		return job.Job{}, ErrInternal
	}
	u.invalidateAnalytics(ctx, userID)
	return created, nil
}

func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	if id == uuid.Nil {
		return job.Job{}, ErrJobNotFound
	}
	found, err := u.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	return found, nil
}

func (u *Jobs) List(ctx context.Context, userID uuid.UUID, status string) ([]job.Job, error) {
	if userID == uuid.Nil {
		return nil, ErrUserNotFound
	}
	var filter *job.Status
	if s := strings.ToLower(strings.TrimSpace(status)); s != "" {
		st := job.Status(s)
		if !st.Valid() {
			return nil, ErrInvalidInput
		}
		filter = &st
	}
	items, err := u.jobs.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, ErrInternal
	}
	if items == nil {
		items = []job.Job{}
	}
	return items, nil
}

func (u *Jobs) Update(ctx context.Context, id uuid.UUID, p UpdateJobParams) (job.Job, error) {
	current, err := u.Get(ctx, id)
	if err != nil {
		return job.Job{}, err
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return job.Job{}, ErrInvalidInput
		}
		current.Title = title
	}
	if p.Company != nil {
		current.Company = strings.TrimSpace(*p.Company)
	}
	if p.Location != nil {
		current.Location = strings.TrimSpace(*p.Location)
	}
	if p.Description != nil {
		current.Description = *p.Description
	}
	if p.ApplyURL != nil {
		current.ApplyURL = strings.TrimSpace(*p.ApplyURL)
	}
	if p.Notes != nil {
		current.Notes = *p.Notes
	}
	if p.InterviewAt != nil {
		current.InterviewAt = p.InterviewAt
	}
	if p.Status != nil {
		status := job.Status(strings.ToLower(strings.TrimSpace(*p.Status)))
		if !status.Valid() {
			return job.Job{}, ErrInvalidInput
		}
		if status == job.StatusApplied && current.AppliedAt == nil {
			now := u.now()
			current.AppliedAt = &now
		}
		current.Status = status
	}

	updated, err := u.jobs.Update(ctx, current)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, ErrInternal
	}
	u.invalidateAnalytics(ctx, updated.UserID)
	return updated, nil
}

func (u *Jobs) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := u.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := u.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	u.invalidateAnalytics(ctx, current.UserID)
	return nil
}

func (u *Jobs) invalidateAnalytics(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, "analytics:"+userID.String()+":*")
}
