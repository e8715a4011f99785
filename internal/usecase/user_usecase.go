package usecase

import (
	"context"
	"errors"
	"strings"

	"jobmate/internal/domain/matching"
	"jobmate/internal/domain/user"
	"jobmate/internal/repository"

	"github.com/google/uuid"
)

type CreateUserParams struct {
	Email              string
	FullName           string
	TargetRole         string
	Skills             any
	LocationPreference string
	WorkMode           string
}

type UpdateUserParams struct {
	FullName           *string
	TargetRole         *string
	Skills             any
	LocationPreference *string
	WorkMode           *string
}

type UserUsecase interface {
	Create(ctx context.Context, p CreateUserParams) (user.User, error)
	Get(ctx context.Context, id uuid.UUID) (user.User, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateUserParams) (user.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Users struct {
	users repository.UserRepository
	jobs  repository.JobRepository
	cache Cache
}

func NewUserUsecase(users repository.UserRepository, jobs repository.JobRepository, cache Cache) *Users {
	return &Users{users: users, jobs: jobs, cache: cache}
}

func (u *Users) Create(ctx context.Context, p CreateUserParams) (user.User, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" || !strings.Contains(email, "@") {
		return user.User{}, ErrInvalidInput
	}
	fullName := strings.TrimSpace(p.FullName)
	if fullName == "" {
		return user.User{}, ErrInvalidInput
	}

	mode := user.WorkMode(strings.ToLower(strings.TrimSpace(p.WorkMode)))
	if mode == "" {
		mode = user.WorkModeRemote
	}
	if !mode.Valid() {
		return user.User{}, ErrInvalidInput
	}

	skills, err := normalizeSkillsField(p.Skills)
	if err != nil {
		return user.User{}, ErrInvalidInput
	}

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return user.User{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return user.User{}, ErrInternal
	}

	created, err := u.users.Create(ctx, user.User{
		Email:              email,
		FullName:           fullName,
		TargetRole:         strings.TrimSpace(p.TargetRole),
		Skills:             skills,
		LocationPreference: strings.TrimSpace(p.LocationPreference),
		WorkMode:           mode,
	})
	if err != nil {
		return user.User{}, ErrInternal
	}
	return created, nil
}

func (u *Users) Get(ctx context.Context, id uuid.UUID) (user.User, error) {
	if id == uuid.Nil {
		return user.User{}, ErrUserNotFound
	}
	found, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	return found, nil
}

// Update applies the provided fields. When the skill profile changes every
// stored match score for the user is stale, so they are cleared and cached
// derivatives dropped; scores are recomputed on the next match request.
func (u *Users) Update(ctx context.Context, id uuid.UUID, p UpdateUserParams) (user.User, error) {
	current, err := u.Get(ctx, id)
	if err != nil {
		return user.User{}, err
	}

	if p.FullName != nil {
		name := strings.TrimSpace(*p.FullName)
		if name == "" {
			return user.User{}, ErrInvalidInput
		}
		current.FullName = name
	}
	if p.TargetRole != nil {
		current.TargetRole = strings.TrimSpace(*p.TargetRole)
	}
	if p.LocationPreference != nil {
		current.LocationPreference = strings.TrimSpace(*p.LocationPreference)
	}
	if p.WorkMode != nil {
		mode := user.WorkMode(strings.ToLower(strings.TrimSpace(*p.WorkMode)))
		if !mode.Valid() {
			return user.User{}, ErrInvalidInput
		}
		current.WorkMode = mode
	}

	skillsChanged := false
	if p.Skills != nil {
		skills, err := normalizeSkillsField(p.Skills)
		if err != nil {
			return user.User{}, ErrInvalidInput
		}
		skillsChanged = skills != current.Skills
		current.Skills = skills
	}

	updated, err := u.users.Update(ctx, current)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}

	if skillsChanged {
		if err := u.jobs.ClearMatchScores(ctx, id); err != nil {
			return user.User{}, ErrInternal
		}
		if u.cache != nil {
			_ = u.cache.InvalidateUser(ctx, id.String())
		}
	}
	return updated, nil
}

func (u *Users) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrUserNotFound
	}
	if err := u.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}
	if u.cache != nil {
		_ = u.cache.InvalidateUser(ctx, id.String())
	}
	return nil
}

// normalizeSkillsField canonicalizes a raw skills payload into the
// comma-separated form stored on the user row.
func normalizeSkillsField(raw any) (string, error) {
	set, err := matching.NormalizeSkills(raw)
	if err != nil {
		return "", err
	}
	return strings.Join(set.Names(), ", "), nil
}
