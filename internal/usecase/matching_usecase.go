package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"jobmate/internal/domain/matching"
	"jobmate/internal/pkg/workerpool"
	"jobmate/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	matchCacheTTL     = 10 * time.Minute
	rescoreWorkers    = 4
	rescoreTaskBuffer = 32
)

// MatchResult is the scoring outcome for one user/job pair.
type MatchResult struct {
	JobID         uuid.UUID `json:"job_id"`
	MatchScore    int       `json:"match_score"`
	MatchedSkills []string  `json:"matched_skills"`
	MissingSkills []string  `json:"missing_skills"`
}

// RescoreSummary reports the outcome of recomputing every stored score for
// a user.
type RescoreSummary struct {
	Total  int `json:"total"`
	Scored int `json:"scored"`
	Failed int `json:"failed"`
}

type MatchingUsecase interface {
	ComputeMatch(ctx context.Context, jobID uuid.UUID) (MatchResult, error)
	RescoreUser(ctx context.Context, userID uuid.UUID) (RescoreSummary, error)
}

type Matching struct {
	jobs   repository.JobRepository
	users  repository.UserRepository
	cache  Cache
	logger zerolog.Logger
}

func NewMatchingUsecase(jobs repository.JobRepository, users repository.UserRepository, cache Cache, logger zerolog.Logger) *Matching {
	return &Matching{jobs: jobs, users: users, cache: cache, logger: logger}
}

// ComputeMatch scores the job against its owner's skill profile and stores
// the score on the job row. Results are cached keyed on a fingerprint of the
// skill set, so a profile edit naturally misses the old entries.
func (u *Matching) ComputeMatch(ctx context.Context, jobID uuid.UUID) (MatchResult, error) {
	if jobID == uuid.Nil {
		return MatchResult{}, ErrJobNotFound
	}

	j, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return MatchResult{}, ErrJobNotFound
		}
		return MatchResult{}, ErrInternal
	}

	owner, err := u.users.FindByID(ctx, j.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return MatchResult{}, ErrUserNotFound
		}
		return MatchResult{}, ErrInternal
	}

	skills, err := matching.NormalizeSkills(owner.Skills)
	if err != nil {
		return MatchResult{}, ErrInvalidInput
	}

	key := matchCacheKey(owner.ID, jobID, skills)
	if u.cache != nil {
		var cached MatchResult
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	corpus := matching.BuildCorpus(j.Title, j.Description)
	scored := matching.Score(skills, corpus)

	if err := u.jobs.SetMatchScore(ctx, jobID, scored.MatchScore); err != nil {
		return MatchResult{}, ErrInternal
	}

	result := MatchResult{
		JobID:         jobID,
		MatchScore:    scored.MatchScore,
		MatchedSkills: scored.MatchedSkills,
		MissingSkills: scored.MissingSkills,
	}
	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, result, matchCacheTTL); err != nil {
			u.logger.Warn().Err(err).Str("key", key).Msg("match cache write failed")
		}
	}
	return result, nil
}

// RescoreUser recomputes the stored score for every job the user tracks,
// fanning the work out over a small worker pool. Individual job failures are
// counted, not fatal.
func (u *Matching) RescoreUser(ctx context.Context, userID uuid.UUID) (RescoreSummary, error) {
	if userID == uuid.Nil {
		return RescoreSummary{}, ErrUserNotFound
	}

	owner, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return RescoreSummary{}, ErrUserNotFound
		}
		return RescoreSummary{}, ErrInternal
	}

	skills, err := matching.NormalizeSkills(owner.Skills)
	if err != nil {
		return RescoreSummary{}, ErrInvalidInput
	}

	items, err := u.jobs.ListByUser(ctx, userID, nil)
	if err != nil {
		return RescoreSummary{}, ErrInternal
	}

	summary := RescoreSummary{Total: len(items)}
	if len(items) == 0 {
		return summary, nil
	}

	pool := workerpool.New(rescoreWorkers, rescoreTaskBuffer)
	results := pool.Run(ctx)

	// Workers must already be draining before tasks are queued, otherwise a
	// user with more jobs than the task buffer blocks Submit forever.
	go func() {
		defer pool.Close()
		for _, it := range items {
			j := it
			ok := pool.Submit(ctx, func(ctx context.Context) error {
				corpus := matching.BuildCorpus(j.Title, j.Description)
				scored := matching.Score(skills, corpus)
				return u.jobs.SetMatchScore(ctx, j.ID, scored.MatchScore)
			})
			if !ok {
				return
			}
		}
	}()

	for res := range results {
		if res.Err != nil {
			summary.Failed++
			u.logger.Warn().Err(res.Err).Str("user_id", userID.String()).Msg("rescore job failed")
			continue
		}
		summary.Scored++
	}
	if err := ctx.Err(); err != nil {
		return summary, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.InvalidateUser(ctx, userID.String())
	}
	return summary, nil
}

func matchCacheKey(userID, jobID uuid.UUID, skills matching.SkillSet) string {
	h := sha256.Sum256([]byte(strings.Join(skills.Names(), ",")))
	fp := hex.EncodeToString(h[:8])
	return "match:" + userID.String() + ":" + jobID.String() + ":" + fp
}
