package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"jobmate/internal/domain/alert"
	"jobmate/internal/domain/job"
	"jobmate/internal/domain/matching"
	"jobmate/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	alertBoardLimit = 200
	alertTopMatches = 5
)

type CreateAlertParams struct {
	Keywords      string
	Location      string
	MinMatchScore int
	Frequency     string
}

type UpdateAlertParams struct {
	Keywords      *string
	Location      *string
	MinMatchScore *int
	Active        *bool
	Frequency     *string
}

// AlertMatch is one board job that cleared an alert's score threshold.
type AlertMatch struct {
	JobID         uuid.UUID `json:"job_id"`
	Title         string    `json:"title"`
	Company       string    `json:"company"`
	Location      string    `json:"location"`
	MatchScore    int       `json:"match_score"`
	MatchedSkills []string  `json:"matched_skills"`
}

// AlertCheck is the outcome of running one alert against the job board.
type AlertCheck struct {
	AlertID   uuid.UUID    `json:"alert_id"`
	CheckedAt time.Time    `json:"checked_at"`
	Scanned   int          `json:"scanned"`
	Matches   []AlertMatch `json:"matches"`
}

type AlertUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, p CreateAlertParams) (alert.Alert, error)
	Get(ctx context.Context, id uuid.UUID) (alert.Alert, error)
	List(ctx context.Context, userID uuid.UUID) ([]alert.Alert, error)
	Update(ctx context.Context, id uuid.UUID, p UpdateAlertParams) (alert.Alert, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CheckAlert(ctx context.Context, id uuid.UUID) (AlertCheck, error)
	CheckAll(ctx context.Context, userID uuid.UUID) ([]AlertCheck, error)
}

type Alerts struct {
	alerts repository.AlertRepository
	users  repository.UserRepository
	jobs   repository.JobRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewAlertUsecase(alerts repository.AlertRepository, users repository.UserRepository, jobs repository.JobRepository, logger zerolog.Logger) *Alerts {
	return &Alerts{alerts: alerts, users: users, jobs: jobs, logger: logger, now: time.Now}
}

func (u *Alerts) Create(ctx context.Context, userID uuid.UUID, p CreateAlertParams) (alert.Alert, error) {
	if userID == uuid.Nil {
		return alert.Alert{}, ErrUserNotFound
	}
	keywords := strings.TrimSpace(p.Keywords)
	if keywords == "" {
		return alert.Alert{}, ErrInvalidInput
	}
	if p.MinMatchScore < 0 || p.MinMatchScore > 100 {
		return alert.Alert{}, ErrInvalidInput
	}

	freq := alert.FrequencyDaily
	if f := strings.ToLower(strings.TrimSpace(p.Frequency)); f != "" {
		freq = alert.Frequency(f)
		if !freq.Valid() {
			return alert.Alert{}, ErrInvalidInput
		}
	}

	if _, err := u.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return alert.Alert{}, ErrUserNotFound
		}
		return alert.Alert{}, ErrInternal
	}

	created, err := u.alerts.Create(ctx, alert.Alert{
		UserID:        userID,
		Keywords:      keywords,
		Location:      strings.TrimSpace(p.Location),
		MinMatchScore: p.MinMatchScore,
		Active:        true,
		Frequency:     freq,
	})
	if err != nil {
		return alert.Alert{}, ErrInternal
	}
	return created, nil
}

func (u *Alerts) Get(ctx context.Context, id uuid.UUID) (alert.Alert, error) {
	if id == uuid.Nil {
		return alert.Alert{}, ErrAlertNotFound
	}
	found, err := u.alerts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return alert.Alert{}, ErrAlertNotFound
		}
		return alert.Alert{}, ErrInternal
	}
	return found, nil
}

func (u *Alerts) List(ctx context.Context, userID uuid.UUID) ([]alert.Alert, error) {
	if userID == uuid.Nil {
		return nil, ErrUserNotFound
	}
	items, err := u.alerts.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if items == nil {
		items = []alert.Alert{}
	}
	return items, nil
}

func (u *Alerts) Update(ctx context.Context, id uuid.UUID, p UpdateAlertParams) (alert.Alert, error) {
	current, err := u.Get(ctx, id)
	if err != nil {
		return alert.Alert{}, err
	}

	if p.Keywords != nil {
		kw := strings.TrimSpace(*p.Keywords)
		if kw == "" {
			return alert.Alert{}, ErrInvalidInput
		}
		current.Keywords = kw
	}
	if p.Location != nil {
		current.Location = strings.TrimSpace(*p.Location)
	}
	if p.MinMatchScore != nil {
		if *p.MinMatchScore < 0 || *p.MinMatchScore > 100 {
			return alert.Alert{}, ErrInvalidInput
		}
		current.MinMatchScore = *p.MinMatchScore
	}
	if p.Active != nil {
		current.Active = *p.Active
	}
	if p.Frequency != nil {
		freq := alert.Frequency(strings.ToLower(strings.TrimSpace(*p.Frequency)))
		if !freq.Valid() {
			return alert.Alert{}, ErrInvalidInput
		}
		current.Frequency = freq
	}

	updated, err := u.alerts.Update(ctx, current)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return alert.Alert{}, ErrAlertNotFound
		}
		return alert.Alert{}, ErrInternal
	}
	return updated, nil
}

func (u *Alerts) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrAlertNotFound
	}
	if err := u.alerts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return ErrAlertNotFound
		}
		return ErrInternal
	}
	return nil
}

// CheckAlert scans the shared job board for postings matching the alert's
// keywords, scores each against the owner's skill profile, and returns the
// best matches at or above the alert's threshold.
func (u *Alerts) CheckAlert(ctx context.Context, id uuid.UUID) (AlertCheck, error) {
	a, err := u.Get(ctx, id)
	if err != nil {
		return AlertCheck{}, err
	}
	return u.runCheck(ctx, a)
}

// CheckAll runs every active alert for the user that is due under its
// frequency window.
func (u *Alerts) CheckAll(ctx context.Context, userID uuid.UUID) ([]AlertCheck, error) {
	if userID == uuid.Nil {
		return nil, ErrUserNotFound
	}
	active, err := u.alerts.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	now := u.now()
	checks := make([]AlertCheck, 0, len(active))
	for _, a := range active {
		if !a.Due(now) {
			continue
		}
		check, err := u.runCheck(ctx, a)
		if err != nil {
			u.logger.Warn().Err(err).Str("alert_id", a.ID.String()).Msg("alert check failed")
			continue
		}
		checks = append(checks, check)
	}
	return checks, nil
}

func (u *Alerts) runCheck(ctx context.Context, a alert.Alert) (AlertCheck, error) {
	owner, err := u.users.FindByID(ctx, a.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AlertCheck{}, ErrUserNotFound
		}
		return AlertCheck{}, ErrInternal
	}

	skills, err := matching.NormalizeSkills(owner.Skills)
	if err != nil {
		return AlertCheck{}, ErrInvalidInput
	}

	board, err := u.jobs.ListBoard(ctx, a.UserID, alertBoardLimit)
	if err != nil {
		return AlertCheck{}, ErrInternal
	}

	keywords := splitKeywords(a.Keywords)
	location := strings.ToLower(strings.TrimSpace(a.Location))

	matches := make([]AlertMatch, 0, alertTopMatches)
	scanned := 0
	for _, j := range board {
		if !keywordsMatch(j, keywords) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(j.Location), location) {
			continue
		}
		scanned++

		corpus := matching.BuildCorpus(j.Title, j.Description)
		scored := matching.Score(skills, corpus)
		if scored.MatchScore < a.MinMatchScore {
			continue
		}
		matches = append(matches, AlertMatch{
			JobID:         j.ID,
			Title:         j.Title,
			Company:       j.Company,
			Location:      j.Location,
			MatchScore:    scored.MatchScore,
			MatchedSkills: scored.MatchedSkills,
		})
	}

	sort.SliceStable(matches, func(i, k int) bool {
		return matches[i].MatchScore > matches[k].MatchScore
	})
	if len(matches) > alertTopMatches {
		matches = matches[:alertTopMatches]
	}

	now := u.now()
	if err := u.alerts.MarkChecked(ctx, a.ID, now); err != nil {
		return AlertCheck{}, ErrInternal
	}
	if len(matches) > 0 {
		if err := u.alerts.MarkNotified(ctx, a.ID, now); err != nil {
			u.logger.Warn().Err(err).Str("alert_id", a.ID.String()).Msg("mark notified failed")
		}
	}

	return AlertCheck{AlertID: a.ID, CheckedAt: now, Scanned: scanned, Matches: matches}, nil
}

func splitKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func keywordsMatch(j job.Job, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	haystack := strings.ToLower(j.Title + " " + j.Company + " " + j.Description)
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
