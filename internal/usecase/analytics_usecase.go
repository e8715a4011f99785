package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"jobmate/internal/domain/job"
	"jobmate/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	analyticsCacheTTL = 5 * time.Minute
	trendMonths       = 6
	topCompanyLimit   = 5
)

// ApplicationStats summarizes a user's tracked jobs.
type ApplicationStats struct {
	TotalApplications  int            `json:"total_applications"`
	ByStatus           map[string]int `json:"by_status"`
	SuccessRate        float64        `json:"success_rate"`
	AvgMatchScore      *float64       `json:"avg_match_score"`
	AvgDaysToInterview *float64       `json:"avg_days_to_interview"`
	AvgDaysToOffer     *float64       `json:"avg_days_to_offer"`
}

type MonthlyTrend struct {
	Month        string `json:"month"` // YYYY-MM
	Applications int    `json:"applications"`
	Interviews   int    `json:"interviews"`
	Offers       int    `json:"offers"`
	Rejections   int    `json:"rejections"`
}

type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

// StatusFunnel counts jobs that reached each pipeline stage cumulatively
// and the conversion rate between consecutive stages.
type StatusFunnel struct {
	Saved                  int     `json:"saved"`
	Applied                int     `json:"applied"`
	Interview              int     `json:"interview"`
	Offer                  int     `json:"offer"`
	SavedToAppliedRate     float64 `json:"saved_to_applied_rate"`
	AppliedToInterviewRate float64 `json:"applied_to_interview_rate"`
	InterviewToOfferRate   float64 `json:"interview_to_offer_rate"`
}

type Dashboard struct {
	Stats             ApplicationStats `json:"stats"`
	MonthlyTrends     []MonthlyTrend   `json:"monthly_trends"`
	ScoreDistribution map[string]int   `json:"match_score_distribution"`
	TopCompanies      []CompanyCount   `json:"top_companies"`
	StatusFunnel      StatusFunnel     `json:"status_funnel"`
}

type AnalyticsUsecase interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (Dashboard, error)
	Stats(ctx context.Context, userID uuid.UUID) (ApplicationStats, error)
	MonthlyTrends(ctx context.Context, userID uuid.UUID) ([]MonthlyTrend, error)
}

type Analytics struct {
	jobs   repository.JobRepository
	users  repository.UserRepository
	cache  Cache
	logger zerolog.Logger
}

func NewAnalyticsUsecase(jobs repository.JobRepository, users repository.UserRepository, cache Cache, logger zerolog.Logger) *Analytics {
	return &Analytics{jobs: jobs, users: users, cache: cache, logger: logger}
}

func (u *Analytics) Dashboard(ctx context.Context, userID uuid.UUID) (Dashboard, error) {
	if userID == uuid.Nil {
		return Dashboard{}, ErrUserNotFound
	}

	key := "analytics:" + userID.String() + ":dashboard"
	if u.cache != nil {
		var cached Dashboard
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	items, err := u.listJobs(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Stats:             buildStats(items),
		MonthlyTrends:     buildMonthlyTrends(items),
		ScoreDistribution: buildScoreDistribution(items),
		TopCompanies:      buildTopCompanies(items),
		StatusFunnel:      buildStatusFunnel(items),
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, d, analyticsCacheTTL); err != nil {
			u.logger.Warn().Err(err).Str("key", key).Msg("dashboard cache write failed")
		}
	}
	return d, nil
}

func (u *Analytics) Stats(ctx context.Context, userID uuid.UUID) (ApplicationStats, error) {
	if userID == uuid.Nil {
		return ApplicationStats{}, ErrUserNotFound
	}
	items, err := u.listJobs(ctx, userID)
	if err != nil {
		return ApplicationStats{}, err
	}
	return buildStats(items), nil
}

func (u *Analytics) MonthlyTrends(ctx context.Context, userID uuid.UUID) ([]MonthlyTrend, error) {
	if userID == uuid.Nil {
		return nil, ErrUserNotFound
	}
	items, err := u.listJobs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildMonthlyTrends(items), nil
}

func (u *Analytics) listJobs(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	items, err := u.jobs.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func buildStats(items []job.Job) ApplicationStats {
	stats := ApplicationStats{
		TotalApplications: len(items),
		ByStatus:          map[string]int{},
	}
	if len(items) == 0 {
		return stats
	}

	for _, j := range items {
		stats.ByStatus[string(j.Status)]++
	}

	offers := stats.ByStatus[string(job.StatusOffer)]
	stats.SuccessRate = round2(float64(offers) / float64(len(items)) * 100)

	var scoreSum float64
	var scored int
	for _, j := range items {
		if j.MatchScore != nil {
			scoreSum += float64(*j.MatchScore)
			scored++
		}
	}
	if scored > 0 {
		avg := round2(scoreSum / float64(scored))
		stats.AvgMatchScore = &avg
	}

	var daySum float64
	var timed int
	for _, j := range items {
		if j.AppliedAt == nil || j.InterviewAt == nil {
			continue
		}
		days := j.InterviewAt.Sub(*j.AppliedAt).Hours() / 24
		if days >= 0 {
			daySum += days
			timed++
		}
	}
	if timed > 0 {
		avg := round1(daySum / float64(timed))
		stats.AvgDaysToInterview = &avg
	}

	// Offers carry no dedicated timestamp, so the last status change stands in.
	var offerDaySum float64
	var offerTimed int
	for _, j := range items {
		if j.Status != job.StatusOffer || j.AppliedAt == nil {
			continue
		}
		days := j.UpdatedAt.Sub(*j.AppliedAt).Hours() / 24
		if days >= 0 {
			offerDaySum += days
			offerTimed++
		}
	}
	if offerTimed > 0 {
		avg := round1(offerDaySum / float64(offerTimed))
		stats.AvgDaysToOffer = &avg
	}
	return stats
}

func buildMonthlyTrends(items []job.Job) []MonthlyTrend {
	byMonth := map[string]*MonthlyTrend{}
	for _, j := range items {
		month := j.CreatedAt.Format("2006-01")
		t, ok := byMonth[month]
		if !ok {
			t = &MonthlyTrend{Month: month}
			byMonth[month] = t
		}
		t.Applications++
		switch j.Status {
		case job.StatusInterview:
			t.Interviews++
		case job.StatusOffer:
			t.Offers++
		case job.StatusRejected:
			t.Rejections++
		}
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	if len(months) > trendMonths {
		months = months[:trendMonths]
	}
	sort.Strings(months)

	trends := make([]MonthlyTrend, 0, len(months))
	for _, m := range months {
		trends = append(trends, *byMonth[m])
	}
	return trends
}

func buildScoreDistribution(items []job.Job) map[string]int {
	dist := map[string]int{
		"0-20":   0,
		"21-40":  0,
		"41-60":  0,
		"61-80":  0,
		"81-100": 0,
	}
	for _, j := range items {
		if j.MatchScore == nil {
			continue
		}
		switch s := *j.MatchScore; {
		case s <= 20:
			dist["0-20"]++
		case s <= 40:
			dist["21-40"]++
		case s <= 60:
			dist["41-60"]++
		case s <= 80:
			dist["61-80"]++
		default:
			dist["81-100"]++
		}
	}
	return dist
}

func buildTopCompanies(items []job.Job) []CompanyCount {
	counts := map[string]int{}
	for _, j := range items {
		if j.Company == "" {
			continue
		}
		counts[j.Company]++
	}

	out := make([]CompanyCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, CompanyCount{Company: c, Count: n})
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Count != out[k].Count {
			return out[i].Count > out[k].Count
		}
		return out[i].Company < out[k].Company
	})
	if len(out) > topCompanyLimit {
		out = out[:topCompanyLimit]
	}
	return out
}

func buildStatusFunnel(items []job.Job) StatusFunnel {
	byStatus := map[job.Status]int{}
	for _, j := range items {
		byStatus[j.Status]++
	}

	f := StatusFunnel{
		Saved:     byStatus[job.StatusSaved],
		Applied:   byStatus[job.StatusApplied] + byStatus[job.StatusInterview] + byStatus[job.StatusOffer],
		Interview: byStatus[job.StatusInterview] + byStatus[job.StatusOffer],
		Offer:     byStatus[job.StatusOffer],
	}
	if f.Saved > 0 {
		f.SavedToAppliedRate = round1(float64(f.Applied) / float64(f.Saved) * 100)
	}
	if f.Applied > 0 {
		f.AppliedToInterviewRate = round1(float64(f.Interview) / float64(f.Applied) * 100)
	}
	if f.Interview > 0 {
		f.InterviewToOfferRate = round1(float64(f.Offer) / float64(f.Interview) * 100)
	}
	return f
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
