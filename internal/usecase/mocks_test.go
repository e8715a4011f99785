package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"jobmate/internal/domain/alert"
	"jobmate/internal/domain/job"
	"jobmate/internal/domain/user"
	"jobmate/internal/repository"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	users map[uuid.UUID]user.User
	err   error
}

func newMockUserRepo(users ...user.User) *mockUserRepo {
	m := &mockUserRepo{users: map[uuid.UUID]user.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return user.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, repository.ErrUserNotFound
}

func (m *mockUserRepo) Update(_ context.Context, u user.User) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	if _, ok := m.users[u.ID]; !ok {
		return user.User{}, repository.ErrUserNotFound
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// mockJobRepo is safe for concurrent use; rescoring drives SetMatchScore
// from several pool workers at once.
type mockJobRepo struct {
	mu           sync.Mutex
	jobs         map[uuid.UUID]job.Job
	err          error
	clearedUsers []uuid.UUID
}

func newMockJobRepo(jobs ...job.Job) *mockJobRepo {
	m := &mockJobRepo{jobs: map[uuid.UUID]job.Job{}}
	for _, j := range jobs {
		m.jobs[j.ID] = j
	}
	return m
}

func (m *mockJobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return job.Job{}, m.err
	}
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = job.StatusSaved
	}
	m.jobs[j.ID] = j
	return j, nil
}

func (m *mockJobRepo) FindByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return job.Job{}, m.err
	}
	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (m *mockJobRepo) ListByUser(_ context.Context, userID uuid.UUID, status *job.Status) ([]job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []job.Job
	for _, j := range m.jobs {
		if j.UserID != userID {
			continue
		}
		if status != nil && j.Status != *status {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (m *mockJobRepo) Update(_ context.Context, j job.Job) (job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return job.Job{}, m.err
	}
	if _, ok := m.jobs[j.ID]; !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	m.jobs[j.ID] = j
	return j, nil
}

func (m *mockJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.jobs[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(m.jobs, id)
	return nil
}

func (m *mockJobRepo) SetMatchScore(_ context.Context, id uuid.UUID, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	j, ok := m.jobs[id]
	if !ok {
		return repository.ErrJobNotFound
	}
	j.MatchScore = &score
	m.jobs[id] = j
	return nil
}

func (m *mockJobRepo) ClearMatchScores(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.clearedUsers = append(m.clearedUsers, userID)
	for id, j := range m.jobs {
		if j.UserID == userID {
			j.MatchScore = nil
			m.jobs[id] = j
		}
	}
	return nil
}

func (m *mockJobRepo) ListBoard(_ context.Context, excludeUserID uuid.UUID, limit int) ([]job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []job.Job
	for _, j := range m.jobs {
		if j.UserID == excludeUserID {
			continue
		}
		out = append(out, j)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

type mockAlertRepo struct {
	alerts   map[uuid.UUID]alert.Alert
	err      error
	checked  []uuid.UUID
	notified []uuid.UUID
}

func newMockAlertRepo(alerts ...alert.Alert) *mockAlertRepo {
	m := &mockAlertRepo{alerts: map[uuid.UUID]alert.Alert{}}
	for _, a := range alerts {
		m.alerts[a.ID] = a
	}
	return m
}

func (m *mockAlertRepo) Create(_ context.Context, a alert.Alert) (alert.Alert, error) {
	if m.err != nil {
		return alert.Alert{}, m.err
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.alerts[a.ID] = a
	return a, nil
}

func (m *mockAlertRepo) FindByID(_ context.Context, id uuid.UUID) (alert.Alert, error) {
	if m.err != nil {
		return alert.Alert{}, m.err
	}
	a, ok := m.alerts[id]
	if !ok {
		return alert.Alert{}, repository.ErrAlertNotFound
	}
	return a, nil
}

func (m *mockAlertRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]alert.Alert, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []alert.Alert
	for _, a := range m.alerts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAlertRepo) ListActiveByUser(_ context.Context, userID uuid.UUID) ([]alert.Alert, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []alert.Alert
	for _, a := range m.alerts {
		if a.UserID == userID && a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAlertRepo) Update(_ context.Context, a alert.Alert) (alert.Alert, error) {
	if m.err != nil {
		return alert.Alert{}, m.err
	}
	if _, ok := m.alerts[a.ID]; !ok {
		return alert.Alert{}, repository.ErrAlertNotFound
	}
	m.alerts[a.ID] = a
	return a, nil
}

func (m *mockAlertRepo) Delete(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.alerts[id]; !ok {
		return repository.ErrAlertNotFound
	}
	delete(m.alerts, id)
	return nil
}

func (m *mockAlertRepo) MarkChecked(_ context.Context, id uuid.UUID, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	a, ok := m.alerts[id]
	if !ok {
		return repository.ErrAlertNotFound
	}
	a.LastCheckedAt = &at
	m.alerts[id] = a
	m.checked = append(m.checked, id)
	return nil
}

func (m *mockAlertRepo) MarkNotified(_ context.Context, id uuid.UUID, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	a, ok := m.alerts[id]
	if !ok {
		return repository.ErrAlertNotFound
	}
	a.LastNotifiedAt = &at
	m.alerts[id] = a
	m.notified = append(m.notified, id)
	return nil
}

type mockCache struct {
	store       map[string][]byte
	invalidated []string
	patterns    []string
}

func newMockCache() *mockCache {
	return &mockCache{store: map[string][]byte{}}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = b
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	delete(m.store, key)
	return nil
}

func (m *mockCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	return nil
}

func (m *mockCache) InvalidateUser(_ context.Context, userID string) error {
	m.invalidated = append(m.invalidated, userID)
	return nil
}
