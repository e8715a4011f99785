package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobmate/internal/domain/alert"
	"jobmate/internal/domain/job"
	"jobmate/internal/domain/user"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TestAlerts_Create_Defaults(t *testing.T) {
	owner := user.User{ID: uuid.New(), Skills: "Go"}
	uc := NewAlertUsecase(newMockAlertRepo(), newMockUserRepo(owner), newMockJobRepo(), zerolog.Nop())

	a, err := uc.Create(context.Background(), owner.ID, CreateAlertParams{Keywords: "golang, backend"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Frequency != alert.FrequencyDaily {
		t.Fatalf("frequency = %s, want daily default", a.Frequency)
	}
	if !a.Active {
		t.Fatalf("new alert must be active")
	}
}

func TestAlerts_Create_Invalid(t *testing.T) {
	owner := user.User{ID: uuid.New()}
	uc := NewAlertUsecase(newMockAlertRepo(), newMockUserRepo(owner), newMockJobRepo(), zerolog.Nop())

	cases := []CreateAlertParams{
		{Keywords: ""},
		{Keywords: "go", MinMatchScore: -1},
		{Keywords: "go", MinMatchScore: 101},
		{Keywords: "go", Frequency: "hourly"},
	}
	for _, p := range cases {
		if _, err := uc.Create(context.Background(), owner.ID, p); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("params %+v: expected ErrInvalidInput, got %v", p, err)
		}
	}
}

func TestAlerts_CheckAlert(t *testing.T) {
	owner := user.User{ID: uuid.New(), Skills: "Python, SQL"}
	a := alert.Alert{
		ID:        uuid.New(),
		UserID:    owner.ID,
		Keywords:  "python",
		Active:    true,
		Frequency: alert.FrequencyDaily,
	}

	match := job.Job{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Title:       "Python Developer",
		Company:     "Acme",
		Description: "python and sql daily",
	}
	noKeyword := job.Job{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Title:       "Barista",
		Description: "espresso",
	}
	own := job.Job{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Title:       "Python Engineer",
		Description: "python",
	}

	alerts := newMockAlertRepo(a)
	uc := NewAlertUsecase(alerts, newMockUserRepo(owner), newMockJobRepo(match, noKeyword, own), zerolog.Nop())

	check, err := uc.CheckAlert(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("CheckAlert: %v", err)
	}
	if check.Scanned != 1 {
		t.Fatalf("scanned = %d, want 1 keyword hit", check.Scanned)
	}
	if len(check.Matches) != 1 || check.Matches[0].JobID != match.ID {
		t.Fatalf("matches = %+v, want the python posting", check.Matches)
	}
	if len(alerts.checked) != 1 {
		t.Fatalf("alert not marked checked")
	}
	if len(alerts.notified) != 1 {
		t.Fatalf("alert with matches must be marked notified")
	}
}

func TestAlerts_CheckAlert_ThresholdFiltersOut(t *testing.T) {
	owner := user.User{ID: uuid.New(), Skills: "Kubernetes"}
	a := alert.Alert{
		ID:            uuid.New(),
		UserID:        owner.ID,
		Keywords:      "barista",
		MinMatchScore: 50,
		Active:        true,
		Frequency:     alert.FrequencyDaily,
	}
	posting := job.Job{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Title:       "Barista",
		Description: "espresso latte",
	}

	alerts := newMockAlertRepo(a)
	uc := NewAlertUsecase(alerts, newMockUserRepo(owner), newMockJobRepo(posting), zerolog.Nop())

	check, err := uc.CheckAlert(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("CheckAlert: %v", err)
	}
	if len(check.Matches) != 0 {
		t.Fatalf("matches = %+v, want none below threshold", check.Matches)
	}
	if len(alerts.notified) != 0 {
		t.Fatalf("alert without matches must not be marked notified")
	}
}

func TestAlerts_CheckAlert_TopMatchesCapped(t *testing.T) {
	owner := user.User{ID: uuid.New(), Skills: "Go"}
	a := alert.Alert{ID: uuid.New(), UserID: owner.ID, Keywords: "go", Active: true, Frequency: alert.FrequencyDaily}

	var board []job.Job
	for i := 0; i < 8; i++ {
		board = append(board, job.Job{
			ID:          uuid.New(),
			UserID:      uuid.New(),
			Title:       "Go Developer",
			Description: "go services",
		})
	}

	uc := NewAlertUsecase(newMockAlertRepo(a), newMockUserRepo(owner), newMockJobRepo(board...), zerolog.Nop())
	check, err := uc.CheckAlert(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("CheckAlert: %v", err)
	}
	if len(check.Matches) != alertTopMatches {
		t.Fatalf("matches = %d, want cap of %d", len(check.Matches), alertTopMatches)
	}
}

func TestAlerts_CheckAll_RespectsDueWindow(t *testing.T) {
	owner := user.User{ID: uuid.New(), Skills: "Go"}
	recent := time.Now().Add(-time.Hour)
	stale := time.Now().Add(-48 * time.Hour)

	due := alert.Alert{ID: uuid.New(), UserID: owner.ID, Keywords: "go", Active: true, Frequency: alert.FrequencyDaily, LastCheckedAt: &stale}
	notDue := alert.Alert{ID: uuid.New(), UserID: owner.ID, Keywords: "go", Active: true, Frequency: alert.FrequencyDaily, LastCheckedAt: &recent}
	inactive := alert.Alert{ID: uuid.New(), UserID: owner.ID, Keywords: "go", Active: false, Frequency: alert.FrequencyImmediate}

	alerts := newMockAlertRepo(due, notDue, inactive)
	uc := NewAlertUsecase(alerts, newMockUserRepo(owner), newMockJobRepo(), zerolog.Nop())

	checks, err := uc.CheckAll(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
	if len(checks) != 1 || checks[0].AlertID != due.ID {
		t.Fatalf("checks = %+v, want only the stale daily alert", checks)
	}
}

func TestAlerts_Update_NotFound(t *testing.T) {
	uc := NewAlertUsecase(newMockAlertRepo(), newMockUserRepo(), newMockJobRepo(), zerolog.Nop())
	active := false
	if _, err := uc.Update(context.Background(), uuid.New(), UpdateAlertParams{Active: &active}); !errors.Is(err, ErrAlertNotFound) {
		t.Fatalf("expected ErrAlertNotFound, got %v", err)
	}
}
