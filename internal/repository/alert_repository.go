package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobmate/internal/database"
	"jobmate/internal/domain/alert"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrAlertNotFound = errors.New("job alert not found")
)

type AlertRepository interface {
	Create(ctx context.Context, a alert.Alert) (alert.Alert, error)
	FindByID(ctx context.Context, id uuid.UUID) (alert.Alert, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]alert.Alert, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]alert.Alert, error)
	Update(ctx context.Context, a alert.Alert) (alert.Alert, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkChecked(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) error
}

type PostgresAlertRepository struct {
	db database.DB
}

func NewPostgresAlertRepository(db database.DB) *PostgresAlertRepository {
	return &PostgresAlertRepository{db: db}
}

const alertColumns = `id, user_id, keywords, location, min_match_score, active, frequency,
	last_checked_at, last_notified_at, created_at, updated_at`

func (r *PostgresAlertRepository) Create(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Frequency == "" {
		a.Frequency = alert.FrequencyDaily
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO job_alerts (id, user_id, keywords, location, min_match_score, active, frequency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+alertColumns,
		a.ID, a.UserID, a.Keywords, a.Location, a.MinMatchScore, a.Active, string(a.Frequency),
	)
	return scanAlert(row)
}

func (r *PostgresAlertRepository) FindByID(ctx context.Context, id uuid.UUID) (alert.Alert, error) {
	row := r.db.QueryRow(ctx, `SELECT `+alertColumns+` FROM job_alerts WHERE id = $1`, id)
	return scanAlert(row)
}

func (r *PostgresAlertRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]alert.Alert, error) {
	return r.list(ctx, `SELECT `+alertColumns+` FROM job_alerts WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresAlertRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]alert.Alert, error) {
	return r.list(ctx, `SELECT `+alertColumns+` FROM job_alerts WHERE user_id = $1 AND active ORDER BY created_at DESC`, userID)
}

func (r *PostgresAlertRepository) list(ctx context.Context, query string, args ...any) ([]alert.Alert, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]alert.Alert, 0)
	for rows.Next() {
		var a alert.Alert
		var freq string
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Keywords, &a.Location, &a.MinMatchScore, &a.Active, &freq,
			&a.LastCheckedAt, &a.LastNotifiedAt, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		a.Frequency = alert.Frequency(freq)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAlertRepository) Update(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE job_alerts
		 SET keywords = $2, location = $3, min_match_score = $4, active = $5,
		     frequency = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING `+alertColumns,
		a.ID, a.Keywords, a.Location, a.MinMatchScore, a.Active, string(a.Frequency),
	)
	return scanAlert(row)
}

func (r *PostgresAlertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM job_alerts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlertNotFound
	}
	return nil
}

func (r *PostgresAlertRepository) MarkChecked(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE job_alerts SET last_checked_at = $2 WHERE id = $1`, id, at)
	return err
}

func (r *PostgresAlertRepository) MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE job_alerts SET last_notified_at = $2 WHERE id = $1`, id, at)
	return err
}

func scanAlert(row database.Row) (alert.Alert, error) {
	var a alert.Alert
	var freq string
	err := row.Scan(
		&a.ID, &a.UserID, &a.Keywords, &a.Location, &a.MinMatchScore, &a.Active, &freq,
		&a.LastCheckedAt, &a.LastNotifiedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return alert.Alert{}, ErrAlertNotFound
		}
		return alert.Alert{}, err
	}
	a.Frequency = alert.Frequency(freq)
	return a, nil
}
