package repository

import (
	"context"
	"database/sql"
	"errors"

	"jobmate/internal/database"
	"jobmate/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	FindByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status *job.Status) ([]job.Job, error)
	Update(ctx context.Context, j job.Job) (job.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetMatchScore(ctx context.Context, id uuid.UUID, score int) error
	ClearMatchScores(ctx context.Context, userID uuid.UUID) error
	// ListBoard returns recent jobs saved by other users, the pool an
	// alert is checked against.
	ListBoard(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, user_id, title, company, location, description, apply_url,
	match_score, notes, applied_at, interview_at, status, created_at, updated_at`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = job.StatusSaved
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (id, user_id, title, company, location, description, apply_url, notes, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+jobColumns,
		j.ID, j.UserID, j.Title, j.Company, j.Location, j.Description, j.ApplyURL, j.Notes, string(j.Status),
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *PostgresJobRepository) ListByUser(ctx context.Context, userID uuid.UUID, status *job.Status) ([]job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE user_id = $1`
	args := []any{userID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE jobs
		 SET title = $2, company = $3, location = $4, description = $5, apply_url = $6,
		     match_score = $7, notes = $8, applied_at = $9, interview_at = $10,
		     status = $11, updated_at = now()
		 WHERE id = $1
		 RETURNING `+jobColumns,
		j.ID, j.Title, j.Company, j.Location, j.Description, j.ApplyURL,
		j.MatchScore, j.Notes, j.AppliedAt, j.InterviewAt, string(j.Status),
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) SetMatchScore(ctx context.Context, id uuid.UUID, score int) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET match_score = $2, updated_at = now() WHERE id = $1`,
		id, score,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *PostgresJobRepository) ClearMatchScores(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE jobs SET match_score = NULL, updated_at = now() WHERE user_id = $1`,
		userID,
	)
	return err
}

func (r *PostgresJobRepository) ListBoard(ctx context.Context, excludeUserID uuid.UUID, limit int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE user_id <> $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		excludeUserID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var status string
	err := row.Scan(
		&j.ID, &j.UserID, &j.Title, &j.Company, &j.Location, &j.Description, &j.ApplyURL,
		&j.MatchScore, &j.Notes, &j.AppliedAt, &j.InterviewAt, &status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	return j, nil
}

func collectJobs(rows database.Rows) ([]job.Job, error) {
	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		var status string
		if err := rows.Scan(
			&j.ID, &j.UserID, &j.Title, &j.Company, &j.Location, &j.Description, &j.ApplyURL,
			&j.MatchScore, &j.Notes, &j.AppliedAt, &j.InterviewAt, &status, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, err
		}
		j.Status = job.Status(status)
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
