package repository

import (
	"context"
	"database/sql"
	"errors"

	"jobmate/internal/database"
	"jobmate/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (user.User, error)
	FindByEmail(ctx context.Context, email string) (user.User, error)
	Update(ctx context.Context, u user.User) (user.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, full_name, target_role, skills, location_preference, work_mode, created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (id, email, full_name, target_role, skills, location_preference, work_mode)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+userColumns,
		u.ID, u.Email, u.FullName, u.TargetRole, u.Skills, u.LocationPreference, string(u.WorkMode),
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) Update(ctx context.Context, u user.User) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users
		 SET email = $2, full_name = $3, target_role = $4, skills = $5,
		     location_preference = $6, work_mode = $7, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		u.ID, u.Email, u.FullName, u.TargetRole, u.Skills, u.LocationPreference, string(u.WorkMode),
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var workMode string
	err := row.Scan(
		&u.ID, &u.Email, &u.FullName, &u.TargetRole, &u.Skills,
		&u.LocationPreference, &workMode, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, err
	}
	u.WorkMode = user.WorkMode(workMode)
	return u, nil
}
