package seeder

import (
	"context"
	"fmt"

	"jobmate/internal/database"

	"github.com/google/uuid"
)

const demoEmail = "demo@jobmate.dev"

type DemoUserSeeder struct{}

func (DemoUserSeeder) Name() string { return "demo user" }

func (DemoUserSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users",
		"id", "email", "full_name", "target_role", "skills",
		"location_preference", "work_mode", "created_at", "updated_at",
	); err != nil {
		return err
	}

	_, err := db.Exec(ctx,
		`INSERT INTO users (id, email, full_name, target_role, skills, location_preference, work_mode)
		 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
		 ON CONFLICT (email) DO NOTHING`,
		demoEmail, "Demo User", "Backend Developer",
		"Python, SQL, Go, Docker, PostgreSQL", "Jakarta", "remote",
	)
	return err
}

type DemoJobsSeeder struct{}

func (DemoJobsSeeder) Name() string { return "demo jobs" }

func (DemoJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs",
		"id", "user_id", "title", "company", "location", "description",
		"apply_url", "match_score", "notes", "status", "created_at", "updated_at",
	); err != nil {
		return err
	}

	userID, err := findDemoUserID(ctx, db)
	if err != nil {
		return err
	}

	var existing int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE user_id = $1`, userID).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	items := []struct {
		Title       string
		Company     string
		Location    string
		Description string
		Status      string
	}{
		{
			Title:       "Backend Developer",
			Company:     "Acme Corp",
			Location:    "Jakarta",
			Description: "We are looking for a backend developer with strong Python and SQL skills. Experience with Docker and PostgreSQL is a plus.",
			Status:      "saved",
		},
		{
			Title:       "Go Platform Engineer",
			Company:     "Globex",
			Location:    "Remote",
			Description: "Build and operate Go services on Kubernetes. PostgreSQL and Redis experience required.",
			Status:      "applied",
		},
		{
			Title:       "Data Engineer",
			Company:     "Initech",
			Location:    "Singapore",
			Description: "Design data pipelines with Python, SQL and Airflow on AWS.",
			Status:      "saved",
		},
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range items {
		if _, err := tx.Exec(ctx,
			`INSERT INTO jobs (id, user_id, title, company, location, description, status)
			 VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)`,
			userID, it.Title, it.Company, it.Location, it.Description, it.Status,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

type DemoAlertSeeder struct{}

func (DemoAlertSeeder) Name() string { return "demo alert" }

func (DemoAlertSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "job_alerts",
		"id", "user_id", "keywords", "location", "min_match_score",
		"active", "frequency", "created_at", "updated_at",
	); err != nil {
		return err
	}

	userID, err := findDemoUserID(ctx, db)
	if err != nil {
		return err
	}

	var existing int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM job_alerts WHERE user_id = $1`, userID).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	_, err = db.Exec(ctx,
		`INSERT INTO job_alerts (id, user_id, keywords, location, min_match_score, active, frequency)
		 VALUES (gen_random_uuid(), $1, $2, $3, $4, TRUE, $5)`,
		userID, "backend, golang", "", 40, "daily",
	)
	return err
}

func findDemoUserID(ctx context.Context, db database.DB) (uuid.UUID, error) {
	var id uuid.UUID
	if err := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, demoEmail).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("demo user missing, run the user seeder first: %w", err)
	}
	return id, nil
}
