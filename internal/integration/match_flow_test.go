package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"jobmate/internal/config"
	"jobmate/internal/database"
	"jobmate/internal/database/migration"
	dbpostgres "jobmate/internal/database/postgres"
	"jobmate/internal/delivery/http/middleware"
	"jobmate/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type userData struct {
	ID     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Skills string    `json:"skills"`
}

type jobData struct {
	ID         uuid.UUID `json:"id"`
	MatchScore *int      `json:"match_score"`
	Status     string    `json:"status"`
}

type matchData struct {
	JobID         uuid.UUID `json:"job_id"`
	MatchScore    int       `json:"match_score"`
	MatchedSkills []string  `json:"matched_skills"`
	MissingSkills []string  `json:"missing_skills"`
}

type dashboardData struct {
	Stats struct {
		TotalApplications int `json:"total_applications"`
	} `json:"stats"`
}

func TestIntegration_UserJobMatchFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	app := newTestFiberApp(t, db)
	defer cleanupTestData(ctx, db)

	// Create a user with a skill profile.
	created := postJSON(t, app, "/api/v1/users", map[string]any{
		"email":     "it-flow@example.com",
		"full_name": "Integration Flow",
		"skills":    "Python, SQL, React",
		"work_mode": "remote",
	}, fiber.StatusCreated)
	var u userData
	mustUnmarshal(t, created.Data, &u)
	if u.ID == uuid.Nil {
		t.Fatalf("create user: missing id")
	}

	// Track a job for that user.
	jobRes := postJSON(t, app, "/api/v1/users/"+u.ID.String()+"/jobs", map[string]any{
		"title":       "Backend Developer",
		"company":     "IT Co",
		"description": "We need Python and SQL experience for our data team.",
	}, fiber.StatusCreated)
	var j jobData
	mustUnmarshal(t, jobRes.Data, &j)
	if j.ID == uuid.Nil {
		t.Fatalf("create job: missing id")
	}
	if j.MatchScore != nil {
		t.Fatalf("create job: match_score must start unset")
	}

	// Compute the match.
	matchRes := postJSON(t, app, "/api/v1/jobs/"+j.ID.String()+"/match", nil, fiber.StatusOK)
	var m matchData
	mustUnmarshal(t, matchRes.Data, &m)
	if m.JobID != j.ID {
		t.Fatalf("match: job_id = %s, want %s", m.JobID, j.ID)
	}
	if m.MatchScore <= 0 || m.MatchScore > 100 {
		t.Fatalf("match: score out of range: %d", m.MatchScore)
	}
	if len(m.MatchedSkills)+len(m.MissingSkills) != 3 {
		t.Fatalf("match: partition %v / %v does not cover the profile", m.MatchedSkills, m.MissingSkills)
	}

	// The score must now be stored on the job row.
	jobRes = getJSON(t, app, "/api/v1/jobs/"+j.ID.String(), fiber.StatusOK)
	mustUnmarshal(t, jobRes.Data, &j)
	if j.MatchScore == nil || *j.MatchScore != m.MatchScore {
		t.Fatalf("job row: stored score %v, want %d", j.MatchScore, m.MatchScore)
	}

	// Editing the skill profile clears stored scores.
	putJSON(t, app, "/api/v1/users/"+u.ID.String(), map[string]any{
		"skills": "Haskell",
	}, fiber.StatusOK)

	jobRes = getJSON(t, app, "/api/v1/jobs/"+j.ID.String(), fiber.StatusOK)
	mustUnmarshal(t, jobRes.Data, &j)
	if j.MatchScore != nil {
		t.Fatalf("job row: score must be cleared after profile change, got %v", j.MatchScore)
	}

	// Dashboard reflects the tracked job.
	dashRes := getJSON(t, app, "/api/v1/users/"+u.ID.String()+"/analytics/dashboard", fiber.StatusOK)
	var d dashboardData
	mustUnmarshal(t, dashRes.Data, &d)
	if d.Stats.TotalApplications != 1 {
		t.Fatalf("dashboard: total = %d, want 1", d.Stats.TotalApplications)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("JOBMATE_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("JOBMATE_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("JOBMATE_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("JOBMATE_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("JOBMATE_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("JOBMATE_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set JOBMATE_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	dbcfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.Runner{Dir: resolveMigrationsDir(t)}
	if err := r.Run(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	// this file: internal/integration/match_flow_test.go
	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	return migDir
}

func newTestFiberApp(t *testing.T, db database.DB) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{})
	errMw := middleware.NewErrorMiddleware(zerolog.Nop())
	app.Use(errMw.Middleware())

	// A nil cache degrades every lookup to a miss.
	routes.NewRegistry(db, nil, zerolog.Nop()).Register(app)
	return app
}

func cleanupTestData(ctx context.Context, db database.DB) {
	_, _ = db.Exec(ctx, `DELETE FROM users WHERE email = $1`, "it-flow@example.com")
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]any, wantStatus int) semanticResponse {
	t.Helper()
	return doJSON(t, app, "POST", path, body, wantStatus)
}

func putJSON(t *testing.T, app *fiber.App, path string, body map[string]any, wantStatus int) semanticResponse {
	t.Helper()
	return doJSON(t, app, "PUT", path, body, wantStatus)
}

func getJSON(t *testing.T, app *fiber.App, path string, wantStatus int) semanticResponse {
	t.Helper()
	return doJSON(t, app, "GET", path, nil, wantStatus)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body map[string]any, wantStatus int) semanticResponse {
	t.Helper()

	var req = httptest.NewRequest(method, path, nil)
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("%s %s: marshal: %v", method, path, err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: request error: %v", method, path, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	if sr.Status != wantStatus {
		t.Fatalf("%s %s: status = %d (message=%s), want %d", method, path, sr.Status, sr.Message, wantStatus)
	}
	return sr
}

func mustUnmarshal(t *testing.T, raw json.RawMessage, out any) {
	t.Helper()
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
