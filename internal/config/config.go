package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	RunMigrations bool
	MigrationsDir string
	SeedDemo      bool

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type RateLimitConfig struct {
	RPS   int
	Burst int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	// best effort: absent .env just means plain environment variables
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return def
		}
		return n
	}
	optBool := func(key string, def bool) bool {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "jobmate"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", "localhost"),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: strings.TrimSpace(os.Getenv("DB_PASSWORD")),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),

		RunMigrations: optBool("DB_RUN_MIGRATIONS", false),
		MigrationsDir: opt("DB_MIGRATIONS_DIR", "migrations"),
		SeedDemo:      optBool("DB_SEED_DEMO", false),

		ConnectTimeout:      time.Duration(optInt("DB_CONNECT_TIMEOUT_SECONDS", 5)) * time.Second,
		PoolMaxConns:        int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:        int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime: time.Duration(optInt("DB_POOL_MAX_CONN_LIFETIME_SECONDS", 0)) * time.Second,
		PoolMaxConnIdleTime: time.Duration(optInt("DB_POOL_MAX_CONN_IDLE_SECONDS", 0)) * time.Second,
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		TTL:      time.Duration(optInt("REDIS_TTL_SECONDS", 600)) * time.Second,
	}

	cfg.RateLimit = RateLimitConfig{
		RPS:   optInt("RATE_LIMIT_RPS", 10),
		Burst: optInt("RATE_LIMIT_BURST", 20),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}
