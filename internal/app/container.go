package app

import (
	"context"
	"time"

	"jobmate/internal/config"
	"jobmate/internal/database"
	"jobmate/internal/database/migration"
	dbpostgres "jobmate/internal/database/postgres"
	"jobmate/internal/database/seeder"
	"jobmate/internal/infrastructure/cache"

	"github.com/rs/zerolog"
)

type Container struct {
	Config config.Config
	Logger zerolog.Logger
	DB     database.DB
	Cache  *cache.Redis
}

func NewContainer(cfg config.Config, logger zerolog.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.RunMigrations {
		runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
		if err := runner.Run(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info().Str("dir", cfg.Database.MigrationsDir).Msg("migrations applied")
	}

	if cfg.Database.SeedDemo {
		runner := seeder.Runner{Seeders: seeder.Defaults()}
		if err := runner.Run(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info().Msg("demo data seeded")
	}

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
