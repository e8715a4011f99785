package routes

import (
	"jobmate/internal/database"
	"jobmate/internal/delivery/http/handler"
	"jobmate/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

type Registry struct {
	db     database.DB
	cache  *cache.Redis
	logger zerolog.Logger
	health *handler.HealthHandler
}

func NewRegistry(db database.DB, redis *cache.Redis, logger zerolog.Logger) *Registry {
	return &Registry{
		db:     db,
		cache:  redis,
		logger: logger,
		health: handler.NewHealthHandler(db, redis),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.db, r.cache, r.logger)
}
