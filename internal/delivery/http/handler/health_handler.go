package handler

import (
	"context"
	"time"

	"jobmate/internal/database"
	"jobmate/internal/infrastructure/cache"
	"jobmate/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, cache *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if h.db == nil || h.db.Ping(ctx) != nil {
		dbStatus = "down"
	}

	// The cache is best-effort, a down cache does not fail the check.
	cacheStatus := "up"
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		cacheStatus = "down"
	}

	data := fiber.Map{"database": dbStatus, "cache": cacheStatus}
	if dbStatus != "up" {
		return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", data)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
