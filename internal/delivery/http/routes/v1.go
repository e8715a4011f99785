package routes

import (
	"jobmate/internal/database"
	v1 "jobmate/internal/delivery/http/routes/v1"
	"jobmate/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

func RegisterV1(r fiber.Router, db database.DB, redis *cache.Redis, logger zerolog.Logger) {
	if r == nil {
		return
	}

	v1.Register(r, db, redis, logger)
}
