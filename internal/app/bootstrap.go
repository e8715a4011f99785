package app

import (
	"fmt"
	"strings"

	"jobmate/internal/config"
	"jobmate/internal/delivery/http/middleware"
	"jobmate/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	errMw := middleware.NewErrorMiddleware(c.Logger)
	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	rateMw := middleware.NewRateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())
	f.Use(rateMw.Middleware())

	routes.NewRegistry(c.DB, c.Cache, c.Logger).Register(f)

	return &App{Fiber: f, Container: c}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
