package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobmate/internal/app"
	"jobmate/internal/config"
	"jobmate/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl := logger.New(cfg.App.AppName, cfg.App.Environment)

	container, err := app.NewContainer(cfg, zl)
	if err != nil {
		zl.Fatal().Err(err).Msg("failed to build container")
	}
	defer func() {
		if err := container.Close(); err != nil {
			zl.Error().Err(err).Msg("cleanup error")
		}
	}()

	server := app.Bootstrap(cfg, container)

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		zl.Fatal().Err(err).Msg("invalid HTTP port")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Fiber.Listen(addr)
	}()
	zl.Info().Str("addr", addr).Msg("server listening")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zl.Fatal().Err(err).Msg("server error")
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Fiber.ShutdownWithContext(ctx); err != nil {
			zl.Error().Err(err).Msg("shutdown error")
		}
	}
}
