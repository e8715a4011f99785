package v1

import (
	"jobmate/internal/database"
	"jobmate/internal/delivery/http/handler"
	"jobmate/internal/infrastructure/cache"
	"jobmate/internal/repository"
	"jobmate/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

func Register(r fiber.Router, db database.DB, redis *cache.Redis, logger zerolog.Logger) {
	if r == nil {
		return
	}

	userRepo := repository.NewPostgresUserRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	alertRepo := repository.NewPostgresAlertRepository(db)

	userUC := usecase.NewUserUsecase(userRepo, jobRepo, redis)
	jobUC := usecase.NewJobUsecase(jobRepo, userRepo, redis)
	matchUC := usecase.NewMatchingUsecase(jobRepo, userRepo, redis, logger)
	alertUC := usecase.NewAlertUsecase(alertRepo, userRepo, jobRepo, logger)
	analyticsUC := usecase.NewAnalyticsUsecase(jobRepo, userRepo, redis, logger)

	userHandler := handler.NewUserHandler(userUC)
	jobHandler := handler.NewJobHandler(jobUC)
	matchHandler := handler.NewMatchHandler(matchUC)
	alertHandler := handler.NewAlertHandler(alertUC)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsUC)

	users := r.Group("/users")
	userHandler.RegisterRoutes(users)
	jobHandler.RegisterUserRoutes(users)
	matchHandler.RegisterUserRoutes(users)
	alertHandler.RegisterUserRoutes(users)
	analyticsHandler.RegisterUserRoutes(users)

	jobs := r.Group("/jobs")
	jobHandler.RegisterJobRoutes(jobs)
	matchHandler.RegisterJobRoutes(jobs)

	alerts := r.Group("/alerts")
	alertHandler.RegisterAlertRoutes(alerts)
}
