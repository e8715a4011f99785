package handler

import (
	"errors"

	"jobmate/internal/delivery/http/middleware"
	"jobmate/internal/pkg/response"
	"jobmate/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AnalyticsHandler struct {
	uc usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(uc usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterUserRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:user_id/analytics/dashboard", h.Dashboard)
	r.Get("/:user_id/analytics/stats", h.Stats)
	r.Get("/:user_id/analytics/trends/monthly", h.MonthlyTrends)
}

func (h *AnalyticsHandler) Dashboard(c fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}
	d, err := h.uc.Dashboard(c.Context(), userID)
	if err != nil {
		return mapAnalyticsError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, d)
}

func (h *AnalyticsHandler) Stats(c fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}
	stats, err := h.uc.Stats(c.Context(), userID)
	if err != nil {
		return mapAnalyticsError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}

func (h *AnalyticsHandler) MonthlyTrends(c fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}
	trends, err := h.uc.MonthlyTrends(c.Context(), userID)
	if err != nil {
		return mapAnalyticsError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, trends)
}

func mapAnalyticsError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
