package handler

import (
	"errors"

	"jobmate/internal/delivery/http/dto"
	"jobmate/internal/delivery/http/middleware"
	"jobmate/internal/pkg/response"
	"jobmate/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AlertHandler struct {
	uc usecase.AlertUsecase
}

type createAlertRequest struct {
	Keywords      string `json:"keywords"`
	Location      string `json:"location"`
	MinMatchScore int    `json:"min_match_score"`
	Frequency     string `json:"frequency"`
}

type updateAlertRequest struct {
	Keywords      *string `json:"keywords"`
	Location      *string `json:"location"`
	MinMatchScore *int    `json:"min_match_score"`
	Active        *bool   `json:"active"`
	Frequency     *string `json:"frequency"`
}

func NewAlertHandler(uc usecase.AlertUsecase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

func (h *AlertHandler) RegisterUserRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/:user_id/alerts", h.Create)
	r.Get("/:user_id/alerts", h.List)
	r.Post("/:user_id/alerts/check-all", h.CheckAll)
}

func (h *AlertHandler) RegisterAlertRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:alert_id", h.Get)
	r.Put("/:alert_id", h.Update)
	r.Delete("/:alert_id", h.Delete)
	r.Post("/:alert_id/check", h.Check)
}

func (h *AlertHandler) Create(c fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req createAlertRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	created, err := h.uc.Create(c.Context(), userID, usecase.CreateAlertParams{
		Keywords:      req.Keywords,
		Location:      req.Location,
		MinMatchScore: req.MinMatchScore,
		Frequency:     req.Frequency,
	})
	if err != nil {
		return mapAlertError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewAlertResponse(created))
}

func (h *AlertHandler) List(c fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}
	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapAlertError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAlertListResponse(items))
}

func (h *AlertHandler) Get(c fiber.Ctx) error {
	id, err := parseAlertID(c)
	if err != nil {
		return err
	}
	found, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapAlertError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAlertResponse(found))
}

func (h *AlertHandler) Update(c fiber.Ctx) error {
	id, err := parseAlertID(c)
	if err != nil {
		return err
	}

	var req updateAlertRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	updated, err := h.uc.Update(c.Context(), id, usecase.UpdateAlertParams{
		Keywords:      req.Keywords,
		Location:      req.Location,
		MinMatchScore: req.MinMatchScore,
		Active:        req.Active,
		Frequency:     req.Frequency,
	})
	if err != nil {
		return mapAlertError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAlertResponse(updated))
}

func (h *AlertHandler) Delete(c fiber.Ctx) error {
	id, err := parseAlertID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapAlertError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AlertHandler) Check(c fiber.Ctx) error {
	id, err := parseAlertID(c)
	if err != nil {
		return err
	}
	check, err := h.uc.CheckAlert(c.Context(), id)
	if err != nil {
		return mapAlertError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAlertCheckResponse(check))
}

func (h *AlertHandler) CheckAll(c fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}
	checks, err := h.uc.CheckAll(c.Context(), userID)
	if err != nil {
		return mapAlertError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAlertCheckListResponse(checks))
}

func parseAlertID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("alert_id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid alert id", nil, err)
	}
	return id, nil
}

func mapAlertError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, usecase.ErrAlertNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Alert not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
