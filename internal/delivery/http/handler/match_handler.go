package handler

import (
	"errors"

	"jobmate/internal/delivery/http/dto"
	"jobmate/internal/delivery/http/middleware"
	"jobmate/internal/pkg/response"
	"jobmate/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterJobRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/:job_id/match", h.ComputeMatch)
}

func (h *MatchHandler) RegisterUserRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/:user_id/rescore", h.Rescore)
}

func (h *MatchHandler) ComputeMatch(c fiber.Ctx) error {
	jobID, err := parseJobID(c)
	if err != nil {
		return err
	}

	res, err := h.uc.ComputeMatch(c.Context(), jobID)
	if err != nil {
		return mapMatchError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.MatchResponse{
		JobID:         res.JobID,
		MatchScore:    res.MatchScore,
		MatchedSkills: res.MatchedSkills,
		MissingSkills: res.MissingSkills,
	})
}

func (h *MatchHandler) Rescore(c fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.uc.RescoreUser(c.Context(), userID)
	if err != nil {
		return mapMatchError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RescoreResponse{
		Total:  summary.Total,
		Scored: summary.Scored,
		Failed: summary.Failed,
	})
}

func mapMatchError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill profile", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
