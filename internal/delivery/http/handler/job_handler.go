package handler

import (
	"errors"
	"time"

	"jobmate/internal/delivery/http/dto"
	"jobmate/internal/delivery/http/middleware"
	"jobmate/internal/pkg/response"
	"jobmate/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

type createJobRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ApplyURL    string `json:"apply_url"`
	Notes       string `json:"notes"`
	Status      string `json:"status"`
}

type updateJobRequest struct {
	Title       *string    `json:"title"`
	Company     *string    `json:"company"`
	Location    *string    `json:"location"`
	Description *string    `json:"description"`
	ApplyURL    *string    `json:"apply_url"`
	Notes       *string    `json:"notes"`
	Status      *string    `json:"status"`
	InterviewAt *time.Time `json:"interview_at"`
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterUserRoutes mounts the routes scoped to one user's tracker.
func (h *JobHandler) RegisterUserRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/:user_id/jobs", h.Create)
	r.Get("/:user_id/jobs", h.List)
}

func (h *JobHandler) RegisterJobRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:job_id", h.Get)
	r.Put("/:job_id", h.Update)
	r.Delete("/:job_id", h.Delete)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	created, err := h.uc.Create(c.Context(), userID, usecase.CreateJobParams{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
		ApplyURL:    req.ApplyURL,
		Notes:       req.Notes,
		Status:      req.Status,
	})
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewJobResponse(created))
}

func (h *JobHandler) List(c fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID, c.Query("status"))
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(items))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return err
	}
	found, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(found))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	updated, err := h.uc.Update(c.Context(), id, usecase.UpdateJobParams{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
		ApplyURL:    req.ApplyURL,
		Notes:       req.Notes,
		Status:      req.Status,
		InterviewAt: req.InterviewAt,
	})
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(updated))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func parseJobID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}
	return id, nil
}

func mapJobError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
