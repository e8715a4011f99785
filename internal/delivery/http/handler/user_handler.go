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

type UserHandler struct {
	uc usecase.UserUsecase
}

type createUserRequest struct {
	Email              string `json:"email"`
	FullName           string `json:"full_name"`
	TargetRole         string `json:"target_role"`
	Skills             any    `json:"skills"`
	LocationPreference string `json:"location_preference"`
	WorkMode           string `json:"work_mode"`
}

type updateUserRequest struct {
	FullName           *string `json:"full_name"`
	TargetRole         *string `json:"target_role"`
	Skills             any     `json:"skills"`
	LocationPreference *string `json:"location_preference"`
	WorkMode           *string `json:"work_mode"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Create)
	r.Get("/:user_id", h.Get)
	r.Put("/:user_id", h.Update)
	r.Delete("/:user_id", h.Delete)
}

func (h *UserHandler) Create(c fiber.Ctx) error {
	var req createUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	created, err := h.uc.Create(c.Context(), usecase.CreateUserParams{
		Email:              req.Email,
		FullName:           req.FullName,
		TargetRole:         req.TargetRole,
		Skills:             req.Skills,
		LocationPreference: req.LocationPreference,
		WorkMode:           req.WorkMode,
	})
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewUserResponse(created))
}

func (h *UserHandler) Get(c fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	found, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(found))
}

func (h *UserHandler) Update(c fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	updated, err := h.uc.Update(c.Context(), id, usecase.UpdateUserParams{
		FullName:           req.FullName,
		TargetRole:         req.TargetRole,
		Skills:             req.Skills,
		LocationPreference: req.LocationPreference,
		WorkMode:           req.WorkMode,
	})
	if err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(updated))
}

func (h *UserHandler) Delete(c fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUserError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func parseUserID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}
	return id, nil
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, usecase.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
