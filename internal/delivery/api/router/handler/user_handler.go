package handler

import (
	"log/slog"
	"net/http"

	"cadastre/internal/delivery/api/response"
	"cadastre/internal/domain/repository"
	"cadastre/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves staff account administration.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// ListUsers supports ?search=, ?is_active= and paging.
func (h *UserHandler) ListUsers(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	isActive, err := queryOptionalBool(c, "is_active")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	users, err := h.userUC.ListUsers(c.Request().Context(), repository.UserFilter{
		Search:   c.QueryParam("search"),
		IsActive: isActive,
	}, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, users)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.GetUser(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var input usecase.CreateUserInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.CreateUser(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, user)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.UpdateUserInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.UpdateUser(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// ReplaceUserRoles replaces the whole role set with body {"ids": [...]}.
func (h *UserHandler) ReplaceUserRoles(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.ReplaceIDsInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.ReplaceUserRoles(c.Request().Context(), id, input.IDs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}
