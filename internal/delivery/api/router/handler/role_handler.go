package handler

import (
	"log/slog"
	"net/http"

	"cadastre/internal/delivery/api/response"
	"cadastre/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RoleHandlerParams holds dependencies for RoleHandler, injected by Fx.
type RoleHandlerParams struct {
	fx.In

	RoleUC usecase.RoleUsecase
	Logger *slog.Logger
}

// RoleHandler serves roles and permissions.
type RoleHandler struct {
	roleUC usecase.RoleUsecase
	logger *slog.Logger
}

// NewRoleHandler is the constructor for RoleHandler.
func NewRoleHandler(params RoleHandlerParams) *RoleHandler {
	return &RoleHandler{
		roleUC: params.RoleUC,
		logger: params.Logger,
	}
}

func (h *RoleHandler) ListRoles(c echo.Context) error {
	roles, err := h.roleUC.ListRoles(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, roles)
}

func (h *RoleHandler) GetRole(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	role, err := h.roleUC.GetRole(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, role)
}

func (h *RoleHandler) CreateRole(c echo.Context) error {
	var input usecase.NamedInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	role, err := h.roleUC.CreateRole(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, role)
}

func (h *RoleHandler) UpdateRole(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.UpdateNamedInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	role, err := h.roleUC.UpdateRole(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, role)
}

func (h *RoleHandler) DeleteRole(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.roleUC.DeleteRole(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

func (h *RoleHandler) ReplaceRolePermissions(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.ReplaceIDsInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	role, err := h.roleUC.ReplaceRolePermissions(c.Request().Context(), id, input.IDs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, role)
}

func (h *RoleHandler) ListPermissions(c echo.Context) error {
	permissions, err := h.roleUC.ListPermissions(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, permissions)
}

func (h *RoleHandler) GetPermission(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	permission, err := h.roleUC.GetPermission(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, permission)
}

func (h *RoleHandler) CreatePermission(c echo.Context) error {
	var input usecase.NamedInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	permission, err := h.roleUC.CreatePermission(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, permission)
}

func (h *RoleHandler) UpdatePermission(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.UpdateNamedInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	permission, err := h.roleUC.UpdatePermission(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, permission)
}

func (h *RoleHandler) DeletePermission(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.roleUC.DeletePermission(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}
