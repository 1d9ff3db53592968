package handler

import (
	"log/slog"
	"net/http"

	"cadastre/internal/delivery/api/response"
	"cadastre/internal/domain/entity"
	"cadastre/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LookupHandlerParams holds dependencies for LookupHandler, injected by Fx.
type LookupHandlerParams struct {
	fx.In

	LookupUC usecase.LookupUsecase
	Logger   *slog.Logger
}

// LookupHandler serves property types and the status and method lookup tables.
type LookupHandler struct {
	lookupUC usecase.LookupUsecase
	logger   *slog.Logger
}

// NewLookupHandler is the constructor for LookupHandler.
func NewLookupHandler(params LookupHandlerParams) *LookupHandler {
	return &LookupHandler{
		lookupUC: params.LookupUC,
		logger:   params.Logger,
	}
}

func (h *LookupHandler) ListPropertyTypes(c echo.Context) error {
	types, err := h.lookupUC.ListPropertyTypes(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, types)
}

func (h *LookupHandler) GetPropertyType(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	propertyType, err := h.lookupUC.GetPropertyType(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, propertyType)
}

func (h *LookupHandler) CreatePropertyType(c echo.Context) error {
	var input usecase.PropertyTypeInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	propertyType, err := h.lookupUC.CreatePropertyType(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, propertyType)
}

func (h *LookupHandler) UpdatePropertyType(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.UpdatePropertyTypeInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	propertyType, err := h.lookupUC.UpdatePropertyType(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, propertyType)
}

// The lookup tables share one set of handlers bound to a kind at route registration.

func (h *LookupHandler) ListLookups(kind entity.LookupKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		lookups, err := h.lookupUC.ListLookups(c.Request().Context(), kind)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, lookups)
	}
}

func (h *LookupHandler) GetLookup(kind entity.LookupKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathUUID(c, "id")
		if err != nil {
			return response.HandleAppError(c, err)
		}

		lookup, err := h.lookupUC.GetLookup(c.Request().Context(), kind, id)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, lookup)
	}
}

func (h *LookupHandler) CreateLookup(kind entity.LookupKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var input usecase.NamedInput
		if err := bind(c, &input); err != nil {
			return response.HandleAppError(c, err)
		}

		lookup, err := h.lookupUC.CreateLookup(c.Request().Context(), kind, &input)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusCreated, lookup)
	}
}

func (h *LookupHandler) UpdateLookup(kind entity.LookupKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathUUID(c, "id")
		if err != nil {
			return response.HandleAppError(c, err)
		}
		var input usecase.UpdateNamedInput
		if err := bind(c, &input); err != nil {
			return response.HandleAppError(c, err)
		}

		lookup, err := h.lookupUC.UpdateLookup(c.Request().Context(), kind, id, &input)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		return response.Success(c, http.StatusOK, lookup)
	}
}
