package handler

import (
	"log/slog"
	"net/http"

	"cadastre/internal/delivery/api/response"
	"cadastre/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PersonHandlerParams holds dependencies for PersonHandler, injected by Fx.
type PersonHandlerParams struct {
	fx.In

	PersonUC usecase.PersonUsecase
	Logger   *slog.Logger
}

// PersonHandler serves owners and responsible persons.
type PersonHandler struct {
	personUC usecase.PersonUsecase
	logger   *slog.Logger
}

// NewPersonHandler is the constructor for PersonHandler.
func NewPersonHandler(params PersonHandlerParams) *PersonHandler {
	return &PersonHandler{
		personUC: params.PersonUC,
		logger:   params.Logger,
	}
}

// --- Owners ---

// ListOwners supports ?search= across name, phone and national id.
func (h *PersonHandler) ListOwners(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	owners, err := h.personUC.ListOwners(c.Request().Context(), c.QueryParam("search"), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, owners)
}

func (h *PersonHandler) GetOwner(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	owner, err := h.personUC.GetOwner(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, owner)
}

func (h *PersonHandler) CreateOwner(c echo.Context) error {
	var input usecase.PersonInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	owner, err := h.personUC.CreateOwner(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, owner)
}

func (h *PersonHandler) UpdateOwner(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.UpdatePersonInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	owner, err := h.personUC.UpdateOwner(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, owner)
}

func (h *PersonHandler) DeleteOwner(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.personUC.DeleteOwner(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

// --- Responsible persons ---

func (h *PersonHandler) ListResponsiblePersons(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	persons, err := h.personUC.ListResponsiblePersons(c.Request().Context(), c.QueryParam("search"), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, persons)
}

func (h *PersonHandler) GetResponsiblePerson(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	person, err := h.personUC.GetResponsiblePerson(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, person)
}

func (h *PersonHandler) CreateResponsiblePerson(c echo.Context) error {
	var input usecase.PersonInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	person, err := h.personUC.CreateResponsiblePerson(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, person)
}

func (h *PersonHandler) UpdateResponsiblePerson(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.UpdatePersonInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	person, err := h.personUC.UpdateResponsiblePerson(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, person)
}

func (h *PersonHandler) DeleteResponsiblePerson(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.personUC.DeleteResponsiblePerson(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}
