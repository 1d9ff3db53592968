package handler

import (
	"log/slog"
	"net/http"

	"cadastre/internal/delivery/api/response"
	"cadastre/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LocationHandlerParams holds dependencies for LocationHandler, injected by Fx.
type LocationHandlerParams struct {
	fx.In

	LocationUC usecase.LocationUsecase
	Logger     *slog.Logger
}

// LocationHandler serves regions, cities, sections and sub-sections.
type LocationHandler struct {
	locationUC usecase.LocationUsecase
	logger     *slog.Logger
}

// NewLocationHandler is the constructor for LocationHandler.
func NewLocationHandler(params LocationHandlerParams) *LocationHandler {
	return &LocationHandler{
		locationUC: params.LocationUC,
		logger:     params.Logger,
	}
}

// --- Regions ---

func (h *LocationHandler) ListRegions(c echo.Context) error {
	regions, err := h.locationUC.ListRegions(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, regions)
}

func (h *LocationHandler) GetRegion(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	region, err := h.locationUC.GetRegion(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, region)
}

func (h *LocationHandler) CreateRegion(c echo.Context) error {
	var input usecase.RegionInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	region, err := h.locationUC.CreateRegion(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, region)
}

func (h *LocationHandler) UpdateRegion(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.UpdateRegionInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	region, err := h.locationUC.UpdateRegion(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, region)
}

// --- Cities ---

// ListCities supports ?region_id=.
func (h *LocationHandler) ListCities(c echo.Context) error {
	regionID, err := queryUUID(c, "region_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	cities, err := h.locationUC.ListCities(c.Request().Context(), regionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cities)
}

func (h *LocationHandler) GetCity(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	city, err := h.locationUC.GetCity(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, city)
}

func (h *LocationHandler) CreateCity(c echo.Context) error {
	var input usecase.AreaInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	city, err := h.locationUC.CreateCity(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, city)
}

func (h *LocationHandler) UpdateCity(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.UpdateAreaInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	city, err := h.locationUC.UpdateCity(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, city)
}

// --- Sections ---

// ListSections supports ?city_id= and ?include_inactive=true.
func (h *LocationHandler) ListSections(c echo.Context) error {
	cityID, err := queryUUID(c, "city_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	sections, err := h.locationUC.ListSections(c.Request().Context(), cityID, includeInactive)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, sections)
}

func (h *LocationHandler) GetSection(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	section, err := h.locationUC.GetSection(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, section)
}

func (h *LocationHandler) CreateSection(c echo.Context) error {
	var input usecase.AreaInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	section, err := h.locationUC.CreateSection(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, section)
}

func (h *LocationHandler) UpdateSection(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.UpdateAreaInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	section, err := h.locationUC.UpdateSection(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, section)
}

// DeleteSection deactivates the section; the row is kept.
func (h *LocationHandler) DeleteSection(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.locationUC.DeactivateSection(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

// --- Sub-sections ---

// ListSubSections supports ?section_id= and ?include_inactive=true.
func (h *LocationHandler) ListSubSections(c echo.Context) error {
	sectionID, err := queryUUID(c, "section_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	subSections, err := h.locationUC.ListSubSections(c.Request().Context(), sectionID, includeInactive)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, subSections)
}

func (h *LocationHandler) GetSubSection(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	subSection, err := h.locationUC.GetSubSection(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, subSection)
}

func (h *LocationHandler) CreateSubSection(c echo.Context) error {
	var input usecase.AreaInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	subSection, err := h.locationUC.CreateSubSection(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, subSection)
}

func (h *LocationHandler) UpdateSubSection(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.UpdateAreaInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	subSection, err := h.locationUC.UpdateSubSection(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, subSection)
}

func (h *LocationHandler) DeleteSubSection(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.locationUC.DeactivateSubSection(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}
