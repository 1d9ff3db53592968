package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb"
)

const dateLayout = "2006-01-02"

// bind decodes the request into input and runs the struct validator.
func bind(c echo.Context, input any) error {
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("request body is malformed")
	}

	return c.Validate(input)
}

func invalidParam(format string, args ...any) error {
	return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf(format, args...))
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, invalidParam("%s must be a UUID", name)
	}

	return id, nil
}

func queryUUID(c echo.Context, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, invalidParam("%s must be a UUID", name)
	}

	return &id, nil
}

func queryBool(c echo.Context, name string) (bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, invalidParam("%s must be true or false", name)
	}

	return v, nil
}

func queryOptionalBool(c echo.Context, name string) (*bool, error) {
	if c.QueryParam(name) == "" {
		return nil, nil
	}
	v, err := queryBool(c, name)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func queryInt(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, invalidParam("%s must be an integer", name)
	}

	return &v, nil
}

// queryTime accepts RFC 3339 timestamps or plain dates (midnight UTC).
func queryTime(c echo.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, invalidParam("%s must be an RFC 3339 time or a YYYY-MM-DD date", name)
	}

	return &t, nil
}

func queryPage(c echo.Context) (entity.Page, error) {
	var page entity.Page
	limit, err := queryInt(c, "limit")
	if err != nil {
		return page, err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return page, err
	}
	if limit != nil {
		page.Limit = *limit
	}
	if offset != nil {
		page.Offset = *offset
	}

	return page.Normalize(), nil
}

// parseBBox reads "minLon,minLat,maxLon,maxLat".
func parseBBox(raw string) (*orb.Bound, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return nil, invalidParam("bbox must be minLon,minLat,maxLon,maxLat")
	}
	values := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, invalidParam("bbox must be minLon,minLat,maxLon,maxLat")
		}
		values[i] = v
	}

	minLon, minLat, maxLon, maxLat := values[0], values[1], values[2], values[3]
	if minLon > maxLon || minLat > maxLat {
		return nil, invalidParam("bbox minimum must not exceed maximum")
	}
	if minLat < -90 || maxLat > 90 || minLon < -180 || maxLon > 180 {
		return nil, invalidParam("bbox is out of range")
	}

	bound := orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}}

	return &bound, nil
}
