package repository

import (
	"context"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for location persistence.
var (
	ErrRegionNotFound     = errors.New("region not found")
	ErrCityNotFound       = errors.New("city not found")
	ErrSectionNotFound    = errors.New("section not found")
	ErrSubSectionNotFound = errors.New("sub-section not found")
)

// LocationRepository persists the administrative hierarchy region > city > section > sub-section.
type LocationRepository interface {
	ListRegions(ctx context.Context) ([]*entity.Region, error)
	FindRegionByID(ctx context.Context, id uuid.UUID) (*entity.Region, error)
	CreateRegion(ctx context.Context, region *entity.Region) error
	UpdateRegion(ctx context.Context, region *entity.Region) error

	// ListCities returns all cities, or only those of regionID when it is set.
	ListCities(ctx context.Context, regionID *uuid.UUID) ([]*entity.City, error)
	FindCityByID(ctx context.Context, id uuid.UUID) (*entity.City, error)
	CreateCity(ctx context.Context, city *entity.City) error
	UpdateCity(ctx context.Context, city *entity.City) error

	ListSections(ctx context.Context, cityID *uuid.UUID, includeInactive bool) ([]*entity.Section, error)
	FindSectionByID(ctx context.Context, id uuid.UUID) (*entity.Section, error)
	CreateSection(ctx context.Context, section *entity.Section) error
	UpdateSection(ctx context.Context, section *entity.Section) error

	ListSubSections(ctx context.Context, sectionID *uuid.UUID, includeInactive bool) ([]*entity.SubSection, error)
	FindSubSectionByID(ctx context.Context, id uuid.UUID) (*entity.SubSection, error)
	CreateSubSection(ctx context.Context, subSection *entity.SubSection) error
	UpdateSubSection(ctx context.Context, subSection *entity.SubSection) error
}
