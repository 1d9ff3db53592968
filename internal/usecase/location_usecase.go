package usecase

import (
	"context"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
)

// RegionInput represents the input for creating a region.
type RegionInput struct {
	Name string `json:"name" validate:"required,max=100"`
	Code string `json:"code" validate:"max=20"`
}

// UpdateRegionInput represents the input for updating a region.
type UpdateRegionInput struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Code *string `json:"code,omitempty" validate:"omitempty,max=20"`
}

// AreaInput creates a city, section or sub-section under ParentID.
type AreaInput struct {
	Name     string    `json:"name" validate:"required,max=100"`
	ParentID uuid.UUID `json:"parent_id" validate:"required"`
}

// UpdateAreaInput moves or renames a city, section or sub-section.
type UpdateAreaInput struct {
	Name     *string    `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}

// LocationUsecase defines the interface for the administrative hierarchy.
type LocationUsecase interface {
	ListRegions(ctx context.Context) ([]*entity.Region, error)
	GetRegion(ctx context.Context, id uuid.UUID) (*entity.Region, error)
	CreateRegion(ctx context.Context, input *RegionInput) (*entity.Region, error)
	UpdateRegion(ctx context.Context, id uuid.UUID, input *UpdateRegionInput) (*entity.Region, error)

	ListCities(ctx context.Context, regionID *uuid.UUID) ([]*entity.City, error)
	GetCity(ctx context.Context, id uuid.UUID) (*entity.City, error)
	CreateCity(ctx context.Context, input *AreaInput) (*entity.City, error)
	UpdateCity(ctx context.Context, id uuid.UUID, input *UpdateAreaInput) (*entity.City, error)

	ListSections(ctx context.Context, cityID *uuid.UUID, includeInactive bool) ([]*entity.Section, error)
	GetSection(ctx context.Context, id uuid.UUID) (*entity.Section, error)
	CreateSection(ctx context.Context, input *AreaInput) (*entity.Section, error)
	UpdateSection(ctx context.Context, id uuid.UUID, input *UpdateAreaInput) (*entity.Section, error)
	// DeactivateSection is the soft delete of a section.
	DeactivateSection(ctx context.Context, id uuid.UUID) error

	ListSubSections(ctx context.Context, sectionID *uuid.UUID, includeInactive bool) ([]*entity.SubSection, error)
	GetSubSection(ctx context.Context, id uuid.UUID) (*entity.SubSection, error)
	CreateSubSection(ctx context.Context, input *AreaInput) (*entity.SubSection, error)
	UpdateSubSection(ctx context.Context, id uuid.UUID, input *UpdateAreaInput) (*entity.SubSection, error)
	DeactivateSubSection(ctx context.Context, id uuid.UUID) error
}
