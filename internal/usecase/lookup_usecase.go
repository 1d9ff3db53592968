package usecase

import (
	"context"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyTypeInput represents the input for creating a property type.
type PropertyTypeInput struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Price       decimal.Decimal `json:"price"`
}

// UpdatePropertyTypeInput changes only the fields that are present.
type UpdatePropertyTypeInput struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// LookupUsecase manages property types and the status / method lookup tables.
type LookupUsecase interface {
	ListPropertyTypes(ctx context.Context) ([]*entity.PropertyType, error)
	GetPropertyType(ctx context.Context, id uuid.UUID) (*entity.PropertyType, error)
	CreatePropertyType(ctx context.Context, input *PropertyTypeInput) (*entity.PropertyType, error)
	UpdatePropertyType(ctx context.Context, id uuid.UUID, input *UpdatePropertyTypeInput) (*entity.PropertyType, error)

	ListLookups(ctx context.Context, kind entity.LookupKind) ([]*entity.Lookup, error)
	GetLookup(ctx context.Context, kind entity.LookupKind, id uuid.UUID) (*entity.Lookup, error)
	CreateLookup(ctx context.Context, kind entity.LookupKind, input *NamedInput) (*entity.Lookup, error)
	UpdateLookup(ctx context.Context, kind entity.LookupKind, id uuid.UUID, input *UpdateNamedInput) (*entity.Lookup, error)
}
