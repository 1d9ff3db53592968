package repository

import (
	"context"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for lookup persistence.
var (
	ErrPropertyTypeNotFound = errors.New("property type not found")
	ErrLookupNotFound       = errors.New("lookup not found")
)

// LookupRepository persists property types and the name/description lookup tables.
type LookupRepository interface {
	ListPropertyTypes(ctx context.Context) ([]*entity.PropertyType, error)
	FindPropertyTypeByID(ctx context.Context, id uuid.UUID) (*entity.PropertyType, error)
	CreatePropertyType(ctx context.Context, propertyType *entity.PropertyType) error
	UpdatePropertyType(ctx context.Context, propertyType *entity.PropertyType) error

	List(ctx context.Context, kind entity.LookupKind) ([]*entity.Lookup, error)
	FindByID(ctx context.Context, kind entity.LookupKind, id uuid.UUID) (*entity.Lookup, error)
	// FindByName matches case-insensitively.
	FindByName(ctx context.Context, kind entity.LookupKind, name string) (*entity.Lookup, error)
	Create(ctx context.Context, kind entity.LookupKind, lookup *entity.Lookup) error
	Update(ctx context.Context, kind entity.LookupKind, lookup *entity.Lookup) error
}
