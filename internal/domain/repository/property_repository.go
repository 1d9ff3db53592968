package repository

import (
	"context"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrPropertyNotFound is returned when a property is not found.
var ErrPropertyNotFound = errors.New("property not found")

// PropertyStats aggregates the whole registry.
type PropertyStats struct {
	Count           int64
	ByPaymentStatus map[string]int64
	TotalExpected   decimal.Decimal
	TotalPaid       decimal.Decimal
}

// PropertyRepository persists properties.
type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)

	// FindByIDForUpdate retrieves the property and, where the store supports it,
	// locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Property, error)

	FindByPlateNumber(ctx context.Context, plateNumber string) (*entity.Property, error)
	List(ctx context.Context, filter entity.PropertyFilter, page entity.Page) ([]*entity.Property, int64, error)

	// ListAll returns every property matching filter, unpaged.
	ListAll(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, error)

	Create(ctx context.Context, property *entity.Property) error
	Update(ctx context.Context, property *entity.Property) error
	UpdatePhotoKey(ctx context.Context, id uuid.UUID, key string) error

	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	CountByResponsiblePerson(ctx context.Context, personID uuid.UUID) (int64, error)
	Stats(ctx context.Context) (*PropertyStats, error)
}
