package repository

import (
	"context"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for owner and responsible person persistence.
var (
	ErrOwnerNotFound             = errors.New("owner not found")
	ErrResponsiblePersonNotFound = errors.New("responsible person not found")
)

// OwnerRepository persists property owners.
type OwnerRepository interface {
	// FindByID retrieves an owner together with the ids of their properties.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Owner, error)
	// List matches search against names, phone and national id.
	List(ctx context.Context, search string, page entity.Page) ([]*entity.Owner, int64, error)
	Create(ctx context.Context, owner *entity.Owner) error
	Update(ctx context.Context, owner *entity.Owner) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ResponsiblePersonRepository persists responsible persons.
type ResponsiblePersonRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ResponsiblePerson, error)
	List(ctx context.Context, search string, page entity.Page) ([]*entity.ResponsiblePerson, int64, error)
	Create(ctx context.Context, person *entity.ResponsiblePerson) error
	Update(ctx context.Context, person *entity.ResponsiblePerson) error
	Delete(ctx context.Context, id uuid.UUID) error
}
