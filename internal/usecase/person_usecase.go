package usecase

import (
	"context"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
)

// PersonInput creates an owner or a responsible person.
type PersonInput struct {
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"max=100"`
	Phone        string `json:"phone" validate:"max=50"`
	Email        string `json:"email" validate:"omitempty,email"`
	NationalID   string `json:"national_id" validate:"max=50"`
	Address      string `json:"address" validate:"max=500"`
	Relationship string `json:"relationship" validate:"max=100"` // responsible persons only
}

// UpdatePersonInput changes only the fields that are present.
type UpdatePersonInput struct {
	FirstName    *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName     *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	NationalID   *string `json:"national_id,omitempty" validate:"omitempty,max=50"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Relationship *string `json:"relationship,omitempty" validate:"omitempty,max=100"`
}

// PersonUsecase manages the billing contacts of properties.
type PersonUsecase interface {
	ListOwners(ctx context.Context, search string, page entity.Page) (*entity.PagedResult[entity.Owner], error)
	GetOwner(ctx context.Context, id uuid.UUID) (*entity.Owner, error)
	CreateOwner(ctx context.Context, input *PersonInput) (*entity.Owner, error)
	UpdateOwner(ctx context.Context, id uuid.UUID, input *UpdatePersonInput) (*entity.Owner, error)
	// DeleteOwner fails with PERSON_IN_USE while a property references the owner.
	DeleteOwner(ctx context.Context, id uuid.UUID) error

	ListResponsiblePersons(ctx context.Context, search string, page entity.Page) (*entity.PagedResult[entity.ResponsiblePerson], error)
	GetResponsiblePerson(ctx context.Context, id uuid.UUID) (*entity.ResponsiblePerson, error)
	CreateResponsiblePerson(ctx context.Context, input *PersonInput) (*entity.ResponsiblePerson, error)
	UpdateResponsiblePerson(ctx context.Context, id uuid.UUID, input *UpdatePersonInput) (*entity.ResponsiblePerson, error)
	DeleteResponsiblePerson(ctx context.Context, id uuid.UUID) error
}
