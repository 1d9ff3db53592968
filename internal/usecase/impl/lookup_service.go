package impl

import (
	"context"
	"log/slog"

	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type lookupService struct {
	txManager  repository.TransactionManager
	lookupRepo repository.LookupRepository
	logger     *slog.Logger
}

// LookupServiceParams holds dependencies for LookupService, injected by Fx.
type LookupServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	LookupRepo repository.LookupRepository
	Logger     *slog.Logger
}

// NewLookupService creates the service behind property types, property statuses,
// payment methods and payment statuses.
func NewLookupService(params LookupServiceParams) usecase.LookupUsecase {
	return &lookupService{
		txManager:  params.TxManager,
		lookupRepo: params.LookupRepo,
		logger:     params.Logger,
	}
}

func (srv *lookupService) ListPropertyTypes(ctx context.Context) ([]*entity.PropertyType, error) {
	types, err := srv.lookupRepo.ListPropertyTypes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list property types")
	}

	return types, nil
}

func (srv *lookupService) GetPropertyType(ctx context.Context, id uuid.UUID) (*entity.PropertyType, error) {
	propertyType, err := srv.lookupRepo.FindPropertyTypeByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrPropertyTypeNotFound, domainerrors.ErrPropertyTypeNotFound, "")
	}

	return propertyType, nil
}

func (srv *lookupService) CreatePropertyType(ctx context.Context, input *usecase.PropertyTypeInput) (*entity.PropertyType, error) {
	name, err := requireName(input.Name, "name")
	if err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, domainerrors.ErrInvalidAmount.WithDetails("price must not be negative")
	}

	propertyType := &entity.PropertyType{Name: name, Description: input.Description, Price: input.Price.Round(2)}
	if err := srv.lookupRepo.CreatePropertyType(ctx, propertyType); err != nil {
		return nil, errors.Wrap(err, "failed to create property type")
	}

	return propertyType, nil
}

// UpdatePropertyType changes the type. A new price applies to yearly payments
// created afterwards; existing payments keep their amount.
func (srv *lookupService) UpdatePropertyType(ctx context.Context, id uuid.UUID, input *usecase.UpdatePropertyTypeInput) (*entity.PropertyType, error) {
	if input.Price != nil && input.Price.IsNegative() {
		return nil, domainerrors.ErrInvalidAmount.WithDetails("price must not be negative")
	}

	var propertyType *entity.PropertyType
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		lookupRepo := repoFactory.NewLookupRepository()

		var err error
		propertyType, err = lookupRepo.FindPropertyTypeByID(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrPropertyTypeNotFound, domainerrors.ErrPropertyTypeNotFound, "")
		}
		setString(&propertyType.Name, input.Name)
		setString(&propertyType.Description, input.Description)
		if propertyType.Name == "" {
			return validationError("name is required")
		}
		if input.Price != nil {
			propertyType.Price = input.Price.Round(2)
		}

		return lookupRepo.UpdatePropertyType(ctx, propertyType)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update property type")
	}

	return propertyType, nil
}

func (srv *lookupService) ListLookups(ctx context.Context, kind entity.LookupKind) ([]*entity.Lookup, error) {
	if !kind.IsValid() {
		return nil, validationError("unknown lookup kind: " + string(kind))
	}

	lookups, err := srv.lookupRepo.List(ctx, kind)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", kind)
	}

	return lookups, nil
}

func (srv *lookupService) GetLookup(ctx context.Context, kind entity.LookupKind, id uuid.UUID) (*entity.Lookup, error) {
	if !kind.IsValid() {
		return nil, validationError("unknown lookup kind: " + string(kind))
	}

	lookup, err := srv.lookupRepo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrLookupNotFound, domainerrors.ErrLookupNotFound, string(kind)+" not found")
	}

	return lookup, nil
}

func (srv *lookupService) CreateLookup(ctx context.Context, kind entity.LookupKind, input *usecase.NamedInput) (*entity.Lookup, error) {
	if !kind.IsValid() {
		return nil, validationError("unknown lookup kind: " + string(kind))
	}
	name, err := requireName(input.Name, "name")
	if err != nil {
		return nil, err
	}

	lookup := &entity.Lookup{Name: name, Description: input.Description}
	if err := srv.lookupRepo.Create(ctx, kind, lookup); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", kind)
	}

	return lookup, nil
}

func (srv *lookupService) UpdateLookup(ctx context.Context, kind entity.LookupKind, id uuid.UUID, input *usecase.UpdateNamedInput) (*entity.Lookup, error) {
	if !kind.IsValid() {
		return nil, validationError("unknown lookup kind: " + string(kind))
	}

	var lookup *entity.Lookup
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		lookupRepo := repoFactory.NewLookupRepository()

		var err error
		lookup, err = lookupRepo.FindByID(ctx, kind, id)
		if err != nil {
			return mapNotFound(err, repository.ErrLookupNotFound, domainerrors.ErrLookupNotFound, string(kind)+" not found")
		}
		setString(&lookup.Name, input.Name)
		setString(&lookup.Description, input.Description)
		if lookup.Name == "" {
			return validationError("name is required")
		}

		return lookupRepo.Update(ctx, kind, lookup)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update %s", kind)
	}

	return lookup, nil
}
