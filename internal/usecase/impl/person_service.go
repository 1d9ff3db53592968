package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "cadastre/internal/delivery/context"
	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// personService manages owners and responsible persons, the billing contacts of properties.
type personService struct {
	txManager             repository.TransactionManager
	ownerRepo             repository.OwnerRepository
	responsiblePersonRepo repository.ResponsiblePersonRepository
	logger                *slog.Logger
}

// PersonServiceParams holds dependencies for PersonService, injected by Fx.
type PersonServiceParams struct {
	fx.In

	TxManager             repository.TransactionManager
	OwnerRepo             repository.OwnerRepository
	ResponsiblePersonRepo repository.ResponsiblePersonRepository
	Logger                *slog.Logger
}

// NewPersonService creates a new person service instance
func NewPersonService(params PersonServiceParams) usecase.PersonUsecase {
	return &personService{
		txManager:             params.TxManager,
		ownerRepo:             params.OwnerRepo,
		responsiblePersonRepo: params.ResponsiblePersonRepo,
		logger:                params.Logger,
	}
}

func (srv *personService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

// newPerson builds the shared contact data, requiring a first name.
func newPerson(input *usecase.PersonInput) (entity.Person, error) {
	firstName, err := requireName(input.FirstName, "first_name")
	if err != nil {
		return entity.Person{}, err
	}

	return entity.Person{
		FirstName:  firstName,
		LastName:   strings.TrimSpace(input.LastName),
		Phone:      strings.TrimSpace(input.Phone),
		Email:      strings.ToLower(strings.TrimSpace(input.Email)),
		NationalID: strings.TrimSpace(input.NationalID),
		Address:    strings.TrimSpace(input.Address),
	}, nil
}

func applyPersonUpdate(person *entity.Person, input *usecase.UpdatePersonInput) error {
	setString(&person.FirstName, input.FirstName)
	setString(&person.LastName, input.LastName)
	setString(&person.Phone, input.Phone)
	setString(&person.Email, input.Email)
	setString(&person.NationalID, input.NationalID)
	setString(&person.Address, input.Address)
	person.Email = strings.ToLower(person.Email)
	if person.FirstName == "" {
		return validationError("first_name is required")
	}

	return nil
}

// --- Owners ---

func (srv *personService) ListOwners(ctx context.Context, search string, page entity.Page) (*entity.PagedResult[entity.Owner], error) {
	page = page.Normalize()
	owners, total, err := srv.ownerRepo.List(ctx, strings.TrimSpace(search), page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list owners")
	}

	return &entity.PagedResult[entity.Owner]{Items: owners, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

func (srv *personService) GetOwner(ctx context.Context, id uuid.UUID) (*entity.Owner, error) {
	owner, err := srv.ownerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrOwnerNotFound, domainerrors.ErrPersonNotFound, "owner not found")
	}

	return owner, nil
}

func (srv *personService) CreateOwner(ctx context.Context, input *usecase.PersonInput) (*entity.Owner, error) {
	person, err := newPerson(input)
	if err != nil {
		return nil, err
	}

	owner := &entity.Owner{Person: person}
	if err := srv.ownerRepo.Create(ctx, owner); err != nil {
		return nil, errors.Wrap(err, "failed to create owner")
	}

	return owner, nil
}

func (srv *personService) UpdateOwner(ctx context.Context, id uuid.UUID, input *usecase.UpdatePersonInput) (*entity.Owner, error) {
	var owner *entity.Owner
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ownerRepo := repoFactory.NewOwnerRepository()

		var err error
		owner, err = ownerRepo.FindByID(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrOwnerNotFound, domainerrors.ErrPersonNotFound, "owner not found")
		}
		if err := applyPersonUpdate(&owner.Person, input); err != nil {
			return err
		}

		return ownerRepo.Update(ctx, owner)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update owner")
	}

	return owner, nil
}

// DeleteOwner refuses while any property still references the owner.
func (srv *personService) DeleteOwner(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ownerRepo := repoFactory.NewOwnerRepository()
		if _, err := ownerRepo.FindByID(ctx, id); err != nil {
			return mapNotFound(err, repository.ErrOwnerNotFound, domainerrors.ErrPersonNotFound, "owner not found")
		}

		count, err := repoFactory.NewPropertyRepository().CountByOwner(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domainerrors.ErrPersonInUse
		}

		return ownerRepo.Delete(ctx, id)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete owner")
	}

	srv.log(ctx).Info("Owner deleted", slog.Any("ownerID", id))

	return nil
}

// --- Responsible persons ---

func (srv *personService) ListResponsiblePersons(ctx context.Context, search string, page entity.Page) (*entity.PagedResult[entity.ResponsiblePerson], error) {
	page = page.Normalize()
	persons, total, err := srv.responsiblePersonRepo.List(ctx, strings.TrimSpace(search), page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list responsible persons")
	}

	return &entity.PagedResult[entity.ResponsiblePerson]{Items: persons, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

func (srv *personService) GetResponsiblePerson(ctx context.Context, id uuid.UUID) (*entity.ResponsiblePerson, error) {
	person, err := srv.responsiblePersonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrResponsiblePersonNotFound, domainerrors.ErrPersonNotFound, "responsible person not found")
	}

	return person, nil
}

func (srv *personService) CreateResponsiblePerson(ctx context.Context, input *usecase.PersonInput) (*entity.ResponsiblePerson, error) {
	person, err := newPerson(input)
	if err != nil {
		return nil, err
	}

	responsible := &entity.ResponsiblePerson{Person: person, Relationship: strings.TrimSpace(input.Relationship)}
	if err := srv.responsiblePersonRepo.Create(ctx, responsible); err != nil {
		return nil, errors.Wrap(err, "failed to create responsible person")
	}

	return responsible, nil
}

func (srv *personService) UpdateResponsiblePerson(ctx context.Context, id uuid.UUID, input *usecase.UpdatePersonInput) (*entity.ResponsiblePerson, error) {
	var person *entity.ResponsiblePerson
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		personRepo := repoFactory.NewResponsiblePersonRepository()

		var err error
		person, err = personRepo.FindByID(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrResponsiblePersonNotFound, domainerrors.ErrPersonNotFound, "responsible person not found")
		}
		if err := applyPersonUpdate(&person.Person, input); err != nil {
			return err
		}
		setString(&person.Relationship, input.Relationship)

		return personRepo.Update(ctx, person)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update responsible person")
	}

	return person, nil
}

func (srv *personService) DeleteResponsiblePerson(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		personRepo := repoFactory.NewResponsiblePersonRepository()
		if _, err := personRepo.FindByID(ctx, id); err != nil {
			return mapNotFound(err, repository.ErrResponsiblePersonNotFound, domainerrors.ErrPersonNotFound, "responsible person not found")
		}

		count, err := repoFactory.NewPropertyRepository().CountByResponsiblePerson(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domainerrors.ErrPersonInUse
		}

		return personRepo.Delete(ctx, id)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete responsible person")
	}

	srv.log(ctx).Info("Responsible person deleted", slog.Any("personID", id))

	return nil
}
