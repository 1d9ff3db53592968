package postgres

import (
	"context"

	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var personColumns = []string{"first_name", "last_name", "phone", "email", "national_id", "address"}

// ownerRepository implements the repository.OwnerRepository interface.
type ownerRepository struct {
	db *gorm.DB
}

// NewOwnerRepository is the constructor for ownerRepository.
func NewOwnerRepository(db *gorm.DB) repository.OwnerRepository {
	return &ownerRepository{
		db: db,
	}
}

func (repo *ownerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Owner, error) {
	var ownerM model.OwnerModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&ownerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOwnerNotFound
		}

		return nil, errors.Wrap(err, "failed to find owner by id")
	}

	propertyIDs, err := linkedPropertyIDs(ctx, repo.db, "owner_id", id)
	if err != nil {
		return nil, err
	}

	owner := toOwnerDomain(&ownerM)
	owner.PropertyIDs = propertyIDs

	return owner, nil
}

func (repo *ownerRepository) List(ctx context.Context, search string, page entity.Page) ([]*entity.Owner, int64, error) {
	query := searchPersons(repo.db.WithContext(ctx).Model(&model.OwnerModel{}), search)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count owners")
	}

	var ownerModels []*model.OwnerModel
	if err := paginate(query, page).Order("last_name, first_name").Find(&ownerModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list owners")
	}

	owners := make([]*entity.Owner, 0, len(ownerModels))
	for _, ownerM := range ownerModels {
		owners = append(owners, toOwnerDomain(ownerM))
	}

	return owners, total, nil
}

func (repo *ownerRepository) Create(ctx context.Context, owner *entity.Owner) error {
	ownerM := &model.OwnerModel{PersonModel: fromPersonDomain(&owner.Person)}

	if err := repo.db.WithContext(ctx).Create(ownerM).Error; err != nil {
		return personWriteError(err, "failed to create owner")
	}

	owner.Base = baseDomain(ownerM.Base)

	return nil
}

func (repo *ownerRepository) Update(ctx context.Context, owner *entity.Owner) error {
	ownerM := &model.OwnerModel{PersonModel: fromPersonDomain(&owner.Person)}

	result := repo.db.WithContext(ctx).Model(ownerM).Select(personColumns).Updates(ownerM)
	if result.Error != nil {
		return personWriteError(result.Error, "failed to update owner")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOwnerNotFound
	}
	owner.UpdatedAt = ownerM.UpdatedAt

	return nil
}

func (repo *ownerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.OwnerModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrPersonInUse
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete owner")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOwnerNotFound
	}

	return nil
}

// responsiblePersonRepository implements the repository.ResponsiblePersonRepository interface.
type responsiblePersonRepository struct {
	db *gorm.DB
}

// NewResponsiblePersonRepository is the constructor for responsiblePersonRepository.
func NewResponsiblePersonRepository(db *gorm.DB) repository.ResponsiblePersonRepository {
	return &responsiblePersonRepository{
		db: db,
	}
}

func (repo *responsiblePersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ResponsiblePerson, error) {
	var personM model.ResponsiblePersonModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&personM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrResponsiblePersonNotFound
		}

		return nil, errors.Wrap(err, "failed to find responsible person by id")
	}

	propertyIDs, err := linkedPropertyIDs(ctx, repo.db, "responsible_person_id", id)
	if err != nil {
		return nil, err
	}

	person := toResponsiblePersonDomain(&personM)
	person.PropertyIDs = propertyIDs

	return person, nil
}

func (repo *responsiblePersonRepository) List(ctx context.Context, search string, page entity.Page) ([]*entity.ResponsiblePerson, int64, error) {
	query := searchPersons(repo.db.WithContext(ctx).Model(&model.ResponsiblePersonModel{}), search)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count responsible persons")
	}

	var personModels []*model.ResponsiblePersonModel
	if err := paginate(query, page).Order("last_name, first_name").Find(&personModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list responsible persons")
	}

	persons := make([]*entity.ResponsiblePerson, 0, len(personModels))
	for _, personM := range personModels {
		persons = append(persons, toResponsiblePersonDomain(personM))
	}

	return persons, total, nil
}

func (repo *responsiblePersonRepository) Create(ctx context.Context, person *entity.ResponsiblePerson) error {
	personM := &model.ResponsiblePersonModel{PersonModel: fromPersonDomain(&person.Person), Relationship: person.Relationship}

	if err := repo.db.WithContext(ctx).Create(personM).Error; err != nil {
		return personWriteError(err, "failed to create responsible person")
	}

	person.Base = baseDomain(personM.Base)

	return nil
}

func (repo *responsiblePersonRepository) Update(ctx context.Context, person *entity.ResponsiblePerson) error {
	personM := &model.ResponsiblePersonModel{PersonModel: fromPersonDomain(&person.Person), Relationship: person.Relationship}

	result := repo.db.WithContext(ctx).
		Model(personM).
		Select(append([]string{"relationship"}, personColumns...)).
		Updates(personM)
	if result.Error != nil {
		return personWriteError(result.Error, "failed to update responsible person")
	}
	if result.RowsAffected == 0 {
		return repository.ErrResponsiblePersonNotFound
	}
	person.UpdatedAt = personM.UpdatedAt

	return nil
}

func (repo *responsiblePersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ResponsiblePersonModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrPersonInUse
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete responsible person")
	}
	if result.RowsAffected == 0 {
		return repository.ErrResponsiblePersonNotFound
	}

	return nil
}

func searchPersons(query *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return query
	}
	pattern := likePattern(search)

	return query.Where(
		"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(national_id) LIKE ?",
		pattern, pattern, pattern, pattern,
	)
}

func linkedPropertyIDs(ctx context.Context, db *gorm.DB, column string, personID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	if err := db.WithContext(ctx).
		Model(&model.PropertyModel{}).
		Where(column+" = ?", personID).
		Order("plate_number").
		Pluck("id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load linked properties")
	}

	return ids, nil
}

func personWriteError(err error, details string) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrPersonAlreadyExists.WrapMessage(details)
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// --- Mapper Functions ---

func toPersonDomain(data *model.PersonModel) entity.Person {
	person := entity.Person{
		Base:      baseDomain(data.Base),
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Phone:     data.Phone,
		Email:     data.Email,
		Address:   data.Address,
	}
	if data.NationalID != nil {
		person.NationalID = *data.NationalID
	}

	return person
}

func fromPersonDomain(data *entity.Person) model.PersonModel {
	personM := model.PersonModel{
		Base:      model.Base{ID: data.ID, CreatedAt: data.CreatedAt, UpdatedAt: data.UpdatedAt},
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Phone:     data.Phone,
		Email:     data.Email,
		Address:   data.Address,
	}
	if data.NationalID != "" {
		nationalID := data.NationalID
		personM.NationalID = &nationalID
	}

	return personM
}

func toOwnerDomain(data *model.OwnerModel) *entity.Owner {
	return &entity.Owner{Person: toPersonDomain(&data.PersonModel)}
}

func toResponsiblePersonDomain(data *model.ResponsiblePersonModel) *entity.ResponsiblePerson {
	return &entity.ResponsiblePerson{
		Person:       toPersonDomain(&data.PersonModel),
		Relationship: data.Relationship,
	}
}
