package postgres

import (
	"context"

	"cadastre/internal/domain/entity"
	"cadastre/internal/domain/repository"
	"cadastre/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// lookupRepository implements the repository.LookupRepository interface.
type lookupRepository struct {
	db *gorm.DB
}

// NewLookupRepository is the constructor for lookupRepository.
func NewLookupRepository(db *gorm.DB) repository.LookupRepository {
	return &lookupRepository{
		db: db,
	}
}

func (repo *lookupRepository) ListPropertyTypes(ctx context.Context) ([]*entity.PropertyType, error) {
	var typeModels []*model.PropertyTypeModel

	if err := repo.db.WithContext(ctx).Order("name").Find(&typeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list property types")
	}

	types := make([]*entity.PropertyType, 0, len(typeModels))
	for _, typeM := range typeModels {
		types = append(types, toPropertyTypeDomain(typeM))
	}

	return types, nil
}

func (repo *lookupRepository) FindPropertyTypeByID(ctx context.Context, id uuid.UUID) (*entity.PropertyType, error) {
	var typeM model.PropertyTypeModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&typeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPropertyTypeNotFound
		}

		return nil, errors.Wrap(err, "failed to find property type by id")
	}

	return toPropertyTypeDomain(&typeM), nil
}

func (repo *lookupRepository) CreatePropertyType(ctx context.Context, propertyType *entity.PropertyType) error {
	typeM := &model.PropertyTypeModel{
		Name:        propertyType.Name,
		Description: propertyType.Description,
		Price:       propertyType.Price,
	}

	if err := repo.db.WithContext(ctx).Create(typeM).Error; err != nil {
		return lookupWriteError(err, "failed to create property type")
	}

	propertyType.Base = baseDomain(typeM.Base)

	return nil
}

func (repo *lookupRepository) UpdatePropertyType(ctx context.Context, propertyType *entity.PropertyType) error {
	typeM := &model.PropertyTypeModel{
		Base:        model.Base{ID: propertyType.ID},
		Name:        propertyType.Name,
		Description: propertyType.Description,
		Price:       propertyType.Price,
	}

	result := repo.db.WithContext(ctx).Model(typeM).Select("name", "description", "price").Updates(typeM)
	if err := updateResult(result, repository.ErrPropertyTypeNotFound, "failed to update property type"); err != nil {
		return err
	}
	propertyType.UpdatedAt = typeM.UpdatedAt

	return nil
}

func (repo *lookupRepository) List(ctx context.Context, kind entity.LookupKind) ([]*entity.Lookup, error) {
	table, err := lookupTable(kind)
	if err != nil {
		return nil, err
	}

	var lookupModels []*model.LookupModel
	if err := repo.db.WithContext(ctx).Table(table).Order("name").Find(&lookupModels).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", table)
	}

	lookups := make([]*entity.Lookup, 0, len(lookupModels))
	for _, lookupM := range lookupModels {
		lookups = append(lookups, toLookupDomain(lookupM))
	}

	return lookups, nil
}

func (repo *lookupRepository) FindByID(ctx context.Context, kind entity.LookupKind, id uuid.UUID) (*entity.Lookup, error) {
	return repo.findOne(ctx, kind, "id = ?", id)
}

func (repo *lookupRepository) FindByName(ctx context.Context, kind entity.LookupKind, name string) (*entity.Lookup, error) {
	return repo.findOne(ctx, kind, "LOWER(name) = LOWER(?)", name)
}

func (repo *lookupRepository) Create(ctx context.Context, kind entity.LookupKind, lookup *entity.Lookup) error {
	table, err := lookupTable(kind)
	if err != nil {
		return err
	}

	lookupM := &model.LookupModel{Name: lookup.Name, Description: lookup.Description}
	if err := repo.db.WithContext(ctx).Table(table).Create(lookupM).Error; err != nil {
		return lookupWriteError(err, "failed to create "+string(kind))
	}

	lookup.Base = baseDomain(lookupM.Base)

	return nil
}

func (repo *lookupRepository) Update(ctx context.Context, kind entity.LookupKind, lookup *entity.Lookup) error {
	table, err := lookupTable(kind)
	if err != nil {
		return err
	}

	lookupM := &model.LookupModel{Base: model.Base{ID: lookup.ID}, Name: lookup.Name, Description: lookup.Description}
	result := repo.db.WithContext(ctx).Table(table).Model(lookupM).Select("name", "description").Updates(lookupM)
	if err := updateResult(result, repository.ErrLookupNotFound, "failed to update "+string(kind)); err != nil {
		return err
	}
	lookup.UpdatedAt = lookupM.UpdatedAt

	return nil
}

func (repo *lookupRepository) findOne(ctx context.Context, kind entity.LookupKind, where string, arg any) (*entity.Lookup, error) {
	table, err := lookupTable(kind)
	if err != nil {
		return nil, err
	}

	var lookupM model.LookupModel
	if err := repo.db.WithContext(ctx).Table(table).Where(where, arg).First(&lookupM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLookupNotFound
		}

		return nil, errors.Wrapf(err, "failed to find %s", kind)
	}

	return toLookupDomain(&lookupM), nil
}

func lookupTable(kind entity.LookupKind) (string, error) {
	switch kind {
	case entity.LookupPropertyStatus:
		return model.PropertyStatusModel{}.TableName(), nil
	case entity.LookupPaymentMethod:
		return model.PaymentMethodModel{}.TableName(), nil
	case entity.LookupPaymentStatus:
		return model.PaymentStatusModel{}.TableName(), nil
	default:
		return "", errors.Errorf("unknown lookup kind %q", kind)
	}
}

// --- Mapper Functions ---

func toPropertyTypeDomain(data *model.PropertyTypeModel) *entity.PropertyType {
	return &entity.PropertyType{
		Base:        baseDomain(data.Base),
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
	}
}

func toLookupDomain(data *model.LookupModel) *entity.Lookup {
	return &entity.Lookup{
		Base:        baseDomain(data.Base),
		Name:        data.Name,
		Description: data.Description,
	}
}
