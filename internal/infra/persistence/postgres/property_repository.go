package postgres

import (
	"context"

	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// propertyRepository implements the repository.PropertyRepository interface.
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository is the constructor for propertyRepository.
func NewPropertyRepository(db *gorm.DB) repository.PropertyRepository {
	return &propertyRepository{
		db: db,
	}
}

// FindByID retrieves a property by its unique ID.
func (repo *propertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	return repo.findOne(repo.db.WithContext(ctx), "id = ?", id)
}

// FindByIDForUpdate retrieves the property holding a row lock on PostgreSQL.
func (repo *propertyRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	return repo.findOne(forUpdate(repo.db.WithContext(ctx)), "id = ?", id)
}

// FindByPlateNumber retrieves a property by its plate number.
func (repo *propertyRepository) FindByPlateNumber(ctx context.Context, plateNumber string) (*entity.Property, error) {
	return repo.findOne(repo.db.WithContext(ctx), "plate_number = ?", plateNumber)
}

func (repo *propertyRepository) findOne(db *gorm.DB, where string, arg any) (*entity.Property, error) {
	var propertyM model.PropertyModel

	if err := db.Where(where, arg).First(&propertyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPropertyNotFound
		}

		return nil, errors.Wrap(err, "failed to find property")
	}

	return toPropertyDomain(&propertyM), nil
}

// List returns a page of properties matching filter, newest first.
func (repo *propertyRepository) List(ctx context.Context, filter entity.PropertyFilter, page entity.Page) ([]*entity.Property, int64, error) {
	query := applyPropertyFilter(repo.db.WithContext(ctx).Model(&model.PropertyModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count properties")
	}

	var propertyModels []*model.PropertyModel
	if err := paginate(query, page).Order("created_at DESC").Find(&propertyModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list properties")
	}

	return toPropertyDomains(propertyModels), total, nil
}

// ListAll returns every property matching filter.
func (repo *propertyRepository) ListAll(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, error) {
	var propertyModels []*model.PropertyModel

	if err := applyPropertyFilter(repo.db.WithContext(ctx).Model(&model.PropertyModel{}), filter).
		Order("plate_number").
		Find(&propertyModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list properties")
	}

	return toPropertyDomains(propertyModels), nil
}

// Create persists a new property.
func (repo *propertyRepository) Create(ctx context.Context, property *entity.Property) error {
	propertyM := fromPropertyDomain(property)

	if err := repo.db.WithContext(ctx).Create(propertyM).Error; err != nil {
		return propertyWriteError(err, "failed to create property")
	}

	property.Base = baseDomain(propertyM.Base)

	return nil
}

// Update writes every mutable column of the property. Callers that touch the
// payment columns must have read the row with FindByIDForUpdate.
func (repo *propertyRepository) Update(ctx context.Context, property *entity.Property) error {
	propertyM := fromPropertyDomain(property)

	result := repo.db.WithContext(ctx).
		Model(propertyM).
		Select("*").
		Omit("id", "created_at").
		Updates(propertyM)
	if result.Error != nil {
		return propertyWriteError(result.Error, "failed to update property")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPropertyNotFound
	}
	property.UpdatedAt = propertyM.UpdatedAt

	return nil
}

// UpdatePhotoKey writes only the photo key, leaving the payment columns to
// the writers that hold the row lock.
func (repo *propertyRepository) UpdatePhotoKey(ctx context.Context, id uuid.UUID, key string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PropertyModel{}).
		Where("id = ?", id).
		Update("photo_key", key)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update property photo key")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPropertyNotFound
	}

	return nil
}

func (repo *propertyRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return repo.countWhere(ctx, "owner_id = ?", ownerID)
}

func (repo *propertyRepository) CountByResponsiblePerson(ctx context.Context, personID uuid.UUID) (int64, error) {
	return repo.countWhere(ctx, "responsible_person_id = ?", personID)
}

func (repo *propertyRepository) countWhere(ctx context.Context, where string, arg any) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.PropertyModel{}).
		Where(where, arg).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count properties")
	}

	return count, nil
}

// Stats aggregates counts and amounts over the whole registry.
func (repo *propertyRepository) Stats(ctx context.Context) (*repository.PropertyStats, error) {
	db := repo.db.WithContext(ctx)

	var groups []struct {
		PaymentStatus string
		Count         int64
	}
	if err := db.Model(&model.PropertyModel{}).
		Select("payment_status, COUNT(*) AS count").
		Group("payment_status").
		Scan(&groups).Error; err != nil {
		return nil, errors.Wrap(err, "failed to group properties by payment status")
	}

	var totals struct {
		TotalExpected decimal.Decimal
		TotalPaid     decimal.Decimal
	}
	if err := db.Table("properties").
		Select("COALESCE(SUM(property_types.price * properties.area_size), 0) AS total_expected, " +
			"COALESCE(SUM(properties.paid_amount), 0) AS total_paid").
		Joins("JOIN property_types ON property_types.id = properties.property_type_id").
		Scan(&totals).Error; err != nil {
		return nil, errors.Wrap(err, "failed to total property amounts")
	}

	stats := &repository.PropertyStats{
		ByPaymentStatus: make(map[string]int64, len(groups)),
		TotalExpected:   totals.TotalExpected.Round(2),
		TotalPaid:       totals.TotalPaid.Round(2),
	}
	for _, g := range groups {
		stats.ByPaymentStatus[g.PaymentStatus] = g.Count
		stats.Count += g.Count
	}

	return stats, nil
}

func applyPropertyFilter(query *gorm.DB, filter entity.PropertyFilter) *gorm.DB {
	if filter.StatusID != nil {
		query = query.Where("status_id = ?", *filter.StatusID)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.ResponsiblePersonID != nil {
		query = query.Where("responsible_person_id = ?", *filter.ResponsiblePersonID)
	}
	if filter.SectionID != nil {
		query = query.Where("section_id = ?", *filter.SectionID)
	}
	if filter.TypeID != nil {
		query = query.Where("property_type_id = ?", *filter.TypeID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(plate_number) LIKE ? OR LOWER(address) LIKE ?", pattern, pattern)
	}
	if filter.BBox != nil {
		query = query.Where("longitude BETWEEN ? AND ? AND latitude BETWEEN ? AND ?",
			filter.BBox.Min.Lon(), filter.BBox.Max.Lon(), filter.BBox.Min.Lat(), filter.BBox.Max.Lat())
	}

	return query
}

func propertyWriteError(err error, details string) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrDuplicatePlateNumber.WrapMessage(details)
	}
	if isForeignKeyConstraintViolation(err) {
		return domainerrors.ErrLookupNotFound.WrapMessage(details)
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// --- Mapper Functions ---

func toPropertyDomain(data *model.PropertyModel) *entity.Property {
	if data == nil {
		return nil
	}

	return &entity.Property{
		Base:                baseDomain(data.Base),
		PlateNumber:         data.PlateNumber,
		Address:             data.Address,
		Description:         data.Description,
		Latitude:            data.Latitude,
		Longitude:           data.Longitude,
		AreaSize:            data.AreaSize,
		PropertyTypeID:      data.PropertyTypeID,
		StatusID:            data.StatusID,
		OwnerID:             data.OwnerID,
		ResponsiblePersonID: data.ResponsiblePersonID,
		SectionID:           data.SectionID,
		SubSectionID:        data.SubSectionID,
		PaymentStatus:       data.PaymentStatus,
		PaidAmount:          data.PaidAmount,
		PhotoKey:            data.PhotoKey,
		ApprovedAt:          data.ApprovedAt,
		RegisteredByID:      data.RegisteredByID,
	}
}

func toPropertyDomains(data []*model.PropertyModel) []*entity.Property {
	properties := make([]*entity.Property, 0, len(data))
	for _, propertyM := range data {
		properties = append(properties, toPropertyDomain(propertyM))
	}

	return properties
}

func fromPropertyDomain(data *entity.Property) *model.PropertyModel {
	if data == nil {
		return nil
	}

	return &model.PropertyModel{
		Base:                model.Base{ID: data.ID, CreatedAt: data.CreatedAt, UpdatedAt: data.UpdatedAt},
		PlateNumber:         data.PlateNumber,
		Address:             data.Address,
		Description:         data.Description,
		Latitude:            data.Latitude,
		Longitude:           data.Longitude,
		AreaSize:            data.AreaSize,
		PropertyTypeID:      data.PropertyTypeID,
		StatusID:            data.StatusID,
		OwnerID:             data.OwnerID,
		ResponsiblePersonID: data.ResponsiblePersonID,
		SectionID:           data.SectionID,
		SubSectionID:        data.SubSectionID,
		PaymentStatus:       data.PaymentStatus,
		PaidAmount:          data.PaidAmount,
		PhotoKey:            data.PhotoKey,
		ApprovedAt:          data.ApprovedAt,
		RegisteredByID:      data.RegisteredByID,
	}
}
