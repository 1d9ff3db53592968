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

// locationRepository implements the repository.LocationRepository interface.
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository is the constructor for locationRepository.
func NewLocationRepository(db *gorm.DB) repository.LocationRepository {
	return &locationRepository{
		db: db,
	}
}

func (repo *locationRepository) ListRegions(ctx context.Context) ([]*entity.Region, error) {
	var regionModels []*model.RegionModel

	if err := repo.db.WithContext(ctx).Order("name").Find(&regionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list regions")
	}

	regions := make([]*entity.Region, 0, len(regionModels))
	for _, regionM := range regionModels {
		regions = append(regions, toRegionDomain(regionM))
	}

	return regions, nil
}

func (repo *locationRepository) FindRegionByID(ctx context.Context, id uuid.UUID) (*entity.Region, error) {
	var regionM model.RegionModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&regionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRegionNotFound
		}

		return nil, errors.Wrap(err, "failed to find region by id")
	}

	return toRegionDomain(&regionM), nil
}

func (repo *locationRepository) CreateRegion(ctx context.Context, region *entity.Region) error {
	regionM := &model.RegionModel{Name: region.Name, Code: region.Code}

	if err := repo.db.WithContext(ctx).Create(regionM).Error; err != nil {
		return lookupWriteError(err, "failed to create region")
	}

	region.Base = entity.Base{ID: regionM.ID, CreatedAt: regionM.CreatedAt, UpdatedAt: regionM.UpdatedAt}

	return nil
}

func (repo *locationRepository) UpdateRegion(ctx context.Context, region *entity.Region) error {
	regionM := &model.RegionModel{Base: model.Base{ID: region.ID}, Name: region.Name, Code: region.Code}

	result := repo.db.WithContext(ctx).Model(regionM).Select("name", "code").Updates(regionM)
	if err := updateResult(result, repository.ErrRegionNotFound, "failed to update region"); err != nil {
		return err
	}
	region.UpdatedAt = regionM.UpdatedAt

	return nil
}

func (repo *locationRepository) ListCities(ctx context.Context, regionID *uuid.UUID) ([]*entity.City, error) {
	var cityModels []*model.CityModel

	query := repo.db.WithContext(ctx).Order("name")
	if regionID != nil {
		query = query.Where("region_id = ?", *regionID)
	}
	if err := query.Find(&cityModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list cities")
	}

	cities := make([]*entity.City, 0, len(cityModels))
	for _, cityM := range cityModels {
		cities = append(cities, toCityDomain(cityM))
	}

	return cities, nil
}

func (repo *locationRepository) FindCityByID(ctx context.Context, id uuid.UUID) (*entity.City, error) {
	var cityM model.CityModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&cityM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCityNotFound
		}

		return nil, errors.Wrap(err, "failed to find city by id")
	}

	return toCityDomain(&cityM), nil
}

func (repo *locationRepository) CreateCity(ctx context.Context, city *entity.City) error {
	cityM := &model.CityModel{Name: city.Name, RegionID: city.RegionID}

	if err := repo.db.WithContext(ctx).Create(cityM).Error; err != nil {
		return lookupWriteError(err, "failed to create city")
	}

	city.Base = entity.Base{ID: cityM.ID, CreatedAt: cityM.CreatedAt, UpdatedAt: cityM.UpdatedAt}

	return nil
}

func (repo *locationRepository) UpdateCity(ctx context.Context, city *entity.City) error {
	cityM := &model.CityModel{Base: model.Base{ID: city.ID}, Name: city.Name, RegionID: city.RegionID}

	result := repo.db.WithContext(ctx).Model(cityM).Select("name", "region_id").Updates(cityM)
	if err := updateResult(result, repository.ErrCityNotFound, "failed to update city"); err != nil {
		return err
	}
	city.UpdatedAt = cityM.UpdatedAt

	return nil
}

func (repo *locationRepository) ListSections(ctx context.Context, cityID *uuid.UUID, includeInactive bool) ([]*entity.Section, error) {
	var sectionModels []*model.SectionModel

	query := repo.db.WithContext(ctx).Order("name")
	if cityID != nil {
		query = query.Where("city_id = ?", *cityID)
	}
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&sectionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list sections")
	}

	sections := make([]*entity.Section, 0, len(sectionModels))
	for _, sectionM := range sectionModels {
		sections = append(sections, toSectionDomain(sectionM))
	}

	return sections, nil
}

func (repo *locationRepository) FindSectionByID(ctx context.Context, id uuid.UUID) (*entity.Section, error) {
	var sectionM model.SectionModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&sectionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSectionNotFound
		}

		return nil, errors.Wrap(err, "failed to find section by id")
	}

	return toSectionDomain(&sectionM), nil
}

func (repo *locationRepository) CreateSection(ctx context.Context, section *entity.Section) error {
	sectionM := &model.SectionModel{Name: section.Name, CityID: section.CityID, IsActive: section.IsActive}

	// IsActive is selected explicitly so that false is not replaced by the column default.
	if err := repo.db.WithContext(ctx).Select("*").Create(sectionM).Error; err != nil {
		return lookupWriteError(err, "failed to create section")
	}

	section.Base = entity.Base{ID: sectionM.ID, CreatedAt: sectionM.CreatedAt, UpdatedAt: sectionM.UpdatedAt}

	return nil
}

func (repo *locationRepository) UpdateSection(ctx context.Context, section *entity.Section) error {
	sectionM := &model.SectionModel{Base: model.Base{ID: section.ID}, Name: section.Name, CityID: section.CityID, IsActive: section.IsActive}

	result := repo.db.WithContext(ctx).Model(sectionM).Select("name", "city_id", "is_active").Updates(sectionM)
	if err := updateResult(result, repository.ErrSectionNotFound, "failed to update section"); err != nil {
		return err
	}
	section.UpdatedAt = sectionM.UpdatedAt

	return nil
}

func (repo *locationRepository) ListSubSections(ctx context.Context, sectionID *uuid.UUID, includeInactive bool) ([]*entity.SubSection, error) {
	var subSectionModels []*model.SubSectionModel

	query := repo.db.WithContext(ctx).Order("name")
	if sectionID != nil {
		query = query.Where("section_id = ?", *sectionID)
	}
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&subSectionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list sub-sections")
	}

	subSections := make([]*entity.SubSection, 0, len(subSectionModels))
	for _, subSectionM := range subSectionModels {
		subSections = append(subSections, toSubSectionDomain(subSectionM))
	}

	return subSections, nil
}

func (repo *locationRepository) FindSubSectionByID(ctx context.Context, id uuid.UUID) (*entity.SubSection, error) {
	var subSectionM model.SubSectionModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&subSectionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubSectionNotFound
		}

		return nil, errors.Wrap(err, "failed to find sub-section by id")
	}

	return toSubSectionDomain(&subSectionM), nil
}

func (repo *locationRepository) CreateSubSection(ctx context.Context, subSection *entity.SubSection) error {
	subSectionM := &model.SubSectionModel{Name: subSection.Name, SectionID: subSection.SectionID, IsActive: subSection.IsActive}

	if err := repo.db.WithContext(ctx).Select("*").Create(subSectionM).Error; err != nil {
		return lookupWriteError(err, "failed to create sub-section")
	}

	subSection.Base = entity.Base{ID: subSectionM.ID, CreatedAt: subSectionM.CreatedAt, UpdatedAt: subSectionM.UpdatedAt}

	return nil
}

func (repo *locationRepository) UpdateSubSection(ctx context.Context, subSection *entity.SubSection) error {
	subSectionM := &model.SubSectionModel{
		Base:      model.Base{ID: subSection.ID},
		Name:      subSection.Name,
		SectionID: subSection.SectionID,
		IsActive:  subSection.IsActive,
	}

	result := repo.db.WithContext(ctx).Model(subSectionM).Select("name", "section_id", "is_active").Updates(subSectionM)
	if err := updateResult(result, repository.ErrSubSectionNotFound, "failed to update sub-section"); err != nil {
		return err
	}
	subSection.UpdatedAt = subSectionM.UpdatedAt

	return nil
}

// lookupWriteError maps a failed insert or update on a name-unique table.
func lookupWriteError(err error, details string) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrLookupAlreadyExists.WrapMessage(details)
	}
	if isForeignKeyConstraintViolation(err) {
		return domainerrors.ErrLookupNotFound.WrapMessage(details)
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// updateResult turns a gorm update result into the repository contract.
func updateResult(result *gorm.DB, notFound error, details string) error {
	if result.Error != nil {
		return lookupWriteError(result.Error, details)
	}
	if result.RowsAffected == 0 {
		return notFound
	}

	return nil
}

// --- Mapper Functions ---

func baseDomain(data model.Base) entity.Base {
	return entity.Base{ID: data.ID, CreatedAt: data.CreatedAt, UpdatedAt: data.UpdatedAt}
}

func toRegionDomain(data *model.RegionModel) *entity.Region {
	return &entity.Region{Base: baseDomain(data.Base), Name: data.Name, Code: data.Code}
}

func toCityDomain(data *model.CityModel) *entity.City {
	return &entity.City{Base: baseDomain(data.Base), Name: data.Name, RegionID: data.RegionID}
}

func toSectionDomain(data *model.SectionModel) *entity.Section {
	return &entity.Section{Base: baseDomain(data.Base), Name: data.Name, CityID: data.CityID, IsActive: data.IsActive}
}

func toSubSectionDomain(data *model.SubSectionModel) *entity.SubSection {
	return &entity.SubSection{Base: baseDomain(data.Base), Name: data.Name, SectionID: data.SectionID, IsActive: data.IsActive}
}
