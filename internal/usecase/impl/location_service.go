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

// locationService manages the region > city > section > sub-section hierarchy.
type locationService struct {
	txManager    repository.TransactionManager
	locationRepo repository.LocationRepository
	logger       *slog.Logger
}

// LocationServiceParams holds dependencies for LocationService, injected by Fx.
type LocationServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	LocationRepo repository.LocationRepository
	Logger       *slog.Logger
}

// NewLocationService creates a new location service instance
func NewLocationService(params LocationServiceParams) usecase.LocationUsecase {
	return &locationService{
		txManager:    params.TxManager,
		locationRepo: params.LocationRepo,
		logger:       params.Logger,
	}
}

func (srv *locationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

// --- Regions ---

func (srv *locationService) ListRegions(ctx context.Context) ([]*entity.Region, error) {
	regions, err := srv.locationRepo.ListRegions(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list regions")
	}

	return regions, nil
}

func (srv *locationService) GetRegion(ctx context.Context, id uuid.UUID) (*entity.Region, error) {
	region, err := srv.locationRepo.FindRegionByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrRegionNotFound, domainerrors.ErrLookupNotFound, "region not found")
	}

	return region, nil
}

func (srv *locationService) CreateRegion(ctx context.Context, input *usecase.RegionInput) (*entity.Region, error) {
	name, err := requireName(input.Name, "name")
	if err != nil {
		return nil, err
	}

	region := &entity.Region{Name: name, Code: strings.TrimSpace(input.Code)}
	if err := srv.locationRepo.CreateRegion(ctx, region); err != nil {
		return nil, errors.Wrap(err, "failed to create region")
	}

	return region, nil
}

func (srv *locationService) UpdateRegion(ctx context.Context, id uuid.UUID, input *usecase.UpdateRegionInput) (*entity.Region, error) {
	var region *entity.Region
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		locationRepo := repoFactory.NewLocationRepository()

		var err error
		region, err = locationRepo.FindRegionByID(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrRegionNotFound, domainerrors.ErrLookupNotFound, "region not found")
		}
		setString(&region.Name, input.Name)
		setString(&region.Code, input.Code)
		if region.Name == "" {
			return validationError("name is required")
		}

		return locationRepo.UpdateRegion(ctx, region)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update region")
	}

	return region, nil
}

// --- Cities ---

func (srv *locationService) ListCities(ctx context.Context, regionID *uuid.UUID) ([]*entity.City, error) {
	cities, err := srv.locationRepo.ListCities(ctx, regionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cities")
	}

	return cities, nil
}

func (srv *locationService) GetCity(ctx context.Context, id uuid.UUID) (*entity.City, error) {
	city, err := srv.locationRepo.FindCityByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrCityNotFound, domainerrors.ErrLookupNotFound, "city not found")
	}

	return city, nil
}

func (srv *locationService) CreateCity(ctx context.Context, input *usecase.AreaInput) (*entity.City, error) {
	name, err := requireName(input.Name, "name")
	if err != nil {
		return nil, err
	}

	city := &entity.City{Name: name, RegionID: input.ParentID}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		locationRepo := repoFactory.NewLocationRepository()
		if _, err := locationRepo.FindRegionByID(ctx, city.RegionID); err != nil {
			return mapNotFound(err, repository.ErrRegionNotFound, domainerrors.ErrLookupNotFound, "region not found")
		}

		return locationRepo.CreateCity(ctx, city)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create city")
	}

	return city, nil
}

func (srv *locationService) UpdateCity(ctx context.Context, id uuid.UUID, input *usecase.UpdateAreaInput) (*entity.City, error) {
	var city *entity.City
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		locationRepo := repoFactory.NewLocationRepository()

		var err error
		city, err = locationRepo.FindCityByID(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrCityNotFound, domainerrors.ErrLookupNotFound, "city not found")
		}
		setString(&city.Name, input.Name)
		if city.Name == "" {
			return validationError("name is required")
		}
		if input.ParentID != nil && *input.ParentID != city.RegionID {
			if _, err := locationRepo.FindRegionByID(ctx, *input.ParentID); err != nil {
				return mapNotFound(err, repository.ErrRegionNotFound, domainerrors.ErrLookupNotFound, "region not found")
			}
			city.RegionID = *input.ParentID
		}

		return locationRepo.UpdateCity(ctx, city)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update city")
	}

	return city, nil
}

// --- Sections ---

func (srv *locationService) ListSections(ctx context.Context, cityID *uuid.UUID, includeInactive bool) ([]*entity.Section, error) {
	sections, err := srv.locationRepo.ListSections(ctx, cityID, includeInactive)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sections")
	}

	return sections, nil
}

func (srv *locationService) GetSection(ctx context.Context, id uuid.UUID) (*entity.Section, error) {
	section, err := srv.locationRepo.FindSectionByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrSectionNotFound, domainerrors.ErrLookupNotFound, "section not found")
	}

	return section, nil
}

func (srv *locationService) CreateSection(ctx context.Context, input *usecase.AreaInput) (*entity.Section, error) {
	name, err := requireName(input.Name, "name")
	if err != nil {
		return nil, err
	}

	section := &entity.Section{Name: name, CityID: input.ParentID, IsActive: true}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		locationRepo := repoFactory.NewLocationRepository()
		if _, err := locationRepo.FindCityByID(ctx, section.CityID); err != nil {
			return mapNotFound(err, repository.ErrCityNotFound, domainerrors.ErrLookupNotFound, "city not found")
		}

		return locationRepo.CreateSection(ctx, section)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create section")
	}

	return section, nil
}

func (srv *locationService) UpdateSection(ctx context.Context, id uuid.UUID, input *usecase.UpdateAreaInput) (*entity.Section, error) {
	var section *entity.Section
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		locationRepo := repoFactory.NewLocationRepository()

		var err error
		section, err = locationRepo.FindSectionByID(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrSectionNotFound, domainerrors.ErrLookupNotFound, "section not found")
		}
		setString(&section.Name, input.Name)
		if section.Name == "" {
			return validationError("name is required")
		}
		if input.ParentID != nil && *input.ParentID != section.CityID {
			if _, err := locationRepo.FindCityByID(ctx, *input.ParentID); err != nil {
				return mapNotFound(err, repository.ErrCityNotFound, domainerrors.ErrLookupNotFound, "city not found")
			}
			section.CityID = *input.ParentID
		}
		if input.IsActive != nil {
			section.IsActive = *input.IsActive
		}

		return locationRepo.UpdateSection(ctx, section)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update section")
	}

	return section, nil
}

// DeactivateSection hides the section from listings. Properties keep their reference.
func (srv *locationService) DeactivateSection(ctx context.Context, id uuid.UUID) error {
	inactive := false
	if _, err := srv.UpdateSection(ctx, id, &usecase.UpdateAreaInput{IsActive: &inactive}); err != nil {
		return err
	}

	srv.log(ctx).Info("Section deactivated", slog.Any("sectionID", id))

	return nil
}

// --- Sub-sections ---

func (srv *locationService) ListSubSections(ctx context.Context, sectionID *uuid.UUID, includeInactive bool) ([]*entity.SubSection, error) {
	subSections, err := srv.locationRepo.ListSubSections(ctx, sectionID, includeInactive)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sub-sections")
	}

	return subSections, nil
}

func (srv *locationService) GetSubSection(ctx context.Context, id uuid.UUID) (*entity.SubSection, error) {
	subSection, err := srv.locationRepo.FindSubSectionByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrSubSectionNotFound, domainerrors.ErrLookupNotFound, "sub-section not found")
	}

	return subSection, nil
}

func (srv *locationService) CreateSubSection(ctx context.Context, input *usecase.AreaInput) (*entity.SubSection, error) {
	name, err := requireName(input.Name, "name")
	if err != nil {
		return nil, err
	}

	subSection := &entity.SubSection{Name: name, SectionID: input.ParentID, IsActive: true}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		locationRepo := repoFactory.NewLocationRepository()
		if _, err := locationRepo.FindSectionByID(ctx, subSection.SectionID); err != nil {
			return mapNotFound(err, repository.ErrSectionNotFound, domainerrors.ErrLookupNotFound, "section not found")
		}

		return locationRepo.CreateSubSection(ctx, subSection)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sub-section")
	}

	return subSection, nil
}

func (srv *locationService) UpdateSubSection(ctx context.Context, id uuid.UUID, input *usecase.UpdateAreaInput) (*entity.SubSection, error) {
	var subSection *entity.SubSection
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		locationRepo := repoFactory.NewLocationRepository()

		var err error
		subSection, err = locationRepo.FindSubSectionByID(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrSubSectionNotFound, domainerrors.ErrLookupNotFound, "sub-section not found")
		}
		setString(&subSection.Name, input.Name)
		if subSection.Name == "" {
			return validationError("name is required")
		}
		if input.ParentID != nil && *input.ParentID != subSection.SectionID {
			if _, err := locationRepo.FindSectionByID(ctx, *input.ParentID); err != nil {
				return mapNotFound(err, repository.ErrSectionNotFound, domainerrors.ErrLookupNotFound, "section not found")
			}
			subSection.SectionID = *input.ParentID
		}
		if input.IsActive != nil {
			subSection.IsActive = *input.IsActive
		}

		return locationRepo.UpdateSubSection(ctx, subSection)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update sub-section")
	}

	return subSection, nil
}

func (srv *locationService) DeactivateSubSection(ctx context.Context, id uuid.UUID) error {
	inactive := false
	if _, err := srv.UpdateSubSection(ctx, id, &usecase.UpdateAreaInput{IsActive: &inactive}); err != nil {
		return err
	}

	srv.log(ctx).Info("Sub-section deactivated", slog.Any("subSectionID", id))

	return nil
}
