package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"cadastre/config"
	deliverycontext "cadastre/internal/delivery/context"
	"cadastre/internal/domain/constants"
	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/domain/service"
	"cadastre/internal/usecase"
	"cadastre/internal/util"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// propertyService implements the PropertyUsecase interface.
type propertyService struct {
	txManager    repository.TransactionManager
	propertyRepo repository.PropertyRepository
	lookupRepo   repository.LookupRepository
	publisher    service.EventPublisher
	photoStorage service.PhotoStorage
	qrCode       service.QRCodeService
	config       *config.Config
	logger       *slog.Logger
	now          func() time.Time
}

// PropertyServiceParams holds dependencies for PropertyService, injected by Fx.
type PropertyServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	PropertyRepo repository.PropertyRepository
	LookupRepo   repository.LookupRepository
	Publisher    service.EventPublisher
	PhotoStorage service.PhotoStorage
	QRCode       service.QRCodeService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewPropertyService is the constructor for propertyService.
func NewPropertyService(params PropertyServiceParams) usecase.PropertyUsecase {
	return &propertyService{
		txManager:    params.TxManager,
		propertyRepo: params.PropertyRepo,
		lookupRepo:   params.LookupRepo,
		publisher:    params.Publisher,
		photoStorage: params.PhotoStorage,
		qrCode:       params.QRCode,
		config:       params.Config,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *propertyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

func (srv *propertyService) ListProperties(ctx context.Context, filter entity.PropertyFilter, page entity.Page) (*entity.PagedResult[entity.Property], error) {
	page = page.Normalize()
	properties, total, err := srv.propertyRepo.List(ctx, filter, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list properties")
	}

	return &entity.PagedResult[entity.Property]{Items: properties, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

func (srv *propertyService) GetProperty(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	property, err := srv.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrPropertyNotFound, domainerrors.ErrPropertyNotFound, "")
	}

	return property, nil
}

// CreateProperty registers a property in the pending state with nothing paid.
func (srv *propertyService) CreateProperty(ctx context.Context, actorID uuid.UUID, input *usecase.CreatePropertyInput) (*entity.Property, error) {
	property := &entity.Property{
		PlateNumber:         strings.TrimSpace(input.PlateNumber),
		Address:             strings.TrimSpace(input.Address),
		Description:         strings.TrimSpace(input.Description),
		Latitude:            input.Latitude,
		Longitude:           input.Longitude,
		AreaSize:            input.AreaSize,
		PropertyTypeID:      input.PropertyTypeID,
		StatusID:            input.StatusID,
		OwnerID:             input.OwnerID,
		ResponsiblePersonID: input.ResponsiblePersonID,
		SectionID:           input.SectionID,
		SubSectionID:        input.SubSectionID,
		PaymentStatus:       constants.PropertyPaymentPending,
	}
	if actorID != uuid.Nil {
		property.RegisteredByID = &actorID
	}
	if err := validatePropertyFields(property); err != nil {
		return nil, err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		propertyRepo := repoFactory.NewPropertyRepository()

		if err := srv.checkPlateAvailable(ctx, propertyRepo, property.PlateNumber, uuid.Nil); err != nil {
			return err
		}
		if err := srv.checkReferences(ctx, repoFactory, property); err != nil {
			return err
		}

		if property.StatusID == nil {
			statusID, err := lookupIDByName(ctx, repoFactory.NewLookupRepository(), entity.LookupPropertyStatus, srv.config.Billing.PendingStatusName)
			if err != nil {
				return err
			}
			property.StatusID = statusID
		}

		return propertyRepo.Create(ctx, property)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create property")
	}

	srv.log(ctx).Info("Property registered",
		slog.Any("propertyID", property.ID),
		slog.String("plateNumber", property.PlateNumber))

	return property, nil
}

// UpdateProperty applies the present fields and validates the merged result.
// Coordinate changes are announced after the commit.
func (srv *propertyService) UpdateProperty(ctx context.Context, actorID, id uuid.UUID, input *usecase.UpdatePropertyInput) (*entity.Property, error) {
	var (
		property     *entity.Property
		movedFromLat float64
		movedFromLon float64
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		propertyRepo := repoFactory.NewPropertyRepository()

		var err error
		property, err = propertyRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrPropertyNotFound, domainerrors.ErrPropertyNotFound, "")
		}
		movedFromLat, movedFromLon = property.Latitude, property.Longitude

		applyPropertyUpdate(property, input)
		if err := validatePropertyFields(property); err != nil {
			return err
		}

		if input.PlateNumber != nil {
			if err := srv.checkPlateAvailable(ctx, propertyRepo, property.PlateNumber, property.ID); err != nil {
				return err
			}
		}
		if err := srv.checkReferences(ctx, repoFactory, property); err != nil {
			return err
		}

		// Area and type drive the yearly fee, so the paid state is derived again.
		propertyType, err := repoFactory.NewLookupRepository().FindPropertyTypeByID(ctx, property.PropertyTypeID)
		if err != nil {
			return mapNotFound(err, repository.ErrPropertyTypeNotFound, domainerrors.ErrPropertyTypeNotFound, "")
		}
		property.PaymentStatus = propertyPaymentStatus(property.PaidAmount, entity.ExpectedAmount(propertyType.Price, property.AreaSize))

		return propertyRepo.Update(ctx, property)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update property")
	}

	if property.Latitude != movedFromLat || property.Longitude != movedFromLon {
		srv.publish(ctx, constants.EventPropertyCoordinatesUpdated, actorID, property)
	}

	return property, nil
}

// ApproveProperty moves the property to the approved status and bills the
// current year. Approving twice keeps the original approval time and payment.
func (srv *propertyService) ApproveProperty(ctx context.Context, actorID, id uuid.UUID) (*entity.Property, error) {
	var property *entity.Property
	now := srv.now()

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		propertyRepo := repoFactory.NewPropertyRepository()

		var err error
		property, err = propertyRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrPropertyNotFound, domainerrors.ErrPropertyNotFound, "")
		}

		statusName := srv.config.Billing.ApprovedStatusName
		status, err := repoFactory.NewLookupRepository().FindByName(ctx, entity.LookupPropertyStatus, statusName)
		if err != nil {
			return mapNotFound(err, repository.ErrLookupNotFound, domainerrors.ErrLookupNotFound,
				fmt.Sprintf("property status %q is not configured", statusName))
		}

		property.StatusID = &status.ID
		if property.ApprovedAt == nil {
			property.ApprovedAt = &now
		}
		if err := propertyRepo.Update(ctx, property); err != nil {
			return err
		}

		_, _, err = ensureYearlyPayment(ctx, repoFactory, srv.config.Billing, property, now.Year())

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to approve property")
	}

	srv.log(ctx).Info("Property approved", slog.Any("propertyID", id), slog.Any("actorID", actorID))
	srv.publish(ctx, constants.EventPropertyApproved, actorID, property)

	return property, nil
}

func (srv *propertyService) GetBalance(ctx context.Context, id uuid.UUID) (*entity.PropertyBalance, error) {
	property, err := srv.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	propertyType, err := srv.lookupRepo.FindPropertyTypeByID(ctx, property.PropertyTypeID)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrPropertyTypeNotFound, domainerrors.ErrPropertyTypeNotFound, "")
	}

	expected := entity.ExpectedAmount(propertyType.Price, property.AreaSize)
	remaining := expected.Sub(property.PaidAmount)
	if remaining.IsNegative() {
		remaining = zero
	}

	return &entity.PropertyBalance{
		PropertyID:    property.ID,
		Expected:      expected,
		Paid:          property.PaidAmount,
		Remaining:     remaining,
		PaymentStatus: property.PaymentStatus,
	}, nil
}

// UploadPhoto stores the photo under a key derived from the property id,
// replacing any previous photo.
func (srv *propertyService) UploadPhoto(ctx context.Context, id uuid.UUID, upload *usecase.PhotoUpload) (*entity.Property, error) {
	storageCfg := srv.config.Storage
	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if !slices.Contains(storageCfg.AllowedContentTypes, contentType) {
		return nil, domainerrors.ErrPhotoRejected.WithDetails("unsupported content type: " + contentType)
	}
	if upload.Size > storageCfg.MaxPhotoSize {
		return nil, domainerrors.ErrPhotoRejected.WithDetails("photo exceeds " + util.FormatBytes(storageCfg.MaxPhotoSize))
	}

	property, err := srv.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf(constants.PhotoObjectNameFormat, property.ID)
	photo, err := srv.photoStorage.Put(ctx, key, contentType, io.LimitReader(upload.Body, storageCfg.MaxPhotoSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to store photo")
	}
	if photo.Size > storageCfg.MaxPhotoSize {
		if err := srv.photoStorage.Delete(ctx, key); err != nil && !errors.Is(err, service.ErrPhotoNotFound) {
			srv.log(ctx).Warn("Failed to remove oversized photo", slog.String("key", key), slog.Any("error", err))
		}

		return nil, domainerrors.ErrPhotoRejected.WithDetails("photo exceeds " + util.FormatBytes(storageCfg.MaxPhotoSize))
	}

	if err := srv.propertyRepo.UpdatePhotoKey(ctx, property.ID, key); err != nil {
		return nil, errors.Wrap(err, "failed to save photo key")
	}
	srv.log(ctx).Info("Property photo stored",
		slog.String("property_id", property.ID.String()),
		slog.String("size", util.FormatBytes(photo.Size)),
		slog.String("sha256", photo.Checksum),
	)

	// Installments may have been recorded while the upload streamed.
	return srv.GetProperty(ctx, property.ID)
}

func (srv *propertyService) GetPhoto(ctx context.Context, id uuid.UUID) (*usecase.PhotoDownload, error) {
	property, err := srv.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if property.PhotoKey == "" {
		return nil, domainerrors.ErrPhotoNotFound
	}

	body, photo, err := srv.photoStorage.Open(ctx, property.PhotoKey)
	if err != nil {
		return nil, mapNotFound(err, service.ErrPhotoNotFound, domainerrors.ErrPhotoNotFound, "")
	}

	return &usecase.PhotoDownload{ContentType: photo.ContentType, Size: photo.Size, Body: body}, nil
}

func (srv *propertyService) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	property, err := srv.GetProperty(ctx, id)
	if err != nil {
		return err
	}
	if property.PhotoKey == "" {
		return domainerrors.ErrPhotoNotFound
	}

	if err := srv.photoStorage.Delete(ctx, property.PhotoKey); err != nil && !errors.Is(err, service.ErrPhotoNotFound) {
		return errors.Wrap(err, "failed to delete photo")
	}

	if err := srv.propertyRepo.UpdatePhotoKey(ctx, property.ID, ""); err != nil {
		return errors.Wrap(err, "failed to clear photo key")
	}

	return nil
}

func (srv *propertyService) QRCode(ctx context.Context, id uuid.UUID) ([]byte, error) {
	property, err := srv.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrCode.GeneratePropertyQR(property)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate QR code")
	}

	return png, nil
}

// VerifyCertificate checks a scanned certificate against the registry. The
// plate must still match: a certificate printed before a plate change is void.
func (srv *propertyService) VerifyCertificate(ctx context.Context, input *usecase.VerifyCertificateInput) (*usecase.CertificateVerification, error) {
	payload, err := srv.qrCode.ParsePropertyQR(input.Data)
	if err != nil {
		return nil, domainerrors.ErrCertificateInvalid.WithDetails("unreadable certificate payload")
	}

	property, err := srv.GetProperty(ctx, payload.PropertyID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(property.PlateNumber, payload.PlateNumber) {
		return nil, domainerrors.ErrCertificateInvalid.WithDetails("plate number does not match the registry")
	}

	balance, err := srv.GetBalance(ctx, property.ID)
	if err != nil {
		return nil, err
	}

	return &usecase.CertificateVerification{Property: property, Balance: balance}, nil
}

// GeoJSON renders every matching property as a point feature.
func (srv *propertyService) GeoJSON(ctx context.Context, filter entity.PropertyFilter) (*geojson.FeatureCollection, error) {
	properties, err := srv.propertyRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list properties for map")
	}

	fc := geojson.NewFeatureCollection()
	for _, property := range properties {
		feature := geojson.NewFeature(property.Location())
		feature.ID = property.ID.String()
		feature.Properties["plate_number"] = property.PlateNumber
		feature.Properties["address"] = property.Address
		feature.Properties["payment_status"] = property.PaymentStatus
		feature.Properties["paid_amount"] = property.PaidAmount.StringFixed(2)
		fc.Append(feature)
	}

	return fc, nil
}

// publish announces a property change. Failures are logged, never retried.
func (srv *propertyService) publish(ctx context.Context, eventType string, actorID uuid.UUID, property *entity.Property) {
	if actorID == uuid.Nil {
		actorID = deliverycontext.ActorFrom(ctx)
	}
	event := &entity.PropertyEvent{
		Type:        eventType,
		PropertyID:  property.ID,
		PlateNumber: property.PlateNumber,
		Latitude:    property.Latitude,
		Longitude:   property.Longitude,
		ActorID:     actorID,
		RequestID:   deliverycontext.RequestIDFrom(ctx),
		OccurredAt:  srv.now().UTC(),
	}

	if err := srv.publisher.PublishPropertyEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish property event",
			slog.String("eventType", eventType),
			slog.Any("propertyID", property.ID),
			slog.Any("error", err))
	}
}

func (srv *propertyService) checkPlateAvailable(ctx context.Context, propertyRepo repository.PropertyRepository, plateNumber string, self uuid.UUID) error {
	existing, err := propertyRepo.FindByPlateNumber(ctx, plateNumber)
	switch {
	case errors.Is(err, repository.ErrPropertyNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return domainerrors.ErrDuplicatePlateNumber.WithDetails("plate number " + plateNumber + " is already registered")
	default:
		return nil
	}
}

// checkReferences verifies that every referenced row exists.
func (srv *propertyService) checkReferences(ctx context.Context, repoFactory repository.RepositoryFactory, property *entity.Property) error {
	lookupRepo := repoFactory.NewLookupRepository()
	if _, err := lookupRepo.FindPropertyTypeByID(ctx, property.PropertyTypeID); err != nil {
		return mapNotFound(err, repository.ErrPropertyTypeNotFound, domainerrors.ErrPropertyTypeNotFound, "")
	}
	if property.StatusID != nil {
		if _, err := lookupRepo.FindByID(ctx, entity.LookupPropertyStatus, *property.StatusID); err != nil {
			return mapNotFound(err, repository.ErrLookupNotFound, domainerrors.ErrLookupNotFound, "property status not found")
		}
	}

	if property.OwnerID != nil {
		if _, err := repoFactory.NewOwnerRepository().FindByID(ctx, *property.OwnerID); err != nil {
			return mapNotFound(err, repository.ErrOwnerNotFound, domainerrors.ErrPersonNotFound, "owner not found")
		}
	}
	if property.ResponsiblePersonID != nil {
		if _, err := repoFactory.NewResponsiblePersonRepository().FindByID(ctx, *property.ResponsiblePersonID); err != nil {
			return mapNotFound(err, repository.ErrResponsiblePersonNotFound, domainerrors.ErrPersonNotFound, "responsible person not found")
		}
	}

	locationRepo := repoFactory.NewLocationRepository()
	if property.SectionID != nil {
		if _, err := locationRepo.FindSectionByID(ctx, *property.SectionID); err != nil {
			return mapNotFound(err, repository.ErrSectionNotFound, domainerrors.ErrLookupNotFound, "section not found")
		}
	}
	if property.SubSectionID != nil {
		subSection, err := locationRepo.FindSubSectionByID(ctx, *property.SubSectionID)
		if err != nil {
			return mapNotFound(err, repository.ErrSubSectionNotFound, domainerrors.ErrLookupNotFound, "sub-section not found")
		}
		if property.SectionID != nil && subSection.SectionID != *property.SectionID {
			return validationError("sub-section does not belong to the section")
		}
	}

	return nil
}

func validatePropertyFields(property *entity.Property) error {
	switch {
	case property.PlateNumber == "":
		return validationError("plate_number is required")
	case property.PropertyTypeID == uuid.Nil:
		return validationError("property_type_id is required")
	case !property.AreaSize.IsPositive():
		return validationError("area_size must be greater than zero")
	case property.Latitude < -90 || property.Latitude > 90:
		return validationError("latitude must be between -90 and 90")
	case property.Longitude < -180 || property.Longitude > 180:
		return validationError("longitude must be between -180 and 180")
	case !property.HasContact():
		return domainerrors.ErrPropertyContactRequired
	}

	return nil
}

func applyPropertyUpdate(property *entity.Property, input *usecase.UpdatePropertyInput) {
	setString(&property.PlateNumber, input.PlateNumber)
	setString(&property.Address, input.Address)
	setString(&property.Description, input.Description)
	if input.Latitude != nil {
		property.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		property.Longitude = *input.Longitude
	}
	if input.AreaSize != nil {
		property.AreaSize = *input.AreaSize
	}
	if input.PropertyTypeID != nil {
		property.PropertyTypeID = *input.PropertyTypeID
	}
	if input.StatusID != nil {
		property.StatusID = input.StatusID
	}
	if input.OwnerID != nil {
		property.OwnerID = input.OwnerID
	}
	if input.ResponsiblePersonID != nil {
		property.ResponsiblePersonID = input.ResponsiblePersonID
	}
	if input.SectionID != nil {
		property.SectionID = input.SectionID
	}
	if input.SubSectionID != nil {
		property.SubSectionID = input.SubSectionID
	}
	if input.ClearOwner {
		property.OwnerID = nil
	}
	if input.ClearResponsiblePerson {
		property.ResponsiblePersonID = nil
	}
}
