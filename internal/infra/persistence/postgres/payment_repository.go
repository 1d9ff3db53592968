package postgres

import (
	"context"
	"time"

	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// paymentRepository implements the repository.PaymentRepository interface.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository is the constructor for paymentRepository.
func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

func (repo *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var paymentM model.PaymentModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&paymentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment by id")
	}

	return toPaymentDomain(&paymentM), nil
}

func (repo *paymentRepository) List(ctx context.Context, filter entity.PaymentFilter, page entity.Page) ([]*entity.Payment, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.PaymentModel{})
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.StatusID != nil {
		query = query.Where("status_id = ?", *filter.StatusID)
	}
	if filter.Year != nil {
		query = query.Where("billing_year = ?", *filter.Year)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count payments")
	}

	var paymentModels []*model.PaymentModel
	if err := paginate(query, page).Order("created_at DESC").Find(&paymentModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list payments")
	}

	return toPaymentDomains(paymentModels), total, nil
}

func (repo *paymentRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*entity.Payment, error) {
	var paymentModels []*model.PaymentModel

	if err := repo.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at").
		Find(&paymentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list property payments")
	}

	return toPaymentDomains(paymentModels), nil
}

func (repo *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	paymentM := fromPaymentDomain(payment)

	if err := repo.db.WithContext(ctx).Create(paymentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrYearlyPaymentExists.WrapMessage("failed to create payment")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment")
	}

	payment.Base = baseDomain(paymentM.Base)

	return nil
}

func (repo *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	paymentM := fromPaymentDomain(payment)

	result := repo.db.WithContext(ctx).
		Model(paymentM).
		Select("*").
		Omit("id", "created_at", "property_id").
		Updates(paymentM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrYearlyPaymentExists.WrapMessage("failed to update payment")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update payment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPaymentNotFound
	}
	payment.UpdatedAt = paymentM.UpdatedAt

	return nil
}

// paymentDetailRepository implements the repository.PaymentDetailRepository interface.
type paymentDetailRepository struct {
	db *gorm.DB
}

// NewPaymentDetailRepository is the constructor for paymentDetailRepository.
func NewPaymentDetailRepository(db *gorm.DB) repository.PaymentDetailRepository {
	return &paymentDetailRepository{
		db: db,
	}
}

func (repo *paymentDetailRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentDetail, error) {
	var detailM model.PaymentDetailModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&detailM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentDetailNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment detail by id")
	}

	return toPaymentDetailDomain(&detailM), nil
}

func (repo *paymentDetailRepository) List(ctx context.Context, filter entity.PaymentDetailFilter) ([]*entity.PaymentDetail, error) {
	query := repo.db.WithContext(ctx).Model(&model.PaymentDetailModel{})
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.PaymentID != nil {
		query = query.Where("payment_id = ?", *filter.PaymentID)
	}
	query = collectedWindow(query, filter.CollectorID, filter.From, filter.To)

	var detailModels []*model.PaymentDetailModel
	if err := query.Order("paid_at, installment_number").Find(&detailModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list payment details")
	}

	details := make([]*entity.PaymentDetail, 0, len(detailModels))
	for _, detailM := range detailModels {
		details = append(details, toPaymentDetailDomain(detailM))
	}

	return details, nil
}

func (repo *paymentDetailRepository) Create(ctx context.Context, detail *entity.PaymentDetail) error {
	detailM := fromPaymentDetailDomain(detail)

	if err := repo.db.WithContext(ctx).Create(detailM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment detail")
	}

	detail.Base = baseDomain(detailM.Base)

	return nil
}

// SumByProperty totals installments with a single aggregate query.
func (repo *paymentDetailRepository) SumByProperty(ctx context.Context, propertyID uuid.UUID) (decimal.Decimal, int64, error) {
	return repo.sum(repo.db.WithContext(ctx).Where("property_id = ?", propertyID))
}

func (repo *paymentDetailRepository) SumCollected(ctx context.Context, collectorID *uuid.UUID, from, to *time.Time) (decimal.Decimal, int64, error) {
	return repo.sum(collectedWindow(repo.db.WithContext(ctx), collectorID, from, to))
}

func (repo *paymentDetailRepository) sum(query *gorm.DB) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal
		Count int64
	}

	if err := query.Model(&model.PaymentDetailModel{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Scan(&row).Error; err != nil {
		return decimal.Zero, 0, errors.Wrap(err, "failed to sum payment details")
	}

	return row.Total.Round(2), row.Count, nil
}

func collectedWindow(query *gorm.DB, collectorID *uuid.UUID, from, to *time.Time) *gorm.DB {
	if collectorID != nil {
		query = query.Where("collector_id = ?", *collectorID)
	}
	if from != nil {
		query = query.Where("paid_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("paid_at < ?", *to)
	}

	return query
}

// --- Mapper Functions ---

func toPaymentDomain(data *model.PaymentModel) *entity.Payment {
	payment := &entity.Payment{
		Base:            baseDomain(data.Base),
		PropertyID:      data.PropertyID,
		Amount:          data.Amount,
		DiscountAmount:  data.DiscountAmount,
		IsExempt:        data.IsExempt,
		StatusID:        data.StatusID,
		PaymentMethodID: data.PaymentMethodID,
		DueDate:         data.DueDate,
		BillingYear:     data.BillingYear,
		Description:     data.Description,
	}
	if data.Metadata != nil {
		payment.Metadata = map[string]any(data.Metadata)
	}

	return payment
}

func toPaymentDomains(data []*model.PaymentModel) []*entity.Payment {
	payments := make([]*entity.Payment, 0, len(data))
	for _, paymentM := range data {
		payments = append(payments, toPaymentDomain(paymentM))
	}

	return payments
}

func fromPaymentDomain(data *entity.Payment) *model.PaymentModel {
	paymentM := &model.PaymentModel{
		Base:            model.Base{ID: data.ID, CreatedAt: data.CreatedAt, UpdatedAt: data.UpdatedAt},
		PropertyID:      data.PropertyID,
		Amount:          data.Amount,
		DiscountAmount:  data.DiscountAmount,
		IsExempt:        data.IsExempt,
		StatusID:        data.StatusID,
		PaymentMethodID: data.PaymentMethodID,
		DueDate:         data.DueDate,
		BillingYear:     data.BillingYear,
		Description:     data.Description,
	}
	if data.Metadata != nil {
		paymentM.Metadata = datatypes.JSONMap(data.Metadata)
	}

	return paymentM
}

func toPaymentDetailDomain(data *model.PaymentDetailModel) *entity.PaymentDetail {
	return &entity.PaymentDetail{
		Base:              baseDomain(data.Base),
		PropertyID:        data.PropertyID,
		PaymentID:         data.PaymentID,
		Amount:            data.Amount,
		InstallmentNumber: data.InstallmentNumber,
		PaymentMethodID:   data.PaymentMethodID,
		CollectorID:       data.CollectorID,
		PaidAt:            data.PaidAt,
		ReceiptNumber:     data.ReceiptNumber,
		Notes:             data.Notes,
	}
}

func fromPaymentDetailDomain(data *entity.PaymentDetail) *model.PaymentDetailModel {
	return &model.PaymentDetailModel{
		Base:              model.Base{ID: data.ID, CreatedAt: data.CreatedAt, UpdatedAt: data.UpdatedAt},
		PropertyID:        data.PropertyID,
		PaymentID:         data.PaymentID,
		Amount:            data.Amount,
		InstallmentNumber: data.InstallmentNumber,
		PaymentMethodID:   data.PaymentMethodID,
		CollectorID:       data.CollectorID,
		PaidAt:            data.PaidAt,
		ReceiptNumber:     data.ReceiptNumber,
		Notes:             data.Notes,
	}
}
