package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"cadastre/config"
	deliverycontext "cadastre/internal/delivery/context"
	"cadastre/internal/domain/constants"
	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// paymentService implements billing and installment reconciliation.
type paymentService struct {
	txManager         repository.TransactionManager
	paymentRepo       repository.PaymentRepository
	paymentDetailRepo repository.PaymentDetailRepository
	config            *config.Config
	logger            *slog.Logger
	now               func() time.Time
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	PaymentRepo       repository.PaymentRepository
	PaymentDetailRepo repository.PaymentDetailRepository
	Config            *config.Config
	Logger            *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		txManager:         params.TxManager,
		paymentRepo:       params.PaymentRepo,
		paymentDetailRepo: params.PaymentDetailRepo,
		config:            params.Config,
		logger:            params.Logger,
		now:               time.Now,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

func (srv *paymentService) ListPayments(ctx context.Context, filter entity.PaymentFilter, page entity.Page) (*entity.PagedResult[entity.Payment], error) {
	page = page.Normalize()
	payments, total, err := srv.paymentRepo.List(ctx, filter, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}

	return &entity.PagedResult[entity.Payment]{Items: payments, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

// GetPayment returns the payment with its installments.
func (srv *paymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := srv.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrPaymentNotFound, domainerrors.ErrPaymentNotFound, "")
	}

	details, err := srv.paymentDetailRepo.List(ctx, entity.PaymentDetailFilter{PaymentID: &payment.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load payment details")
	}
	payment.Details = details

	return payment, nil
}

func (srv *paymentService) CreatePayment(ctx context.Context, input *usecase.CreatePaymentInput) (*entity.Payment, error) {
	payment := &entity.Payment{
		PropertyID:      input.PropertyID,
		Amount:          input.Amount.Round(2),
		DiscountAmount:  input.DiscountAmount.Round(2),
		IsExempt:        input.IsExempt,
		StatusID:        input.StatusID,
		PaymentMethodID: input.PaymentMethodID,
		DueDate:         input.DueDate,
		Description:     strings.TrimSpace(input.Description),
		Metadata:        map[string]any{constants.PaymentMetadataType: constants.PaymentTypeOneOff},
	}
	if err := validatePaymentAmounts(payment); err != nil {
		return nil, err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.NewPropertyRepository().FindByID(ctx, payment.PropertyID); err != nil {
			return mapNotFound(err, repository.ErrPropertyNotFound, domainerrors.ErrPropertyNotFound, "")
		}

		lookupRepo := repoFactory.NewLookupRepository()
		if err := checkPaymentLookups(ctx, lookupRepo, payment); err != nil {
			return err
		}
		if payment.IsExempt || payment.StatusID == nil {
			statusName := constants.PaymentStatusPending
			if payment.IsExempt {
				statusName = constants.PaymentStatusCompleted
			}
			statusID, err := lookupIDByName(ctx, lookupRepo, entity.LookupPaymentStatus, statusName)
			if err != nil {
				return err
			}
			if statusID != nil {
				payment.StatusID = statusID
			}
		}

		return repoFactory.NewPaymentRepository().Create(ctx, payment)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create payment")
	}

	return payment, nil
}

// UpdatePayment applies the present fields; the amount invariant is checked on the merged values.
// Unless a status is given, changed amounts re-classify the payment against the property's paid total.
func (srv *paymentService) UpdatePayment(ctx context.Context, id uuid.UUID, input *usecase.UpdatePaymentInput) (*entity.Payment, error) {
	var payment *entity.Payment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		paymentRepo := repoFactory.NewPaymentRepository()

		var err error
		payment, err = paymentRepo.FindByID(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrPaymentNotFound, domainerrors.ErrPaymentNotFound, "")
		}

		if input.Amount != nil {
			payment.Amount = input.Amount.Round(2)
		}
		if input.DiscountAmount != nil {
			payment.DiscountAmount = input.DiscountAmount.Round(2)
		}
		if input.IsExempt != nil {
			payment.IsExempt = *input.IsExempt
		}
		if input.StatusID != nil {
			payment.StatusID = input.StatusID
		}
		if input.PaymentMethodID != nil {
			payment.PaymentMethodID = input.PaymentMethodID
		}
		if input.DueDate != nil {
			payment.DueDate = input.DueDate
		}
		setString(&payment.Description, input.Description)

		if err := validatePaymentAmounts(payment); err != nil {
			return err
		}

		lookupRepo := repoFactory.NewLookupRepository()
		if err := checkPaymentLookups(ctx, lookupRepo, payment); err != nil {
			return err
		}
		amountsChanged := input.Amount != nil || input.DiscountAmount != nil || input.IsExempt != nil
		if amountsChanged && input.StatusID == nil {
			// Lock the property so installments recorded meanwhile are counted.
			if _, err := repoFactory.NewPropertyRepository().FindByIDForUpdate(ctx, payment.PropertyID); err != nil {
				return mapNotFound(err, repository.ErrPropertyNotFound, domainerrors.ErrPropertyNotFound, "")
			}
			totalPaid, _, err := repoFactory.NewPaymentDetailRepository().SumByProperty(ctx, payment.PropertyID)
			if err != nil {
				return err
			}
			statusID, err := lookupIDByName(ctx, lookupRepo, entity.LookupPaymentStatus, paymentStatusName(payment, totalPaid))
			if err != nil {
				return err
			}
			if statusID != nil {
				payment.StatusID = statusID
			}
		}

		return paymentRepo.Update(ctx, payment)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update payment")
	}

	return payment, nil
}

func (srv *paymentService) ListPropertyPayments(ctx context.Context, propertyID uuid.UUID) ([]*entity.Payment, error) {
	payments, err := srv.paymentRepo.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list property payments")
	}

	return payments, nil
}

// CreateYearlyPayment bills the property's yearly fee for year (the current year when zero).
func (srv *paymentService) CreateYearlyPayment(ctx context.Context, propertyID uuid.UUID, year int) (*entity.Payment, error) {
	if year == 0 {
		year = srv.now().Year()
	}
	if year < 1900 || year > 9999 {
		return nil, validationError("year is out of range")
	}

	var payment *entity.Payment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		property, err := repoFactory.NewPropertyRepository().FindByIDForUpdate(ctx, propertyID)
		if err != nil {
			return mapNotFound(err, repository.ErrPropertyNotFound, domainerrors.ErrPropertyNotFound, "")
		}

		var created bool
		payment, created, err = ensureYearlyPayment(ctx, repoFactory, srv.config.Billing, property, year)
		if err != nil {
			return err
		}
		if !created {
			return domainerrors.ErrYearlyPaymentExists
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create yearly payment")
	}

	srv.log(ctx).Info("Yearly payment created",
		slog.Any("propertyID", propertyID),
		slog.Int("year", year),
		slog.String("amount", payment.Amount.StringFixed(2)))

	return payment, nil
}

// RecordPaymentDetail records one installment and reconciles the property and
// the linked payment in a single transaction. The property row is locked first
// so concurrent installments for the same property are serialized.
func (srv *paymentService) RecordPaymentDetail(ctx context.Context, collectorID uuid.UUID, input *usecase.RecordPaymentDetailInput) (*entity.Reconciliation, error) {
	amount := input.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount.WithDetails("amount must be greater than zero")
	}

	paidAt := srv.now().UTC()
	if input.PaidAt != nil {
		paidAt = input.PaidAt.UTC()
	}

	result := &entity.Reconciliation{}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		propertyRepo := repoFactory.NewPropertyRepository()
		detailRepo := repoFactory.NewPaymentDetailRepository()
		lookupRepo := repoFactory.NewLookupRepository()

		property, err := propertyRepo.FindByIDForUpdate(ctx, input.PropertyID)
		if err != nil {
			return mapNotFound(err, repository.ErrPropertyNotFound, domainerrors.ErrPropertyNotFound, "")
		}
		propertyType, err := lookupRepo.FindPropertyTypeByID(ctx, property.PropertyTypeID)
		if err != nil {
			return mapNotFound(err, repository.ErrPropertyTypeNotFound, domainerrors.ErrPropertyTypeNotFound, "")
		}
		expected := entity.ExpectedAmount(propertyType.Price, property.AreaSize)

		var payment *entity.Payment
		if input.PaymentID != nil {
			payment, err = repoFactory.NewPaymentRepository().FindByID(ctx, *input.PaymentID)
			if err != nil {
				return mapNotFound(err, repository.ErrPaymentNotFound, domainerrors.ErrPaymentNotFound, "")
			}
			if payment.PropertyID != property.ID {
				return domainerrors.ErrPaymentPropertyMismatch
			}
		}
		if input.PaymentMethodID != nil {
			if _, err := lookupRepo.FindByID(ctx, entity.LookupPaymentMethod, *input.PaymentMethodID); err != nil {
				return mapNotFound(err, repository.ErrLookupNotFound, domainerrors.ErrLookupNotFound, "payment method not found")
			}
		}

		totalPaid, count, err := detailRepo.SumByProperty(ctx, property.ID)
		if err != nil {
			return err
		}
		remaining := expected.Sub(totalPaid)
		if amount.GreaterThan(remaining) {
			return domainerrors.ErrPaymentExceedsBalance.WithDetails(
				"remaining balance is " + decimal.Max(remaining, zero).StringFixed(2))
		}

		detail := &entity.PaymentDetail{
			PropertyID:        property.ID,
			PaymentID:         input.PaymentID,
			Amount:            amount,
			InstallmentNumber: int(count) + 1,
			PaymentMethodID:   input.PaymentMethodID,
			PaidAt:            paidAt,
			ReceiptNumber:     strings.TrimSpace(input.ReceiptNumber),
			Notes:             strings.TrimSpace(input.Notes),
		}
		if collectorID != uuid.Nil {
			detail.CollectorID = &collectorID
		}
		if err := detailRepo.Create(ctx, detail); err != nil {
			return err
		}

		newTotal := totalPaid.Add(amount)
		property.PaidAmount = newTotal
		property.PaymentStatus = propertyPaymentStatus(newTotal, expected)
		if err := propertyRepo.Update(ctx, property); err != nil {
			return err
		}

		if payment != nil {
			statusID, err := lookupIDByName(ctx, lookupRepo, entity.LookupPaymentStatus, paymentStatusName(payment, newTotal))
			if err != nil {
				return err
			}
			if statusID != nil {
				payment.StatusID = statusID
				if err := repoFactory.NewPaymentRepository().Update(ctx, payment); err != nil {
					return err
				}
			}
		}

		result.Detail = detail
		result.Property = property
		result.Payment = payment
		result.Expected = expected
		result.TotalPaid = newTotal
		result.Remaining = expected.Sub(newTotal)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to record payment detail")
	}

	srv.log(ctx).Info("Installment recorded",
		slog.Any("propertyID", input.PropertyID),
		slog.Int("installment", result.Detail.InstallmentNumber),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("paymentStatus", result.Property.PaymentStatus))

	return result, nil
}

func (srv *paymentService) ListPaymentDetails(ctx context.Context, filter entity.PaymentDetailFilter) ([]*entity.PaymentDetail, error) {
	details, err := srv.paymentDetailRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payment details")
	}

	return details, nil
}

func (srv *paymentService) GetPaymentDetail(ctx context.Context, id uuid.UUID) (*entity.PaymentDetail, error) {
	detail, err := srv.paymentDetailRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrPaymentDetailNotFound, domainerrors.ErrPaymentDetailNotFound, "")
	}

	return detail, nil
}

func validatePaymentAmounts(payment *entity.Payment) error {
	switch {
	case payment.Amount.IsNegative(), payment.Amount.IsZero() && !payment.IsExempt:
		return domainerrors.ErrInvalidAmount.WithDetails("amount must be greater than zero")
	case payment.DiscountAmount.IsNegative():
		return domainerrors.ErrInvalidAmount.WithDetails("discount_amount must not be negative")
	case payment.NetAmount().IsNegative():
		return domainerrors.ErrInvalidAmount.WithDetails("discount_amount must not exceed amount")
	}

	return nil
}

func checkPaymentLookups(ctx context.Context, lookupRepo repository.LookupRepository, payment *entity.Payment) error {
	if payment.StatusID != nil {
		if _, err := lookupRepo.FindByID(ctx, entity.LookupPaymentStatus, *payment.StatusID); err != nil {
			return mapNotFound(err, repository.ErrLookupNotFound, domainerrors.ErrLookupNotFound, "payment status not found")
		}
	}
	if payment.PaymentMethodID != nil {
		if _, err := lookupRepo.FindByID(ctx, entity.LookupPaymentMethod, *payment.PaymentMethodID); err != nil {
			return mapNotFound(err, repository.ErrLookupNotFound, domainerrors.ErrLookupNotFound, "payment method not found")
		}
	}

	return nil
}
