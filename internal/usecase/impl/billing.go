package impl

import (
	"context"
	"fmt"
	"time"

	"cadastre/config"
	"cadastre/internal/domain/constants"
	"cadastre/internal/domain/entity"
	"cadastre/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// lookupIDByName resolves a seeded lookup row by name. A missing row yields nil so
// deployments without seed data keep working with an unset status.
func lookupIDByName(ctx context.Context, lookupRepo repository.LookupRepository, kind entity.LookupKind, name string) (*uuid.UUID, error) {
	if name == "" {
		return nil, nil
	}

	lookup, err := lookupRepo.FindByName(ctx, kind, name)
	if err != nil {
		if errors.Is(err, repository.ErrLookupNotFound) {
			return nil, nil
		}

		return nil, errors.Wrapf(err, "failed to resolve %s %q", kind, name)
	}

	return &lookup.ID, nil
}

// propertyPaymentStatus classifies the paid total of a property against its yearly fee.
func propertyPaymentStatus(totalPaid, expected decimal.Decimal) string {
	switch {
	case totalPaid.IsPositive() && totalPaid.GreaterThanOrEqual(expected):
		return constants.PropertyPaymentPaid
	case totalPaid.IsPositive():
		return constants.PropertyPaymentPaidPartially
	default:
		return constants.PropertyPaymentPending
	}
}

// paymentStatusName classifies a payment against the paid total of its property.
func paymentStatusName(payment *entity.Payment, totalPaid decimal.Decimal) string {
	switch {
	case payment.IsExempt:
		return constants.PaymentStatusCompleted
	case totalPaid.GreaterThanOrEqual(payment.NetAmount()):
		return constants.PaymentStatusCompleted
	case totalPaid.IsPositive():
		return constants.PaymentStatusPartial
	default:
		return constants.PaymentStatusPending
	}
}

// yearlyPaymentFor returns the payment billed for year, matching either the
// billing_year column or the metadata written for yearly payments.
func yearlyPaymentFor(payments []*entity.Payment, year int) *entity.Payment {
	for _, payment := range payments {
		if payment.BillingYear != nil && *payment.BillingYear == year {
			return payment
		}
		if payment.Metadata[constants.PaymentMetadataType] != constants.PaymentTypeYearly {
			continue
		}
		if y, ok := payment.MetadataYear(); ok && y == year {
			return payment
		}
	}

	return nil
}

// yearlyDueDate is the last day of the configured due month.
func yearlyDueDate(billing *config.BillingConfig, year int) time.Time {
	month := 3
	if billing != nil && billing.YearlyDueMonth >= 1 && billing.YearlyDueMonth <= 12 {
		month = billing.YearlyDueMonth
	}

	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}

// ensureYearlyPayment creates the yearly fee payment of property for year unless one
// exists. The boolean reports whether a payment was created.
// A property whose fee computes to zero gets an exempt, completed payment.
func ensureYearlyPayment(ctx context.Context, repoFactory repository.RepositoryFactory, billing *config.BillingConfig, property *entity.Property, year int) (*entity.Payment, bool, error) {
	paymentRepo := repoFactory.NewPaymentRepository()
	lookupRepo := repoFactory.NewLookupRepository()

	payments, err := paymentRepo.ListByProperty(ctx, property.ID)
	if err != nil {
		return nil, false, err
	}
	if existing := yearlyPaymentFor(payments, year); existing != nil {
		return existing, false, nil
	}

	propertyType, err := lookupRepo.FindPropertyTypeByID(ctx, property.PropertyTypeID)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to load property type")
	}

	amount := entity.ExpectedAmount(propertyType.Price, property.AreaSize)
	statusName := constants.PaymentStatusPending
	if !amount.IsPositive() {
		statusName = constants.PaymentStatusCompleted
	}
	statusID, err := lookupIDByName(ctx, lookupRepo, entity.LookupPaymentStatus, statusName)
	if err != nil {
		return nil, false, err
	}

	dueDate := yearlyDueDate(billing, year)
	billingYear := year
	payment := &entity.Payment{
		PropertyID:     property.ID,
		Amount:         amount,
		DiscountAmount: decimal.Zero,
		IsExempt:       !amount.IsPositive(),
		StatusID:       statusID,
		DueDate:        &dueDate,
		BillingYear:    &billingYear,
		Description:    fmt.Sprintf("Yearly property fee %d", year),
		Metadata: map[string]any{
			constants.PaymentMetadataType: constants.PaymentTypeYearly,
			constants.PaymentMetadataYear: year,
		},
	}
	if err := paymentRepo.Create(ctx, payment); err != nil {
		return nil, false, err
	}

	return payment, true, nil
}
