package impl

import (
	"context"
	"testing"
	"time"

	"cadastre/internal/domain/constants"
	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/infra/persistence/postgres"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaymentService(env *testEnv) *paymentService {
	srv := NewPaymentService(PaymentServiceParams{
		TxManager:         env.txManager,
		PaymentRepo:       postgres.NewPaymentRepository(env.db),
		PaymentDetailRepo: postgres.NewPaymentDetailRepository(env.db),
		Config:            env.cfg,
		Logger:            env.logger,
	}).(*paymentService)
	srv.now = func() time.Time { return fixedNow }

	return srv
}

func TestPaymentService_RecordPaymentDetail_Reconciles(t *testing.T) {
	env := newTestEnv(t)
	statuses := env.seedStatuses(t)
	property := env.seedProperty(t, env.seedPropertyType(t, "2"), "50", env.seedOwner(t))
	method := env.seedLookup(t, entity.LookupPaymentMethod, "Cash")
	service := newTestPaymentService(env)
	ctx := context.Background()
	collectorID := uuid.New()

	yearly, err := service.CreateYearlyPayment(ctx, property.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "100.00", yearly.Amount.StringFixed(2))
	assert.Equal(t, 2026, *yearly.BillingYear)

	first, err := service.RecordPaymentDetail(ctx, collectorID, &usecase.RecordPaymentDetailInput{
		PropertyID:      property.ID,
		PaymentID:       &yearly.ID,
		Amount:          mustDecimal(t, "40"),
		PaymentMethodID: &method.ID,
		ReceiptNumber:   " R-001 ",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Detail.InstallmentNumber)
	assert.Equal(t, "R-001", first.Detail.ReceiptNumber)
	assert.Equal(t, collectorID, *first.Detail.CollectorID)
	assert.True(t, first.Detail.PaidAt.Equal(fixedNow))
	assert.Equal(t, constants.PropertyPaymentPaidPartially, first.Property.PaymentStatus)
	assert.Equal(t, "40.00", first.TotalPaid.StringFixed(2))
	assert.Equal(t, "60.00", first.Remaining.StringFixed(2))
	assert.Equal(t, statuses["payment:Partial"], *first.Payment.StatusID)

	second, err := service.RecordPaymentDetail(ctx, collectorID, &usecase.RecordPaymentDetailInput{
		PropertyID: property.ID,
		PaymentID:  &yearly.ID,
		Amount:     mustDecimal(t, "60"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Detail.InstallmentNumber)
	assert.Equal(t, constants.PropertyPaymentPaid, second.Property.PaymentStatus)
	assert.True(t, second.Remaining.IsZero())
	assert.Equal(t, statuses["payment:Completed"], *second.Payment.StatusID)

	stored, err := postgres.NewPropertyRepository(env.db).FindByID(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", stored.PaidAmount.StringFixed(2))
	assert.Equal(t, constants.PropertyPaymentPaid, stored.PaymentStatus)

	payment, err := service.GetPayment(ctx, yearly.ID)
	require.NoError(t, err)
	assert.Len(t, payment.Details, 2)
}

func TestPaymentService_RecordPaymentDetail_ExceedsBalance(t *testing.T) {
	env := newTestEnv(t)
	property := env.seedProperty(t, env.seedPropertyType(t, "1"), "30", env.seedOwner(t))
	service := newTestPaymentService(env)
	ctx := context.Background()

	_, err := service.RecordPaymentDetail(ctx, uuid.Nil, &usecase.RecordPaymentDetailInput{
		PropertyID: property.ID,
		Amount:     mustDecimal(t, "20"),
	})
	require.NoError(t, err)

	_, err = service.RecordPaymentDetail(ctx, uuid.Nil, &usecase.RecordPaymentDetailInput{
		PropertyID: property.ID,
		Amount:     mustDecimal(t, "10.01"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPaymentExceedsBalance))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "remaining balance is 10.00", appErr.Details())

	details, err := service.ListPaymentDetails(ctx, entity.PaymentDetailFilter{PropertyID: &property.ID})
	require.NoError(t, err)
	assert.Len(t, details, 1)
}

func TestPaymentService_RecordPaymentDetail_Rejected(t *testing.T) {
	env := newTestEnv(t)
	propertyType := env.seedPropertyType(t, "1")
	owner := env.seedOwner(t)
	property := env.seedProperty(t, propertyType, "30", owner)
	other := env.seedProperty(t, propertyType, "30", owner)
	service := newTestPaymentService(env)
	ctx := context.Background()

	otherPayment, err := service.CreateYearlyPayment(ctx, other.ID, 2025)
	require.NoError(t, err)
	unknown := uuid.New()

	tests := []struct {
		name     string
		input    usecase.RecordPaymentDetailInput
		expected error
	}{
		{
			name:     "zero amount",
			input:    usecase.RecordPaymentDetailInput{PropertyID: property.ID, Amount: mustDecimal(t, "0")},
			expected: domainerrors.ErrInvalidAmount,
		},
		{
			name:     "negative amount",
			input:    usecase.RecordPaymentDetailInput{PropertyID: property.ID, Amount: mustDecimal(t, "-5")},
			expected: domainerrors.ErrInvalidAmount,
		},
		{
			name:     "unknown property",
			input:    usecase.RecordPaymentDetailInput{PropertyID: unknown, Amount: mustDecimal(t, "1")},
			expected: domainerrors.ErrPropertyNotFound,
		},
		{
			name:     "payment of another property",
			input:    usecase.RecordPaymentDetailInput{PropertyID: property.ID, PaymentID: &otherPayment.ID, Amount: mustDecimal(t, "1")},
			expected: domainerrors.ErrPaymentPropertyMismatch,
		},
		{
			name:     "unknown payment method",
			input:    usecase.RecordPaymentDetailInput{PropertyID: property.ID, PaymentMethodID: &unknown, Amount: mustDecimal(t, "1")},
			expected: domainerrors.ErrLookupNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.RecordPaymentDetail(ctx, uuid.Nil, &tt.input)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), err.Error())
		})
	}
}

func TestPaymentService_CreateYearlyPayment_Conflict(t *testing.T) {
	env := newTestEnv(t)
	property := env.seedProperty(t, env.seedPropertyType(t, "1"), "10", env.seedOwner(t))
	service := newTestPaymentService(env)
	ctx := context.Background()

	_, err := service.CreateYearlyPayment(ctx, property.ID, 2025)
	require.NoError(t, err)

	_, err = service.CreateYearlyPayment(ctx, property.ID, 2025)
	assert.True(t, errors.Is(err, domainerrors.ErrYearlyPaymentExists))

	_, err = service.CreateYearlyPayment(ctx, property.ID, 2026)
	require.NoError(t, err)

	_, err = service.CreateYearlyPayment(ctx, property.ID, 12026)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	payments, err := service.ListPropertyPayments(ctx, property.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestPaymentService_CreateYearlyPayment_ZeroFeeIsExempt(t *testing.T) {
	env := newTestEnv(t)
	statuses := env.seedStatuses(t)
	property := env.seedProperty(t, env.seedPropertyType(t, "0"), "10", env.seedOwner(t))
	service := newTestPaymentService(env)

	payment, err := service.CreateYearlyPayment(context.Background(), property.ID, 2025)

	require.NoError(t, err)
	assert.True(t, payment.IsExempt)
	assert.Equal(t, statuses["payment:Completed"], *payment.StatusID)
}

func TestPaymentService_CreatePayment(t *testing.T) {
	env := newTestEnv(t)
	statuses := env.seedStatuses(t)
	property := env.seedProperty(t, env.seedPropertyType(t, "1"), "10", env.seedOwner(t))
	service := newTestPaymentService(env)
	ctx := context.Background()

	payment, err := service.CreatePayment(ctx, &usecase.CreatePaymentInput{
		PropertyID:     property.ID,
		Amount:         mustDecimal(t, "25.005"),
		DiscountAmount: mustDecimal(t, "5"),
		Description:    "Late registration penalty",
	})
	require.NoError(t, err)
	assert.Equal(t, "25.01", payment.Amount.StringFixed(2))
	assert.Equal(t, "20.01", payment.NetAmount().StringFixed(2))
	assert.Equal(t, statuses["payment:Pending"], *payment.StatusID)
	assert.Equal(t, constants.PaymentTypeOneOff, payment.Metadata[constants.PaymentMetadataType])
	assert.Nil(t, payment.BillingYear)

	exempt, err := service.CreatePayment(ctx, &usecase.CreatePaymentInput{
		PropertyID: property.ID,
		Amount:     mustDecimal(t, "10"),
		IsExempt:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, statuses["payment:Completed"], *exempt.StatusID)

	updated, err := service.UpdatePayment(ctx, payment.ID, &usecase.UpdatePaymentInput{DiscountAmount: ptr(mustDecimal(t, "0"))})
	require.NoError(t, err)
	assert.Equal(t, "25.01", updated.NetAmount().StringFixed(2))

	_, err = service.UpdatePayment(ctx, payment.ID, &usecase.UpdatePaymentInput{DiscountAmount: ptr(mustDecimal(t, "30"))})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidAmount))

	_, err = service.UpdatePayment(ctx, uuid.New(), &usecase.UpdatePaymentInput{})
	assert.True(t, errors.Is(err, domainerrors.ErrPaymentNotFound))
}

func TestPaymentService_CreatePayment_Validation(t *testing.T) {
	env := newTestEnv(t)
	property := env.seedProperty(t, env.seedPropertyType(t, "1"), "10", env.seedOwner(t))
	service := newTestPaymentService(env)

	tests := []struct {
		name     string
		input    usecase.CreatePaymentInput
		expected error
	}{
		{
			name:     "zero amount",
			input:    usecase.CreatePaymentInput{PropertyID: property.ID, Amount: mustDecimal(t, "0")},
			expected: domainerrors.ErrInvalidAmount,
		},
		{
			name:     "negative discount",
			input:    usecase.CreatePaymentInput{PropertyID: property.ID, Amount: mustDecimal(t, "10"), DiscountAmount: mustDecimal(t, "-1")},
			expected: domainerrors.ErrInvalidAmount,
		},
		{
			name:     "discount above amount",
			input:    usecase.CreatePaymentInput{PropertyID: property.ID, Amount: mustDecimal(t, "10"), DiscountAmount: mustDecimal(t, "11")},
			expected: domainerrors.ErrInvalidAmount,
		},
		{
			name:     "unknown property",
			input:    usecase.CreatePaymentInput{PropertyID: uuid.New(), Amount: mustDecimal(t, "10")},
			expected: domainerrors.ErrPropertyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreatePayment(context.Background(), &tt.input)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), err.Error())
		})
	}
}

func TestPaymentService_GetPaymentDetail_NotFound(t *testing.T) {
	env := newTestEnv(t)
	service := newTestPaymentService(env)

	_, err := service.GetPaymentDetail(context.Background(), uuid.New())

	assert.True(t, errors.Is(err, domainerrors.ErrPaymentDetailNotFound))
}

func ptr[T any](v T) *T {
	return &v
}

func TestPaymentService_UpdatePayment_ReclassifiesChangedAmounts(t *testing.T) {
	env := newTestEnv(t)
	statuses := env.seedStatuses(t)
	property := env.seedProperty(t, env.seedPropertyType(t, "1"), "100", env.seedOwner(t))
	service := newTestPaymentService(env)
	ctx := context.Background()

	payment, err := service.CreatePayment(ctx, &usecase.CreatePaymentInput{PropertyID: property.ID, Amount: mustDecimal(t, "40")})
	require.NoError(t, err)
	_, err = service.RecordPaymentDetail(ctx, uuid.Nil, &usecase.RecordPaymentDetailInput{
		PropertyID: property.ID,
		PaymentID:  &payment.ID,
		Amount:     mustDecimal(t, "40"),
	})
	require.NoError(t, err)

	stored, err := service.GetPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, statuses["payment:Completed"], *stored.StatusID)

	raised, err := service.UpdatePayment(ctx, payment.ID, &usecase.UpdatePaymentInput{Amount: ptr(mustDecimal(t, "90"))})
	require.NoError(t, err)
	assert.Equal(t, statuses["payment:Partial"], *raised.StatusID)

	exempt, err := service.UpdatePayment(ctx, payment.ID, &usecase.UpdatePaymentInput{IsExempt: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, statuses["payment:Completed"], *exempt.StatusID)

	pendingID := statuses["payment:Pending"]
	explicit, err := service.UpdatePayment(ctx, payment.ID, &usecase.UpdatePaymentInput{IsExempt: ptr(false), StatusID: &pendingID})
	require.NoError(t, err)
	assert.Equal(t, pendingID, *explicit.StatusID, "an explicit status wins")

	described, err := service.UpdatePayment(ctx, payment.ID, &usecase.UpdatePaymentInput{Description: ptr("Corrected")})
	require.NoError(t, err)
	assert.Equal(t, pendingID, *described.StatusID, "amounts untouched, status kept")
}

func TestPaymentService_UpdatePayment_ZeroFeeExempt(t *testing.T) {
	env := newTestEnv(t)
	statuses := env.seedStatuses(t)
	property := env.seedProperty(t, env.seedPropertyType(t, "0"), "10", env.seedOwner(t))
	service := newTestPaymentService(env)
	ctx := context.Background()

	yearly, err := service.CreateYearlyPayment(ctx, property.ID, 2025)
	require.NoError(t, err)
	require.True(t, yearly.Amount.IsZero())

	updated, err := service.UpdatePayment(ctx, yearly.ID, &usecase.UpdatePaymentInput{Description: ptr("Municipal building")})
	require.NoError(t, err)
	assert.Equal(t, "Municipal building", updated.Description)
	assert.Equal(t, statuses["payment:Completed"], *updated.StatusID)

	_, err = service.UpdatePayment(ctx, yearly.ID, &usecase.UpdatePaymentInput{IsExempt: ptr(false)})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidAmount), "a zero amount needs the exemption")
}
