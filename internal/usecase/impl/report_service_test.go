package impl

import (
	"context"
	"testing"
	"time"

	"cadastre/internal/domain/constants"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/infra/persistence/postgres"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReportService(env *testEnv) usecase.ReportUsecase {
	return NewReportService(ReportServiceParams{
		PropertyRepo:      postgres.NewPropertyRepository(env.db),
		PaymentDetailRepo: postgres.NewPaymentDetailRepository(env.db),
		PolicyRepo:        postgres.NewPolicyRepository(env.db),
		Logger:            env.logger,
	})
}

func TestReportService_CollectionReport(t *testing.T) {
	env := newTestEnv(t)
	propertyType := env.seedPropertyType(t, "1")
	owner := env.seedOwner(t)
	payments := newTestPaymentService(env)
	policies := newTestPolicyService(env)
	service := newTestReportService(env)
	ctx := context.Background()
	collectorID := uuid.New()

	for _, amount := range []string{"120", "80"} {
		property := env.seedProperty(t, propertyType, "200", owner)
		_, err := payments.RecordPaymentDetail(ctx, collectorID, &usecase.RecordPaymentDetailInput{
			PropertyID: property.ID,
			Amount:     mustDecimal(t, amount),
		})
		require.NoError(t, err)
	}
	_, err := payments.RecordPaymentDetail(ctx, uuid.New(), &usecase.RecordPaymentDetailInput{
		PropertyID: env.seedProperty(t, propertyType, "200", owner).ID,
		Amount:     mustDecimal(t, "50"),
	})
	require.NoError(t, err)

	from, to := fixedNow.Add(-time.Hour), fixedNow.Add(time.Hour)

	// Without policies the municipality keeps everything.
	report, err := service.CollectionReport(ctx, &usecase.CollectionReportInput{CollectorID: &collectorID, From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.DetailCount)
	assert.Equal(t, "200.00", report.TotalCollected.StringFixed(2))
	assert.True(t, report.CommissionAmount.IsZero())
	assert.Equal(t, "200.00", report.MunicipalityShare.StringFixed(2))

	_, err = policies.CreateCommissionPolicy(ctx, &usecase.CommissionPolicyInput{Name: "Field", Percentage: mustDecimal(t, "10")})
	require.NoError(t, err)
	_, err = policies.CreateRevenueSplitPolicy(ctx, &usecase.RevenueSplitPolicyInput{
		Name:                   "Standard",
		OperatorPercentage:     mustDecimal(t, "30"),
		MunicipalityPercentage: mustDecimal(t, "70"),
	})
	require.NoError(t, err)

	report, err = service.CollectionReport(ctx, &usecase.CollectionReportInput{CollectorID: &collectorID, From: &from, To: &to})
	require.NoError(t, err)
	assert.Equal(t, "20.00", report.CommissionAmount.StringFixed(2))
	assert.Equal(t, "180.00", report.NetAmount.StringFixed(2))
	assert.Equal(t, "54.00", report.OperatorShare.StringFixed(2))
	assert.Equal(t, "126.00", report.MunicipalityShare.StringFixed(2))

	all, err := service.CollectionReport(ctx, &usecase.CollectionReportInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.DetailCount)
	assert.Equal(t, "250.00", all.TotalCollected.StringFixed(2))

	later := fixedNow.Add(2 * time.Hour)
	empty, err := service.CollectionReport(ctx, &usecase.CollectionReportInput{From: &to, To: &later})
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.DetailCount)
	assert.True(t, empty.TotalCollected.IsZero())
}

func TestReportService_CollectionReport_InvalidWindow(t *testing.T) {
	env := newTestEnv(t)
	service := newTestReportService(env)

	_, err := service.CollectionReport(context.Background(), &usecase.CollectionReportInput{From: &fixedNow, To: &fixedNow})

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestReportService_Summary(t *testing.T) {
	env := newTestEnv(t)
	propertyType := env.seedPropertyType(t, "2")
	owner := env.seedOwner(t)
	payments := newTestPaymentService(env)
	service := newTestReportService(env)
	ctx := context.Background()

	paid := env.seedProperty(t, propertyType, "10", owner)
	env.seedProperty(t, propertyType, "15", owner)

	_, err := payments.RecordPaymentDetail(ctx, uuid.Nil, &usecase.RecordPaymentDetailInput{PropertyID: paid.ID, Amount: mustDecimal(t, "20")})
	require.NoError(t, err)

	summary, err := service.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.PropertyCount)
	assert.Equal(t, int64(1), summary.ByPaymentStatus[constants.PropertyPaymentPaid])
	assert.Equal(t, int64(1), summary.ByPaymentStatus[constants.PropertyPaymentPending])
	assert.Equal(t, "50.00", summary.TotalExpected.StringFixed(2))
	assert.Equal(t, "20.00", summary.TotalPaid.StringFixed(2))
	assert.Equal(t, "30.00", summary.TotalOutstanding.StringFixed(2))
}
