package impl

import (
	"context"
	"testing"

	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/infra/persistence/postgres"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPolicyService(env *testEnv) usecase.PolicyUsecase {
	return NewPolicyService(PolicyServiceParams{
		TxManager:  env.txManager,
		PolicyRepo: postgres.NewPolicyRepository(env.db),
		Logger:     env.logger,
	})
}

func TestPolicyService_CommissionPolicy(t *testing.T) {
	env := newTestEnv(t)
	service := newTestPolicyService(env)
	ctx := context.Background()

	_, err := service.ActiveCommissionPolicy(ctx)
	assert.True(t, errors.Is(err, domainerrors.ErrNoActivePolicy))

	policy, err := service.CreateCommissionPolicy(ctx, &usecase.CommissionPolicyInput{
		Name:       " Collectors 2026 ",
		Percentage: mustDecimal(t, "7.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Collectors 2026", policy.Name)
	assert.True(t, policy.IsActive)

	active, err := service.ActiveCommissionPolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, policy.ID, active.ID)

	updated, err := service.UpdateCommissionPolicy(ctx, policy.ID, &usecase.UpdateCommissionPolicyInput{
		Percentage: ptr(mustDecimal(t, "10")),
		IsActive:   ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "10.00", updated.Percentage.StringFixed(2))
	assert.False(t, updated.IsActive)

	_, err = service.ActiveCommissionPolicy(ctx)
	assert.True(t, errors.Is(err, domainerrors.ErrNoActivePolicy))

	policies, err := service.ListCommissionPolicies(ctx)
	require.NoError(t, err)
	assert.Len(t, policies, 1)
}

func TestPolicyService_CommissionPolicy_Invalid(t *testing.T) {
	env := newTestEnv(t)
	service := newTestPolicyService(env)
	ctx := context.Background()

	for _, pct := range []string{"-0.01", "100.01"} {
		_, err := service.CreateCommissionPolicy(ctx, &usecase.CommissionPolicyInput{Name: "c", Percentage: mustDecimal(t, pct)})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidPercentage), pct)
	}

	_, err := service.CreateCommissionPolicy(ctx, &usecase.CommissionPolicyInput{Name: "  ", Percentage: mustDecimal(t, "5")})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = service.UpdateCommissionPolicy(ctx, uuid.New(), &usecase.UpdateCommissionPolicyInput{})
	assert.True(t, errors.Is(err, domainerrors.ErrPolicyNotFound))
}

func TestPolicyService_RevenueSplitPolicy(t *testing.T) {
	env := newTestEnv(t)
	service := newTestPolicyService(env)
	ctx := context.Background()

	_, err := service.CreateRevenueSplitPolicy(ctx, &usecase.RevenueSplitPolicyInput{
		Name:                   "Uneven",
		OperatorPercentage:     mustDecimal(t, "30"),
		MunicipalityPercentage: mustDecimal(t, "60"),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidPercentage))

	policy, err := service.CreateRevenueSplitPolicy(ctx, &usecase.RevenueSplitPolicyInput{
		Name:                   "Standard",
		OperatorPercentage:     mustDecimal(t, "30"),
		MunicipalityPercentage: mustDecimal(t, "70"),
	})
	require.NoError(t, err)

	// Changing one side alone breaks the sum.
	_, err = service.UpdateRevenueSplitPolicy(ctx, policy.ID, &usecase.UpdateRevenueSplitPolicyInput{
		OperatorPercentage: ptr(mustDecimal(t, "25")),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidPercentage))

	updated, err := service.UpdateRevenueSplitPolicy(ctx, policy.ID, &usecase.UpdateRevenueSplitPolicyInput{
		OperatorPercentage:     ptr(mustDecimal(t, "25")),
		MunicipalityPercentage: ptr(mustDecimal(t, "75")),
	})
	require.NoError(t, err)
	assert.Equal(t, "75.00", updated.MunicipalityPercentage.StringFixed(2))

	stored, err := service.GetRevenueSplitPolicy(ctx, policy.ID)
	require.NoError(t, err)
	assert.Equal(t, "25.00", stored.OperatorPercentage.StringFixed(2))

	active, err := service.ActiveRevenueSplitPolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, policy.ID, active.ID)
}
