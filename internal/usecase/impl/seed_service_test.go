package impl

import (
	"context"
	"testing"

	"cadastre/internal/domain/constants"
	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/infra/auth"
	"cadastre/internal/infra/persistence/postgres"
	"cadastre/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSeedService(env *testEnv) usecase.SeedUsecase {
	return NewSeedService(SeedServiceParams{
		TxManager: env.txManager,
		Hasher:    auth.NewBcryptHasherWithCost(4),
		Config:    env.cfg,
		Logger:    env.logger,
	})
}

func TestSeedService_Seed_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	service := newTestSeedService(env)
	ctx := context.Background()
	input := &usecase.SeedInput{AdminUsername: "admin", AdminEmail: "Admin@Example.org", AdminPassword: testPassword}

	first, err := service.Seed(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, len(entity.AllPermissions()), first.PermissionsCreated)
	assert.Equal(t, 9, first.LookupsCreated)
	assert.True(t, first.AdminRoleCreated)
	assert.True(t, first.AdminUserCreated)

	second, err := service.Seed(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, &usecase.SeedResult{}, second)

	userRepo := postgres.NewUserRepository(env.db)
	admin, err := userRepo.FindByLogin(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.org", admin.Email)
	assert.True(t, admin.IsActive)

	granted, err := userRepo.FindPermissionNames(ctx, admin.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, entity.AllPermissions(), granted)

	statuses, err := postgres.NewLookupRepository(env.db).List(ctx, entity.LookupPaymentStatus)
	require.NoError(t, err)
	names := make([]string, 0, len(statuses))
	for _, status := range statuses {
		names = append(names, status.Name)
	}
	assert.ElementsMatch(t, []string{constants.PaymentStatusPending, constants.PaymentStatusPartial, constants.PaymentStatusCompleted}, names)
}

func TestSeedService_Seed_KeepsExistingRows(t *testing.T) {
	env := newTestEnv(t)
	env.seedLookup(t, entity.LookupPaymentMethod, "cash")
	env.seedRole(t, constants.DefaultAdminRoleName)
	service := newTestSeedService(env)

	result, err := service.Seed(context.Background(), &usecase.SeedInput{})
	require.NoError(t, err)
	assert.Equal(t, 8, result.LookupsCreated, "lookup names match case-insensitively")
	assert.False(t, result.AdminRoleCreated)
	assert.False(t, result.AdminUserCreated)
}

func TestSeedService_Seed_RejectsBadAdmin(t *testing.T) {
	env := newTestEnv(t)
	service := newTestSeedService(env)

	_, err := service.Seed(context.Background(), &usecase.SeedInput{AdminUsername: "admin", AdminPassword: testPassword})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = service.Seed(context.Background(), &usecase.SeedInput{AdminUsername: "admin", AdminEmail: "a@example.org", AdminPassword: "short"})
	assert.ErrorIs(t, err, domainerrors.ErrPasswordTooShort)

	permissions, err := postgres.NewPermissionRepository(env.db).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, permissions, "nothing is written when the admin is rejected")
}
