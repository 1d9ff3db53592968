package impl

import (
	"context"
	"testing"

	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/infra/persistence/postgres"
	"cadastre/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLookupService(env *testEnv) usecase.LookupUsecase {
	return NewLookupService(LookupServiceParams{
		TxManager:  env.txManager,
		LookupRepo: postgres.NewLookupRepository(env.db),
		Logger:     env.logger,
	})
}

func TestLookupService_PropertyTypes(t *testing.T) {
	env := newTestEnv(t)
	service := newTestLookupService(env)
	ctx := context.Background()

	created, err := service.CreatePropertyType(ctx, &usecase.PropertyTypeInput{Name: "Commercial", Price: mustDecimal(t, "12.505")})
	require.NoError(t, err)
	assert.Equal(t, "12.51", created.Price.StringFixed(2))

	_, err = service.CreatePropertyType(ctx, &usecase.PropertyTypeInput{Name: "Broken", Price: mustDecimal(t, "-1")})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidAmount))

	_, err = service.CreatePropertyType(ctx, &usecase.PropertyTypeInput{Name: "Commercial", Price: mustDecimal(t, "1")})
	assert.True(t, errors.Is(err, domainerrors.ErrLookupAlreadyExists))

	price := mustDecimal(t, "15")
	updated, err := service.UpdatePropertyType(ctx, created.ID, &usecase.UpdatePropertyTypeInput{Price: &price})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))
	assert.Equal(t, "Commercial", updated.Name)
}

func TestLookupService_Lookups(t *testing.T) {
	env := newTestEnv(t)
	service := newTestLookupService(env)
	ctx := context.Background()

	cash, err := service.CreateLookup(ctx, entity.LookupPaymentMethod, &usecase.NamedInput{Name: "Cash"})
	require.NoError(t, err)

	_, err = service.CreateLookup(ctx, entity.LookupPropertyStatus, &usecase.NamedInput{Name: "Pending"})
	require.NoError(t, err)

	methods, err := service.ListLookups(ctx, entity.LookupPaymentMethod)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, cash.ID, methods[0].ID)

	// Ids are scoped to their table.
	_, err = service.GetLookup(ctx, entity.LookupPaymentStatus, cash.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrLookupNotFound))

	_, err = service.ListLookups(ctx, entity.LookupKind("colors"))
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
