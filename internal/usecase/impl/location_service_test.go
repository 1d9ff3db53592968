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

func newTestLocationService(env *testEnv) usecase.LocationUsecase {
	return NewLocationService(LocationServiceParams{
		TxManager:    env.txManager,
		LocationRepo: postgres.NewLocationRepository(env.db),
		Logger:       env.logger,
	})
}

func TestLocationService_Hierarchy(t *testing.T) {
	env := newTestEnv(t)
	service := newTestLocationService(env)
	ctx := context.Background()

	region, err := service.CreateRegion(ctx, &usecase.RegionInput{Name: "Kayes", Code: " KY "})
	require.NoError(t, err)
	assert.Equal(t, "KY", region.Code)

	city, err := service.CreateCity(ctx, &usecase.AreaInput{Name: "Bafoulabe", ParentID: region.ID})
	require.NoError(t, err)

	section, err := service.CreateSection(ctx, &usecase.AreaInput{Name: "North", ParentID: city.ID})
	require.NoError(t, err)
	assert.True(t, section.IsActive)

	subSection, err := service.CreateSubSection(ctx, &usecase.AreaInput{Name: "North-1", ParentID: section.ID})
	require.NoError(t, err)
	assert.Equal(t, section.ID, subSection.SectionID)

	cities, err := service.ListCities(ctx, &region.ID)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, city.ID, cities[0].ID)
}

func TestLocationService_CreateCity_UnknownRegion(t *testing.T) {
	env := newTestEnv(t)
	service := newTestLocationService(env)

	_, err := service.CreateCity(context.Background(), &usecase.AreaInput{Name: "Nowhere", ParentID: uuid.New()})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrLookupNotFound))
}

func TestLocationService_DeactivateSection(t *testing.T) {
	env := newTestEnv(t)
	service := newTestLocationService(env)
	ctx := context.Background()

	region, err := service.CreateRegion(ctx, &usecase.RegionInput{Name: "Sikasso"})
	require.NoError(t, err)
	city, err := service.CreateCity(ctx, &usecase.AreaInput{Name: "Koutiala", ParentID: region.ID})
	require.NoError(t, err)
	section, err := service.CreateSection(ctx, &usecase.AreaInput{Name: "Market", ParentID: city.ID})
	require.NoError(t, err)

	require.NoError(t, service.DeactivateSection(ctx, section.ID))

	active, err := service.ListSections(ctx, &city.ID, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := service.ListSections(ctx, &city.ID, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsActive)

	// Soft-deleted sections stay addressable.
	got, err := service.GetSection(ctx, section.ID)
	require.NoError(t, err)
	assert.Equal(t, "Market", got.Name)
}

func TestLocationService_UpdateSubSection_MovesSection(t *testing.T) {
	env := newTestEnv(t)
	service := newTestLocationService(env)
	ctx := context.Background()

	region, err := service.CreateRegion(ctx, &usecase.RegionInput{Name: "Mopti"})
	require.NoError(t, err)
	city, err := service.CreateCity(ctx, &usecase.AreaInput{Name: "Djenne", ParentID: region.ID})
	require.NoError(t, err)
	east, err := service.CreateSection(ctx, &usecase.AreaInput{Name: "East", ParentID: city.ID})
	require.NoError(t, err)
	west, err := service.CreateSection(ctx, &usecase.AreaInput{Name: "West", ParentID: city.ID})
	require.NoError(t, err)
	subSection, err := service.CreateSubSection(ctx, &usecase.AreaInput{Name: "Block A", ParentID: east.ID})
	require.NoError(t, err)

	moved, err := service.UpdateSubSection(ctx, subSection.ID, &usecase.UpdateAreaInput{ParentID: &west.ID})
	require.NoError(t, err)
	assert.Equal(t, west.ID, moved.SectionID)

	missing := uuid.New()
	_, err = service.UpdateSubSection(ctx, subSection.ID, &usecase.UpdateAreaInput{ParentID: &missing})
	assert.True(t, errors.Is(err, domainerrors.ErrLookupNotFound))
}
