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

func newTestPersonService(env *testEnv) usecase.PersonUsecase {
	return NewPersonService(PersonServiceParams{
		TxManager:             env.txManager,
		OwnerRepo:             postgres.NewOwnerRepository(env.db),
		ResponsiblePersonRepo: postgres.NewResponsiblePersonRepository(env.db),
		Logger:                env.logger,
	})
}

func TestPersonService_OwnerLifecycle(t *testing.T) {
	env := newTestEnv(t)
	service := newTestPersonService(env)
	ctx := context.Background()

	owner, err := service.CreateOwner(ctx, &usecase.PersonInput{FirstName: " Moussa ", LastName: "Keita", NationalID: "ML-001"})
	require.NoError(t, err)
	assert.Equal(t, "Moussa Keita", owner.FullName())

	_, err = service.CreateOwner(ctx, &usecase.PersonInput{FirstName: "Other", NationalID: "ML-001"})
	assert.True(t, errors.Is(err, domainerrors.ErrPersonAlreadyExists))

	phone := "+223 70 00 00 00"
	updated, err := service.UpdateOwner(ctx, owner.ID, &usecase.UpdatePersonInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Moussa", updated.FirstName)

	result, err := service.ListOwners(ctx, "keita", entity.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Total)

	require.NoError(t, service.DeleteOwner(ctx, owner.ID))
	_, err = service.GetOwner(ctx, owner.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrPersonNotFound))
}

func TestPersonService_DeleteOwner_InUse(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedOwner(t)
	env.seedProperty(t, env.seedPropertyType(t, "10"), "100", owner)
	service := newTestPersonService(env)

	err := service.DeleteOwner(context.Background(), owner.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPersonInUse))
}

func TestPersonService_ResponsiblePerson(t *testing.T) {
	env := newTestEnv(t)
	service := newTestPersonService(env)
	ctx := context.Background()

	person, err := service.CreateResponsiblePerson(ctx, &usecase.PersonInput{FirstName: "Awa", Relationship: "Tenant"})
	require.NoError(t, err)
	assert.Equal(t, "Tenant", person.Relationship)

	relationship := "Caretaker"
	updated, err := service.UpdateResponsiblePerson(ctx, person.ID, &usecase.UpdatePersonInput{Relationship: &relationship})
	require.NoError(t, err)
	assert.Equal(t, "Caretaker", updated.Relationship)

	blank := ""
	_, err = service.UpdateResponsiblePerson(ctx, person.ID, &usecase.UpdatePersonInput{FirstName: &blank})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	require.NoError(t, service.DeleteResponsiblePerson(ctx, person.ID))
}
