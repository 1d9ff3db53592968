package impl

import (
	"context"
	"testing"

	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/infra/auth"
	"cadastre/internal/infra/persistence/postgres"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(env *testEnv) usecase.UserUsecase {
	return NewUserService(UserServiceParams{
		TxManager: env.txManager,
		UserRepo:  postgres.NewUserRepository(env.db),
		Hasher:    auth.NewBcryptHasherWithCost(4),
		Logger:    env.logger,
	})
}

func TestUserService_CreateUser_WithRoles(t *testing.T) {
	env := newTestEnv(t)
	role := env.seedRole(t, "collector")
	service := newTestUserService(env)

	user, err := service.CreateUser(context.Background(), &usecase.CreateUserInput{
		Username: "  fieldagent ",
		Email:    "Field.Agent@Example.org",
		FullName: "Field Agent",
		Password: testPassword,
		RoleIDs:  []uuid.UUID{role.ID, role.ID},
	})

	require.NoError(t, err)
	assert.Equal(t, "fieldagent", user.Username)
	assert.Equal(t, "field.agent@example.org", user.Email)
	assert.True(t, user.IsActive)
	assert.Equal(t, []string{"collector"}, user.RoleNames())
	assert.True(t, auth.NewBcryptHasherWithCost(4).Check(testPassword, user.PasswordHash))
}

func TestUserService_CreateUser_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "taken", true)
	service := newTestUserService(env)

	tests := []struct {
		name     string
		input    usecase.CreateUserInput
		expected error
	}{
		{"weak password", usecase.CreateUserInput{Username: "weak", Email: "weak@example.org", Password: "short"}, domainerrors.ErrPasswordTooShort},
		{"duplicate username", usecase.CreateUserInput{Username: "taken", Email: "other@example.org", Password: testPassword}, domainerrors.ErrUserAlreadyExists},
		{"unknown role", usecase.CreateUserInput{Username: "newbie", Email: "newbie@example.org", Password: testPassword, RoleIDs: []uuid.UUID{uuid.New()}}, domainerrors.ErrRoleNotFound},
		{"blank username", usecase.CreateUserInput{Username: "  ", Email: "blank@example.org", Password: testPassword}, domainerrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateUser(context.Background(), &tt.input)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), err.Error())
		})
	}

	// The failed role assignment rolled the user back.
	_, err := postgres.NewUserRepository(env.db).FindByLogin(context.Background(), "newbie")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
}

func TestUserService_UpdateUser_PasswordChangeRevokesSessions(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "clerk", true)
	service := newTestUserService(env)
	ctx := context.Background()

	sessions := postgres.NewSessionRepository(env.db)
	require.NoError(t, sessions.Create(ctx, &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: "hash",
		ExpiresAt: user.CreatedAt.AddDate(1, 0, 0),
	}))

	newPassword := "N3w!Secret"
	fullName := "  Clerk Renamed "
	updated, err := service.UpdateUser(ctx, user.ID, &usecase.UpdateUserInput{Password: &newPassword, FullName: &fullName})

	require.NoError(t, err)
	assert.Equal(t, "Clerk Renamed", updated.FullName)
	assert.True(t, auth.NewBcryptHasherWithCost(4).Check(newPassword, updated.PasswordHash))

	_, err = sessions.FindByHash(ctx, "hash")
	assert.True(t, errors.Is(err, repository.ErrSessionNotFound))
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	env := newTestEnv(t)
	service := newTestUserService(env)

	name := "ghost"
	_, err := service.UpdateUser(context.Background(), uuid.New(), &usecase.UpdateUserInput{FullName: &name})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestUserService_ReplaceUserRoles(t *testing.T) {
	env := newTestEnv(t)
	clerk := env.seedRole(t, "clerk")
	collector := env.seedRole(t, "collector")
	user := env.seedUser(t, "agent", true, clerk)
	service := newTestUserService(env)

	updated, err := service.ReplaceUserRoles(context.Background(), user.ID, []uuid.UUID{collector.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"collector"}, updated.RoleNames())

	updated, err = service.ReplaceUserRoles(context.Background(), user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, updated.Roles)
}

func TestUserService_ListUsers(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alpha", true)
	env.seedUser(t, "beta", false)
	service := newTestUserService(env)

	active := true
	result, err := service.ListUsers(context.Background(), repository.UserFilter{IsActive: &active}, entity.Page{})

	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Total)
	assert.Equal(t, entity.DefaultPageLimit, result.Limit)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "alpha", result.Items[0].Username)
}
