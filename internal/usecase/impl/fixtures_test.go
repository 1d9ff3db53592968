package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"cadastre/config"
	"cadastre/internal/domain/constants"
	"cadastre/internal/domain/entity"
	"cadastre/internal/domain/repository"
	"cadastre/internal/infra/auth"
	"cadastre/internal/infra/persistence/postgres"
	"cadastre/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "Str0ng!Pass"

// testEnv bundles a migrated SQLite database with the repositories built on it.
type testEnv struct {
	db        *gorm.DB
	txManager repository.TransactionManager
	cfg       *config.Config
	logger    *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)

	return &testEnv{
		db:        db,
		txManager: postgres.NewTransactionManager(db),
		cfg: &config.Config{
			SecretKey: config.SecretKeyConfig{Access: "test-access", Refresh: "test-refresh"},
			Auth:      &config.AuthConfig{BcryptCost: 4},
			Storage: &config.StorageConfig{
				MaxPhotoSize:        1024,
				AllowedContentTypes: []string{"image/png", "image/jpeg"},
			},
			Billing: &config.BillingConfig{
				PendingStatusName:  "Pending",
				ApprovedStatusName: "Approved",
				YearlyDueMonth:     3,
			},
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)

	return d
}

func (env *testEnv) seedLookup(t *testing.T, kind entity.LookupKind, name string) *entity.Lookup {
	t.Helper()

	lookup := &entity.Lookup{Name: name}
	require.NoError(t, postgres.NewLookupRepository(env.db).Create(context.Background(), kind, lookup))

	return lookup
}

// seedStatuses inserts the property and payment status rows the seed command creates.
func (env *testEnv) seedStatuses(t *testing.T) map[string]uuid.UUID {
	t.Helper()

	ids := map[string]uuid.UUID{}
	for _, name := range []string{"Pending", "Approved"} {
		ids["property:"+name] = env.seedLookup(t, entity.LookupPropertyStatus, name).ID
	}
	for _, name := range []string{constants.PaymentStatusPending, constants.PaymentStatusPartial, constants.PaymentStatusCompleted} {
		ids["payment:"+name] = env.seedLookup(t, entity.LookupPaymentStatus, name).ID
	}

	return ids
}

func (env *testEnv) seedPropertyType(t *testing.T, price string) *entity.PropertyType {
	t.Helper()

	propertyType := &entity.PropertyType{Name: "Residential " + uuid.NewString()[:8], Price: mustDecimal(t, price)}
	require.NoError(t, postgres.NewLookupRepository(env.db).CreatePropertyType(context.Background(), propertyType))

	return propertyType
}

func (env *testEnv) seedOwner(t *testing.T) *entity.Owner {
	t.Helper()

	owner := &entity.Owner{Person: entity.Person{FirstName: "Amina", LastName: "Diallo"}}
	require.NoError(t, postgres.NewOwnerRepository(env.db).Create(context.Background(), owner))

	return owner
}

// seedProperty registers a property of the given type and area owned by owner.
func (env *testEnv) seedProperty(t *testing.T, propertyType *entity.PropertyType, area string, owner *entity.Owner) *entity.Property {
	t.Helper()

	property := &entity.Property{
		PlateNumber:    "P-" + uuid.NewString()[:8],
		Latitude:       12.65,
		Longitude:      -8.0,
		AreaSize:       mustDecimal(t, area),
		PropertyTypeID: propertyType.ID,
		OwnerID:        &owner.ID,
		PaymentStatus:  constants.PropertyPaymentPending,
	}
	require.NoError(t, postgres.NewPropertyRepository(env.db).Create(context.Background(), property))

	return property
}

func (env *testEnv) seedUser(t *testing.T, username string, active bool, roles ...*entity.Role) *entity.User {
	t.Helper()

	hash, err := auth.NewBcryptHasherWithCost(4).Hash(testPassword)
	require.NoError(t, err)

	ctx := context.Background()
	userRepo := postgres.NewUserRepository(env.db)
	user := &entity.User{Username: username, Email: username + "@example.org", PasswordHash: hash, IsActive: active}
	require.NoError(t, userRepo.Create(ctx, user))

	if len(roles) > 0 {
		ids := make([]uuid.UUID, 0, len(roles))
		for _, role := range roles {
			ids = append(ids, role.ID)
		}
		require.NoError(t, userRepo.ReplaceRoles(ctx, user.ID, ids))
	}

	return user
}

func (env *testEnv) seedRole(t *testing.T, name string, permissions ...string) *entity.Role {
	t.Helper()

	ctx := context.Background()
	role := &entity.Role{Name: name}
	require.NoError(t, postgres.NewRoleRepository(env.db).Create(ctx, role))

	if len(permissions) > 0 {
		permissionRepo := postgres.NewPermissionRepository(env.db)
		ids := make([]uuid.UUID, 0, len(permissions))
		for _, name := range permissions {
			permission := &entity.Permission{Name: name}
			require.NoError(t, permissionRepo.Create(ctx, permission))
			ids = append(ids, permission.ID)
		}
		require.NoError(t, postgres.NewRoleRepository(env.db).ReplacePermissions(ctx, role.ID, ids))
	}

	return role
}
