package usecase

import "context"

// SeedInput names the administrator created on first seed. An empty username skips it.
type SeedInput struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// SeedResult reports what a seed run inserted.
type SeedResult struct {
	PermissionsCreated int  `json:"permissions_created"`
	LookupsCreated     int  `json:"lookups_created"`
	AdminRoleCreated   bool `json:"admin_role_created"`
	AdminUserCreated   bool `json:"admin_user_created"`
}

// SeedUsecase installs the reference data a fresh database needs. Running it again changes nothing.
type SeedUsecase interface {
	Seed(ctx context.Context, input *SeedInput) (*SeedResult, error)
}
