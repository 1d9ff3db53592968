package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Role groups permissions and is assigned to users.
type Role struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Permissions []*Permission `json:"permissions,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Permission is a named capability such as "properties.write".
type Permission struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RolePermission links a role to a permission.
type RolePermission struct {
	RoleID       uuid.UUID `json:"role_id"`
	PermissionID uuid.UUID `json:"permission_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Roles is a slice of role names for convenience.
type Roles []string

// Contains checks if the roles slice contains a specific role name.
func (rs Roles) Contains(role string) bool {
	return slices.Contains(rs, role)
}

// ContainsAny reports whether at least one of the given roles is present.
func (rs Roles) ContainsAny(roles ...string) bool {
	for _, r := range roles {
		if rs.Contains(r) {
			return true
		}
	}

	return false
}

// Permission names gating the API. Seeded by the CLI and assigned to the admin role.
const (
	PermUsersRead         = "users.read"
	PermUsersWrite        = "users.write"
	PermRolesManage       = "roles.manage"
	PermLookupsWrite      = "lookups.write"
	PermPersonsRead       = "persons.read"
	PermPersonsWrite      = "persons.write"
	PermPropertiesRead    = "properties.read"
	PermPropertiesWrite   = "properties.write"
	PermPropertiesApprove = "properties.approve"
	PermPaymentsRead      = "payments.read"
	PermPaymentsWrite     = "payments.write"
	PermPaymentsCollect   = "payments.collect"
	PermPoliciesManage    = "policies.manage"
	PermReportsRead       = "reports.read"
)

// AllPermissions lists every permission name known to the API.
func AllPermissions() []string {
	return []string{
		PermUsersRead, PermUsersWrite, PermRolesManage, PermLookupsWrite,
		PermPersonsRead, PermPersonsWrite,
		PermPropertiesRead, PermPropertiesWrite, PermPropertiesApprove,
		PermPaymentsRead, PermPaymentsWrite, PermPaymentsCollect,
		PermPoliciesManage, PermReportsRead,
	}
}
