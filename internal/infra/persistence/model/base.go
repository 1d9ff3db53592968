// Package model holds the GORM persistence structs. They are exported so the
// GORM Gen tool can generate typed queries from them.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every table keyed by a UUID. IDs are generated in Go
// (UUIDv7) so the schema works on any dialect.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns a time-ordered UUID when none is set.
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID != uuid.Nil {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	b.ID = id

	return nil
}

// All returns every persistence model, in dependency order, for AutoMigrate and code generation.
func All() []any {
	return []any{
		&UserModel{},
		&RoleModel{},
		&PermissionModel{},
		&UserRoleModel{},
		&RolePermissionModel{},
		&RefreshTokenModel{},
		&RegionModel{},
		&CityModel{},
		&SectionModel{},
		&SubSectionModel{},
		&PropertyTypeModel{},
		&PropertyStatusModel{},
		&PaymentMethodModel{},
		&PaymentStatusModel{},
		&OwnerModel{},
		&ResponsiblePersonModel{},
		&PropertyModel{},
		&PaymentModel{},
		&PaymentDetailModel{},
		&CommissionPolicyModel{},
		&RevenueSplitPolicyModel{},
	}
}
