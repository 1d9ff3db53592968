package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyModel mirrors the 'properties' table.
type PropertyModel struct {
	Base
	PlateNumber         string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	Address             string          `gorm:"type:text"`
	Description         string          `gorm:"type:text"`
	Latitude            float64         `gorm:"not null;default:0;index:idx_properties_lat_lon"`
	Longitude           float64         `gorm:"not null;default:0;index:idx_properties_lat_lon"`
	AreaSize            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PropertyTypeID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	StatusID            *uuid.UUID      `gorm:"type:uuid;index"`
	OwnerID             *uuid.UUID      `gorm:"type:uuid;index"`
	ResponsiblePersonID *uuid.UUID      `gorm:"type:uuid;index"`
	SectionID           *uuid.UUID      `gorm:"type:uuid;index"`
	SubSectionID        *uuid.UUID      `gorm:"type:uuid"`
	PaymentStatus       string          `gorm:"type:varchar(30);not null;index"`
	PaidAmount          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PhotoKey            string          `gorm:"type:varchar(255)"`
	ApprovedAt          *time.Time
	RegisteredByID      *uuid.UUID `gorm:"type:uuid"`
}

// TableName explicitly sets the table name for GORM.
func (PropertyModel) TableName() string {
	return "properties"
}
