package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PaymentModel mirrors the 'payments' table. At most one payment per property
// carries a given billing year.
type PaymentModel struct {
	Base
	PropertyID      uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_payments_property_year"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IsExempt        bool            `gorm:"not null;default:false"`
	StatusID        *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentMethodID *uuid.UUID      `gorm:"type:uuid"`
	DueDate         *time.Time      `gorm:"index"`
	BillingYear     *int            `gorm:"uniqueIndex:idx_payments_property_year"`
	Description     string          `gorm:"type:text"`
	Metadata        datatypes.JSONMap
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}

// PaymentDetailModel mirrors the 'payment_details' table: one row per collected installment.
type PaymentDetailModel struct {
	Base
	PropertyID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentID         *uuid.UUID      `gorm:"type:uuid;index"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	InstallmentNumber int             `gorm:"not null"`
	PaymentMethodID   *uuid.UUID      `gorm:"type:uuid"`
	CollectorID       *uuid.UUID      `gorm:"type:uuid;index"`
	PaidAt            time.Time       `gorm:"not null;index"`
	ReceiptNumber     string          `gorm:"type:varchar(100)"`
	Notes             string          `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (PaymentDetailModel) TableName() string {
	return "payment_details"
}
