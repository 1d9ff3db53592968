package model

import "github.com/shopspring/decimal"

// PropertyTypeModel mirrors the 'property_types' table.
type PropertyTypeModel struct {
	Base
	Name        string          `gorm:"type:varchar(150);uniqueIndex;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (PropertyTypeModel) TableName() string {
	return "property_types"
}

// LookupModel is the shape shared by the plain name/description tables.
type LookupModel struct {
	Base
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

// PropertyStatusModel mirrors the 'property_statuses' table.
type PropertyStatusModel struct{ LookupModel }

// TableName explicitly sets the table name for GORM.
func (PropertyStatusModel) TableName() string {
	return "property_statuses"
}

// PaymentMethodModel mirrors the 'payment_methods' table.
type PaymentMethodModel struct{ LookupModel }

// TableName explicitly sets the table name for GORM.
func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}

// PaymentStatusModel mirrors the 'payment_statuses' table.
type PaymentStatusModel struct{ LookupModel }

// TableName explicitly sets the table name for GORM.
func (PaymentStatusModel) TableName() string {
	return "payment_statuses"
}
