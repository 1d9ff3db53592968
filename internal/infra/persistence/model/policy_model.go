package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionPolicyModel mirrors the 'commission_policies' table.
type CommissionPolicyModel struct {
	Base
	Name          string          `gorm:"type:varchar(150);not null"`
	Percentage    decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	IsActive      bool            `gorm:"not null;default:false;index"`
	EffectiveFrom *time.Time
	Description   string `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (CommissionPolicyModel) TableName() string {
	return "commission_policies"
}

// RevenueSplitPolicyModel mirrors the 'revenue_split_policies' table.
type RevenueSplitPolicyModel struct {
	Base
	Name                   string          `gorm:"type:varchar(150);not null"`
	OperatorPercentage     decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	MunicipalityPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	IsActive               bool            `gorm:"not null;default:false;index"`
	EffectiveFrom          *time.Time
	Description            string `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (RevenueSplitPolicyModel) TableName() string {
	return "revenue_split_policies"
}
