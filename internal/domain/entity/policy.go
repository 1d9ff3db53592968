package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionPolicy is the percentage of collections paid to collectors.
type CommissionPolicy struct {
	Base
	Name          string          `json:"name"`
	Percentage    decimal.Decimal `json:"percentage"`
	IsActive      bool            `json:"is_active"`
	EffectiveFrom *time.Time      `json:"effective_from,omitempty"`
	Description   string          `json:"description"`
}

// RevenueSplitPolicy divides net collections between the collection operator and the municipality.
type RevenueSplitPolicy struct {
	Base
	Name                   string          `json:"name"`
	OperatorPercentage     decimal.Decimal `json:"operator_percentage"`
	MunicipalityPercentage decimal.Decimal `json:"municipality_percentage"`
	IsActive               bool            `json:"is_active"`
	EffectiveFrom          *time.Time      `json:"effective_from,omitempty"`
	Description            string          `json:"description"`
}

// CollectionReport totals installments over a period, optionally for one collector.
type CollectionReport struct {
	CollectorID            *uuid.UUID      `json:"collector_id,omitempty"`
	From                   *time.Time      `json:"from,omitempty"`
	To                     *time.Time      `json:"to,omitempty"`
	TotalCollected         decimal.Decimal `json:"total_collected"`
	DetailCount            int64           `json:"detail_count"`
	CommissionPercentage   decimal.Decimal `json:"commission_percentage"`
	CommissionAmount       decimal.Decimal `json:"commission_amount"`
	NetAmount              decimal.Decimal `json:"net_amount"`
	OperatorPercentage     decimal.Decimal `json:"operator_percentage"`
	OperatorShare          decimal.Decimal `json:"operator_share"`
	MunicipalityPercentage decimal.Decimal `json:"municipality_percentage"`
	MunicipalityShare      decimal.Decimal `json:"municipality_share"`
}

// CollectionSummary is the registry-wide fee position.
type CollectionSummary struct {
	PropertyCount    int64            `json:"property_count"`
	ByPaymentStatus  map[string]int64 `json:"by_payment_status"`
	TotalExpected    decimal.Decimal  `json:"total_expected"`
	TotalPaid        decimal.Decimal  `json:"total_paid"`
	TotalOutstanding decimal.Decimal  `json:"total_outstanding"`
}
