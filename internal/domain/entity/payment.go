package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is an amount billed to a property, typically the yearly fee.
type Payment struct {
	Base
	PropertyID      uuid.UUID        `json:"property_id"`
	Amount          decimal.Decimal  `json:"amount"`
	DiscountAmount  decimal.Decimal  `json:"discount_amount"`
	IsExempt        bool             `json:"is_exempt"`
	StatusID        *uuid.UUID       `json:"status_id,omitempty"`
	PaymentMethodID *uuid.UUID       `json:"payment_method_id,omitempty"`
	DueDate         *time.Time       `json:"due_date,omitempty"`
	BillingYear     *int             `json:"billing_year,omitempty"`
	Description     string           `json:"description"`
	Metadata        map[string]any   `json:"metadata,omitempty"`
	Details         []*PaymentDetail `json:"details,omitempty"`
}

// NetAmount is the amount due after the discount.
func (p *Payment) NetAmount() decimal.Decimal {
	return p.Amount.Sub(p.DiscountAmount)
}

// MetadataYear returns the billing year recorded in the metadata, if any.
// JSON numbers decode as float64, so both numeric shapes are accepted.
func (p *Payment) MetadataYear() (int, bool) {
	if p.Metadata == nil {
		return 0, false
	}
	switch v := p.Metadata["year"].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// PaymentFilter narrows a payment listing.
type PaymentFilter struct {
	PropertyID *uuid.UUID
	StatusID   *uuid.UUID
	Year       *int
}

// PaymentDetail is one installment actually collected against a property.
type PaymentDetail struct {
	Base
	PropertyID        uuid.UUID       `json:"property_id"`
	PaymentID         *uuid.UUID      `json:"payment_id,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	InstallmentNumber int             `json:"installment_number"`
	PaymentMethodID   *uuid.UUID      `json:"payment_method_id,omitempty"`
	CollectorID       *uuid.UUID      `json:"collector_id,omitempty"`
	PaidAt            time.Time       `json:"paid_at"`
	ReceiptNumber     string          `json:"receipt_number"`
	Notes             string          `json:"notes"`
}

// PaymentDetailFilter narrows an installment listing. From is inclusive, To exclusive.
type PaymentDetailFilter struct {
	PropertyID  *uuid.UUID
	PaymentID   *uuid.UUID
	CollectorID *uuid.UUID
	From        *time.Time
	To          *time.Time
}

// Reconciliation is the outcome of recording an installment.
type Reconciliation struct {
	Detail    *PaymentDetail  `json:"detail"`
	Property  *Property       `json:"property"`
	Payment   *Payment        `json:"payment,omitempty"`
	Expected  decimal.Decimal `json:"expected"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	Remaining decimal.Decimal `json:"remaining"`
}
