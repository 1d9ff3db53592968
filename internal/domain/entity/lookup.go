package entity

import "github.com/shopspring/decimal"

// PropertyType classifies properties and carries the yearly fee per unit of area.
type PropertyType struct {
	Base
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// Lookup is the shared shape of the name/description lookup tables.
type Lookup struct {
	Base
	Name        string `json:"name"`
	Description string `json:"description"`
}

type (
	// PropertyStatus is a registration workflow state such as Pending or Approved.
	PropertyStatus = Lookup
	// PaymentMethod is a way of paying, e.g. cash or bank transfer.
	PaymentMethod = Lookup
	// PaymentStatus is the settlement state of a payment: Pending, Partial or Completed.
	PaymentStatus = Lookup
)

// LookupKind names the simple name/description lookup tables.
type LookupKind string

const (
	LookupPropertyStatus LookupKind = "property_status"
	LookupPaymentMethod  LookupKind = "payment_method"
	LookupPaymentStatus  LookupKind = "payment_status"
)

// IsValid checks if the LookupKind is a known lookup table.
func (k LookupKind) IsValid() bool {
	switch k {
	case LookupPropertyStatus, LookupPaymentMethod, LookupPaymentStatus:
		return true
	default:
		return false
	}
}
