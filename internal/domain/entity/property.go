package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"
)

// Property is a registered parcel or building subject to the yearly municipal fee.
type Property struct {
	Base
	PlateNumber         string          `json:"plate_number"`
	Address             string          `json:"address"`
	Description         string          `json:"description"`
	Latitude            float64         `json:"latitude"`
	Longitude           float64         `json:"longitude"`
	AreaSize            decimal.Decimal `json:"area_size"`
	PropertyTypeID      uuid.UUID       `json:"property_type_id"`
	StatusID            *uuid.UUID      `json:"status_id,omitempty"`
	OwnerID             *uuid.UUID      `json:"owner_id,omitempty"`
	ResponsiblePersonID *uuid.UUID      `json:"responsible_person_id,omitempty"`
	SectionID           *uuid.UUID      `json:"section_id,omitempty"`
	SubSectionID        *uuid.UUID      `json:"sub_section_id,omitempty"`
	PaymentStatus       string          `json:"payment_status"` // Pending, Paid or Paid_partially.
	PaidAmount          decimal.Decimal `json:"paid_amount"`    // Sum of all installment amounts.
	PhotoKey            string          `json:"photo_key,omitempty"`
	ApprovedAt          *time.Time      `json:"approved_at,omitempty"`
	RegisteredByID      *uuid.UUID      `json:"registered_by_id,omitempty"`
}

// Location returns the property position as an orb point (lon, lat).
func (p *Property) Location() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

// HasContact reports whether an owner or a responsible person is attached.
func (p *Property) HasContact() bool {
	return p.OwnerID != nil || p.ResponsiblePersonID != nil
}

// ExpectedAmount is the yearly fee: the type price per unit times the area.
func ExpectedAmount(price, area decimal.Decimal) decimal.Decimal {
	return price.Mul(area).Round(2)
}

// PropertyFilter narrows a property listing. Nil or zero fields do not filter.
type PropertyFilter struct {
	StatusID            *uuid.UUID
	PaymentStatus       string
	OwnerID             *uuid.UUID
	ResponsiblePersonID *uuid.UUID
	SectionID           *uuid.UUID
	TypeID              *uuid.UUID
	Search              string
	BBox                *orb.Bound
}

// PropertyBalance summarizes what a property owes for its yearly fee.
type PropertyBalance struct {
	PropertyID    uuid.UUID       `json:"property_id"`
	Expected      decimal.Decimal `json:"expected"`
	Paid          decimal.Decimal `json:"paid"`
	Remaining     decimal.Decimal `json:"remaining"`
	PaymentStatus string          `json:"payment_status"`
}

// PropertyEvent is published when something about a property changes that
// connected clients should see live.
type PropertyEvent struct {
	Type        string    `json:"type"`
	PropertyID  uuid.UUID `json:"property_id"`
	PlateNumber string    `json:"plate_number"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ActorID     uuid.UUID `json:"actor_id,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// PropertyPhoto is a stored property photo with its content type.
type PropertyPhoto struct {
	Key         string
	ContentType string
	Size        int64
	// Checksum is the hex SHA256 of the content, set on upload only.
	Checksum string
	ModTime  time.Time
}
