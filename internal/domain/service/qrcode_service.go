package service

import (
	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
)

// PropertyQRPayload is what a property certificate QR code encodes.
type PropertyQRPayload struct {
	PropertyID  uuid.UUID `json:"property_id"`
	PlateNumber string    `json:"plate_number"`
	VerifyURL   string    `json:"verify_url"`
}

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GeneratePropertyQR renders a PNG QR code identifying the property.
	GeneratePropertyQR(property *entity.Property) ([]byte, error)

	// ParsePropertyQR decodes the payload text scanned from a certificate.
	ParsePropertyQR(qrData string) (*PropertyQRPayload, error)
}
