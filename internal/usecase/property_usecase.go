package usecase

import (
	"context"
	"io"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
	"github.com/shopspring/decimal"
)

// CreatePropertyInput represents the input for registering a property.
type CreatePropertyInput struct {
	PlateNumber         string          `json:"plate_number" validate:"required,max=50"`
	Address             string          `json:"address" validate:"max=500"`
	Description         string          `json:"description" validate:"max=2000"`
	Latitude            float64         `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude           float64         `json:"longitude" validate:"gte=-180,lte=180"`
	AreaSize            decimal.Decimal `json:"area_size"`
	PropertyTypeID      uuid.UUID       `json:"property_type_id" validate:"required"`
	StatusID            *uuid.UUID      `json:"status_id,omitempty"`
	OwnerID             *uuid.UUID      `json:"owner_id,omitempty"`
	ResponsiblePersonID *uuid.UUID      `json:"responsible_person_id,omitempty"`
	SectionID           *uuid.UUID      `json:"section_id,omitempty"`
	SubSectionID        *uuid.UUID      `json:"sub_section_id,omitempty"`
}

// UpdatePropertyInput changes only the fields that are present.
type UpdatePropertyInput struct {
	PlateNumber         *string          `json:"plate_number,omitempty" validate:"omitempty,min=1,max=50"`
	Address             *string          `json:"address,omitempty" validate:"omitempty,max=500"`
	Description         *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Latitude            *float64         `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude           *float64         `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	AreaSize            *decimal.Decimal `json:"area_size,omitempty"`
	PropertyTypeID      *uuid.UUID       `json:"property_type_id,omitempty"`
	StatusID            *uuid.UUID       `json:"status_id,omitempty"`
	OwnerID             *uuid.UUID       `json:"owner_id,omitempty"`
	ResponsiblePersonID *uuid.UUID       `json:"responsible_person_id,omitempty"`
	SectionID           *uuid.UUID       `json:"section_id,omitempty"`
	SubSectionID        *uuid.UUID       `json:"sub_section_id,omitempty"`

	// Explicitly detach a contact. The property must keep at least one of them.
	ClearOwner             bool `json:"clear_owner,omitempty"`
	ClearResponsiblePerson bool `json:"clear_responsible_person,omitempty"`
}

// PhotoUpload is an uploaded property photo.
type PhotoUpload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

// PhotoDownload streams a stored photo; the caller closes Body.
type PhotoDownload struct {
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// VerifyCertificateInput is the raw text read from a certificate QR code.
type VerifyCertificateInput struct {
	Data string `json:"data" validate:"required"`
}

// CertificateVerification tells a field officer who the certificate belongs
// to and whether the property is up to date with its fees.
type CertificateVerification struct {
	Property *entity.Property        `json:"property"`
	Balance  *entity.PropertyBalance `json:"balance"`
}

// PropertyUsecase defines property registration and its related views.
type PropertyUsecase interface {
	ListProperties(ctx context.Context, filter entity.PropertyFilter, page entity.Page) (*entity.PagedResult[entity.Property], error)
	GetProperty(ctx context.Context, id uuid.UUID) (*entity.Property, error)
	CreateProperty(ctx context.Context, actorID uuid.UUID, input *CreatePropertyInput) (*entity.Property, error)
	UpdateProperty(ctx context.Context, actorID, id uuid.UUID, input *UpdatePropertyInput) (*entity.Property, error)

	// ApproveProperty moves the property to the approved status and bills the current year.
	ApproveProperty(ctx context.Context, actorID, id uuid.UUID) (*entity.Property, error)
	GetBalance(ctx context.Context, id uuid.UUID) (*entity.PropertyBalance, error)

	UploadPhoto(ctx context.Context, id uuid.UUID, upload *PhotoUpload) (*entity.Property, error)
	GetPhoto(ctx context.Context, id uuid.UUID) (*PhotoDownload, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) error

	// QRCode renders the registration certificate QR code as PNG.
	QRCode(ctx context.Context, id uuid.UUID) ([]byte, error)
	VerifyCertificate(ctx context.Context, input *VerifyCertificateInput) (*CertificateVerification, error)
	// GeoJSON exports the matching properties as a point FeatureCollection.
	GeoJSON(ctx context.Context, filter entity.PropertyFilter) (*geojson.FeatureCollection, error)
}
