// Package qrcode renders property certificate QR codes.
package qrcode

import (
	"encoding/json"
	"strings"

	"cadastre/config"
	"cadastre/internal/domain/entity"
	"cadastre/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}
	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// NewQRCodeServiceFromConfig builds the service from the qrcode config section.
func NewQRCodeServiceFromConfig(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return NewQRCodeService(defaultSize, "M", "")
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

// GeneratePropertyQR encodes the property id, plate and verification link as a PNG.
func (s *qrcodeService) GeneratePropertyQR(property *entity.Property) ([]byte, error) {
	payload := service.PropertyQRPayload{
		PropertyID:  property.ID,
		PlateNumber: property.PlateNumber,
	}
	if s.baseURL != "" {
		payload.VerifyURL = s.baseURL + "/properties/" + property.ID.String()
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParsePropertyQR decodes scanned certificate text.
func (s *qrcodeService) ParsePropertyQR(qrData string) (*service.PropertyQRPayload, error) {
	var payload service.PropertyQRPayload
	if err := json.Unmarshal([]byte(qrData), &payload); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal QR code data")
	}
	if payload.PlateNumber == "" {
		return nil, errors.New("QR code has no plate number")
	}

	return &payload, nil
}
