package qrcode

import (
	"encoding/json"
	"testing"

	"cadastre/config"
	"cadastre/internal/domain/entity"
	"cadastre/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProperty() *entity.Property {
	property := &entity.Property{PlateNumber: "KMP-0042"}
	property.ID = uuid.New()

	return property
}

func assertPNG(t *testing.T, data []byte) {
	t.Helper()
	require.GreaterOrEqual(t, len(data), 4)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, data[:4])
}

func TestQRCodeService_GeneratePropertyQR(t *testing.T) {
	for _, level := range []string{"L", "M", "Q", "H", "invalid", ""} {
		t.Run("level "+level, func(t *testing.T) {
			svc := NewQRCodeService(256, level, "https://cadastre.example.org")

			png, err := svc.GeneratePropertyQR(testProperty())
			require.NoError(t, err)
			assertPNG(t, png)
		})
	}
}

func TestQRCodeService_DefaultsFromConfig(t *testing.T) {
	svc := NewQRCodeServiceFromConfig(&config.Config{})
	assert.Equal(t, defaultSize, svc.(*qrcodeService).size)

	svc = NewQRCodeServiceFromConfig(&config.Config{QRCode: &config.QRCodeConfig{Size: 128, BaseURL: "https://x.test/"}})
	assert.Equal(t, 128, svc.(*qrcodeService).size)
	assert.Equal(t, "https://x.test", svc.(*qrcodeService).baseURL)

	png, err := svc.GeneratePropertyQR(testProperty())
	require.NoError(t, err)
	assertPNG(t, png)
}

func TestQRCodeService_ParsePropertyQR(t *testing.T) {
	svc := NewQRCodeService(256, "M", "")
	id := uuid.New()

	raw, err := json.Marshal(service.PropertyQRPayload{
		PropertyID:  id,
		PlateNumber: "KMP-0042",
		VerifyURL:   "https://cadastre.example.org/properties/" + id.String(),
	})
	require.NoError(t, err)

	payload, err := svc.ParsePropertyQR(string(raw))
	require.NoError(t, err)
	assert.Equal(t, id, payload.PropertyID)
	assert.Equal(t, "KMP-0042", payload.PlateNumber)
}

func TestQRCodeService_ParsePropertyQR_Invalid(t *testing.T) {
	svc := NewQRCodeService(256, "M", "")

	_, err := svc.ParsePropertyQR("invalid json")
	assert.ErrorContains(t, err, "failed to unmarshal QR code data")

	_, err = svc.ParsePropertyQR(`{"property_id":"not-a-uuid","plate_number":"A"}`)
	assert.Error(t, err)

	_, err = svc.ParsePropertyQR(`{"property_id":"` + uuid.NewString() + `"}`)
	assert.ErrorContains(t, err, "no plate number")
}
