package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cadastre/internal/delivery/api/validator"
	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userIDKey is where the auth middleware stores the authenticated user.
const userIDKey = "userID"

// fakePropertyUC records the calls the handler makes; unimplemented methods panic through the nil embed.
type fakePropertyUC struct {
	usecase.PropertyUsecase

	property   *entity.Property
	err        error
	gotFilter  entity.PropertyFilter
	gotActor   uuid.UUID
	gotCreate  *usecase.CreatePropertyInput
	gotUpload  *usecase.PhotoUpload
	uploadBody []byte
	photo      string

	gotCertificate string
}

func (f *fakePropertyUC) ListProperties(_ context.Context, filter entity.PropertyFilter, page entity.Page) (*entity.PagedResult[entity.Property], error) {
	f.gotFilter = filter

	return &entity.PagedResult[entity.Property]{Items: []*entity.Property{}, Limit: page.Limit}, f.err
}

func (f *fakePropertyUC) GetProperty(_ context.Context, _ uuid.UUID) (*entity.Property, error) {
	return f.property, f.err
}

func (f *fakePropertyUC) CreateProperty(_ context.Context, actorID uuid.UUID, input *usecase.CreatePropertyInput) (*entity.Property, error) {
	f.gotActor = actorID
	f.gotCreate = input

	return f.property, f.err
}

func (f *fakePropertyUC) UploadPhoto(_ context.Context, _ uuid.UUID, upload *usecase.PhotoUpload) (*entity.Property, error) {
	f.gotUpload = upload
	body, err := io.ReadAll(upload.Body)
	if err != nil {
		return nil, err
	}
	f.uploadBody = body

	return f.property, f.err
}

func (f *fakePropertyUC) GetPhoto(_ context.Context, _ uuid.UUID) (*usecase.PhotoDownload, error) {
	if f.err != nil {
		return nil, f.err
	}

	return &usecase.PhotoDownload{
		ContentType: "image/jpeg",
		Size:        int64(len(f.photo)),
		Body:        io.NopCloser(strings.NewReader(f.photo)),
	}, nil
}

func (f *fakePropertyUC) QRCode(_ context.Context, _ uuid.UUID) ([]byte, error) {
	return []byte("\x89PNG"), f.err
}

func (f *fakePropertyUC) GeoJSON(_ context.Context, filter entity.PropertyFilter) (*geojson.FeatureCollection, error) {
	f.gotFilter = filter
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Point{-8, 12.65}))

	return fc, f.err
}

func (f *fakePropertyUC) VerifyCertificate(_ context.Context, input *usecase.VerifyCertificateInput) (*usecase.CertificateVerification, error) {
	f.gotCertificate = input.Data
	if f.err != nil {
		return nil, f.err
	}

	return &usecase.CertificateVerification{Property: f.property}, nil
}

type fakePaymentUC struct {
	usecase.PaymentUsecase

	gotYear      int
	gotDetail    entity.PaymentDetailFilter
	gotCollector uuid.UUID
	err          error
}

func (f *fakePaymentUC) CreateYearlyPayment(_ context.Context, propertyID uuid.UUID, year int) (*entity.Payment, error) {
	f.gotYear = year

	return &entity.Payment{PropertyID: propertyID}, f.err
}

func (f *fakePaymentUC) ListPaymentDetails(_ context.Context, filter entity.PaymentDetailFilter) ([]*entity.PaymentDetail, error) {
	f.gotDetail = filter

	return []*entity.PaymentDetail{}, f.err
}

func (f *fakePaymentUC) RecordPaymentDetail(_ context.Context, collectorID uuid.UUID, input *usecase.RecordPaymentDetailInput) (*entity.Reconciliation, error) {
	f.gotCollector = collectorID

	return &entity.Reconciliation{Detail: &entity.PaymentDetail{PropertyID: input.PropertyID}}, f.err
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func newPropertyContext(e *echo.Echo, req *http.Request, id uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	return c, rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body struct {
		Error map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Error
}

func TestPropertyHandler_ListProperties_Filters(t *testing.T) {
	propertyUC := &fakePropertyUC{}
	h := &PropertyHandler{propertyUC: propertyUC}
	ownerID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties?owner_id="+ownerID.String()+"&payment_status=partial&bbox=-9,12,-7,13&limit=5", nil)
	rec := httptest.NewRecorder()
	c := newTestEcho().NewContext(req, rec)

	require.NoError(t, h.ListProperties(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, propertyUC.gotFilter.OwnerID)
	assert.Equal(t, ownerID, *propertyUC.gotFilter.OwnerID)
	assert.Equal(t, "partial", propertyUC.gotFilter.PaymentStatus)
	require.NotNil(t, propertyUC.gotFilter.BBox)
	assert.Equal(t, orb.Point{-9, 12}, propertyUC.gotFilter.BBox.Min)
}

func TestPropertyHandler_ListProperties_BadQuery(t *testing.T) {
	h := &PropertyHandler{propertyUC: &fakePropertyUC{}}

	for _, query := range []string{"bbox=1,2,3", "owner_id=nope", "limit=x"} {
		t.Run(query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/properties?"+query, nil)
			rec := httptest.NewRecorder()

			require.NoError(t, h.ListProperties(newTestEcho().NewContext(req, rec)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec)["code"])
		})
	}
}

func TestPropertyHandler_GetProperty_NotFound(t *testing.T) {
	h := &PropertyHandler{propertyUC: &fakePropertyUC{err: domainerrors.ErrPropertyNotFound}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, rec := newPropertyContext(newTestEcho(), req, uuid.New())

	require.NoError(t, h.GetProperty(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PROPERTY_NOT_FOUND", decodeError(t, rec)["code"])
}

func TestPropertyHandler_GetProperty_BadID(t *testing.T) {
	h := &PropertyHandler{propertyUC: &fakePropertyUC{}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := newTestEcho().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	require.NoError(t, h.GetProperty(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "id must be a UUID", decodeError(t, rec)["details"])
}

func TestPropertyHandler_CreateProperty(t *testing.T) {
	propertyUC := &fakePropertyUC{property: &entity.Property{PlateNumber: "A-1"}}
	h := &PropertyHandler{propertyUC: propertyUC}
	userID := uuid.New()
	typeID := uuid.New()

	body := `{"plate_number":"A-1","latitude":12.6,"longitude":-8,"area_size":"120.5","property_type_id":"` + typeID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := newTestEcho().NewContext(req, rec)
	c.Set(userIDKey, userID)

	require.NoError(t, h.CreateProperty(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, userID, propertyUC.gotActor)
	require.NotNil(t, propertyUC.gotCreate)
	assert.Equal(t, typeID, propertyUC.gotCreate.PropertyTypeID)
	assert.Equal(t, "120.5", propertyUC.gotCreate.AreaSize.String())
}

func TestPropertyHandler_CreateProperty_Rejected(t *testing.T) {
	h := &PropertyHandler{propertyUC: &fakePropertyUC{}}

	t.Run("no user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/properties", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		require.NoError(t, h.CreateProperty(newTestEcho().NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing plate", func(t *testing.T) {
		body := `{"latitude":12.6,"property_type_id":"` + uuid.NewString() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/properties", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := newTestEcho().NewContext(req, rec)
		c.Set(userIDKey, uuid.New())

		require.NoError(t, h.CreateProperty(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "plate_number is required", decodeError(t, rec)["details"])
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/properties", strings.NewReader(`{"plate_number":`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := newTestEcho().NewContext(req, rec)
		c.Set(userIDKey, uuid.New())

		require.NoError(t, h.CreateProperty(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "request body is malformed", decodeError(t, rec)["details"])
	})
}

func TestPropertyHandler_UploadPhoto_SniffsContentType(t *testing.T) {
	propertyUC := &fakePropertyUC{property: &entity.Property{}}
	h := &PropertyHandler{propertyUC: propertyUC}
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "front.png")
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	c, rec := newPropertyContext(newTestEcho(), req, uuid.New())

	require.NoError(t, h.UploadPhoto(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, propertyUC.gotUpload)
	assert.Equal(t, "image/png", propertyUC.gotUpload.ContentType)
	assert.Equal(t, int64(len(png)), propertyUC.gotUpload.Size)
	assert.Equal(t, png, propertyUC.uploadBody)
}

func TestPropertyHandler_UploadPhoto_MissingFile(t *testing.T) {
	h := &PropertyHandler{propertyUC: &fakePropertyUC{}}

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader("raw"))
	req.Header.Set(echo.HeaderContentType, "image/png")
	c, rec := newPropertyContext(newTestEcho(), req, uuid.New())

	require.NoError(t, h.UploadPhoto(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PHOTO_REJECTED", decodeError(t, rec)["code"])
}

func TestPropertyHandler_GetPhoto(t *testing.T) {
	h := &PropertyHandler{propertyUC: &fakePropertyUC{photo: "jpeg-bytes"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, rec := newPropertyContext(newTestEcho(), req, uuid.New())

	require.NoError(t, h.GetPhoto(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "10", rec.Header().Get(echo.HeaderContentLength))
	assert.Equal(t, "jpeg-bytes", rec.Body.String())
}

func TestPropertyHandler_GetPhoto_Missing(t *testing.T) {
	h := &PropertyHandler{propertyUC: &fakePropertyUC{err: domainerrors.ErrPhotoNotFound}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, rec := newPropertyContext(newTestEcho(), req, uuid.New())

	require.NoError(t, h.GetPhoto(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPropertyHandler_QRCodeAndGeoJSON(t *testing.T) {
	h := &PropertyHandler{propertyUC: &fakePropertyUC{}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, rec := newPropertyContext(newTestEcho(), req, uuid.New())
	require.NoError(t, h.QRCode(c))
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "\x89PNG", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/properties/geojson", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, h.GeoJSON(newTestEcho().NewContext(req, rec)))
	assert.Equal(t, "application/geo+json", rec.Header().Get(echo.HeaderContentType))

	fc, err := geojson.UnmarshalFeatureCollection(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, orb.Point{-8, 12.65}, fc.Features[0].Geometry)
}

func TestPropertyHandler_CreateYearlyPayment(t *testing.T) {
	paymentUC := &fakePaymentUC{}
	h := &PropertyHandler{propertyUC: &fakePropertyUC{}, paymentUC: paymentUC}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"year":2025}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newPropertyContext(newTestEcho(), req, uuid.New())
	require.NoError(t, h.CreateYearlyPayment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2025, paymentUC.gotYear)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	c, rec = newPropertyContext(newTestEcho(), req, uuid.New())
	require.NoError(t, h.CreateYearlyPayment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 0, paymentUC.gotYear)

	paymentUC.err = domainerrors.ErrYearlyPaymentExists
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	c, rec = newPropertyContext(newTestEcho(), req, uuid.New())
	require.NoError(t, h.CreateYearlyPayment(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPropertyHandler_ListPaymentDetails_ScopedToProperty(t *testing.T) {
	paymentUC := &fakePaymentUC{}
	h := &PropertyHandler{propertyUC: &fakePropertyUC{property: &entity.Property{}}, paymentUC: paymentUC}
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, rec := newPropertyContext(newTestEcho(), req, id)

	require.NoError(t, h.ListPaymentDetails(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, paymentUC.gotDetail.PropertyID)
	assert.Equal(t, id, *paymentUC.gotDetail.PropertyID)
}

func TestPropertyHandler_VerifyCertificate(t *testing.T) {
	property := &entity.Property{Base: entity.Base{ID: uuid.New()}, PlateNumber: "KMP-0042"}
	uc := &fakePropertyUC{property: property}
	h := &PropertyHandler{propertyUC: uc}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"data":"{\"plateNumber\":\"KMP-0042\"}"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.VerifyCertificate(newTestEcho().NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"plateNumber":"KMP-0042"}`, uc.gotCertificate)
	assert.Contains(t, rec.Body.String(), "KMP-0042")

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	require.NoError(t, h.VerifyCertificate(newTestEcho().NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	uc.err = domainerrors.ErrCertificateInvalid
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"data":"garbage"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	require.NoError(t, h.VerifyCertificate(newTestEcho().NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CERTIFICATE_INVALID", decodeError(t, rec)["code"])
}
