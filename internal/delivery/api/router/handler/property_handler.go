package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"cadastre/internal/delivery/api/middleware"
	"cadastre/internal/delivery/api/response"
	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// PropertyHandlerParams holds dependencies for PropertyHandler, injected by Fx.
type PropertyHandlerParams struct {
	fx.In

	PropertyUC usecase.PropertyUsecase
	PaymentUC  usecase.PaymentUsecase
	Logger     *slog.Logger
}

// PropertyHandler serves property registration and the views hanging off a property.
type PropertyHandler struct {
	propertyUC usecase.PropertyUsecase
	paymentUC  usecase.PaymentUsecase
	logger     *slog.Logger
}

// NewPropertyHandler is the constructor for PropertyHandler.
func NewPropertyHandler(params PropertyHandlerParams) *PropertyHandler {
	return &PropertyHandler{
		propertyUC: params.PropertyUC,
		paymentUC:  params.PaymentUC,
		logger:     params.Logger,
	}
}

// YearlyPaymentRequest is the optional body of the yearly payment endpoint.
type YearlyPaymentRequest struct {
	Year int `json:"year" validate:"omitempty,gte=1900,lte=9999"`
}

// ListProperties supports status_id, payment_status, owner_id, responsible_person_id,
// section_id, type_id, search, bbox and paging.
func (h *PropertyHandler) ListProperties(c echo.Context) error {
	filter, err := propertyFilter(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	page, err := queryPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	properties, err := h.propertyUC.ListProperties(c.Request().Context(), filter, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, properties)
}

func (h *PropertyHandler) GetProperty(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	property, err := h.propertyUC.GetProperty(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, property)
}

func (h *PropertyHandler) CreateProperty(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	var input usecase.CreatePropertyInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	property, err := h.propertyUC.CreateProperty(c.Request().Context(), userID, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, property)
}

func (h *PropertyHandler) UpdateProperty(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.UpdatePropertyInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	property, err := h.propertyUC.UpdateProperty(c.Request().Context(), userID, id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, property)
}

func (h *PropertyHandler) ApproveProperty(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	property, err := h.propertyUC.ApproveProperty(c.Request().Context(), userID, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, property)
}

func (h *PropertyHandler) GetBalance(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	balance, err := h.propertyUC.GetBalance(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, balance)
}

// CreateYearlyPayment bills the yearly fee; the body is optional.
func (h *PropertyHandler) CreateYearlyPayment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var req YearlyPaymentRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	payment, err := h.paymentUC.CreateYearlyPayment(c.Request().Context(), id, req.Year)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, payment)
}

func (h *PropertyHandler) ListPayments(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if _, err := h.propertyUC.GetProperty(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	payments, err := h.paymentUC.ListPropertyPayments(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, payments)
}

func (h *PropertyHandler) ListPaymentDetails(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if _, err := h.propertyUC.GetProperty(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	details, err := h.paymentUC.ListPaymentDetails(c.Request().Context(), entity.PaymentDetailFilter{PropertyID: &id})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, details)
}

// UploadPhoto accepts a multipart form with the image in the "file" field.
func (h *PropertyHandler) UploadPhoto(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrPhotoRejected.WithDetails("multipart field \"file\" is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded photo")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		sniff := make([]byte, 512)
		n, _ := file.Read(sniff)
		contentType = http.DetectContentType(sniff[:n])
		if _, err := file.Seek(0, 0); err != nil {
			return errors.Wrap(err, "failed to rewind uploaded photo")
		}
	}

	property, err := h.propertyUC.UploadPhoto(c.Request().Context(), id, &usecase.PhotoUpload{
		ContentType: contentType,
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, property)
}

// GetPhoto streams the stored photo through the API.
func (h *PropertyHandler) GetPhoto(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	photo, err := h.propertyUC.GetPhoto(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer photo.Body.Close()

	if photo.Size > 0 {
		c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(photo.Size, 10))
	}
	c.Response().Header().Set("Cache-Control", "private, max-age=300")

	return c.Stream(http.StatusOK, photo.ContentType, photo.Body)
}

func (h *PropertyHandler) DeletePhoto(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.propertyUC.DeletePhoto(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}

// QRCode answers the registration certificate QR code as PNG.
func (h *PropertyHandler) QRCode(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	png, err := h.propertyUC.QRCode(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// VerifyCertificate checks the text scanned from a certificate QR code.
func (h *PropertyHandler) VerifyCertificate(c echo.Context) error {
	var req usecase.VerifyCertificateInput
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.propertyUC.VerifyCertificate(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// GeoJSON answers a bare FeatureCollection so map clients can load it directly.
func (h *PropertyHandler) GeoJSON(c echo.Context) error {
	filter, err := propertyFilter(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	fc, err := h.propertyUC.GeoJSON(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "failed to encode feature collection")
	}

	return c.Blob(http.StatusOK, "application/geo+json", data)
}

func propertyFilter(c echo.Context) (entity.PropertyFilter, error) {
	filter := entity.PropertyFilter{
		PaymentStatus: c.QueryParam("payment_status"),
		Search:        c.QueryParam("search"),
	}

	ids := []struct {
		name string
		dst  **uuid.UUID
	}{
		{"status_id", &filter.StatusID},
		{"owner_id", &filter.OwnerID},
		{"responsible_person_id", &filter.ResponsiblePersonID},
		{"section_id", &filter.SectionID},
		{"type_id", &filter.TypeID},
	}
	for _, param := range ids {
		id, err := queryUUID(c, param.name)
		if err != nil {
			return filter, err
		}
		*param.dst = id
	}

	bbox, err := parseBBox(c.QueryParam("bbox"))
	if err != nil {
		return filter, err
	}
	filter.BBox = bbox

	return filter, nil
}
