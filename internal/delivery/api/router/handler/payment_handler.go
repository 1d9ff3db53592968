package handler

import (
	"log/slog"
	"net/http"

	"cadastre/internal/delivery/api/middleware"
	"cadastre/internal/delivery/api/response"
	"cadastre/internal/domain/entity"
	"cadastre/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PaymentHandlerParams holds dependencies for PaymentHandler, injected by Fx.
type PaymentHandlerParams struct {
	fx.In

	PaymentUC usecase.PaymentUsecase
	Logger    *slog.Logger
}

// PaymentHandler serves billing and installment collection.
type PaymentHandler struct {
	paymentUC usecase.PaymentUsecase
	logger    *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler.
func NewPaymentHandler(params PaymentHandlerParams) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: params.PaymentUC,
		logger:    params.Logger,
	}
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	var filter entity.PaymentFilter
	var err error
	if filter.PropertyID, err = queryUUID(c, "property_id"); err != nil {
		return response.HandleAppError(c, err)
	}
	if filter.StatusID, err = queryUUID(c, "status_id"); err != nil {
		return response.HandleAppError(c, err)
	}
	if filter.Year, err = queryInt(c, "year"); err != nil {
		return response.HandleAppError(c, err)
	}
	page, err := queryPage(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	payments, err := h.paymentUC.ListPayments(c.Request().Context(), filter, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, payments)
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	payment, err := h.paymentUC.GetPayment(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, payment)
}

func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var input usecase.CreatePaymentInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	payment, err := h.paymentUC.CreatePayment(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, payment)
}

func (h *PaymentHandler) UpdatePayment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	var input usecase.UpdatePaymentInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	payment, err := h.paymentUC.UpdatePayment(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, payment)
}

// ListPaymentInstallments lists the installments applied to one payment.
func (h *PaymentHandler) ListPaymentInstallments(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if _, err := h.paymentUC.GetPayment(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	details, err := h.paymentUC.ListPaymentDetails(c.Request().Context(), entity.PaymentDetailFilter{PaymentID: &id})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, details)
}

// ListPaymentDetails supports property_id, payment_id, collector_id, from and to.
func (h *PaymentHandler) ListPaymentDetails(c echo.Context) error {
	var filter entity.PaymentDetailFilter
	var err error
	if filter.PropertyID, err = queryUUID(c, "property_id"); err != nil {
		return response.HandleAppError(c, err)
	}
	if filter.PaymentID, err = queryUUID(c, "payment_id"); err != nil {
		return response.HandleAppError(c, err)
	}
	if filter.CollectorID, err = queryUUID(c, "collector_id"); err != nil {
		return response.HandleAppError(c, err)
	}
	if filter.From, err = queryTime(c, "from"); err != nil {
		return response.HandleAppError(c, err)
	}
	if filter.To, err = queryTime(c, "to"); err != nil {
		return response.HandleAppError(c, err)
	}

	details, err := h.paymentUC.ListPaymentDetails(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, details)
}

func (h *PaymentHandler) GetPaymentDetail(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	detail, err := h.paymentUC.GetPaymentDetail(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, detail)
}

// RecordPaymentDetail records an installment collected by the authenticated user.
func (h *PaymentHandler) RecordPaymentDetail(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	var input usecase.RecordPaymentDetailInput
	if err := bind(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	reconciliation, err := h.paymentUC.RecordPaymentDetail(c.Request().Context(), userID, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, reconciliation)
}
