package usecase

import (
	"context"
	"time"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePaymentInput bills an amount to a property.
type CreatePaymentInput struct {
	PropertyID      uuid.UUID       `json:"property_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	IsExempt        bool            `json:"is_exempt"`
	StatusID        *uuid.UUID      `json:"status_id,omitempty"`
	PaymentMethodID *uuid.UUID      `json:"payment_method_id,omitempty"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	Description     string          `json:"description" validate:"max=1000"`
}

// UpdatePaymentInput changes only the fields that are present.
type UpdatePaymentInput struct {
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount,omitempty"`
	IsExempt        *bool            `json:"is_exempt,omitempty"`
	StatusID        *uuid.UUID       `json:"status_id,omitempty"`
	PaymentMethodID *uuid.UUID       `json:"payment_method_id,omitempty"`
	DueDate         *time.Time       `json:"due_date,omitempty"`
	Description     *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// RecordPaymentDetailInput is one installment collected in the field or at the counter.
type RecordPaymentDetailInput struct {
	PropertyID      uuid.UUID       `json:"property_id" validate:"required"`
	PaymentID       *uuid.UUID      `json:"payment_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethodID *uuid.UUID      `json:"payment_method_id,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	ReceiptNumber   string          `json:"receipt_number" validate:"max=100"`
	Notes           string          `json:"notes" validate:"max=1000"`
}

// PaymentUsecase defines billing, installment collection and reconciliation.
type PaymentUsecase interface {
	ListPayments(ctx context.Context, filter entity.PaymentFilter, page entity.Page) (*entity.PagedResult[entity.Payment], error)
	GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.Payment, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, input *UpdatePaymentInput) (*entity.Payment, error)
	ListPropertyPayments(ctx context.Context, propertyID uuid.UUID) ([]*entity.Payment, error)

	// CreateYearlyPayment bills the property's yearly fee for year; a second bill for the same year conflicts.
	CreateYearlyPayment(ctx context.Context, propertyID uuid.UUID, year int) (*entity.Payment, error)

	// RecordPaymentDetail stores an installment and reconciles the property and payment balances.
	RecordPaymentDetail(ctx context.Context, collectorID uuid.UUID, input *RecordPaymentDetailInput) (*entity.Reconciliation, error)
	ListPaymentDetails(ctx context.Context, filter entity.PaymentDetailFilter) ([]*entity.PaymentDetail, error)
	GetPaymentDetail(ctx context.Context, id uuid.UUID) (*entity.PaymentDetail, error)
}
