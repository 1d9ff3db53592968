package repository

import (
	"context"
	"time"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Domain-specific errors for payment persistence.
var (
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentDetailNotFound = errors.New("payment detail not found")
)

// PaymentRepository persists billed payments.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	List(ctx context.Context, filter entity.PaymentFilter, page entity.Page) ([]*entity.Payment, int64, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*entity.Payment, error)
	Create(ctx context.Context, payment *entity.Payment) error
	Update(ctx context.Context, payment *entity.Payment) error
}

// PaymentDetailRepository persists collected installments.
type PaymentDetailRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentDetail, error)
	List(ctx context.Context, filter entity.PaymentDetailFilter) ([]*entity.PaymentDetail, error)
	Create(ctx context.Context, detail *entity.PaymentDetail) error

	// SumByProperty returns the total amount collected for the property and the number of installments.
	SumByProperty(ctx context.Context, propertyID uuid.UUID) (decimal.Decimal, int64, error)

	// SumCollected totals installments by collector and paid-at window.
	SumCollected(ctx context.Context, collectorID *uuid.UUID, from, to *time.Time) (decimal.Decimal, int64, error)
}
