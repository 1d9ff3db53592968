package usecase

import (
	"context"
	"time"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionPolicyInput creates a commission policy.
type CommissionPolicyInput struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Percentage    decimal.Decimal `json:"percentage"`
	IsActive      *bool           `json:"is_active,omitempty"`
	EffectiveFrom *time.Time      `json:"effective_from,omitempty"`
	Description   string          `json:"description" validate:"max=500"`
}

// UpdateCommissionPolicyInput changes only the fields that are present.
type UpdateCommissionPolicyInput struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Percentage    *decimal.Decimal `json:"percentage,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
	EffectiveFrom *time.Time       `json:"effective_from,omitempty"`
	Description   *string          `json:"description,omitempty" validate:"omitempty,max=500"`
}

// RevenueSplitPolicyInput creates a revenue split policy. The two percentages add up to 100.
type RevenueSplitPolicyInput struct {
	Name                   string          `json:"name" validate:"required,max=100"`
	OperatorPercentage     decimal.Decimal `json:"operator_percentage"`
	MunicipalityPercentage decimal.Decimal `json:"municipality_percentage"`
	IsActive               *bool           `json:"is_active,omitempty"`
	EffectiveFrom          *time.Time      `json:"effective_from,omitempty"`
	Description            string          `json:"description" validate:"max=500"`
}

// UpdateRevenueSplitPolicyInput changes only the fields that are present.
type UpdateRevenueSplitPolicyInput struct {
	Name                   *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	OperatorPercentage     *decimal.Decimal `json:"operator_percentage,omitempty"`
	MunicipalityPercentage *decimal.Decimal `json:"municipality_percentage,omitempty"`
	IsActive               *bool            `json:"is_active,omitempty"`
	EffectiveFrom          *time.Time       `json:"effective_from,omitempty"`
	Description            *string          `json:"description,omitempty" validate:"omitempty,max=500"`
}

// CollectionReportInput selects the installments a report covers.
type CollectionReportInput struct {
	CollectorID *uuid.UUID
	From        *time.Time
	To          *time.Time
}

// PolicyUsecase manages commission and revenue split policies.
type PolicyUsecase interface {
	ListCommissionPolicies(ctx context.Context) ([]*entity.CommissionPolicy, error)
	GetCommissionPolicy(ctx context.Context, id uuid.UUID) (*entity.CommissionPolicy, error)
	ActiveCommissionPolicy(ctx context.Context) (*entity.CommissionPolicy, error)
	CreateCommissionPolicy(ctx context.Context, input *CommissionPolicyInput) (*entity.CommissionPolicy, error)
	UpdateCommissionPolicy(ctx context.Context, id uuid.UUID, input *UpdateCommissionPolicyInput) (*entity.CommissionPolicy, error)

	ListRevenueSplitPolicies(ctx context.Context) ([]*entity.RevenueSplitPolicy, error)
	GetRevenueSplitPolicy(ctx context.Context, id uuid.UUID) (*entity.RevenueSplitPolicy, error)
	ActiveRevenueSplitPolicy(ctx context.Context) (*entity.RevenueSplitPolicy, error)
	CreateRevenueSplitPolicy(ctx context.Context, input *RevenueSplitPolicyInput) (*entity.RevenueSplitPolicy, error)
	UpdateRevenueSplitPolicy(ctx context.Context, id uuid.UUID, input *UpdateRevenueSplitPolicyInput) (*entity.RevenueSplitPolicy, error)
}

// ReportUsecase computes collection figures.
type ReportUsecase interface {
	// CollectionReport totals installments and splits them by the active policies.
	CollectionReport(ctx context.Context, input *CollectionReportInput) (*entity.CollectionReport, error)
	Summary(ctx context.Context) (*entity.CollectionSummary, error)
}
