package repository

import (
	"context"

	"cadastre/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for policy persistence.
var (
	ErrPolicyNotFound = errors.New("policy not found")
	ErrNoActivePolicy = errors.New("no active policy")
)

// PolicyRepository persists commission and revenue split policies.
// The active policy of each kind is the most recently updated row flagged active.
type PolicyRepository interface {
	ListCommission(ctx context.Context) ([]*entity.CommissionPolicy, error)
	FindCommissionByID(ctx context.Context, id uuid.UUID) (*entity.CommissionPolicy, error)
	ActiveCommission(ctx context.Context) (*entity.CommissionPolicy, error)
	CreateCommission(ctx context.Context, policy *entity.CommissionPolicy) error
	UpdateCommission(ctx context.Context, policy *entity.CommissionPolicy) error

	ListRevenueSplit(ctx context.Context) ([]*entity.RevenueSplitPolicy, error)
	FindRevenueSplitByID(ctx context.Context, id uuid.UUID) (*entity.RevenueSplitPolicy, error)
	ActiveRevenueSplit(ctx context.Context) (*entity.RevenueSplitPolicy, error)
	CreateRevenueSplit(ctx context.Context, policy *entity.RevenueSplitPolicy) error
	UpdateRevenueSplit(ctx context.Context, policy *entity.RevenueSplitPolicy) error
}
