package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "cadastre/internal/delivery/context"
	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type policyService struct {
	txManager  repository.TransactionManager
	policyRepo repository.PolicyRepository
	logger     *slog.Logger
}

// PolicyServiceParams holds dependencies for PolicyService, injected by Fx.
type PolicyServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	PolicyRepo repository.PolicyRepository
	Logger     *slog.Logger
}

// NewPolicyService creates the service managing commission and revenue split policies.
func NewPolicyService(params PolicyServiceParams) usecase.PolicyUsecase {
	return &policyService{
		txManager:  params.TxManager,
		policyRepo: params.PolicyRepo,
		logger:     params.Logger,
	}
}

func (srv *policyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFrom(ctx, srv.logger)
}

// --- Commission ---

func (srv *policyService) ListCommissionPolicies(ctx context.Context) ([]*entity.CommissionPolicy, error) {
	policies, err := srv.policyRepo.ListCommission(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list commission policies")
	}

	return policies, nil
}

func (srv *policyService) GetCommissionPolicy(ctx context.Context, id uuid.UUID) (*entity.CommissionPolicy, error) {
	policy, err := srv.policyRepo.FindCommissionByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrPolicyNotFound, domainerrors.ErrPolicyNotFound, "")
	}

	return policy, nil
}

// ActiveCommissionPolicy returns the most recently updated active policy.
func (srv *policyService) ActiveCommissionPolicy(ctx context.Context) (*entity.CommissionPolicy, error) {
	policy, err := srv.policyRepo.ActiveCommission(ctx)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrNoActivePolicy, domainerrors.ErrNoActivePolicy, "no active commission policy")
	}

	return policy, nil
}

func (srv *policyService) CreateCommissionPolicy(ctx context.Context, input *usecase.CommissionPolicyInput) (*entity.CommissionPolicy, error) {
	name, err := requireName(input.Name, "name")
	if err != nil {
		return nil, err
	}
	if !validPercentage(input.Percentage) {
		return nil, domainerrors.ErrInvalidPercentage
	}

	policy := &entity.CommissionPolicy{
		Name:          name,
		Percentage:    input.Percentage.Round(2),
		IsActive:      true,
		EffectiveFrom: input.EffectiveFrom,
		Description:   strings.TrimSpace(input.Description),
	}
	if input.IsActive != nil {
		policy.IsActive = *input.IsActive
	}

	if err := srv.policyRepo.CreateCommission(ctx, policy); err != nil {
		return nil, errors.Wrap(err, "failed to create commission policy")
	}

	srv.log(ctx).Info("Commission policy created",
		slog.Any("policyID", policy.ID),
		slog.String("percentage", policy.Percentage.String()),
		slog.Bool("active", policy.IsActive))

	return policy, nil
}

func (srv *policyService) UpdateCommissionPolicy(ctx context.Context, id uuid.UUID, input *usecase.UpdateCommissionPolicyInput) (*entity.CommissionPolicy, error) {
	var policy *entity.CommissionPolicy
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		policyRepo := repoFactory.NewPolicyRepository()

		var err error
		policy, err = policyRepo.FindCommissionByID(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrPolicyNotFound, domainerrors.ErrPolicyNotFound, "")
		}

		setString(&policy.Name, input.Name)
		setString(&policy.Description, input.Description)
		if policy.Name == "" {
			return validationError("name is required")
		}
		if input.Percentage != nil {
			if !validPercentage(*input.Percentage) {
				return domainerrors.ErrInvalidPercentage
			}
			policy.Percentage = input.Percentage.Round(2)
		}
		if input.IsActive != nil {
			policy.IsActive = *input.IsActive
		}
		if input.EffectiveFrom != nil {
			policy.EffectiveFrom = input.EffectiveFrom
		}

		return policyRepo.UpdateCommission(ctx, policy)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update commission policy")
	}

	return policy, nil
}

// --- Revenue split ---

func (srv *policyService) ListRevenueSplitPolicies(ctx context.Context) ([]*entity.RevenueSplitPolicy, error) {
	policies, err := srv.policyRepo.ListRevenueSplit(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list revenue split policies")
	}

	return policies, nil
}

func (srv *policyService) GetRevenueSplitPolicy(ctx context.Context, id uuid.UUID) (*entity.RevenueSplitPolicy, error) {
	policy, err := srv.policyRepo.FindRevenueSplitByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrPolicyNotFound, domainerrors.ErrPolicyNotFound, "")
	}

	return policy, nil
}

func (srv *policyService) ActiveRevenueSplitPolicy(ctx context.Context) (*entity.RevenueSplitPolicy, error) {
	policy, err := srv.policyRepo.ActiveRevenueSplit(ctx)
	if err != nil {
		return nil, mapNotFound(err, repository.ErrNoActivePolicy, domainerrors.ErrNoActivePolicy, "no active revenue split policy")
	}

	return policy, nil
}

func (srv *policyService) CreateRevenueSplitPolicy(ctx context.Context, input *usecase.RevenueSplitPolicyInput) (*entity.RevenueSplitPolicy, error) {
	name, err := requireName(input.Name, "name")
	if err != nil {
		return nil, err
	}

	policy := &entity.RevenueSplitPolicy{
		Name:                   name,
		OperatorPercentage:     input.OperatorPercentage.Round(2),
		MunicipalityPercentage: input.MunicipalityPercentage.Round(2),
		IsActive:               true,
		EffectiveFrom:          input.EffectiveFrom,
		Description:            strings.TrimSpace(input.Description),
	}
	if input.IsActive != nil {
		policy.IsActive = *input.IsActive
	}
	if err := validateSplit(policy.OperatorPercentage, policy.MunicipalityPercentage); err != nil {
		return nil, err
	}

	if err := srv.policyRepo.CreateRevenueSplit(ctx, policy); err != nil {
		return nil, errors.Wrap(err, "failed to create revenue split policy")
	}

	return policy, nil
}

func (srv *policyService) UpdateRevenueSplitPolicy(ctx context.Context, id uuid.UUID, input *usecase.UpdateRevenueSplitPolicyInput) (*entity.RevenueSplitPolicy, error) {
	var policy *entity.RevenueSplitPolicy
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		policyRepo := repoFactory.NewPolicyRepository()

		var err error
		policy, err = policyRepo.FindRevenueSplitByID(ctx, id)
		if err != nil {
			return mapNotFound(err, repository.ErrPolicyNotFound, domainerrors.ErrPolicyNotFound, "")
		}

		setString(&policy.Name, input.Name)
		setString(&policy.Description, input.Description)
		if policy.Name == "" {
			return validationError("name is required")
		}
		if input.OperatorPercentage != nil {
			policy.OperatorPercentage = input.OperatorPercentage.Round(2)
		}
		if input.MunicipalityPercentage != nil {
			policy.MunicipalityPercentage = input.MunicipalityPercentage.Round(2)
		}
		if err := validateSplit(policy.OperatorPercentage, policy.MunicipalityPercentage); err != nil {
			return err
		}
		if input.IsActive != nil {
			policy.IsActive = *input.IsActive
		}
		if input.EffectiveFrom != nil {
			policy.EffectiveFrom = input.EffectiveFrom
		}

		return policyRepo.UpdateRevenueSplit(ctx, policy)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update revenue split policy")
	}

	return policy, nil
}

// validateSplit requires both shares in [0,100] adding up to exactly 100.
func validateSplit(operator, municipality decimal.Decimal) error {
	if !validPercentage(operator) || !validPercentage(municipality) {
		return domainerrors.ErrInvalidPercentage
	}
	if !operator.Add(municipality).Equal(hundred) {
		return domainerrors.ErrInvalidPercentage.WithDetails("operator and municipality percentages must add up to 100")
	}

	return nil
}
