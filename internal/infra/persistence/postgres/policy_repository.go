package postgres

import (
	"context"

	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// policyRepository implements the repository.PolicyRepository interface.
type policyRepository struct {
	db *gorm.DB
}

// NewPolicyRepository is the constructor for policyRepository.
func NewPolicyRepository(db *gorm.DB) repository.PolicyRepository {
	return &policyRepository{
		db: db,
	}
}

func (repo *policyRepository) ListCommission(ctx context.Context) ([]*entity.CommissionPolicy, error) {
	var policyModels []*model.CommissionPolicyModel

	if err := repo.db.WithContext(ctx).Order("updated_at DESC").Find(&policyModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list commission policies")
	}

	policies := make([]*entity.CommissionPolicy, 0, len(policyModels))
	for _, policyM := range policyModels {
		policies = append(policies, toCommissionPolicyDomain(policyM))
	}

	return policies, nil
}

func (repo *policyRepository) FindCommissionByID(ctx context.Context, id uuid.UUID) (*entity.CommissionPolicy, error) {
	var policyM model.CommissionPolicyModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&policyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPolicyNotFound
		}

		return nil, errors.Wrap(err, "failed to find commission policy by id")
	}

	return toCommissionPolicyDomain(&policyM), nil
}

// ActiveCommission returns the most recently updated active commission policy.
func (repo *policyRepository) ActiveCommission(ctx context.Context) (*entity.CommissionPolicy, error) {
	var policyM model.CommissionPolicyModel

	if err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		First(&policyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNoActivePolicy
		}

		return nil, errors.Wrap(err, "failed to find active commission policy")
	}

	return toCommissionPolicyDomain(&policyM), nil
}

func (repo *policyRepository) CreateCommission(ctx context.Context, policy *entity.CommissionPolicy) error {
	policyM := fromCommissionPolicyDomain(policy)

	if err := repo.db.WithContext(ctx).Create(policyM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create commission policy")
	}

	policy.Base = baseDomain(policyM.Base)

	return nil
}

func (repo *policyRepository) UpdateCommission(ctx context.Context, policy *entity.CommissionPolicy) error {
	policyM := fromCommissionPolicyDomain(policy)

	result := repo.db.WithContext(ctx).Model(policyM).Select("*").Omit("id", "created_at").Updates(policyM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update commission policy")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPolicyNotFound
	}
	policy.UpdatedAt = policyM.UpdatedAt

	return nil
}

func (repo *policyRepository) ListRevenueSplit(ctx context.Context) ([]*entity.RevenueSplitPolicy, error) {
	var policyModels []*model.RevenueSplitPolicyModel

	if err := repo.db.WithContext(ctx).Order("updated_at DESC").Find(&policyModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list revenue split policies")
	}

	policies := make([]*entity.RevenueSplitPolicy, 0, len(policyModels))
	for _, policyM := range policyModels {
		policies = append(policies, toRevenueSplitPolicyDomain(policyM))
	}

	return policies, nil
}

func (repo *policyRepository) FindRevenueSplitByID(ctx context.Context, id uuid.UUID) (*entity.RevenueSplitPolicy, error) {
	var policyM model.RevenueSplitPolicyModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&policyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPolicyNotFound
		}

		return nil, errors.Wrap(err, "failed to find revenue split policy by id")
	}

	return toRevenueSplitPolicyDomain(&policyM), nil
}

// ActiveRevenueSplit returns the most recently updated active revenue split policy.
func (repo *policyRepository) ActiveRevenueSplit(ctx context.Context) (*entity.RevenueSplitPolicy, error) {
	var policyM model.RevenueSplitPolicyModel

	if err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		First(&policyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNoActivePolicy
		}

		return nil, errors.Wrap(err, "failed to find active revenue split policy")
	}

	return toRevenueSplitPolicyDomain(&policyM), nil
}

func (repo *policyRepository) CreateRevenueSplit(ctx context.Context, policy *entity.RevenueSplitPolicy) error {
	policyM := fromRevenueSplitPolicyDomain(policy)

	if err := repo.db.WithContext(ctx).Create(policyM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create revenue split policy")
	}

	policy.Base = baseDomain(policyM.Base)

	return nil
}

func (repo *policyRepository) UpdateRevenueSplit(ctx context.Context, policy *entity.RevenueSplitPolicy) error {
	policyM := fromRevenueSplitPolicyDomain(policy)

	result := repo.db.WithContext(ctx).Model(policyM).Select("*").Omit("id", "created_at").Updates(policyM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update revenue split policy")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPolicyNotFound
	}
	policy.UpdatedAt = policyM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

func toCommissionPolicyDomain(data *model.CommissionPolicyModel) *entity.CommissionPolicy {
	return &entity.CommissionPolicy{
		Base:          baseDomain(data.Base),
		Name:          data.Name,
		Percentage:    data.Percentage,
		IsActive:      data.IsActive,
		EffectiveFrom: data.EffectiveFrom,
		Description:   data.Description,
	}
}

func fromCommissionPolicyDomain(data *entity.CommissionPolicy) *model.CommissionPolicyModel {
	return &model.CommissionPolicyModel{
		Base:          model.Base{ID: data.ID, CreatedAt: data.CreatedAt, UpdatedAt: data.UpdatedAt},
		Name:          data.Name,
		Percentage:    data.Percentage,
		IsActive:      data.IsActive,
		EffectiveFrom: data.EffectiveFrom,
		Description:   data.Description,
	}
}

func toRevenueSplitPolicyDomain(data *model.RevenueSplitPolicyModel) *entity.RevenueSplitPolicy {
	return &entity.RevenueSplitPolicy{
		Base:                   baseDomain(data.Base),
		Name:                   data.Name,
		OperatorPercentage:     data.OperatorPercentage,
		MunicipalityPercentage: data.MunicipalityPercentage,
		IsActive:               data.IsActive,
		EffectiveFrom:          data.EffectiveFrom,
		Description:            data.Description,
	}
}

func fromRevenueSplitPolicyDomain(data *entity.RevenueSplitPolicy) *model.RevenueSplitPolicyModel {
	return &model.RevenueSplitPolicyModel{
		Base:                   model.Base{ID: data.ID, CreatedAt: data.CreatedAt, UpdatedAt: data.UpdatedAt},
		Name:                   data.Name,
		OperatorPercentage:     data.OperatorPercentage,
		MunicipalityPercentage: data.MunicipalityPercentage,
		IsActive:               data.IsActive,
		EffectiveFrom:          data.EffectiveFrom,
		Description:            data.Description,
	}
}
