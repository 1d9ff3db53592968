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

// roleRepository implements the repository.RoleRepository interface.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{
		db: db,
	}
}

// FindByID retrieves a role with its permissions loaded.
func (repo *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	var roleM model.RoleModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&roleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoleNotFound
		}

		return nil, errors.Wrap(err, "failed to find role by id")
	}

	return repo.withPermissions(ctx, toRoleDomain(&roleM))
}

// FindByName retrieves a role by its unique name.
func (repo *roleRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	var roleM model.RoleModel

	if err := repo.db.WithContext(ctx).
		Where("name = ?", name).
		First(&roleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoleNotFound
		}

		return nil, errors.Wrap(err, "failed to find role by name")
	}

	return repo.withPermissions(ctx, toRoleDomain(&roleM))
}

// FindByIDs returns the roles whose ids are listed.
func (repo *roleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Role, error) {
	if len(ids) == 0 {
		return []*entity.Role{}, nil
	}

	var roleModels []*model.RoleModel
	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("name").
		Find(&roleModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find roles by ids")
	}

	roles := make([]*entity.Role, 0, len(roleModels))
	for _, roleM := range roleModels {
		roles = append(roles, toRoleDomain(roleM))
	}

	return roles, nil
}

// List returns every role with its permissions.
func (repo *roleRepository) List(ctx context.Context) ([]*entity.Role, error) {
	var roleModels []*model.RoleModel

	if err := repo.db.WithContext(ctx).Order("name").Find(&roleModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list roles")
	}

	roles := make([]*entity.Role, 0, len(roleModels))
	for _, roleM := range roleModels {
		role, err := repo.withPermissions(ctx, toRoleDomain(roleM))
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	return roles, nil
}

// Create persists a new role.
func (repo *roleRepository) Create(ctx context.Context, role *entity.Role) error {
	roleM := fromRoleDomain(role)

	if err := repo.db.WithContext(ctx).Create(roleM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrRoleAlreadyExists.WrapMessage("role name already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create role")
	}

	role.ID = roleM.ID
	role.CreatedAt = roleM.CreatedAt
	role.UpdatedAt = roleM.UpdatedAt

	return nil
}

// Update modifies a role's name and description.
func (repo *roleRepository) Update(ctx context.Context, role *entity.Role) error {
	roleM := fromRoleDomain(role)

	result := repo.db.WithContext(ctx).
		Model(roleM).
		Select("name", "description").
		Updates(roleM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrRoleAlreadyExists.WrapMessage("role name already exists")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update role")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRoleNotFound
	}

	role.UpdatedAt = roleM.UpdatedAt

	return nil
}

// Delete removes the role together with its permission links.
func (repo *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("role_id = ?", id).Delete(&model.RolePermissionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to remove role permissions")
	}

	result := db.Where("id = ?", id).Delete(&model.RoleModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrRoleInUse
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete role")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRoleNotFound
	}

	return nil
}

// CountUsers returns how many users hold the role.
func (repo *roleRepository) CountUsers(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.UserRoleModel{}).
		Where("role_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count role users")
	}

	return count, nil
}

// ReplacePermissions swaps the role's permission links.
func (repo *roleRepository) ReplacePermissions(ctx context.Context, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	db := repo.db.WithContext(ctx)
	if err := db.Where("role_id = ?", roleID).Delete(&model.RolePermissionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear role permissions")
	}
	if len(permissionIDs) == 0 {
		return nil
	}

	links := make([]*model.RolePermissionModel, 0, len(permissionIDs))
	for _, permissionID := range uniqueIDs(permissionIDs) {
		links = append(links, &model.RolePermissionModel{RoleID: roleID, PermissionID: permissionID})
	}
	if err := db.Create(&links).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to assign role permissions")
	}

	return nil
}

func (repo *roleRepository) withPermissions(ctx context.Context, role *entity.Role) (*entity.Role, error) {
	var permissionModels []*model.PermissionModel

	if err := repo.db.WithContext(ctx).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", role.ID).
		Order("permissions.name").
		Find(&permissionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load role permissions")
	}

	role.Permissions = make([]*entity.Permission, 0, len(permissionModels))
	for _, permissionM := range permissionModels {
		role.Permissions = append(role.Permissions, toPermissionDomain(permissionM))
	}

	return role, nil
}

// permissionRepository implements the repository.PermissionRepository interface.
type permissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository is the constructor for permissionRepository.
func NewPermissionRepository(db *gorm.DB) repository.PermissionRepository {
	return &permissionRepository{
		db: db,
	}
}

func (repo *permissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Permission, error) {
	var permissionM model.PermissionModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&permissionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPermissionNotFound
		}

		return nil, errors.Wrap(err, "failed to find permission by id")
	}

	return toPermissionDomain(&permissionM), nil
}

func (repo *permissionRepository) FindByName(ctx context.Context, name string) (*entity.Permission, error) {
	var permissionM model.PermissionModel

	if err := repo.db.WithContext(ctx).
		Where("name = ?", name).
		First(&permissionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPermissionNotFound
		}

		return nil, errors.Wrap(err, "failed to find permission by name")
	}

	return toPermissionDomain(&permissionM), nil
}

func (repo *permissionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Permission, error) {
	if len(ids) == 0 {
		return []*entity.Permission{}, nil
	}

	var permissionModels []*model.PermissionModel
	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("name").
		Find(&permissionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find permissions by ids")
	}

	return toPermissionDomains(permissionModels), nil
}

func (repo *permissionRepository) List(ctx context.Context) ([]*entity.Permission, error) {
	var permissionModels []*model.PermissionModel

	if err := repo.db.WithContext(ctx).Order("name").Find(&permissionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list permissions")
	}

	return toPermissionDomains(permissionModels), nil
}

func (repo *permissionRepository) Create(ctx context.Context, permission *entity.Permission) error {
	permissionM := fromPermissionDomain(permission)

	if err := repo.db.WithContext(ctx).Create(permissionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrPermissionAlreadyExists.WrapMessage("permission name already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create permission")
	}

	permission.ID = permissionM.ID
	permission.CreatedAt = permissionM.CreatedAt
	permission.UpdatedAt = permissionM.UpdatedAt

	return nil
}

func (repo *permissionRepository) Update(ctx context.Context, permission *entity.Permission) error {
	permissionM := fromPermissionDomain(permission)

	result := repo.db.WithContext(ctx).
		Model(permissionM).
		Select("name", "description").
		Updates(permissionM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrPermissionAlreadyExists.WrapMessage("permission name already exists")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update permission")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPermissionNotFound
	}

	permission.UpdatedAt = permissionM.UpdatedAt

	return nil
}

func (repo *permissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.PermissionModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrPermissionInUse
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete permission")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPermissionNotFound
	}

	return nil
}

func (repo *permissionRepository) CountRoles(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.RolePermissionModel{}).
		Where("permission_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count permission roles")
	}

	return count, nil
}

// --- Mapper Functions ---

func toRoleDomain(data *model.RoleModel) *entity.Role {
	if data == nil {
		return nil
	}

	return &entity.Role{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromRoleDomain(data *entity.Role) *model.RoleModel {
	if data == nil {
		return nil
	}

	return &model.RoleModel{
		Base:        model.Base{ID: data.ID, CreatedAt: data.CreatedAt, UpdatedAt: data.UpdatedAt},
		Name:        data.Name,
		Description: data.Description,
	}
}

func toPermissionDomain(data *model.PermissionModel) *entity.Permission {
	if data == nil {
		return nil
	}

	return &entity.Permission{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toPermissionDomains(data []*model.PermissionModel) []*entity.Permission {
	permissions := make([]*entity.Permission, 0, len(data))
	for _, permissionM := range data {
		permissions = append(permissions, toPermissionDomain(permissionM))
	}

	return permissions
}

func fromPermissionDomain(data *entity.Permission) *model.PermissionModel {
	if data == nil {
		return nil
	}

	return &model.PermissionModel{
		Base:        model.Base{ID: data.ID, CreatedAt: data.CreatedAt, UpdatedAt: data.UpdatedAt},
		Name:        data.Name,
		Description: data.Description,
	}
}
