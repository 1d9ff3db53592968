package postgres

import (
	"context"
	"time"

	"cadastre/internal/domain/entity"
	domainerrors "cadastre/internal/domain/errors"
	"cadastre/internal/domain/repository"
	"cadastre/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) byHash(ctx context.Context, tokenHash string) *gorm.DB {
	return repo.db.WithContext(ctx).Where("token_hash = ?", tokenHash)
}

func (repo *sessionRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	row := &model.RefreshTokenModel{
		Base:      model.Base{ID: token.ID},
		UserID:    token.UserID,
		TokenHash: token.TokenHash,
		ExpiresAt: token.ExpiresAt,
	}

	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrRefreshTokenInvalid.WrapMessage("session already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	token.ID = row.ID
	token.CreatedAt = row.CreatedAt

	return nil
}

func (repo *sessionRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	var row model.RefreshTokenModel
	if err := repo.byHash(ctx, tokenHash).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.WithStack(err)
	}

	return &entity.RefreshToken{
		ID:        row.ID,
		UserID:    row.UserID,
		TokenHash: row.TokenHash,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (repo *sessionRepository) Revoke(ctx context.Context, tokenHash string) error {
	result := repo.byHash(ctx, tokenHash).Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to revoke session")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

func (repo *sessionRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.RefreshTokenModel{}).Error

	return errors.Wrapf(err, "failed to revoke sessions of user %s", userID)
}

func (repo *sessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to purge expired sessions")
	}

	return result.RowsAffected, nil
}
