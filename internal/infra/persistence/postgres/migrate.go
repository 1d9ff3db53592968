package postgres

import (
	"context"

	"cadastre/internal/errors"
	"cadastre/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// Migrate creates or alters every table to match the persistence models.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}
