// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"cadastre/internal/domain/repository"
	"cadastre/internal/errors"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction object (*gorm.Tx) and uses it to create
// repository instances that are bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB // In GORM, a transaction object *gorm.Tx is also a *gorm.DB
}

// NewUserRepository creates a new user repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.tx)
}

// NewRoleRepository creates a new role repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewRoleRepository() repository.RoleRepository {
	return NewRoleRepository(f.tx)
}

// NewPermissionRepository creates a new permission repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewPermissionRepository() repository.PermissionRepository {
	return NewPermissionRepository(f.tx)
}

// NewSessionRepository binds the staff session store to the transaction.
func (f *gormRepositoryFactory) NewSessionRepository() repository.SessionRepository {
	return NewSessionRepository(f.tx)
}

// NewLocationRepository creates a new location repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewLocationRepository() repository.LocationRepository {
	return NewLocationRepository(f.tx)
}

// NewLookupRepository creates a new lookup repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewLookupRepository() repository.LookupRepository {
	return NewLookupRepository(f.tx)
}

// NewOwnerRepository creates a new owner repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewOwnerRepository() repository.OwnerRepository {
	return NewOwnerRepository(f.tx)
}

// NewResponsiblePersonRepository creates a new responsible person repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewResponsiblePersonRepository() repository.ResponsiblePersonRepository {
	return NewResponsiblePersonRepository(f.tx)
}

// NewPropertyRepository creates a new property repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewPropertyRepository() repository.PropertyRepository {
	return NewPropertyRepository(f.tx)
}

// NewPaymentRepository creates a new payment repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewPaymentRepository() repository.PaymentRepository {
	return NewPaymentRepository(f.tx)
}

// NewPaymentDetailRepository creates a new payment detail repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewPaymentDetailRepository() repository.PaymentDetailRepository {
	return NewPaymentDetailRepository(f.tx)
}

// NewPolicyRepository creates a new policy repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewPolicyRepository() repository.PolicyRepository {
	return NewPolicyRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	// Begin a new transaction
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	// This defer block ensures that if a panic occurs within the callback function,
	// the transaction is always rolled back. This is a critical safety measure.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			// Re-panic to allow Fx or other middleware to handle the panic.
			panic(r)
		}
	}()

	// Create a repository factory that is bound to this specific transaction.
	factory := &gormRepositoryFactory{tx: tx}

	// Execute the application logic (the use case's core work)
	err := fn(factory)
	if err != nil {
		// If the business logic returns an error, roll back the transaction.
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Log the rollback error, but return the original, more meaningful business error.
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}
		return err // Return the original business error.
	}

	// If the business logic completes without error, commit the transaction.
	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
