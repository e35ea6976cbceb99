package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"productcatalog/internal/database"
)

// errAborted rolls back a unit-of-work transaction whose callback failed
// with a non-persistence error.
var errAborted = errors.New("unit of work aborted")

// UnitOfWork exposes one instance of each repository, all sharing the same
// GORM session. Both repositories are built when the unit of work is created.
type UnitOfWork struct {
	db         *gorm.DB
	strategy   *database.ExecutionStrategy
	products   *ProductRepository
	categories *CategoryRepository
}

// NewUnitOfWork creates a unit of work over db.
func NewUnitOfWork(db *gorm.DB, strategy *database.ExecutionStrategy) *UnitOfWork {
	session := db.Session(&gorm.Session{})
	return &UnitOfWork{
		db:         session,
		strategy:   strategy,
		products:   NewProductRepository(session, strategy),
		categories: NewCategoryRepository(session),
	}
}

// DB returns the session the repositories share.
func (u *UnitOfWork) DB() *gorm.DB { return u.db }

// Products returns the product repository.
func (u *UnitOfWork) Products() *ProductRepository { return u.products }

// Categories returns the category repository.
func (u *UnitOfWork) Categories() *CategoryRepository { return u.categories }

// InTransaction runs fn with a unit of work whose repositories share one
// database transaction. The transaction commits when fn returns nil and rolls
// back otherwise. Transient failures replay the whole transaction, fn
// included. Errors returned by fn are passed back to the caller unchanged.
func (u *UnitOfWork) InTransaction(ctx context.Context, fn func(ctx context.Context, tx *UnitOfWork) error) error {
	var fnErr error
	err := u.strategy.Execute(ctx, "unit_of_work.transaction", func(ctx context.Context) error {
		fnErr = nil
		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// Retries happen at this level only; nothing inside replays on its own.
			scoped := NewUnitOfWork(tx, u.strategy.WithoutRetries())
			if err := fn(ctx, scoped); err != nil {
				var perr *database.PersistenceError
				if errors.As(err, &perr) {
					return err
				}
				fnErr = err
				return errAborted
			}
			return nil
		})
	})
	if fnErr != nil {
		return fnErr
	}
	return err
}
