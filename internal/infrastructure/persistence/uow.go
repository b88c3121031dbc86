package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// GormUnitOfWork implements shared.UnitOfWork on top of a gorm
// transaction. The transaction handle is carried in the context so
// every repository call inside Execute shares one DB transaction.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a unit of work bound to the given connection
func NewUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn inside a single database transaction. Any error
// returned by fn rolls the whole transaction back.
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFromContext resolves the active transaction from the context,
// falling back to the base connection for reads outside a unit of work
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
