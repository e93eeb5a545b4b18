package persistence

import (
	"context"

	appshift "github.com/fuelstation/backend/internal/application/shift"
	"github.com/fuelstation/backend/internal/domain/shift"
	"gorm.io/gorm"
)

// GormShiftTransactionScope implements the shift close TransactionScope
// using GORM transactions. The readings and the lock row commit together.
type GormShiftTransactionScope struct {
	db *gorm.DB
}

// NewGormShiftTransactionScope creates a new GormShiftTransactionScope
func NewGormShiftTransactionScope(db *gorm.DB) *GormShiftTransactionScope {
	return &GormShiftTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormShiftTransactionScope) Execute(ctx context.Context, fn func(repos appshift.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormShiftRepositories{tx: tx}
		return fn(repos)
	})
}

// gormShiftRepositories provides access to the shift repositories within a
// transaction
type gormShiftRepositories struct {
	tx *gorm.DB
}

// Closes returns the close-lock repository scoped to the current transaction
func (r *gormShiftRepositories) Closes() shift.CloseRepository {
	return NewGormShiftCloseRepository(r.tx)
}

// Readings returns the reading repository scoped to the current transaction
func (r *gormShiftRepositories) Readings() shift.ReadingRepository {
	return NewGormReadingRepository(r.tx)
}

var _ appshift.TransactionScope = (*GormShiftTransactionScope)(nil)
var _ appshift.TransactionalRepositories = (*gormShiftRepositories)(nil)
