package persistence

import (
	"context"

	appvoucher "github.com/fuelstation/backend/internal/application/voucher"
	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/voucher"
	"gorm.io/gorm"
)

// GormVoucherTransactionScope implements the voucher engine's TransactionScope
// using GORM transactions. Every voucher mutation runs its account, ledger
// and voucher writes against one shared transaction.
type GormVoucherTransactionScope struct {
	db *gorm.DB
}

// NewGormVoucherTransactionScope creates a new GormVoucherTransactionScope
func NewGormVoucherTransactionScope(db *gorm.DB) *GormVoucherTransactionScope {
	return &GormVoucherTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormVoucherTransactionScope) Execute(ctx context.Context, fn func(repos appvoucher.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormVoucherRepositories{tx: tx}
		return fn(repos)
	})
}

// gormVoucherRepositories provides access to the voucher engine's
// repositories within a transaction
type gormVoucherRepositories struct {
	tx *gorm.DB
}

// Accounts returns the account repository scoped to the current transaction
func (r *gormVoucherRepositories) Accounts() ledger.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

// Transactions returns the ledger transaction repository scoped to the current transaction
func (r *gormVoucherRepositories) Transactions() ledger.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

// Vouchers returns the voucher repository scoped to the current transaction
func (r *gormVoucherRepositories) Vouchers() voucher.Repository {
	return NewGormVoucherRepository(r.tx)
}

var _ appvoucher.TransactionScope = (*GormVoucherTransactionScope)(nil)
var _ appvoucher.TransactionalRepositories = (*gormVoucherRepositories)(nil)
