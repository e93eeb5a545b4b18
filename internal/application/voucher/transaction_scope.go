package voucher

import (
	"context"

	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/voucher"
)

// TransactionScope provides transactional access to the repositories the
// voucher engine mutates together. When a function is executed within a
// scope, all repository operations share one database transaction and commit
// or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the voucher engine's
// repositories within a transaction. All repositories returned share the same
// underlying database transaction.
//
// Every voucher mutation touches three tables at once: the voucher row, its
// linked transaction row, and the cached balances of both accounts. None of
// the three may be observed without the others.
type TransactionalRepositories interface {
	// Accounts returns the account repository scoped to the current transaction
	Accounts() ledger.AccountRepository
	// Transactions returns the ledger transaction repository scoped to the current transaction
	Transactions() ledger.TransactionRepository
	// Vouchers returns the voucher repository scoped to the current transaction
	Vouchers() voucher.Repository
}
