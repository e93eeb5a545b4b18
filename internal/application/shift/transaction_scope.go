package shift

import (
	"context"

	"github.com/fuelstation/backend/internal/domain/shift"
)

// TransactionScope provides transactional access to the repositories a shift
// close writes together. The dispenser readings, the daily summary and the
// lock row commit or roll back as one unit; a failed close leaves the shift
// open with nothing persisted.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the shift repositories within
// a transaction
type TransactionalRepositories interface {
	// Closes returns the close-lock repository scoped to the current transaction
	Closes() shift.CloseRepository
	// Readings returns the reading repository scoped to the current transaction
	Readings() shift.ReadingRepository
}
