package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountFilter narrows account listings
type AccountFilter struct {
	Types    []AccountType
	Search   string
	Page     int
	PageSize int
}

// AccountRepository persists ledger accounts
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByAccountNumber(ctx context.Context, accountNumber string) (*Account, error)
	FindByTypes(ctx context.Context, types []AccountType) ([]Account, error)
	FindAll(ctx context.Context, filter AccountFilter) ([]Account, int64, error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
	Save(ctx context.Context, account *Account) error

	// AdjustBalance applies a signed delta to the cached balance as a single
	// atomic increment at the storage layer. It must run inside the caller's
	// unit of work when posting vouchers.
	AdjustBalance(ctx context.Context, accountNumber string, delta decimal.Decimal) error
}

// TransactionRepository persists the append-only transaction log
type TransactionRepository interface {
	Append(ctx context.Context, txn *Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// FindByAccountNumber returns transactions in ledger order:
	// (txn_date ASC, created_at ASC, id ASC).
	FindByAccountNumber(ctx context.Context, accountNumber string, from, to time.Time) ([]Transaction, error)

	// Update mutates an existing row in place; only the voucher engine's
	// amend protocol may call this.
	Update(ctx context.Context, txn *Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
}
