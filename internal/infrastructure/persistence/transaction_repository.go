package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Append inserts a transaction row. Rows are never updated through this
// method; the id is generated once at construction.
func (r *GormTransactionRepository) Append(ctx context.Context, txn *ledger.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

// FindByID finds a transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var txn ledger.Transaction
	if err := r.db.WithContext(ctx).First(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

// FindByAccountNumber returns an account's transactions in ledger order.
// The (txn_date, created_at, id) ordering is total, so a re-run over the
// same rows always yields the same running balances.
func (r *GormTransactionRepository) FindByAccountNumber(ctx context.Context, accountNumber string, from, to time.Time) ([]ledger.Transaction, error) {
	query := r.db.WithContext(ctx).Where("account_number = ?", accountNumber)
	if !from.IsZero() {
		query = query.Where("txn_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("txn_date <= ?", to)
	}

	var txns []ledger.Transaction
	if err := query.
		Order("txn_date ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// Update rewrites a transaction row in place, keeping its id
func (r *GormTransactionRepository) Update(ctx context.Context, txn *ledger.Transaction) error {
	return r.db.WithContext(ctx).Save(txn).Error
}

// Delete removes a transaction row
func (r *GormTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&ledger.Transaction{}, "id = ?", id).Error
}

var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)
