package persistence

import (
	"context"
	"errors"

	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormAccountRepository implements ledger.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var account ledger.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// FindByAccountNumber finds an account by its account number
func (r *GormAccountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*ledger.Account, error) {
	var account ledger.Account
	if err := r.db.WithContext(ctx).First(&account, "account_number = ?", accountNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// FindByTypes returns all accounts of the given types ordered by name
func (r *GormAccountRepository) FindByTypes(ctx context.Context, types []ledger.AccountType) ([]ledger.Account, error) {
	var accounts []ledger.Account
	if err := r.db.WithContext(ctx).
		Where("account_type IN ?", types).
		Order("name ASC").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// FindAll returns accounts matching the filter with a total count
func (r *GormAccountRepository) FindAll(ctx context.Context, filter ledger.AccountFilter) ([]ledger.Account, int64, error) {
	query := r.db.WithContext(ctx).Model(&ledger.Account{})

	if len(filter.Types) > 0 {
		query = query.Where("account_type IN ?", filter.Types)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR account_number LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 1 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}

	var accounts []ledger.Account
	if err := query.Order("name ASC").Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// ExistsByAccountNumber checks whether an account number is taken
func (r *GormAccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.Account{}).
		Where("account_number = ?", accountNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists an account
func (r *GormAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	if err := r.db.WithContext(ctx).Save(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// AdjustBalance applies a signed delta to the cached balance as one atomic
// UPDATE. Two concurrent adjustments to the same account serialize at the
// storage layer; neither can lose the other's increment.
func (r *GormAccountRepository) AdjustBalance(ctx context.Context, accountNumber string, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&ledger.Account{}).
		Where("account_number = ?", accountNumber).
		Update("total_amount", gorm.Expr("total_amount + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found: "+accountNumber)
	}
	return nil
}

var _ ledger.AccountRepository = (*GormAccountRepository)(nil)
