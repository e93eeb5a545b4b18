package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fuelstation/backend/internal/domain/voucher"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormVoucherRepository implements voucher.Repository using GORM
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository creates a new GormVoucherRepository
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// FindByID finds a voucher by its ID
func (r *GormVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*voucher.Voucher, error) {
	var v voucher.Voucher
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// FindByIDs returns the vouchers matching the given ids
func (r *GormVoucherRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]voucher.Voucher, error) {
	var vouchers []voucher.Voucher
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

// FindAll returns vouchers matching the filter with a total count
func (r *GormVoucherRepository) FindAll(ctx context.Context, filter voucher.Filter) ([]voucher.Voucher, int64, error) {
	query := r.db.WithContext(ctx).Model(&voucher.Voucher{})

	if filter.VoucherType != nil {
		query = query.Where("voucher_type = ?", *filter.VoucherType)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.FromDate != nil {
		query = query.Where("voucher_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("voucher_date <= ?", *filter.ToDate)
	}
	if filter.Account != "" {
		query = query.Where("from_account_number = ? OR to_account_number = ?", filter.Account, filter.Account)
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

	var vouchers []voucher.Voucher
	if err := query.
		Order("voucher_date DESC").
		Order("created_at DESC").
		Find(&vouchers).Error; err != nil {
		return nil, 0, err
	}
	return vouchers, total, nil
}

// Save persists a new voucher
func (r *GormVoucherRepository) Save(ctx context.Context, v *voucher.Voucher) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// Update persists changes to an existing voucher
func (r *GormVoucherRepository) Update(ctx context.Context, v *voucher.Voucher) error {
	return r.db.WithContext(ctx).Save(v).Error
}

// Delete removes a voucher row
func (r *GormVoucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&voucher.Voucher{}, "id = ?", id).Error
}

// SumByShift sums voucher amounts of one type tagged to a (shift, date) pair
func (r *GormVoucherRepository) SumByShift(ctx context.Context, voucherType voucher.VoucherType, shiftID int, shiftDate time.Time) (decimal.Decimal, error) {
	return r.sumAmount(r.db.WithContext(ctx).
		Model(&voucher.Voucher{}).
		Where("voucher_type = ? AND shift_id = ? AND shift_date = ?", voucherType, shiftID, shiftDate))
}

// SumOfficePaymentsByShift sums office payment vouchers for a shift pair
func (r *GormVoucherRepository) SumOfficePaymentsByShift(ctx context.Context, shiftID int, shiftDate time.Time) (decimal.Decimal, error) {
	return r.sumAmount(r.db.WithContext(ctx).
		Model(&voucher.Voucher{}).
		Where("sub_type = ? AND shift_id = ? AND shift_date = ?", voucher.SubTypeOfficePayment, shiftID, shiftDate))
}

// FindReceiptsForAccount returns receipt vouchers credited against an
// account within a window, ordered by voucher date then recording time
func (r *GormVoucherRepository) FindReceiptsForAccount(ctx context.Context, accountNumber string, from, to time.Time) ([]voucher.Voucher, error) {
	query := r.db.WithContext(ctx).
		Where("voucher_type = ?", voucher.TypeReceipt).
		Where("from_account_number = ? OR to_account_number = ?", accountNumber, accountNumber)
	if !from.IsZero() {
		query = query.Where("voucher_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("voucher_date <= ?", to)
	}

	var vouchers []voucher.Voucher
	if err := query.
		Order("voucher_date ASC").
		Order("created_at ASC").
		Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

func (r *GormVoucherRepository) sumAmount(query *gorm.DB) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := query.Select("SUM(amount)").Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

var _ voucher.Repository = (*GormVoucherRepository)(nil)
