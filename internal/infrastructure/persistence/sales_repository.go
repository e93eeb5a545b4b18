package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Save inserts a sale fact
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// FindByShift returns a (shift, date) pair's sale facts
func (r *GormSaleRepository) FindByShift(ctx context.Context, shiftID int, saleDate time.Time) ([]sales.Sale, error) {
	var result []sales.Sale
	if err := r.db.WithContext(ctx).
		Where("shift_id = ? AND sale_date = ?", shiftID, saleDate).
		Order("created_at ASC").
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a sale fact
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&sales.Sale{}, "id = ?", id).Error
}

// BankSalesTotal sums bank-side channel sales for a (shift, date) pair
func (r *GormSaleRepository) BankSalesTotal(ctx context.Context, shiftID int, saleDate time.Time) (decimal.Decimal, error) {
	return sumAmountColumn(r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("shift_id = ? AND sale_date = ?", shiftID, saleDate).
		Where("channel IN ?", []ledger.PaymentChannel{ledger.ChannelBank, ledger.ChannelMobileBank}))
}

var _ sales.SaleRepository = (*GormSaleRepository)(nil)

// GormCreditSaleRepository implements sales.CreditSaleRepository using GORM
type GormCreditSaleRepository struct {
	db *gorm.DB
}

// NewGormCreditSaleRepository creates a new GormCreditSaleRepository
func NewGormCreditSaleRepository(db *gorm.DB) *GormCreditSaleRepository {
	return &GormCreditSaleRepository{db: db}
}

// Save inserts a credit sale fact
func (r *GormCreditSaleRepository) Save(ctx context.Context, sale *sales.CreditSale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// FindByID finds a credit sale by its ID
func (r *GormCreditSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.CreditSale, error) {
	var sale sales.CreditSale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// FindByShift returns a (shift, date) pair's credit sale facts
func (r *GormCreditSaleRepository) FindByShift(ctx context.Context, shiftID int, saleDate time.Time) ([]sales.CreditSale, error) {
	var result []sales.CreditSale
	if err := r.db.WithContext(ctx).
		Where("shift_id = ? AND sale_date = ?", shiftID, saleDate).
		Order("created_at ASC").
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a credit sale fact
func (r *GormCreditSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&sales.CreditSale{}, "id = ?", id).Error
}

// TotalByShift sums credit sales for a (shift, date) pair
func (r *GormCreditSaleRepository) TotalByShift(ctx context.Context, shiftID int, saleDate time.Time) (decimal.Decimal, error) {
	return sumAmountColumn(r.db.WithContext(ctx).
		Model(&sales.CreditSale{}).
		Where("shift_id = ? AND sale_date = ?", shiftID, saleDate))
}

// ProductBreakdown groups a (shift, date) pair's credit sales by product
func (r *GormCreditSaleRepository) ProductBreakdown(ctx context.Context, shiftID int, saleDate time.Time) ([]sales.ProductTotal, error) {
	var breakdown []sales.ProductTotal
	if err := r.db.WithContext(ctx).
		Model(&sales.CreditSale{}).
		Select("product_id, product_name, SUM(quantity) AS quantity, SUM(amount) AS amount").
		Where("shift_id = ? AND sale_date = ?", shiftID, saleDate).
		Group("product_id, product_name").
		Order("product_name ASC").
		Scan(&breakdown).Error; err != nil {
		return nil, err
	}
	return breakdown, nil
}

// FindByAccountNumber returns a customer's credit sale facts in a date range
func (r *GormCreditSaleRepository) FindByAccountNumber(ctx context.Context, accountNumber string, from, to time.Time) ([]sales.CreditSale, error) {
	query := r.db.WithContext(ctx).Where("account_number = ?", accountNumber)
	if !from.IsZero() {
		query = query.Where("sale_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("sale_date <= ?", to)
	}

	var result []sales.CreditSale
	if err := query.
		Order("sale_date ASC").
		Order("created_at ASC").
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

var _ sales.CreditSaleRepository = (*GormCreditSaleRepository)(nil)

// sumAmountColumn sums the amount column of a prepared query, treating an
// empty result set as zero
func sumAmountColumn(query *gorm.DB) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := query.Select("SUM(amount)").Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
