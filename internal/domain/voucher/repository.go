package voucher

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter narrows voucher listings
type Filter struct {
	VoucherType *VoucherType
	Category    *Category
	FromDate    *time.Time
	ToDate      *time.Time
	Account     string
	Page        int
	PageSize    int
}

// Repository persists vouchers
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Voucher, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Voucher, error)
	FindAll(ctx context.Context, filter Filter) ([]Voucher, int64, error)
	Save(ctx context.Context, v *Voucher) error
	Update(ctx context.Context, v *Voucher) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SumByShift sums voucher amounts of one type tagged to a (shift, date)
	// pair; the shift reconciliation engine pulls its cash receive/payment
	// totals through this.
	SumByShift(ctx context.Context, voucherType VoucherType, shiftID int, shiftDate time.Time) (decimal.Decimal, error)

	// SumOfficePaymentsByShift sums OFFICE_PAYMENT vouchers for a shift pair
	SumOfficePaymentsByShift(ctx context.Context, shiftID int, shiftDate time.Time) (decimal.Decimal, error)

	// FindReceiptsForAccount returns receipt vouchers credited against a
	// customer account within a window, for the due ledger.
	FindReceiptsForAccount(ctx context.Context, accountNumber string, from, to time.Time) ([]Voucher, error)
}
