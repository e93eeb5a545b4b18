package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductTotal is a per-product aggregate line for a (shift, date) pair
type ProductTotal struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// SaleRepository persists and aggregates shift sale facts
type SaleRepository interface {
	Save(ctx context.Context, sale *Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByShift(ctx context.Context, shiftID int, saleDate time.Time) ([]Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// BankSalesTotal sums bank-side channel sales for a (shift, date) pair
	BankSalesTotal(ctx context.Context, shiftID int, saleDate time.Time) (decimal.Decimal, error)
}

// CreditSaleRepository persists and aggregates credit sale facts
type CreditSaleRepository interface {
	Save(ctx context.Context, sale *CreditSale) error
	FindByID(ctx context.Context, id uuid.UUID) (*CreditSale, error)
	FindByShift(ctx context.Context, shiftID int, saleDate time.Time) ([]CreditSale, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// TotalByShift sums credit sales for a (shift, date) pair
	TotalByShift(ctx context.Context, shiftID int, saleDate time.Time) (decimal.Decimal, error)
	// ProductBreakdown groups a (shift, date) pair's credit sales by product
	ProductBreakdown(ctx context.Context, shiftID int, saleDate time.Time) ([]ProductTotal, error)
	// FindByAccountNumber returns a customer's credit sale facts in a date
	// range, ordered by sale date then recording time.
	FindByAccountNumber(ctx context.Context, accountNumber string, from, to time.Time) ([]CreditSale, error)
}
