package sales

import (
	"time"

	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditSale is a recorded on-credit sale fact against a customer's
// receivable account. The rows feed two readers: the shift reconciliation
// (credit sales reduce expected cash) and the customer due ledger.
type CreditSale struct {
	shared.BaseEntity
	ShiftID       int             `gorm:"not null;index:idx_credit_sale_shift"`
	SaleDate      time.Time       `gorm:"not null;index:idx_credit_sale_shift;index:idx_credit_sale_customer"`
	AccountNumber string          `gorm:"type:varchar(20);not null;index:idx_credit_sale_customer"`
	CustomerName  string          `gorm:"type:varchar(100);not null"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName   string          `gorm:"type:varchar(100);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rate          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	VehicleNumber string          `gorm:"type:varchar(50)"`
	Remark        string          `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (CreditSale) TableName() string {
	return "credit_sales"
}

// NewCreditSale creates a credit sale fact with validation
func NewCreditSale(shiftID int, saleDate time.Time, accountNumber, customerName string, productID uuid.UUID, productName string, quantity, rate decimal.Decimal, vehicleNumber, remark string) (*CreditSale, error) {
	if shiftID <= 0 {
		return nil, shared.NewDomainError("INVALID_SHIFT", "Shift ID must be positive")
	}
	if saleDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Sale date is required")
	}
	if accountNumber == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Customer account number is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}

	return &CreditSale{
		BaseEntity:    shared.NewBaseEntity(),
		ShiftID:       shiftID,
		SaleDate:      saleDate,
		AccountNumber: accountNumber,
		CustomerName:  customerName,
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      quantity,
		Rate:          rate,
		Amount:        quantity.Mul(rate),
		VehicleNumber: vehicleNumber,
		Remark:        remark,
	}, nil
}
