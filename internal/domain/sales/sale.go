package sales

import (
	"time"

	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a recorded shift sale fact. Each row carries the shift and date it
// belongs to so reconciliation can aggregate it without joins back to any
// shift table.
type Sale struct {
	shared.BaseEntity
	ShiftID     int                   `gorm:"not null;index:idx_sale_shift"`
	SaleDate    time.Time             `gorm:"not null;index:idx_sale_shift"`
	ProductID   uuid.UUID             `gorm:"type:uuid;not null"`
	ProductName string                `gorm:"type:varchar(100);not null"`
	Quantity    decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Rate        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Channel     ledger.PaymentChannel `gorm:"type:varchar(20);not null"`
	BankName    string                `gorm:"type:varchar(100)"`
	Remark      string                `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a sale fact with validation
func NewSale(shiftID int, saleDate time.Time, productID uuid.UUID, productName string, quantity, rate decimal.Decimal, channel ledger.PaymentChannel, bankName, remark string) (*Sale, error) {
	if shiftID <= 0 {
		return nil, shared.NewDomainError("INVALID_SHIFT", "Shift ID must be positive")
	}
	if saleDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Sale date is required")
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
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Invalid payment channel: "+string(channel))
	}

	return &Sale{
		BaseEntity:  shared.NewBaseEntity(),
		ShiftID:     shiftID,
		SaleDate:    saleDate,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Rate:        rate,
		Amount:      quantity.Mul(rate),
		Channel:     channel,
		BankName:    bankName,
		Remark:      remark,
	}, nil
}

// IsBankSale reports whether the fact counts toward the bank sales total
func (s *Sale) IsBankSale() bool {
	return s.Channel.IsBankSide()
}
