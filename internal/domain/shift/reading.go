package shift

import (
	"time"

	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReadingInput is one dispenser's metered figures submitted at shift close
type ReadingInput struct {
	DispenserID   uuid.UUID
	DispenserName string
	ProductID     uuid.UUID
	StartReading  decimal.Decimal
	EndReading    decimal.Decimal
	MeterTest     decimal.Decimal
	ItemRate      decimal.Decimal
}

// NetReading returns max(0, (end - start) - meterTest). A negative net is
// clamped to zero, never rejected; meters get swapped or reset mid-shift and
// the operators settle the difference off-book.
func (r ReadingInput) NetReading() decimal.Decimal {
	net := r.EndReading.Sub(r.StartReading).Sub(r.MeterTest)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// TotalSale returns netReading * itemRate
func (r ReadingInput) TotalSale() decimal.Decimal {
	return r.NetReading().Mul(r.ItemRate)
}

// DispenserReading is the persisted per-dispenser row written as part of the
// shift-close transaction. Rows are never updated outside that transaction.
type DispenserReading struct {
	shared.BaseEntity
	ShiftID       int             `gorm:"not null;index:idx_reading_shift"`
	ReadingDate   time.Time       `gorm:"not null;index:idx_reading_shift"`
	DispenserID   uuid.UUID       `gorm:"type:uuid;not null"`
	DispenserName string          `gorm:"type:varchar(100);not null"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	StartReading  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EndReading    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	MeterTest     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ItemRate      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NetReading    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalSale     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (DispenserReading) TableName() string {
	return "dispenser_readings"
}

// NewDispenserReading materializes a reading row from submitted input
func NewDispenserReading(shiftID int, readingDate time.Time, in ReadingInput) (*DispenserReading, error) {
	if in.DispenserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DISPENSER", "Dispenser ID is required")
	}
	if in.ProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if in.ItemRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Item rate cannot be negative")
	}
	if readingDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Reading date is required")
	}

	return &DispenserReading{
		BaseEntity:    shared.NewBaseEntity(),
		ShiftID:       shiftID,
		ReadingDate:   readingDate,
		DispenserID:   in.DispenserID,
		DispenserName: in.DispenserName,
		ProductID:     in.ProductID,
		StartReading:  in.StartReading,
		EndReading:    in.EndReading,
		MeterTest:     in.MeterTest,
		ItemRate:      in.ItemRate,
		NetReading:    in.NetReading(),
		TotalSale:     in.TotalSale(),
	}, nil
}
