package shift

import (
	"time"

	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregates holds the collaborator totals pulled for one (shift, date) pair
// before derivation: credit sales, bank-channel sales, shift-tagged receipt
// and payment vouchers, and office payments.
type Aggregates struct {
	CreditSalesTotal   decimal.Decimal `json:"credit_sales_total"`
	BankSalesTotal     decimal.Decimal `json:"bank_sales_total"`
	CashReceiveTotal   decimal.Decimal `json:"cash_receive_total"`
	CashPaymentTotal   decimal.Decimal `json:"cash_payment_total"`
	OfficePaymentTotal decimal.Decimal `json:"office_payment_total"`
}

// Summary is the derived money position of one closed shift
type Summary struct {
	TotalSale decimal.Decimal `json:"total_sale"`
	CashSales decimal.Decimal `json:"cash_sales"`
	TotalCash decimal.Decimal `json:"total_cash"`
	FinalDue  decimal.Decimal `json:"final_due"`
}

// Reconcile derives the shift summary:
//
//	cashSales = totalSale - creditSalesTotal
//	totalCash = cashSales + cashReceiveTotal
//	finalDue  = (totalCash - cashPaymentTotal) - officePaymentTotal
func Reconcile(totalSale decimal.Decimal, agg Aggregates) Summary {
	cashSales := totalSale.Sub(agg.CreditSalesTotal)
	totalCash := cashSales.Add(agg.CashReceiveTotal)
	finalDue := totalCash.Sub(agg.CashPaymentTotal).Sub(agg.OfficePaymentTotal)
	return Summary{
		TotalSale: totalSale,
		CashSales: cashSales,
		TotalCash: totalCash,
		FinalDue:  finalDue,
	}
}

// TotalSaleOf sums the per-dispenser sale figures
func TotalSaleOf(readings []ReadingInput) decimal.Decimal {
	total := decimal.Zero
	for _, r := range readings {
		total = total.Add(r.TotalSale())
	}
	return total
}

// DailyReading is the one-per-(shift, date) summary row persisted at close
type DailyReading struct {
	shared.BaseEntity
	ShiftID            int             `gorm:"not null;index:idx_daily_shift"`
	ReadingDate        time.Time       `gorm:"not null;index:idx_daily_shift"`
	CreditSalesTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BankSalesTotal     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CashSales          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CashReceiveTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CashPaymentTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OfficePaymentTotal decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalCash          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	FinalDue           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (DailyReading) TableName() string {
	return "daily_readings"
}

// NewDailyReading builds the summary row for a closing shift
func NewDailyReading(shiftID int, readingDate time.Time, agg Aggregates, summary Summary) *DailyReading {
	return &DailyReading{
		BaseEntity:         shared.NewBaseEntity(),
		ShiftID:            shiftID,
		ReadingDate:        readingDate,
		CreditSalesTotal:   agg.CreditSalesTotal,
		BankSalesTotal:     agg.BankSalesTotal,
		CashSales:          summary.CashSales,
		CashReceiveTotal:   agg.CashReceiveTotal,
		CashPaymentTotal:   agg.CashPaymentTotal,
		OfficePaymentTotal: agg.OfficePaymentTotal,
		TotalCash:          summary.TotalCash,
		FinalDue:           summary.FinalDue,
	}
}
