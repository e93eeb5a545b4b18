package shift

import (
	"context"
	"time"

	"github.com/fuelstation/backend/internal/domain/sales"
	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/fuelstation/backend/internal/domain/shift"
	"github.com/fuelstation/backend/internal/domain/voucher"
	"github.com/shopspring/decimal"
)

// CloseShiftCommand carries a shift close request
type CloseShiftCommand struct {
	ShiftID  int
	Date     time.Time
	Readings []shift.ReadingInput
}

// CloseResult is what a successful close reports back
type CloseResult struct {
	ShiftID    int              `json:"shift_id"`
	Date       time.Time        `json:"date"`
	Aggregates shift.Aggregates `json:"aggregates"`
	Summary    shift.Summary    `json:"summary"`
}

// Preview is the read-only pre-close view of a (shift, date) pair
type Preview struct {
	ShiftID          int                  `json:"shift_id"`
	Date             time.Time            `json:"date"`
	State            shift.State          `json:"state"`
	Aggregates       shift.Aggregates     `json:"aggregates"`
	CreditSaleByItem []sales.ProductTotal `json:"credit_sale_by_item"`
}

// CloseService reconciles and locks shifts. A close derives the shift's money
// position from the dispenser readings and the collaborator totals, then
// persists everything with the lock row in one transaction. The lock is
// irreversible; no reopen operation exists.
type CloseService struct {
	scope       TransactionScope
	closes      shift.CloseRepository
	saleRepo    sales.SaleRepository
	creditSales sales.CreditSaleRepository
	vouchers    voucher.Repository
}

// NewCloseService creates a shift close service
func NewCloseService(
	scope TransactionScope,
	closes shift.CloseRepository,
	saleRepo sales.SaleRepository,
	creditSales sales.CreditSaleRepository,
	vouchers voucher.Repository,
) *CloseService {
	return &CloseService{
		scope:       scope,
		closes:      closes,
		saleRepo:    saleRepo,
		creditSales: creditSales,
		vouchers:    vouchers,
	}
}

// Close runs the shift reconciliation and persists the result. The early
// lock check gives a clean conflict on sequential duplicates; the unique
// index on (shift_id, close_date) decides concurrent racers, and a unique
// violation there is reported as the same conflict.
func (s *CloseService) Close(ctx context.Context, cmd CloseShiftCommand) (*CloseResult, error) {
	lock, err := shift.NewClose(cmd.ShiftID, cmd.Date)
	if err != nil {
		return nil, err
	}
	if len(cmd.Readings) == 0 {
		return nil, shared.NewDomainError("INVALID_READINGS", "At least one dispenser reading is required")
	}

	existing, err := s.closes.FindByPair(ctx, lock.ShiftID, lock.CloseDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrShiftAlreadyClosed
	}

	readings := make([]*shift.DispenserReading, 0, len(cmd.Readings))
	for _, in := range cmd.Readings {
		reading, err := shift.NewDispenserReading(lock.ShiftID, lock.CloseDate, in)
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}

	agg, err := s.aggregates(ctx, lock.ShiftID, lock.CloseDate)
	if err != nil {
		return nil, err
	}

	totalSale := shift.TotalSaleOf(cmd.Readings)
	summary := shift.Reconcile(totalSale, agg)
	daily := shift.NewDailyReading(lock.ShiftID, lock.CloseDate, agg, summary)

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, reading := range readings {
			if err := repos.Readings().SaveDispenserReading(ctx, reading); err != nil {
				return err
			}
		}
		if err := repos.Readings().SaveDailyReading(ctx, daily); err != nil {
			return err
		}
		return repos.Closes().Save(ctx, lock)
	})
	if err != nil {
		if shared.IsUniqueViolation(err) {
			return nil, shared.ErrShiftAlreadyClosed
		}
		return nil, err
	}

	return &CloseResult{
		ShiftID:    lock.ShiftID,
		Date:       lock.CloseDate,
		Aggregates: agg,
		Summary:    summary,
	}, nil
}

// PreviewClose returns the collaborator totals for a (shift, date) pair
// without writing anything, including the product-wise credit sale breakdown.
func (s *CloseService) PreviewClose(ctx context.Context, shiftID int, date time.Time) (*Preview, error) {
	if shiftID <= 0 {
		return nil, shared.NewDomainError("INVALID_SHIFT", "Shift ID must be positive")
	}
	day := date.Truncate(24 * time.Hour)

	state := shift.StateOpen
	existing, err := s.closes.FindByPair(ctx, shiftID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		state = shift.StateClosed
	}

	agg, err := s.aggregates(ctx, shiftID, day)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.creditSales.ProductBreakdown(ctx, shiftID, day)
	if err != nil {
		return nil, err
	}

	return &Preview{
		ShiftID:          shiftID,
		Date:             day,
		State:            state,
		Aggregates:       agg,
		CreditSaleByItem: breakdown,
	}, nil
}

// aggregates pulls the collaborator totals. Office payments are PAYMENT
// vouchers too, so they are carved out of the cash payment total to avoid
// counting them twice in the final due.
func (s *CloseService) aggregates(ctx context.Context, shiftID int, day time.Time) (shift.Aggregates, error) {
	var agg shift.Aggregates

	creditTotal, err := s.creditSales.TotalByShift(ctx, shiftID, day)
	if err != nil {
		return agg, err
	}
	bankTotal, err := s.saleRepo.BankSalesTotal(ctx, shiftID, day)
	if err != nil {
		return agg, err
	}
	receiveTotal, err := s.vouchers.SumByShift(ctx, voucher.TypeReceipt, shiftID, day)
	if err != nil {
		return agg, err
	}
	paymentTotal, err := s.vouchers.SumByShift(ctx, voucher.TypePayment, shiftID, day)
	if err != nil {
		return agg, err
	}
	officeTotal, err := s.vouchers.SumOfficePaymentsByShift(ctx, shiftID, day)
	if err != nil {
		return agg, err
	}

	cashPayment := paymentTotal.Sub(officeTotal)
	if cashPayment.IsNegative() {
		cashPayment = decimal.Zero
	}

	agg = shift.Aggregates{
		CreditSalesTotal:   creditTotal,
		BankSalesTotal:     bankTotal,
		CashReceiveTotal:   receiveTotal,
		CashPaymentTotal:   cashPayment,
		OfficePaymentTotal: officeTotal,
	}
	return agg, nil
}
