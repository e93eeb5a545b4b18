package sales

import (
	"context"
	"time"

	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/sales"
	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordSaleCommand carries a shift sale fact
type RecordSaleCommand struct {
	ShiftID     int
	SaleDate    time.Time
	ProductID   uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Channel     ledger.PaymentChannel
	BankName    string
	Remark      string
}

// RecordCreditSaleCommand carries an on-credit sale fact
type RecordCreditSaleCommand struct {
	ShiftID       int
	SaleDate      time.Time
	AccountNumber string
	CustomerName  string
	ProductID     uuid.UUID
	ProductName   string
	Quantity      decimal.Decimal
	Rate          decimal.Decimal
	VehicleNumber string
	Remark        string
}

// Service records and removes sale facts. Each recorded fact notifies the
// stock port; notification failures do not undo the fact.
type Service struct {
	saleRepo    sales.SaleRepository
	creditSales sales.CreditSaleRepository
	accounts    ledger.AccountRepository
	stock       sales.StockNotifier
}

// NewService creates a sales service
func NewService(
	saleRepo sales.SaleRepository,
	creditSales sales.CreditSaleRepository,
	accounts ledger.AccountRepository,
	stock sales.StockNotifier,
) *Service {
	return &Service{
		saleRepo:    saleRepo,
		creditSales: creditSales,
		accounts:    accounts,
		stock:       stock,
	}
}

// RecordSale validates and inserts a shift sale fact
func (s *Service) RecordSale(ctx context.Context, cmd RecordSaleCommand) (*sales.Sale, error) {
	sale, err := sales.NewSale(cmd.ShiftID, cmd.SaleDate, cmd.ProductID, cmd.ProductName, cmd.Quantity, cmd.Rate, cmd.Channel, cmd.BankName, cmd.Remark)
	if err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	if err := s.stock.StockDecreased(ctx, sale.ProductID, sale.Quantity); err != nil {
		return sale, err
	}
	return sale, nil
}

// RecordCreditSale validates the customer account and inserts a credit sale
// fact. The fact itself carries the due; no ledger transaction is posted
// until a receipt voucher settles it.
func (s *Service) RecordCreditSale(ctx context.Context, cmd RecordCreditSaleCommand) (*sales.CreditSale, error) {
	account, err := s.accounts.FindByAccountNumber(ctx, cmd.AccountNumber)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Customer account not found: "+cmd.AccountNumber)
	}

	cs, err := sales.NewCreditSale(cmd.ShiftID, cmd.SaleDate, cmd.AccountNumber, cmd.CustomerName, cmd.ProductID, cmd.ProductName, cmd.Quantity, cmd.Rate, cmd.VehicleNumber, cmd.Remark)
	if err != nil {
		return nil, err
	}
	if err := s.creditSales.Save(ctx, cs); err != nil {
		return nil, err
	}
	if err := s.stock.StockDecreased(ctx, cs.ProductID, cs.Quantity); err != nil {
		return cs, err
	}
	return cs, nil
}

// DeleteSale removes a sale fact and restores its stock movement
func (s *Service) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return shared.NewDomainError("NOT_FOUND", "Sale not found")
	}
	if err := s.saleRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.stock.StockRestored(ctx, sale.ProductID, sale.Quantity)
}

// DeleteCreditSale removes a credit sale fact and restores its stock movement
func (s *Service) DeleteCreditSale(ctx context.Context, id uuid.UUID) error {
	cs, err := s.creditSales.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cs == nil {
		return shared.NewDomainError("NOT_FOUND", "Credit sale not found")
	}
	if err := s.creditSales.Delete(ctx, id); err != nil {
		return err
	}
	return s.stock.StockRestored(ctx, cs.ProductID, cs.Quantity)
}

// ListByShift returns a shift's recorded sale facts
func (s *Service) ListByShift(ctx context.Context, shiftID int, date time.Time) ([]sales.Sale, []sales.CreditSale, error) {
	day := date.Truncate(24 * time.Hour)
	plain, err := s.saleRepo.FindByShift(ctx, shiftID, day)
	if err != nil {
		return nil, nil, err
	}
	credit, err := s.creditSales.FindByShift(ctx, shiftID, day)
	if err != nil {
		return nil, nil, err
	}
	return plain, credit, nil
}
