package ledger

import (
	"context"
	"time"

	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/sales"
	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/fuelstation/backend/internal/domain/voucher"
)

// AccountLedger is one account's ledger view inside a book report
type AccountLedger struct {
	AccountNumber string            `json:"account_number"`
	AccountName   string            `json:"account_name"`
	AccountType   ledger.AccountType `json:"account_type"`
	Ledger        ledger.LedgerView `json:"ledger"`
}

// QueryService serves the read side of the ledger: per-account general
// ledgers with running balances, the bank and cash book reports, and the
// customer due ledger. All reads are lock-free; each account's view is
// internally consistent but no cross-account snapshot is promised.
type QueryService struct {
	accounts     ledger.AccountRepository
	transactions ledger.TransactionRepository
	creditSales  sales.CreditSaleRepository
	vouchers     voucher.Repository
}

// NewQueryService creates a ledger query service
func NewQueryService(
	accounts ledger.AccountRepository,
	transactions ledger.TransactionRepository,
	creditSales sales.CreditSaleRepository,
	vouchers voucher.Repository,
) *QueryService {
	return &QueryService{
		accounts:     accounts,
		transactions: transactions,
		creditSales:  creditSales,
		vouchers:     vouchers,
	}
}

// GeneralLedger returns one account's transactions in ledger order with a
// running balance starting from zero at the top of the window.
func (s *QueryService) GeneralLedger(ctx context.Context, accountNumber string, from, to time.Time) (*ledger.LedgerView, error) {
	account, err := s.accounts.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found: "+accountNumber)
	}

	txns, err := s.transactions.FindByAccountNumber(ctx, accountNumber, from, to)
	if err != nil {
		return nil, err
	}
	view := ledger.BuildLedgerView(accountNumber, txns)
	return &view, nil
}

// BankBookLedger returns a ledger per bank-side account. Each account's
// running balance is computed independently; the book is a bundle of
// per-account ledgers, not one merged stream.
func (s *QueryService) BankBookLedger(ctx context.Context, from, to time.Time) ([]AccountLedger, error) {
	return s.bookLedger(ctx, ledger.BankBookTypes(), from, to)
}

// CashBookLedger returns a ledger per cash account
func (s *QueryService) CashBookLedger(ctx context.Context, from, to time.Time) ([]AccountLedger, error) {
	return s.bookLedger(ctx, ledger.CashBookTypes(), from, to)
}

func (s *QueryService) bookLedger(ctx context.Context, types []ledger.AccountType, from, to time.Time) ([]AccountLedger, error) {
	accounts, err := s.accounts.FindByTypes(ctx, types)
	if err != nil {
		return nil, err
	}

	book := make([]AccountLedger, 0, len(accounts))
	for _, account := range accounts {
		txns, err := s.transactions.FindByAccountNumber(ctx, account.AccountNumber, from, to)
		if err != nil {
			return nil, err
		}
		book = append(book, AccountLedger{
			AccountNumber: account.AccountNumber,
			AccountName:   account.Name,
			AccountType:   account.AccountType,
			Ledger:        ledger.BuildLedgerView(account.AccountNumber, txns),
		})
	}
	return book, nil
}

// CustomerLedger returns a customer's due ledger: credit sale facts raise the
// due, receipt vouchers against the account lower it. The view is computed
// from those two fact streams, not from the account's Dr/Cr transactions.
func (s *QueryService) CustomerLedger(ctx context.Context, accountNumber string, from, to time.Time) (*ledger.DueLedger, error) {
	account, err := s.accounts.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found: "+accountNumber)
	}

	creditSales, err := s.creditSales.FindByAccountNumber(ctx, accountNumber, from, to)
	if err != nil {
		return nil, err
	}
	receipts, err := s.vouchers.FindReceiptsForAccount(ctx, accountNumber, from, to)
	if err != nil {
		return nil, err
	}

	facts := make([]ledger.DueFact, 0, len(creditSales)+len(receipts))
	for _, cs := range creditSales {
		desc := cs.ProductName
		if cs.VehicleNumber != "" {
			desc += " (" + cs.VehicleNumber + ")"
		}
		facts = append(facts, ledger.NewCreditSaleFact(cs.SaleDate, desc, cs.Amount, cs.CreatedAt))
	}
	for _, r := range receipts {
		desc := "Receipt"
		if r.Remark != "" {
			desc = r.Remark
		}
		facts = append(facts, ledger.NewReceiptFact(r.VoucherDate, desc, r.Amount, r.CreatedAt))
	}

	view := ledger.BuildDueLedger(accountNumber, facts)
	return &view, nil
}
