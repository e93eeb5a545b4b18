package ledger

import (
	"context"

	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// accountNumberAttempts bounds collision retries against the generator.
// Collisions are vanishingly rare; hitting the bound means something is wrong
// with the random source, not with the caller.
const accountNumberAttempts = 5

// CreateAccountCommand carries the fields for a new account
type CreateAccountCommand struct {
	Name           string
	GroupName      string
	AccountType    ledger.AccountType
	OpeningBalance decimal.Decimal
}

// AccountService manages the account registry
type AccountService struct {
	accounts  ledger.AccountRepository
	generator *ledger.AccountNumberGenerator
}

// NewAccountService creates an account service
func NewAccountService(accounts ledger.AccountRepository, generator *ledger.AccountNumberGenerator) *AccountService {
	return &AccountService{
		accounts:  accounts,
		generator: generator,
	}
}

// Create allocates an account number and persists the account. A generated
// number that collides with an existing one is retried with a fresh
// candidate; the retry never surfaces to the caller.
func (s *AccountService) Create(ctx context.Context, cmd CreateAccountCommand) (*ledger.Account, error) {
	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		number := s.generator.Next()
		exists, err := s.accounts.ExistsByAccountNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		account, err := ledger.NewAccount(number, cmd.Name, cmd.GroupName, cmd.AccountType, cmd.OpeningBalance)
		if err != nil {
			return nil, err
		}
		if err := s.accounts.Save(ctx, account); err != nil {
			if shared.IsUniqueViolation(err) {
				continue
			}
			return nil, err
		}
		return account, nil
	}
	return nil, shared.NewDomainError("ACCOUNT_NUMBER_EXHAUSTED", "Could not allocate a unique account number")
}

// GetByAccountNumber returns one account
func (s *AccountService) GetByAccountNumber(ctx context.Context, accountNumber string) (*ledger.Account, error) {
	account, err := s.accounts.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found: "+accountNumber)
	}
	return account, nil
}

// List returns accounts matching the filter with a total count
func (s *AccountService) List(ctx context.Context, filter ledger.AccountFilter) ([]ledger.Account, int64, error) {
	return s.accounts.FindAll(ctx, filter)
}
