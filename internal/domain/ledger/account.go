package ledger

import (
	"strings"

	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountType classifies an account into the book it belongs to.
// It is an explicit tagged value chosen at account creation; the old
// name-substring heuristic survives only as ClassifyByName for migrating
// legacy rows.
type AccountType string

const (
	AccountTypeCash       AccountType = "CASH"
	AccountTypeBank       AccountType = "BANK"
	AccountTypeMobileBank AccountType = "MOBILE_BANK"
	AccountTypeReceivable AccountType = "RECEIVABLE"
	AccountTypePayable    AccountType = "PAYABLE"
	AccountTypeOther      AccountType = "OTHER"
)

// IsValid checks if the type is a valid AccountType
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeCash, AccountTypeBank, AccountTypeMobileBank,
		AccountTypeReceivable, AccountTypePayable, AccountTypeOther:
		return true
	}
	return false
}

// BankBookTypes returns the account types that feed the bank book ledger
func BankBookTypes() []AccountType {
	return []AccountType{AccountTypeBank, AccountTypeMobileBank}
}

// CashBookTypes returns the account types that feed the cash book ledger
func CashBookTypes() []AccountType {
	return []AccountType{AccountTypeCash}
}

// ClassifyByName buckets an account by substring matching over its own name
// and its group's name. Migration helper for rows created before account
// types became explicit; never consulted at runtime.
func ClassifyByName(name, groupName string) AccountType {
	haystack := strings.ToLower(name + " " + groupName)
	switch {
	case strings.Contains(haystack, "mobile"):
		return AccountTypeMobileBank
	case strings.Contains(haystack, "bank"):
		return AccountTypeBank
	case strings.Contains(haystack, "cash"):
		return AccountTypeCash
	default:
		return AccountTypeOther
	}
}

// Account represents a ledger account aggregate root.
// The account number, not the internal id, is the join key for transactions.
// TotalAmount is a cached balance maintained exclusively through the voucher
// engine's delta protocol; it is a materialized aggregate of the transaction
// stream, mutated only via atomic storage-level increments.
type Account struct {
	shared.BaseAggregateRoot
	AccountNumber string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(200);not null"`
	GroupName     string          `gorm:"type:varchar(100)"`
	AccountType   AccountType     `gorm:"type:varchar(20);not null;index"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a new account with an opening balance
func NewAccount(accountNumber, name, groupName string, accountType AccountType, opening decimal.Decimal) (*Account, error) {
	if accountNumber == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot exceed 200 characters")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}

	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountNumber:     accountNumber,
		Name:              name,
		GroupName:         groupName,
		AccountType:       accountType,
		TotalAmount:       opening,
	}, nil
}

// Rename changes the display name; the account number never changes
func (a *Account) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	a.Name = name
	a.Touch()
	a.IncrementVersion()
	return nil
}
