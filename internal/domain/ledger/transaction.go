package ledger

import (
	"time"

	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction is a debit/credit tag on a transaction. Scanning a single
// account's transactions in ledger order, a Dr entry subtracts from the
// running balance and a Cr entry adds to it.
type Direction string

const (
	Debit  Direction = "Dr"
	Credit Direction = "Cr"
)

// IsValid checks if the direction is a valid Direction
func (d Direction) IsValid() bool {
	return d == Debit || d == Credit
}

// Signed returns the amount with the sign implied by the direction
func (d Direction) Signed(amount decimal.Decimal) decimal.Decimal {
	if d == Debit {
		return amount.Neg()
	}
	return amount
}

// Inverse returns the opposite direction
func (d Direction) Inverse() Direction {
	if d == Debit {
		return Credit
	}
	return Debit
}

// PaymentChannel is the channel money moved through
type PaymentChannel string

const (
	ChannelCash       PaymentChannel = "CASH"
	ChannelBank       PaymentChannel = "BANK"
	ChannelMobileBank PaymentChannel = "MOBILE_BANK"
)

// IsValid checks if the channel is a valid PaymentChannel
func (c PaymentChannel) IsValid() bool {
	switch c {
	case ChannelCash, ChannelBank, ChannelMobileBank:
		return true
	}
	return false
}

// IsBankSide reports whether the channel counts toward bank sales totals
func (c PaymentChannel) IsBankSide() bool {
	return c == ChannelBank || c == ChannelMobileBank
}

// ChannelDetail carries optional bank/cheque metadata for a transaction
type ChannelDetail struct {
	BankName     string `gorm:"type:varchar(100)"`
	ChequeNumber string `gorm:"type:varchar(50)"`
	Branch       string `gorm:"type:varchar(100)"`
}

// Transaction is an immutable, append-only money movement keyed by account
// number. Rows are only ever superseded or removed as part of a voucher
// reversal, never edited independently. Ordering is by (txn_date, created_at,
// id); the id tiebreaker makes the order total so running balances are
// reproducible.
type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	AccountNumber string          `gorm:"type:varchar(30);not null;index"`
	Direction     Direction       `gorm:"type:varchar(2);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Channel       PaymentChannel  `gorm:"type:varchar(20);not null"`
	ChannelDetail ChannelDetail   `gorm:"embedded"`
	TxnDate       time.Time       `gorm:"not null;index"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewTransaction creates a ledger transaction. No business validation beyond
// a non-negative amount and a non-empty account number; the voucher engine
// owns the rest.
func NewTransaction(accountNumber string, direction Direction, amount decimal.Decimal, channel PaymentChannel, detail ChannelDetail, txnDate time.Time) (*Transaction, error) {
	if accountNumber == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Direction must be Dr or Cr")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Payment channel is not valid")
	}
	if txnDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Transaction date is required")
	}

	return &Transaction{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		Direction:     direction,
		Amount:        amount,
		Channel:       channel,
		ChannelDetail: detail,
		TxnDate:       txnDate,
		CreatedAt:     time.Now(),
	}, nil
}

// SignedAmount returns the amount signed per the scan convention
func (t *Transaction) SignedAmount() decimal.Decimal {
	return t.Direction.Signed(t.Amount)
}
