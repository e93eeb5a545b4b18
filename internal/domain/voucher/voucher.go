package voucher

import (
	"time"

	"github.com/fuelstation/backend/internal/domain/ledger"
	"github.com/fuelstation/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherType is the business event kind
type VoucherType string

const (
	TypePayment VoucherType = "PAYMENT"
	TypeReceipt VoucherType = "RECEIPT"
)

// IsValid checks if the type is a valid VoucherType
func (t VoucherType) IsValid() bool {
	return t == TypePayment || t == TypeReceipt
}

// Direction returns the ledger direction the voucher type implies for the
// from-account's transaction leg: a payment debits the payer, a receipt
// credits the payer-perspective account.
func (t VoucherType) Direction() ledger.Direction {
	if t == TypePayment {
		return ledger.Debit
	}
	return ledger.Credit
}

// Voucher is a user-facing business event binding a from-account, a
// to-account and exactly one ledger transaction representing the primary leg.
// Its lifecycle must leave the sum of all balance deltas it ever produced at
// zero once the voucher no longer exists.
type Voucher struct {
	shared.BaseAggregateRoot
	VoucherType       VoucherType           `gorm:"type:varchar(10);not null;index"`
	Category          Category              `gorm:"type:varchar(30);not null"`
	SubType           SubType               `gorm:"type:varchar(30);not null"`
	FromAccountNumber string                `gorm:"type:varchar(30);not null;index"`
	ToAccountNumber   string                `gorm:"type:varchar(30);not null;index"`
	TransactionID     uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex"`
	Amount            decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Channel           ledger.PaymentChannel `gorm:"type:varchar(20);not null"`
	VoucherDate       time.Time             `gorm:"not null;index"`
	ShiftID           *int                  `gorm:"index:idx_voucher_shift"`
	ShiftDate         *time.Time            `gorm:"index:idx_voucher_shift"`
	Remark            string                `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Voucher) TableName() string {
	return "vouchers"
}

// NewVoucher creates a voucher pointing at its primary transaction leg
func NewVoucher(
	voucherType VoucherType,
	category Category,
	subType SubType,
	fromAccount, toAccount string,
	transactionID uuid.UUID,
	amount decimal.Decimal,
	channel ledger.PaymentChannel,
	voucherDate time.Time,
) (*Voucher, error) {
	if !voucherType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VOUCHER_TYPE", "Voucher type must be PAYMENT or RECEIPT")
	}
	if err := ValidatePairing(voucherType, category, subType); err != nil {
		return nil, err
	}
	if fromAccount == "" || toAccount == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Both from and to account numbers are required")
	}
	if fromAccount == toAccount {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "From and to accounts must differ")
	}
	if transactionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRANSACTION", "Transaction ID is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Payment channel is not valid")
	}
	if voucherDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Voucher date is required")
	}

	return &Voucher{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VoucherType:       voucherType,
		Category:          category,
		SubType:           subType,
		FromAccountNumber: fromAccount,
		ToAccountNumber:   toAccount,
		TransactionID:     transactionID,
		Amount:            amount,
		Channel:           channel,
		VoucherDate:       voucherDate,
	}, nil
}

// TagShift associates the voucher with a sales shift for reconciliation pulls
func (v *Voucher) TagShift(shiftID int, shiftDate time.Time) {
	v.ShiftID = &shiftID
	day := shiftDate.Truncate(24 * time.Hour)
	v.ShiftDate = &day
}

// PostedDeltas returns the balance delta pair this voucher applies on posting
func (v *Voucher) PostedDeltas() []ledger.BalanceDelta {
	return ledger.DeltaPair(v.FromAccountNumber, v.ToAccountNumber, v.VoucherType.Direction(), v.Amount)
}

// ReversalDeltas returns the deltas that undo what was posted. The reversal
// is computed from the recorded amount, never from incoming new fields.
func (v *Voucher) ReversalDeltas() []ledger.BalanceDelta {
	return ledger.InverseAll(v.PostedDeltas())
}

// Amend replaces the mutable field set after the caller has reversed the
// previously posted deltas. The linked transaction id never changes.
func (v *Voucher) Amend(
	category Category,
	subType SubType,
	fromAccount, toAccount string,
	amount decimal.Decimal,
	channel ledger.PaymentChannel,
	voucherDate time.Time,
	remark string,
) error {
	if err := ValidatePairing(v.VoucherType, category, subType); err != nil {
		return err
	}
	if fromAccount == "" || toAccount == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Both from and to account numbers are required")
	}
	if fromAccount == toAccount {
		return shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "From and to accounts must differ")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if !channel.IsValid() {
		return shared.NewDomainError("INVALID_CHANNEL", "Payment channel is not valid")
	}
	if voucherDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Voucher date is required")
	}

	v.Category = category
	v.SubType = subType
	v.FromAccountNumber = fromAccount
	v.ToAccountNumber = toAccount
	v.Amount = amount
	v.Channel = channel
	v.VoucherDate = voucherDate
	v.Remark = remark
	v.Touch()
	v.IncrementVersion()
	return nil
}
