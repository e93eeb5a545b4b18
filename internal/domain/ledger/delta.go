package ledger

import (
	"github.com/shopspring/decimal"
)

// BalanceDelta is a signed adjustment to one account's cached balance.
// The voucher engine's reverse-then-reapply protocol is built from these:
// posting applies a delta pair, amending or deleting applies the inverse of
// exactly what was posted. Keeping the compensation as a value type keeps it
// total and testable away from storage.
type BalanceDelta struct {
	AccountNumber string
	Amount        decimal.Decimal
}

// Inverse returns the delta that undoes this one
func (d BalanceDelta) Inverse() BalanceDelta {
	return BalanceDelta{
		AccountNumber: d.AccountNumber,
		Amount:        d.Amount.Neg(),
	}
}

// DeltaPair builds the two opposite-sign, equal-magnitude balance deltas a
// voucher posting produces. The direction applies to the from-account; the
// to-account receives the inverse sign.
func DeltaPair(fromAccount, toAccount string, direction Direction, amount decimal.Decimal) []BalanceDelta {
	fromDelta := direction.Signed(amount)
	return []BalanceDelta{
		{AccountNumber: fromAccount, Amount: fromDelta},
		{AccountNumber: toAccount, Amount: fromDelta.Neg()},
	}
}

// InverseAll returns the inverses of a set of deltas
func InverseAll(deltas []BalanceDelta) []BalanceDelta {
	out := make([]BalanceDelta, len(deltas))
	for i, d := range deltas {
		out[i] = d.Inverse()
	}
	return out
}

// SumDeltas returns the net of a set of deltas. A voucher's full lifecycle
// must sum to zero once the voucher no longer exists.
func SumDeltas(deltas []BalanceDelta) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range deltas {
		sum = sum.Add(d.Amount)
	}
	return sum
}
