package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one transaction with its running balance within a window
type LedgerEntry struct {
	Transaction Transaction     `json:"transaction"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerView is a closing-balance-per-range report for one account. The
// balance starts at zero before the first entry in the window; nothing is
// carried forward from before the window.
type LedgerView struct {
	AccountNumber  string          `json:"account_number"`
	Entries        []LedgerEntry   `json:"entries"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// OrderLedger sorts transactions into ledger order: txn_date ascending,
// created_at ascending, id ascending. The id tiebreaker makes the order
// total, so no two transactions ever compare equal.
func OrderLedger(txns []Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		a, b := txns[i], txns[j]
		if !a.TxnDate.Equal(b.TxnDate) {
			return a.TxnDate.Before(b.TxnDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}

// BuildLedgerView computes running balances over the transactions. The
// input is put into ledger order first, so the view never depends on how
// the storage layer happened to return the rows. Dr subtracts, Cr adds;
// balance[0] starts from zero.
func BuildLedgerView(accountNumber string, txns []Transaction) LedgerView {
	OrderLedger(txns)
	view := LedgerView{
		AccountNumber:  accountNumber,
		Entries:        make([]LedgerEntry, 0, len(txns)),
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
		ClosingBalance: decimal.Zero,
	}

	balance := decimal.Zero
	for _, txn := range txns {
		balance = balance.Add(txn.SignedAmount())
		if txn.Direction == Debit {
			view.TotalDebit = view.TotalDebit.Add(txn.Amount)
		} else {
			view.TotalCredit = view.TotalCredit.Add(txn.Amount)
		}
		view.Entries = append(view.Entries, LedgerEntry{
			Transaction: txn,
			Balance:     balance,
		})
	}
	view.ClosingBalance = balance
	return view
}
