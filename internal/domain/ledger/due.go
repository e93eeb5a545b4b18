package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DueFact is one event affecting a customer's due amount: a credit sale
// increases the due, a receipt reduces it. Customer ledgers are computed from
// the union of these two fact streams, not from the account's own transaction
// stream, so the Dr/Cr scan convention does not apply here.
type DueFact struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	CreditSale  decimal.Decimal `json:"credit_sale"`
	Received    decimal.Decimal `json:"received"`
	recordedAt  time.Time
}

// NewCreditSaleFact builds a due fact for a credit sale
func NewCreditSaleFact(date time.Time, description string, amount decimal.Decimal, recordedAt time.Time) DueFact {
	return DueFact{Date: date, Description: description, CreditSale: amount, Received: decimal.Zero, recordedAt: recordedAt}
}

// NewReceiptFact builds a due fact for a received voucher
func NewReceiptFact(date time.Time, description string, amount decimal.Decimal, recordedAt time.Time) DueFact {
	return DueFact{Date: date, Description: description, CreditSale: decimal.Zero, Received: amount, recordedAt: recordedAt}
}

// DueEntry is one due fact with its running due amount
type DueEntry struct {
	DueFact
	Due decimal.Decimal `json:"due"`
}

// DueLedger is the customer ledger view: due += creditSale; due -= received
type DueLedger struct {
	CustomerAccount string          `json:"customer_account"`
	Entries         []DueEntry      `json:"entries"`
	TotalCreditSale decimal.Decimal `json:"total_credit_sale"`
	TotalReceived   decimal.Decimal `json:"total_received"`
	ClosingDue      decimal.Decimal `json:"closing_due"`
}

// BuildDueLedger merges due facts by date and computes the running due,
// starting from zero at the top of the queried window.
func BuildDueLedger(customerAccount string, facts []DueFact) DueLedger {
	sort.SliceStable(facts, func(i, j int) bool {
		if !facts[i].Date.Equal(facts[j].Date) {
			return facts[i].Date.Before(facts[j].Date)
		}
		return facts[i].recordedAt.Before(facts[j].recordedAt)
	})

	view := DueLedger{
		CustomerAccount: customerAccount,
		Entries:         make([]DueEntry, 0, len(facts)),
		TotalCreditSale: decimal.Zero,
		TotalReceived:   decimal.Zero,
	}

	due := decimal.Zero
	for _, f := range facts {
		due = due.Add(f.CreditSale).Sub(f.Received)
		view.TotalCreditSale = view.TotalCreditSale.Add(f.CreditSale)
		view.TotalReceived = view.TotalReceived.Add(f.Received)
		view.Entries = append(view.Entries, DueEntry{DueFact: f, Due: due})
	}
	view.ClosingDue = due
	return view
}
