package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementSummary holds the derived statement-level figures for a sequence of
// transactions: the covered date range, the ledger balance after all entries,
// and the entry count. It is computed on demand and never stored.
type StatementSummary struct {
	Start   time.Time
	End     time.Time
	Balance decimal.Decimal
	Count   int
}

// Summarize computes the statement summary over transactions in sequence
// order. The balance is the exact decimal sum; rounding happens only at
// serialization time. An empty slice yields a zero-value summary.
func Summarize(transactions []Transaction) StatementSummary {
	summary := StatementSummary{Balance: decimal.Zero}
	for _, tx := range transactions {
		if summary.Count == 0 {
			summary.Start = tx.Date
			summary.End = tx.Date
		} else {
			if tx.Date.Before(summary.Start) {
				summary.Start = tx.Date
			}
			if tx.Date.After(summary.End) {
				summary.End = tx.Date
			}
		}
		summary.Balance = summary.Balance.Add(tx.Amount)
		summary.Count++
	}
	return summary
}
