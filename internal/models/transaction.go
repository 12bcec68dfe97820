// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Credit/debit markers following the ISO 20022 convention used by bank exports.
const (
	TransactionTypeCredit = "CRDT"
	TransactionTypeDebit  = "DBIT"
)

// Transaction represents one normalized bank statement entry as selected from a
// CSV export row. Instances are built once by the loader and never mutated.
type Transaction struct {
	Date   time.Time       // booking date
	Memo   string          // free-text booking detail
	Title  string          // payee / counterparty description
	Amount decimal.Decimal // signed amount in the account currency
}

// IsCredit reports whether the transaction increases the account balance.
// Zero amounts count as credits.
func (t Transaction) IsCredit() bool {
	return !t.Amount.IsNegative()
}

// Direction returns the ISO credit/debit marker for the transaction.
func (t Transaction) Direction() string {
	if t.IsCredit() {
		return TransactionTypeCredit
	}
	return TransactionTypeDebit
}

// TransactionRecord is the gocsv-tagged row used when dumping normalized
// transactions back to CSV for inspection.
type TransactionRecord struct {
	Date        string `csv:"Date"`
	Memo        string `csv:"Memo"`
	Title       string `csv:"Title"`
	Amount      string `csv:"Amount"`
	CreditDebit string `csv:"CreditDebit"`
}

// NewTransactionRecord converts a Transaction to its CSV export form.
// Dates are formatted as DD.MM.YYYY and amounts with two decimal places.
func NewTransactionRecord(t Transaction) TransactionRecord {
	return TransactionRecord{
		Date:        t.Date.Format("02.01.2006"),
		Memo:        t.Memo,
		Title:       t.Title,
		Amount:      t.Amount.StringFixed(2),
		CreditDebit: t.Direction(),
	}
}
