// Package ofxwriter serializes normalized transactions to an OFX 2.x (XML)
// bank statement download document.
package ofxwriter

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"fjacquet/csv-ofx/internal/converterror"
	"fjacquet/csv-ofx/internal/currencyutils"
	"fjacquet/csv-ofx/internal/fileutils"
	"fjacquet/csv-ofx/internal/logging"
	"fjacquet/csv-ofx/internal/models"
)

var log = logging.NewLogrusAdapter("info", "text")

// SetLogger sets a configured logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// OFX date layouts: plain dates for postings and ranges, date-time for the
// server stamp.
const (
	ofxDateLayout     = "20060102"
	ofxDateTimeLayout = "20060102150405"
)

// The two processing instructions every OFX 2.x document starts with.
const ofxHeader = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n" +
	`<?OFX OFXHEADER="200" VERSION="202" SECURITY="NONE" OLDFILEUID="NONE" NEWFILEUID="NONE"?>` + "\n"

// Options carries the statement-level constants of the emitted document. The
// zero value is usable; empty fields fall back to the documented placeholders.
type Options struct {
	Currency    string // ISO code, default EUR
	BankID      string // routing placeholder, default 00000000
	AccountID   string // account placeholder, default 0000000000
	AccountType string // OFX account type, default CHECKING
	Org         string // FI organisation name, default CSV-OFX
	FID         string // FI identifier, default 0000
}

func (o Options) withDefaults() Options {
	if o.Currency == "" {
		o.Currency = "EUR"
	}
	if o.BankID == "" {
		o.BankID = "00000000"
	}
	if o.AccountID == "" {
		o.AccountID = "0000000000"
	}
	if o.AccountType == "" {
		o.AccountType = "CHECKING"
	}
	if o.Org == "" {
		o.Org = "CSV-OFX"
	}
	if o.FID == "" {
		o.FID = "0000"
	}
	return o
}

// Write renders the document and writes it atomically to path, overwriting
// any existing file. A failed run leaves no partial file behind.
func Write(transactions []models.Transaction, path string, opts Options) error {
	data, err := Render(transactions, opts)
	if err != nil {
		return err
	}

	if err := fileutils.WriteFileAtomic(path, data, 0600); err != nil {
		return &converterror.OutputError{Path: path, Err: err}
	}

	log.Info("Wrote OFX file",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "transactions", Value: len(transactions)})
	return nil
}

// Render builds the OFX document bytes for the given transactions. Output is
// deterministic: identical input yields identical bytes, so re-running a
// conversion never churns the file.
func Render(transactions []models.Transaction, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	summary := models.Summarize(transactions)

	// An empty statement is still a valid statement. Epoch dates keep the
	// document deterministic without inventing a range.
	start, end := summary.Start, summary.End
	if summary.Count == 0 {
		start = time.Unix(0, 0).UTC()
		end = start
	}

	doc := Document{
		Signon: SignonResponse{
			Sonrs: Sonrs{
				Status:   Status{Code: 0, Severity: "INFO"},
				DtServer: end.Format(ofxDateTimeLayout),
				Language: "GER",
				Fi:       Fi{Org: opts.Org, Fid: opts.FID},
			},
		},
		BankMsgs: BankMessageSet{
			StmtTrnRs: StatementTransactionResponse{
				TrnUID: "0",
				Status: Status{Code: 0, Severity: "INFO"},
				StmtRs: StatementResponse{
					CurDef: opts.Currency,
					BankAcctFrom: BankAccount{
						BankID:   opts.BankID,
						AcctID:   opts.AccountID,
						AcctType: opts.AccountType,
					},
					TranList: TransactionList{
						DtStart:      start.Format(ofxDateLayout),
						DtEnd:        end.Format(ofxDateLayout),
						Transactions: buildStatementTransactions(transactions),
					},
					LedgerBal: Balance{
						BalAmt: currencyutils.FormatAmount(summary.Balance),
						DtAsOf: end.Format(ofxDateLayout),
					},
				},
			},
		},
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OFX document: %w", err)
	}

	var buf strings.Builder
	buf.WriteString(ofxHeader)
	buf.Write(body)
	buf.WriteByte('\n')
	return []byte(buf.String()), nil
}

func buildStatementTransactions(transactions []models.Transaction) []StatementTransaction {
	entries := make([]StatementTransaction, 0, len(transactions))
	for i, tx := range transactions {
		trnType := "CREDIT"
		if !tx.IsCredit() {
			trnType = "DEBIT"
		}
		entries = append(entries, StatementTransaction{
			TrnType:  trnType,
			DtPosted: tx.Date.Format(ofxDateLayout),
			TrnAmt:   currencyutils.FormatAmount(tx.Amount),
			FitID:    FitID(i, tx),
			Name:     tx.Title,
			Memo:     tx.Memo,
		})
	}
	return entries
}

// FitID derives the unique transaction identifier required by OFX. It hashes
// the row position together with the normalized field values, so the ID is
// stable across runs on unchanged input while identical rows stay distinct.
func FitID(index int, tx models.Transaction) string {
	payload := fmt.Sprintf("%d|%s|%s|%s|%s",
		index,
		tx.Date.Format(ofxDateLayout),
		currencyutils.FormatAmount(tx.Amount),
		tx.Title,
		tx.Memo,
	)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])[:32]
}
