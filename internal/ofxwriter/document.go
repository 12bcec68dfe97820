package ofxwriter

import "encoding/xml"

// The OFX 2.x bank statement download response, modeled as encoding/xml
// structs. Element names follow the OFX specification; the nesting mirrors
// what personal-finance importers expect: signon response, then one statement
// transaction response with the transaction list and ledger balance.

// Document is the <OFX> root element.
type Document struct {
	XMLName  xml.Name       `xml:"OFX"`
	Signon   SignonResponse `xml:"SIGNONMSGSRSV1"`
	BankMsgs BankMessageSet `xml:"BANKMSGSRSV1"`
}

// SignonResponse is the SIGNONMSGSRSV1 wrapper.
type SignonResponse struct {
	Sonrs Sonrs `xml:"SONRS"`
}

// Sonrs carries the synthetic signon data of the download.
type Sonrs struct {
	Status   Status `xml:"STATUS"`
	DtServer string `xml:"DTSERVER"`
	Language string `xml:"LANGUAGE"`
	Fi       Fi     `xml:"FI"`
}

// Status is the OFX status aggregate; code 0 / INFO means success.
type Status struct {
	Code     int    `xml:"CODE"`
	Severity string `xml:"SEVERITY"`
}

// Fi identifies the (placeholder) financial institution.
type Fi struct {
	Org string `xml:"ORG"`
	Fid string `xml:"FID"`
}

// BankMessageSet is the BANKMSGSRSV1 wrapper.
type BankMessageSet struct {
	StmtTrnRs StatementTransactionResponse `xml:"STMTTRNRS"`
}

// StatementTransactionResponse wraps one statement response.
type StatementTransactionResponse struct {
	TrnUID string            `xml:"TRNUID"`
	Status Status            `xml:"STATUS"`
	StmtRs StatementResponse `xml:"STMTRS"`
}

// StatementResponse is the statement body: currency, account, transaction
// list and ledger balance.
type StatementResponse struct {
	CurDef       string          `xml:"CURDEF"`
	BankAcctFrom BankAccount     `xml:"BANKACCTFROM"`
	TranList     TransactionList `xml:"BANKTRANLIST"`
	LedgerBal    Balance         `xml:"LEDGERBAL"`
}

// BankAccount identifies the source account.
type BankAccount struct {
	BankID   string `xml:"BANKID"`
	AcctID   string `xml:"ACCTID"`
	AcctType string `xml:"ACCTTYPE"`
}

// TransactionList holds the statement date range and the transactions in
// input order.
type TransactionList struct {
	DtStart      string                 `xml:"DTSTART"`
	DtEnd        string                 `xml:"DTEND"`
	Transactions []StatementTransaction `xml:"STMTTRN"`
}

// StatementTransaction is one STMTTRN entry.
type StatementTransaction struct {
	TrnType  string `xml:"TRNTYPE"`
	DtPosted string `xml:"DTPOSTED"`
	TrnAmt   string `xml:"TRNAMT"`
	FitID    string `xml:"FITID"`
	Name     string `xml:"NAME"`
	Memo     string `xml:"MEMO,omitempty"`
}

// Balance is the ledger balance as of the statement end date.
type Balance struct {
	BalAmt string `xml:"BALAMT"`
	DtAsOf string `xml:"DTASOF"`
}
