package entity

import "github.com/shopspring/decimal"

// ExtractedRecord holds the fields recovered from one payslip page.
// Records are mutable while the batch is under review and frozen once
// confirmed into a ledger.
type ExtractedRecord struct {
	EmployeeName  string  `json:"employee_name"`
	AccountNumber string  `json:"account_number"`
	Bank          string  `json:"bank"`
	NetPay        string  `json:"net_pay"`
	PayDate       string  `json:"pay_date"`
	Confidence    float64 `json:"confidence"`
	SourceFile    string  `json:"source_file"`
}

// SummaryRow aggregates one bank's slice of a confirmed batch. Totals
// cover the batch only, never the persisted ledger.
type SummaryRow struct {
	Bank        string          `json:"bank"`
	Payslips    int             `json:"payslips"`
	TotalNetPay decimal.Decimal `json:"total_net_pay"`
}

// LedgerColumns is the header row of every per-bank ledger file.
var LedgerColumns = []string{
	"Employee Name",
	"Account Number",
	"Bank",
	"Net Pay",
	"Pay Date",
	"Confidence",
	"Source File",
}
