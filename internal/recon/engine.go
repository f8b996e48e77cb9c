package recon

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dlifeofjay/payslip/internal/common"
	"github.com/dlifeofjay/payslip/internal/entity"
	"github.com/dlifeofjay/payslip/internal/ledger"
)

// digits with at most one decimal point, after comma separators are gone
var numericNetPay = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Engine merges a reviewed batch into the per-bank ledgers and computes
// the summary shown after confirmation.
type Engine struct {
	store  *ledger.Store
	logger *slog.Logger
}

func NewEngine(store *ledger.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, logger: logger}
}

// BankResult is the per-bank acknowledgment of a confirmation. Written is
// the number of batch records for that bank; Error carries an isolated
// storage failure that kept this bank's merge from committing.
type BankResult struct {
	Bank    string `json:"bank"`
	Written int    `json:"written"`
	Error   string `json:"error,omitempty"`
}

// Outcome is everything a confirmation produces for display.
type Outcome struct {
	Summary []entity.SummaryRow `json:"summary"`
	Results []BankResult        `json:"results"`
}

// Confirm validates the reviewed batch, then merges it bank by bank into
// the persisted ledgers. Duplicate non-empty account numbers inside the
// batch block the whole confirmation before anything is persisted; storage
// failures after that point abort only the affected bank's merge.
func (e *Engine) Confirm(records []entity.ExtractedRecord) (*Outcome, error) {
	if dupes := duplicateAccounts(records); len(dupes) > 0 {
		return nil, common.ValidationError(
			fmt.Sprintf("duplicate account numbers in batch: %s", strings.Join(dupes, ", ")))
	}

	banks, groups := partitionByBank(records)
	out := &Outcome{}

	for _, bank := range banks {
		group := groups[bank]
		out.Summary = append(out.Summary, summarize(bank, group))

		existing, err := e.store.Load(bank)
		if err != nil {
			e.logger.Error("recon.bank.load_failed", "bank", bank, "error", err)
			out.Results = append(out.Results, BankResult{Bank: bank, Error: err.Error()})
			continue
		}

		merged := mergeKeepLast(existing, group)
		if err := e.store.Save(bank, merged); err != nil {
			e.logger.Error("recon.bank.save_failed", "bank", bank, "error", err)
			out.Results = append(out.Results, BankResult{Bank: bank, Error: err.Error()})
			continue
		}

		e.logger.Info("recon.bank.saved", "bank", bank, "written", len(group), "ledger_rows", len(merged))
		out.Results = append(out.Results, BankResult{Bank: bank, Written: len(group)})
	}
	return out, nil
}

// duplicateAccounts returns the non-empty account numbers that appear more
// than once in the batch, in first-seen order.
func duplicateAccounts(records []entity.ExtractedRecord) []string {
	seen := make(map[string]int)
	var dupes []string
	for _, r := range records {
		if r.AccountNumber == "" {
			continue
		}
		seen[r.AccountNumber]++
		if seen[r.AccountNumber] == 2 {
			dupes = append(dupes, r.AccountNumber)
		}
	}
	return dupes
}

// partitionByBank groups records by their Bank value, keeping both the
// bank order of first appearance and each record's batch order.
func partitionByBank(records []entity.ExtractedRecord) ([]string, map[string][]entity.ExtractedRecord) {
	var banks []string
	groups := make(map[string][]entity.ExtractedRecord)
	for _, r := range records {
		if _, ok := groups[r.Bank]; !ok {
			banks = append(banks, r.Bank)
		}
		groups[r.Bank] = append(groups[r.Bank], r)
	}
	return banks, groups
}

// summarize counts one bank's batch slice and totals its parseable NetPay
// values. Non-numeric or empty amounts are excluded from the total, not
// treated as zero or as an error.
func summarize(bank string, group []entity.ExtractedRecord) entity.SummaryRow {
	total := decimal.Zero
	for _, r := range group {
		plain := strings.ReplaceAll(r.NetPay, ",", "")
		if !numericNetPay.MatchString(plain) {
			continue
		}
		if v, err := decimal.NewFromString(plain); err == nil {
			total = total.Add(v)
		}
	}
	return entity.SummaryRow{Bank: bank, Payslips: len(group), TotalNetPay: total}
}

// mergeKeepLast concatenates the existing ledger and the new batch slice,
// then deduplicates on account number keeping the last occurrence, so a
// batch record replaces an older ledger row for the same account. Records
// without an account number are all kept; there is nothing to key them on.
func mergeKeepLast(existing, batch []entity.ExtractedRecord) []entity.ExtractedRecord {
	combined := make([]entity.ExtractedRecord, 0, len(existing)+len(batch))
	combined = append(combined, existing...)
	combined = append(combined, batch...)

	last := make(map[string]int, len(combined))
	for i, r := range combined {
		if r.AccountNumber != "" {
			last[r.AccountNumber] = i
		}
	}

	merged := make([]entity.ExtractedRecord, 0, len(combined))
	for i, r := range combined {
		if r.AccountNumber != "" && last[r.AccountNumber] != i {
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
