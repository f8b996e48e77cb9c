package ledger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dlifeofjay/payslip/internal/common"
	"github.com/dlifeofjay/payslip/internal/entity"
)

const (
	filePrefix = "payslip_"
	fileSuffix = ".xlsx"
	sheetName  = "Payslips"
)

// Store persists one xlsx ledger per canonical bank identifier under a
// single directory. Each save overwrites that bank's file wholesale; the
// persisted table is the merge result, not an append-only log.
type Store struct {
	dir    string
	logger *slog.Logger
}

func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}
}

// Path returns the ledger file path for a bank.
func (s *Store) Path(bank string) string {
	return filepath.Join(s.dir, filePrefix+bank+fileSuffix)
}

// Load reads a bank's ledger. A missing file is an empty ledger, not an
// error; an unreadable or malformed file is a StorageReadError.
func (s *Store) Load(bank string) ([]entity.ExtractedRecord, error) {
	path := s.Path(bank)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, common.StorageReadError(fmt.Sprintf("cannot open ledger for %s", bank), err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, common.StorageReadError(fmt.Sprintf("cannot read ledger rows for %s", bank), err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := headerIndex(rows[0])
	if cols["Account Number"] < 0 {
		return nil, common.StorageReadError(fmt.Sprintf("ledger for %s has no Account Number column", bank), nil)
	}
	records := make([]entity.ExtractedRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rec := entity.ExtractedRecord{
			EmployeeName:  cell(row, cols["Employee Name"]),
			AccountNumber: cell(row, cols["Account Number"]),
			Bank:          cell(row, cols["Bank"]),
			NetPay:        cell(row, cols["Net Pay"]),
			PayDate:       cell(row, cols["Pay Date"]),
			SourceFile:    cell(row, cols["Source File"]),
		}
		if v := cell(row, cols["Confidence"]); v != "" {
			if conf, err := strconv.ParseFloat(v, 64); err == nil {
				rec.Confidence = conf
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save writes a bank's full ledger, replacing the previous file.
func (s *Store) Save(bank string, records []entity.ExtractedRecord) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return common.StorageWriteError(fmt.Sprintf("cannot create ledger dir for %s", bank), err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return common.StorageWriteError(fmt.Sprintf("cannot create ledger sheet for %s", bank), err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range entity.LedgerColumns {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cellName, h)
	}

	for i, rec := range records {
		row := i + 2
		write := func(col int, v any) {
			cellName, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheetName, cellName, v)
		}
		write(1, rec.EmployeeName)
		write(2, rec.AccountNumber)
		write(3, rec.Bank)
		write(4, rec.NetPay)
		write(5, rec.PayDate)
		write(6, rec.Confidence)
		write(7, rec.SourceFile)
	}

	// Widen a few columns
	_ = f.SetColWidth(sheetName, "A", "A", 26) // name
	_ = f.SetColWidth(sheetName, "B", "B", 18) // account
	_ = f.SetColWidth(sheetName, "C", "C", 16) // bank
	_ = f.SetColWidth(sheetName, "D", "E", 14) // amount, date
	_ = f.SetColWidth(sheetName, "G", "G", 32) // source file

	if err := f.SaveAs(s.Path(bank)); err != nil {
		return common.StorageWriteError(fmt.Sprintf("cannot write ledger for %s", bank), err)
	}

	s.logger.Info("ledger.save.ok", "bank", bank, "rows", len(records))
	return nil
}

// List returns the banks that have a ledger file, in directory order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, common.StorageReadError("cannot list ledger dir", err)
	}

	var banks []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		banks = append(banks, strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix))
	}
	return banks, nil
}

// Open returns the raw xlsx bytes of a bank's ledger for download.
func (s *Store) Open(bank string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(bank))
	if os.IsNotExist(err) {
		return nil, common.NewAppError("NOT_FOUND", fmt.Sprintf("no ledger for %s", bank), common.ErrNotFound)
	}
	if err != nil {
		return nil, common.StorageReadError(fmt.Sprintf("cannot read ledger for %s", bank), err)
	}
	return data, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for _, h := range entity.LedgerColumns {
		cols[h] = -1
	}
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	return cols
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
