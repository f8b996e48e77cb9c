package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dlifeofjay/payslip/constants"
	"github.com/dlifeofjay/payslip/internal/common"
	"github.com/dlifeofjay/payslip/internal/entity"
	"github.com/dlifeofjay/payslip/internal/extract"
	"github.com/dlifeofjay/payslip/internal/imaging"
	"github.com/dlifeofjay/payslip/internal/ocr"
)

// Pipeline coordinates preprocess → recognize → extract for one document.
// Each page runs to completion before the next begins; a page that cannot
// be decoded or recognized is reported and skipped, the rest of the
// document still yields records.
type Pipeline struct {
	logger *slog.Logger
	pre    *imaging.Preprocessor
	rec    *ocr.Recognizer
	fields *extract.FieldExtractor
}

func NewPipeline(pre *imaging.Preprocessor, rec *ocr.Recognizer, fields *extract.FieldExtractor, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger, pre: pre, rec: rec, fields: fields}
}

// ProcessDocument turns one uploaded document into extracted records, one
// per page. Page-level failures come back as errors alongside whatever
// pages did succeed.
func (p *Pipeline) ProcessDocument(ctx context.Context, filename string, data []byte) ([]entity.ExtractedRecord, []error) {
	switch constants.MapExtToFormat(filepath.Ext(filename)) {
	case constants.PDF:
		return p.processPDF(ctx, filename, data)
	case constants.IMAGE:
		rec, err := p.processPage(ctx, filename, data)
		if err != nil {
			return nil, []error{err}
		}
		return []entity.ExtractedRecord{rec}, nil
	default:
		return nil, []error{common.NewAppError("UNSUPPORTED_FORMAT",
			fmt.Sprintf("unsupported file type: %s", filename), common.ErrInvalidInput)}
	}
}

func (p *Pipeline) processPDF(ctx context.Context, filename string, data []byte) ([]entity.ExtractedRecord, []error) {
	tmp, err := os.CreateTemp("", "payslip-doc-*.pdf")
	if err != nil {
		return nil, []error{common.DecodeError("cannot stage pdf", err)}
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return nil, []error{common.DecodeError("cannot stage pdf", err)}
	}
	if err := tmp.Close(); err != nil {
		return nil, []error{common.DecodeError("cannot stage pdf", err)}
	}

	pages, cleanup, err := p.rec.RenderPDF(ctx, tmp.Name())
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return nil, []error{err}
	}

	var records []entity.ExtractedRecord
	var errs []error
	for i, pagePath := range pages {
		pageBytes, err := os.ReadFile(pagePath)
		if err != nil {
			errs = append(errs, common.DecodeError(fmt.Sprintf("%s page %d unreadable", filename, i+1), err))
			continue
		}
		rec, err := p.processPage(ctx, filename, pageBytes)
		if err != nil {
			p.logger.Warn("pipeline.page.failed", "file", filename, "page", i+1, "error", err)
			errs = append(errs, fmt.Errorf("%s page %d: %w", filename, i+1, err))
			continue
		}
		records = append(records, rec)
	}
	return records, errs
}

func (p *Pipeline) processPage(ctx context.Context, filename string, data []byte) (entity.ExtractedRecord, error) {
	img, err := p.pre.Binarize(data)
	if err != nil {
		return entity.ExtractedRecord{}, err
	}

	res, err := p.rec.RecognizeImage(ctx, img)
	if err != nil {
		return entity.ExtractedRecord{}, err
	}

	fields := p.fields.Extract(res.Text)
	p.logger.Info("pipeline.page.ok",
		"file", filename,
		"confidence", res.Confidence,
		"bank", fields.Bank,
		"account_found", fields.AccountNumber != "",
	)

	return entity.ExtractedRecord{
		EmployeeName:  fields.EmployeeName,
		AccountNumber: fields.AccountNumber,
		Bank:          fields.Bank,
		NetPay:        fields.NetPay,
		PayDate:       fields.PayDate,
		Confidence:    res.Confidence,
		SourceFile:    filename,
	}, nil
}
