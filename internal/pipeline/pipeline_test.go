package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlifeofjay/payslip/internal/common"
	"github.com/dlifeofjay/payslip/internal/extract"
	"github.com/dlifeofjay/payslip/internal/imaging"
	"github.com/dlifeofjay/payslip/internal/ocr"
)

// fakeEngine stands in for tesseract and pdftoppm. For tesseract it
// returns canned TSV; for pdftoppm it writes the requested page files so
// the PDF flow can run without poppler installed.
type fakeEngine struct {
	tsv      string
	tessErr  error
	pdfPages int
}

func (f *fakeEngine) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	if strings.Contains(name, "pdftoppm") {
		prefix := args[len(args)-1]
		for i := 1; i <= f.pdfPages; i++ {
			var buf bytes.Buffer
			if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8))); err != nil {
				return nil, nil, err
			}
			if err := os.WriteFile(fmt.Sprintf("%s-%d.png", prefix, i), buf.Bytes(), 0o644); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	}
	return []byte(f.tsv), nil, f.tessErr
}

func payslipTSV() string {
	header := "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext"
	words := []struct {
		conf string
		text string
	}{
		{"92", "Employee"}, {"91", "Name:"}, {"90", "Jane"}, {"89", "Doe"},
		{"95", "Account"}, {"94", "Number:"}, {"96", "1234567"},
		{"88", "Net"}, {"87", "Pay:"}, {"85", "45"},
		{"93", "Bank:"}, {"90", "GTBank"},
	}
	var b strings.Builder
	b.WriteString(header + "\n")
	for _, w := range words {
		b.WriteString(strings.Join([]string{"5", "1", "1", "1", "1", "1", "0", "0", "10", "10", w.conf, w.text}, "\t") + "\n")
	}
	return b.String()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func newTestPipeline(t *testing.T, engine *fakeEngine) *Pipeline {
	t.Helper()
	rec := ocr.NewRecognizer(ocr.Config{ArtifactCacheDir: t.TempDir()}, nil).WithRunner(engine)
	return NewPipeline(imaging.NewPreprocessor(), rec, extract.NewFieldExtractor(), nil)
}

func TestProcessImageDocument(t *testing.T) {
	p := newTestPipeline(t, &fakeEngine{tsv: payslipTSV()})

	records, errs := p.ProcessDocument(context.Background(), "jane.png", pngBytes(t))
	assert.Empty(t, errs)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Jane Doe", rec.EmployeeName)
	assert.Equal(t, "1234567", rec.AccountNumber)
	assert.Equal(t, "45,000.00", rec.NetPay)
	assert.Equal(t, "GTBank", rec.Bank)
	assert.Equal(t, "jane.png", rec.SourceFile)
	assert.Greater(t, rec.Confidence, 80.0)
}

func TestProcessPDFDocumentOneRecordPerPage(t *testing.T) {
	p := newTestPipeline(t, &fakeEngine{tsv: payslipTSV(), pdfPages: 3})

	records, errs := p.ProcessDocument(context.Background(), "batch.pdf", []byte("%PDF-1.4 stub"))
	assert.Empty(t, errs)
	require.Len(t, records, 3)
	for _, rec := range records {
		assert.Equal(t, "batch.pdf", rec.SourceFile)
		assert.Equal(t, "1234567", rec.AccountNumber)
	}
}

func TestProcessDocumentUndecodableImage(t *testing.T) {
	p := newTestPipeline(t, &fakeEngine{tsv: payslipTSV()})

	records, errs := p.ProcessDocument(context.Background(), "broken.jpg", []byte("junk"))
	assert.Empty(t, records)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], common.ErrDecode)
}

func TestProcessDocumentRecognitionFailure(t *testing.T) {
	p := newTestPipeline(t, &fakeEngine{tessErr: errors.New("tesseract exploded")})

	records, errs := p.ProcessDocument(context.Background(), "jane.png", pngBytes(t))
	assert.Empty(t, records)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], common.ErrRecognition)
}

func TestProcessDocumentUnsupportedExtension(t *testing.T) {
	p := newTestPipeline(t, &fakeEngine{})

	records, errs := p.ProcessDocument(context.Background(), "payslip.docx", []byte("whatever"))
	assert.Empty(t, records)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], common.ErrInvalidInput)
}
