package ocr

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlifeofjay/payslip/internal/common"
)

// stubRunner returns canned output instead of exec'ing tesseract.
type stubRunner struct {
	stdout string
	err    error

	lastName string
	lastArgs []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.lastName = name
	s.lastArgs = args
	return []byte(s.stdout), nil, s.err
}

func tsv(rows ...string) string {
	header := "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext"
	return header + "\n" + strings.Join(rows, "\n") + "\n"
}

func tsvRow(conf, text string) string {
	return strings.Join([]string{"5", "1", "1", "1", "1", "1", "10", "10", "40", "12", conf, text}, "\t")
}

func TestRecognizeFileJoinsTokensAndAveragesConfidence(t *testing.T) {
	stub := &stubRunner{stdout: tsv(
		tsvRow("91.5", "Net"),
		tsvRow("88.5", "Pay"),
		tsvRow("-1", " "),
		tsvRow("85", "45000"),
	)}
	r := NewRecognizer(Config{}, nil).WithRunner(stub)

	res, err := r.RecognizeFile(context.Background(), "page.png")
	require.NoError(t, err)
	assert.Equal(t, "Net Pay 45000", res.Text)
	// mean of 91.5, 88.5, 85 = 88.333... -> one decimal place
	assert.Equal(t, 88.3, res.Confidence)
}

func TestRecognizeFilePSMAndTSVArgs(t *testing.T) {
	stub := &stubRunner{stdout: tsv(tsvRow("90", "hello"))}
	r := NewRecognizer(Config{PSM: 6, TesseractLang: "eng"}, nil).WithRunner(stub)

	_, err := r.RecognizeFile(context.Background(), "page.png")
	require.NoError(t, err)
	assert.Equal(t, "tesseract", stub.lastName)
	assert.Contains(t, stub.lastArgs, "--psm")
	assert.Contains(t, stub.lastArgs, "6")
	assert.Equal(t, "tsv", stub.lastArgs[len(stub.lastArgs)-1])
}

func TestRecognizeFileInvalidConfidencesYieldZero(t *testing.T) {
	stub := &stubRunner{stdout: tsv(
		tsvRow("-1", "word"),
		tsvRow("0", "another"),
		tsvRow("notanumber", "third"),
	)}
	r := NewRecognizer(Config{}, nil).WithRunner(stub)

	res, err := r.RecognizeFile(context.Background(), "page.png")
	require.NoError(t, err)
	assert.Equal(t, "word another third", res.Text)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestRecognizeFileBlankTokensExcludedFromText(t *testing.T) {
	stub := &stubRunner{stdout: tsv(
		tsvRow("70", "  "),
		tsvRow("90", "only"),
	)}
	r := NewRecognizer(Config{}, nil).WithRunner(stub)

	res, err := r.RecognizeFile(context.Background(), "page.png")
	require.NoError(t, err)
	assert.Equal(t, "only", res.Text)
	// the blank token's score still counts toward the average
	assert.Equal(t, 80.0, res.Confidence)
}

func TestRecognizeFileEngineFailure(t *testing.T) {
	stub := &stubRunner{err: errors.New("boom")}
	r := NewRecognizer(Config{}, nil).WithRunner(stub)

	_, err := r.RecognizeFile(context.Background(), "page.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrRecognition)
}

func TestRecognizeImageRoundTrip(t *testing.T) {
	stub := &stubRunner{stdout: tsv(tsvRow("95", "ok"))}
	r := NewRecognizer(Config{ArtifactCacheDir: t.TempDir()}, nil).WithRunner(stub)

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	res, err := r.RecognizeImage(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Text)
	assert.Equal(t, 95.0, res.Confidence)
	assert.True(t, strings.HasSuffix(stub.lastArgs[0], ".png"))
}
