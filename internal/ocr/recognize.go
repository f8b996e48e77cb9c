package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dlifeofjay/payslip/internal/common"
)

// RecognizeImage writes the binarized page to a scratch PNG and runs
// recognition on it.
func (r *Recognizer) RecognizeImage(ctx context.Context, img *image.Gray) (Result, error) {
	f, err := os.CreateTemp(r.cfg.ArtifactCacheDir, "payslip-page-*.png")
	if err != nil {
		return Result{}, common.RecognitionError("cannot create scratch page file", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return Result{}, common.RecognitionError("cannot encode scratch page", err)
	}
	if err := f.Close(); err != nil {
		return Result{}, common.RecognitionError("cannot flush scratch page", err)
	}
	return r.RecognizeFile(ctx, path)
}

// RecognizeFile runs tesseract in TSV mode on an image file and aggregates
// word tokens to a single text string plus a mean confidence.
func (r *Recognizer) RecognizeFile(ctx context.Context, path string) (Result, error) {
	args := []string{path, "stdout", "-l", r.cfg.TesseractLang, "--psm", fmt.Sprintf("%d", r.cfg.PSM)}
	if r.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", r.cfg.TessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := r.runner.Run(ctx, r.cfg.Tesseract, args...)
	if err != nil {
		r.logger.Error("ocr.recognize.failed", "path", path, "error", err, "stderr", truncate(string(errb), 2<<10))
		return Result{}, common.RecognitionError("tesseract failed", err)
	}

	words, confs := parseTSV(string(out))
	return Result{
		Text:       strings.Join(words, " "),
		Confidence: meanConfidence(confs),
	}, nil
}

// parseTSV pulls the word text and confidence columns out of tesseract TSV
// output. Columns: level page block par line word left top width height
// conf text; the header row is skipped. Blank tokens are dropped from the
// text but their confidence entries are kept for aggregation.
func parseTSV(out string) (words []string, confs []string) {
	lines := strings.Split(out, "\n")
	for i, ln := range lines {
		if i == 0 || len(ln) == 0 {
			continue // skip header
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		word := cols[11]
		if strings.TrimSpace(word) != "" {
			words = append(words, word)
		}
		confs = append(confs, cols[10])
	}
	return words, confs
}

// meanConfidence averages the scores that parse as a number and are
// strictly positive; tesseract reports -1 for unscored rows. An all-invalid
// set yields 0. The result is rounded to one decimal place.
func meanConfidence(confs []string) float64 {
	var sum float64
	var n int
	for _, c := range confs {
		v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil || v <= 0 {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Round(sum/float64(n)*10) / 10
}
