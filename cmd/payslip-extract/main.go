package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/dlifeofjay/payslip/internal/common"
	"github.com/dlifeofjay/payslip/internal/extract"
	"github.com/dlifeofjay/payslip/internal/imaging"
	"github.com/dlifeofjay/payslip/internal/ocr"
	"github.com/dlifeofjay/payslip/internal/pipeline"
)

// payslip-extract runs the extraction pipeline over the given files and
// prints the recovered records as JSON, without touching any ledger.
// Useful for checking what the OCR sees on a problem scan.
func main() {
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: payslip-extract [-v] <file.pdf|file.jpg|file.png> ...")
		os.Exit(2)
	}

	_ = godotenv.Load()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	rec := ocr.NewRecognizer(ocr.Config{
		Tesseract:        cfg.OCR.Tesseract,
		Pdftoppm:         cfg.OCR.Pdftoppm,
		TesseractLang:    cfg.OCR.TesseractLang,
		TessdataDir:      cfg.OCR.TessdataDir,
		DPI:              cfg.OCR.DPI,
		PSM:              cfg.OCR.PSM,
		MaxPages:         cfg.OCR.MaxPages,
		ArtifactCacheDir: cfg.OCR.ArtifactCacheDir,
	}, logger)
	pl := pipeline.NewPipeline(imaging.NewPreprocessor(), rec, extract.NewFieldExtractor(), logger)

	ctx := context.Background()
	exitCode := 0
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
			continue
		}
		records, errs := pl.ProcessDocument(ctx, path, data)
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "warning: %v\n", e)
		}
		if err := enc.Encode(records); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}
