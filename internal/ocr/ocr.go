package ocr

import (
	"log/slog"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for PDF pages, default 300
	MaxPages      int    // 0 = no limit

	TessdataDir string

	// PSM 6 assumes a single uniform block of text, which is how payslips
	// read after binarization.
	PSM int

	ArtifactCacheDir string // scratch dir for binarized pages; "" = os temp
}

// Result is one page's recognition output: the space-joined token text and
// the mean confidence (0-100) over tokens that carried a valid score.
type Result struct {
	Text       string
	Confidence float64
}

// Recognizer drives the external tesseract engine and aggregates its
// per-word output to page level.
type Recognizer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewRecognizer(cfg Config, logger *slog.Logger) *Recognizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.PSM <= 0 {
		cfg.PSM = 6
	}
	return &Recognizer{cfg: cfg, runner: execRunner{}, logger: logger}
}

// WithRunner swaps the command runner; tests use this to stub tesseract.
func (r *Recognizer) WithRunner(runner Runner) *Recognizer {
	r.runner = runner
	return r
}
