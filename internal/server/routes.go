package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/dlifeofjay/payslip/internal/common"
	"github.com/dlifeofjay/payslip/internal/extract"
	"github.com/dlifeofjay/payslip/internal/imaging"
	"github.com/dlifeofjay/payslip/internal/ledger"
	"github.com/dlifeofjay/payslip/internal/ocr"
	"github.com/dlifeofjay/payslip/internal/pipeline"
	"github.com/dlifeofjay/payslip/internal/recon"
	"github.com/dlifeofjay/payslip/internal/session"
)

// RegisterRoutes wires the extraction pipeline, session manager and
// reconciliation engine into the gin router.
func RegisterRoutes(r *gin.Engine, cfg *common.Config, logger *slog.Logger) {
	store := ledger.NewStore(cfg.Ledger.Dir, logger)

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
	engine := recon.NewEngine(store, logger)
	h := NewHandler(session.NewManager(), pl, engine, store, logger)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	sessions := api.Group("/sessions")
	sessions.POST("", h.CreateSession)
	sessions.DELETE("/:id", h.TerminateSession)
	sessions.POST("/:id/payslips", h.UploadPayslips)
	sessions.GET("/:id/batch", h.GetBatch)
	sessions.PUT("/:id/batch", h.ReplaceBatch)
	sessions.POST("/:id/confirm", h.Confirm)

	ledgers := api.Group("/ledgers")
	ledgers.GET("", h.ListLedgers)
	ledgers.GET("/:bank/download", h.DownloadLedger)
}
