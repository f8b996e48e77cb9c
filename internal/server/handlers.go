package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dlifeofjay/payslip/constants"
	"github.com/dlifeofjay/payslip/internal/common"
	"github.com/dlifeofjay/payslip/internal/entity"
	"github.com/dlifeofjay/payslip/internal/ledger"
	"github.com/dlifeofjay/payslip/internal/pipeline"
	"github.com/dlifeofjay/payslip/internal/recon"
	"github.com/dlifeofjay/payslip/internal/session"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	sessions *session.Manager
	pipeline *pipeline.Pipeline
	engine   *recon.Engine
	store    *ledger.Store
	logger   *slog.Logger
}

func NewHandler(sessions *session.Manager, pl *pipeline.Pipeline, engine *recon.Engine, store *ledger.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{sessions: sessions, pipeline: pl, engine: engine, store: store, logger: logger}
}

// CreateSession starts an empty review session.
func (h *Handler) CreateSession(c *gin.Context) {
	s := h.sessions.Create()
	c.JSON(http.StatusCreated, gin.H{"session_id": s.ID.String()})
}

// TerminateSession clears the session's batch and forgets it.
func (h *Handler) TerminateSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}
	h.sessions.Terminate(id)
	c.JSON(http.StatusOK, gin.H{"message": "session terminated"})
}

// UploadPayslips accepts one or more payslip documents (multipart field
// "files"), runs the extraction pipeline on every page and appends the
// results to the session batch. Pages that fail come back as warnings, not
// as a failed request.
func (h *Handler) UploadPayslips(c *gin.Context) {
	s := h.session(c)
	if s == nil {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one file required"})
		return
	}

	var appended []entity.ExtractedRecord
	var warnings []string
	for _, fh := range files {
		if !constants.IsAllowedExt(filepath.Ext(fh.Filename)) {
			warnings = append(warnings, fmt.Sprintf("%s: unsupported file type", fh.Filename))
			continue
		}
		f, err := fh.Open()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", fh.Filename, err))
			continue
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", fh.Filename, err))
			continue
		}

		records, errs := h.pipeline.ProcessDocument(c.Request.Context(), fh.Filename, data)
		for _, e := range errs {
			warnings = append(warnings, e.Error())
		}
		s.Append(records...)
		appended = append(appended, records...)
	}

	h.logger.Info("upload.ok", "session_id", s.ID.String(), "files", len(files), "records", len(appended), "warnings", len(warnings))
	c.JSON(http.StatusOK, gin.H{
		"records":    appended,
		"warnings":   warnings,
		"batch_size": s.Len(),
	})
}

// GetBatch returns the session's batch for review.
func (h *Handler) GetBatch(c *gin.Context) {
	s := h.session(c)
	if s == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": s.Snapshot()})
}

// ReplaceBatch swaps the batch for the reviewer's edited table.
func (h *Handler) ReplaceBatch(c *gin.Context) {
	s := h.session(c)
	if s == nil {
		return
	}
	var payload struct {
		Records []entity.ExtractedRecord `json:"records"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	s.Replace(payload.Records)
	c.JSON(http.StatusOK, gin.H{"batch_size": s.Len()})
}

// Confirm reconciles the reviewed batch into the per-bank ledgers.
func (h *Handler) Confirm(c *gin.Context) {
	s := h.session(c)
	if s == nil {
		return
	}

	outcome, err := h.engine.Confirm(s.Snapshot())
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// ListLedgers lists the banks that have a persisted ledger.
func (h *Handler) ListLedgers(c *gin.Context) {
	banks, err := h.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"banks": banks})
}

// DownloadLedger streams one bank's ledger file.
func (h *Handler) DownloadLedger(c *gin.Context) {
	bank := c.Param("bank")
	data, err := h.store.Open(bank)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=payslip_%s.xlsx", bank))
	c.Data(http.StatusOK, xlsxMIME, data)
}

func (h *Handler) session(c *gin.Context) *session.Session {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return nil
	}
	s := h.sessions.Get(id)
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil
	}
	return s
}
