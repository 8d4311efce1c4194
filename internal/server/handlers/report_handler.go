package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/HaidarCreator/Translog-gn/internal/domain/models"
	"github.com/HaidarCreator/Translog-gn/internal/ledger"
	"github.com/HaidarCreator/Translog-gn/internal/service/reporting"
)

// Receipt photos above this size are rejected before touching the AI API.
const maxReceiptBytes = 10 << 20

// ReportService defines the AI-backed operations the HTTP layer needs.
type ReportService interface {
	GenerateReport(ctx context.Context, ownerID string) (string, error)
	ExtractReceipt(ctx context.Context, truckID, category string, image []byte, mediaType string) (models.ReceiptExtraction, error)
}

// ReportHandler exposes the prose report and receipt extraction endpoints.
type ReportHandler struct {
	svc          ReportService
	defaultOwner string
	logger       *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc ReportService, defaultOwner string, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, defaultOwner: defaultOwner, logger: logger}
}

func (h *ReportHandler) owner(c *gin.Context) string {
	if owner := c.GetHeader(ownerHeader); owner != "" {
		return owner
	}
	return h.defaultOwner
}

// GenerateReport returns the AI prose summary of the newest records.
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	report, err := h.svc.GenerateReport(c.Request.Context(), h.owner(c))
	if err != nil {
		if errors.Is(err, reporting.ErrReportingDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai reporting is not configured"})
			return
		}
		h.logger.Error("failed generating report", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to generate report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// ExtractReceipt reads an expense candidate off an uploaded receipt photo.
// The candidate is validated like typed input but not persisted; the client
// confirms it by posting it as a regular expense.
func (h *ReportHandler) ExtractReceipt(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxReceiptBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed opening upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed reading upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}

	mediaType := fileHeader.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = "image/jpeg"
	}

	extraction, err := h.svc.ExtractReceipt(
		c.Request.Context(),
		c.PostForm("truck_id"),
		c.PostForm("category"),
		image,
		mediaType,
	)
	if err != nil {
		switch {
		case ledger.IsValidationError(err):
			// Extracted values failed the same checks typed input would.
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, reporting.ErrReportingDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ai extraction is not configured"})
		default:
			h.logger.Error("failed extracting receipt", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "unable to extract receipt"})
		}
		return
	}

	c.JSON(http.StatusOK, extraction)
}
