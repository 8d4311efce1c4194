package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/HaidarCreator/Translog-gn/internal/domain/models"
	"github.com/HaidarCreator/Translog-gn/internal/ledger"
	"github.com/HaidarCreator/Translog-gn/internal/repository/mongodb"
)

// ownerHeader carries the anonymous user key records are scoped by.
const ownerHeader = "X-Owner-ID"

// RecordService defines the record operations the HTTP layer needs.
type RecordService interface {
	RecordTrip(ctx context.Context, ownerID string, in models.TripInput) (models.FinancialRecord, error)
	RecordExpense(ctx context.Context, ownerID string, in models.ExpenseInput) (models.FinancialRecord, error)
	ListRecords(ctx context.Context, ownerID string) ([]models.FinancialRecord, error)
	DeleteRecord(ctx context.Context, ownerID, id string) error
	Dashboard(ctx context.Context, ownerID string) (models.Dashboard, error)
	Rates() models.RateConfig
	UpdateRates(cfg models.RateConfig) error
}

// RecordHandler exposes record CRUD and the dashboard over HTTP.
type RecordHandler struct {
	svc          RecordService
	defaultOwner string
	logger       *zap.Logger
}

// NewRecordHandler constructs the HTTP handler adapter.
func NewRecordHandler(svc RecordService, defaultOwner string, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{svc: svc, defaultOwner: defaultOwner, logger: logger}
}

func (h *RecordHandler) owner(c *gin.Context) string {
	if owner := c.GetHeader(ownerHeader); owner != "" {
		return owner
	}
	return h.defaultOwner
}

// CreateTrip records a cargo delivery.
func (h *RecordHandler) CreateTrip(c *gin.Context) {
	var in models.TripInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid trip payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.RecordTrip(c.Request.Context(), h.owner(c), in)
	if err != nil {
		h.respondError(c, err, "failed to record trip")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// CreateExpense records a standalone cost.
func (h *RecordHandler) CreateExpense(c *gin.Context) {
	var in models.ExpenseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid expense payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.RecordExpense(c.Request.Context(), h.owner(c), in)
	if err != nil {
		h.respondError(c, err, "failed to record expense")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// ListRecords returns the owner's full record collection.
func (h *RecordHandler) ListRecords(c *gin.Context) {
	records, err := h.svc.ListRecords(c.Request.Context(), h.owner(c))
	if err != nil {
		h.respondError(c, err, "failed to list records")
		return
	}
	if records == nil {
		records = []models.FinancialRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// DeleteRecord removes one record by id.
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	if err := h.svc.DeleteRecord(c.Request.Context(), h.owner(c), c.Param("id")); err != nil {
		h.respondError(c, err, "failed to delete record")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDashboard returns the aggregated summary views.
func (h *RecordHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.svc.Dashboard(c.Request.Context(), h.owner(c))
	if err != nil {
		h.respondError(c, err, "failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// GetRates returns the rates applied to newly recorded trips.
func (h *RecordHandler) GetRates(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Rates())
}

// UpdateRates replaces the active rate configuration.
func (h *RecordHandler) UpdateRates(c *gin.Context) {
	var cfg models.RateConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		h.logger.Warn("invalid rates payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.UpdateRates(cfg); err != nil {
		h.respondError(c, err, "failed to update rates")
		return
	}

	c.JSON(http.StatusOK, h.svc.Rates())
}

func (h *RecordHandler) respondError(c *gin.Context, err error, msg string) {
	switch {
	case ledger.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, mongodb.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		h.logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
