package reporting

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/HaidarCreator/Translog-gn/internal/domain/models"
	"github.com/HaidarCreator/Translog-gn/internal/ledger"
	"github.com/HaidarCreator/Translog-gn/internal/repository/mongodb"
	"github.com/HaidarCreator/Translog-gn/internal/repository/sheets"
	"github.com/HaidarCreator/Translog-gn/pkg/clients/anthropic"
)

// ErrReportingDisabled is returned when no AI client is configured.
var ErrReportingDisabled = errors.New("ai reporting is not configured")

// The prose report covers at most this many of the newest records.
const reportRecordLimit = 30

// Service produces the AI prose report, runs receipt extraction, and builds
// the scheduled daily snapshot.
type Service struct {
	repo     mongodb.Repository
	ai       anthropic.Client
	exporter sheets.Exporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a reporting service. The ai client and exporter may be
// nil; the corresponding features degrade instead of failing at startup.
func NewService(repo mongodb.Repository, ai anthropic.Client, exporter sheets.Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		ai:       ai,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
}

// GenerateReport serializes the owner's newest records and returns the
// model's four-section prose summary verbatim.
func (s *Service) GenerateReport(ctx context.Context, ownerID string) (string, error) {
	if s.ai == nil {
		return "", ErrReportingDisabled
	}

	records, err := s.repo.ListRecords(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("load records: %w", err)
	}

	// Records come back oldest first; keep only the newest window.
	if len(records) > reportRecordLimit {
		records = records[len(records)-reportRecordLimit:]
	}

	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("serialize records: %w", err)
	}

	report, err := s.ai.GenerateReport(ctx, string(recordsJSON))
	if err != nil {
		return "", fmt.Errorf("generate report: %w", err)
	}

	s.logger.Info("report generated", zap.Int("records", len(records)))
	return report, nil
}

// ExtractReceipt reads an expense off a receipt photo and validates the
// extracted fields exactly as if they had been typed in. The candidate
// record is returned but never persisted; the caller confirms it through
// the normal expense flow.
func (s *Service) ExtractReceipt(ctx context.Context, truckID, category string, image []byte, mediaType string) (models.ReceiptExtraction, error) {
	if s.ai == nil {
		return models.ReceiptExtraction{}, ErrReportingDisabled
	}

	fields, err := s.ai.ExtractReceipt(ctx, base64.StdEncoding.EncodeToString(image), mediaType)
	if err != nil {
		return models.ReceiptExtraction{}, fmt.Errorf("extract receipt: %w", err)
	}

	candidate, err := ledger.NormalizeExpense(models.ExpenseInput{
		TruckID:     truckID,
		Date:        fields.Date,
		Category:    category,
		Amount:      fields.Amount,
		Description: fields.Description,
	})
	if err != nil {
		return models.ReceiptExtraction{}, err
	}

	s.logger.Info("receipt extracted",
		zap.String("date", fields.Date),
		zap.Float64("amount", fields.Amount))

	return models.ReceiptExtraction{
		Date:        fields.Date,
		Amount:      fields.Amount,
		Description: fields.Description,
		Candidate:   candidate,
	}, nil
}

// SnapshotDaily folds the owner's records into a dated snapshot, stores it,
// and appends a row to the export sheet when one is configured.
func (s *Service) SnapshotDaily(ctx context.Context, ownerID string) error {
	records, err := s.repo.ListRecords(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	snapshot := models.DailySnapshot{
		OwnerID:   ownerID,
		Date:      s.now().UTC().Truncate(24 * time.Hour),
		Totals:    ledger.ComputeTotals(records),
		Costs:     ledger.ComputeCostBreakdown(records),
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.SaveSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	if s.exporter != nil {
		if err := s.exporter.AppendSnapshot(ctx, snapshot); err != nil {
			// The snapshot is already stored; a failed export is not fatal.
			s.logger.Warn("sheet export failed", zap.Error(err))
		}
	}

	s.logger.Info("daily snapshot saved",
		zap.Time("date", snapshot.Date),
		zap.Int("trips", snapshot.Totals.TotalTripCount))
	return nil
}
