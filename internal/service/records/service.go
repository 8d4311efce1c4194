package records

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/HaidarCreator/Translog-gn/internal/domain/models"
	"github.com/HaidarCreator/Translog-gn/internal/ledger"
	"github.com/HaidarCreator/Translog-gn/internal/repository/mongodb"
)

// Service creates, lists and deletes financial records and assembles the
// dashboard aggregates. All derivation happens in the ledger package; this
// layer only snapshots the rates, persists and folds.
type Service struct {
	repo   mongodb.Repository
	rates  *ledger.RateSource
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a record service instance.
func NewService(repo mongodb.Repository, rates *ledger.RateSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		rates:  rates,
		logger: logger,
		now:    time.Now,
	}
}

// RecordTrip normalizes a trip entry against the rates in force and persists
// the resulting record.
func (s *Service) RecordTrip(ctx context.Context, ownerID string, in models.TripInput) (models.FinancialRecord, error) {
	record, err := ledger.NormalizeTrip(in, s.rates.Current())
	if err != nil {
		return models.FinancialRecord{}, err
	}

	record.OwnerID = ownerID
	record.CreatedAt = s.now().UTC()

	stored, err := s.repo.InsertRecord(ctx, record)
	if err != nil {
		return models.FinancialRecord{}, err
	}

	s.logger.Info("trip recorded",
		zap.String("id", stored.ID),
		zap.String("truck_id", stored.TruckID),
		zap.Float64("net_profit", stored.NetProfit))
	return stored, nil
}

// RecordExpense normalizes and persists a standalone expense entry.
func (s *Service) RecordExpense(ctx context.Context, ownerID string, in models.ExpenseInput) (models.FinancialRecord, error) {
	record, err := ledger.NormalizeExpense(in)
	if err != nil {
		return models.FinancialRecord{}, err
	}

	record.OwnerID = ownerID
	record.CreatedAt = s.now().UTC()

	stored, err := s.repo.InsertRecord(ctx, record)
	if err != nil {
		return models.FinancialRecord{}, err
	}

	s.logger.Info("expense recorded",
		zap.String("id", stored.ID),
		zap.String("truck_id", stored.TruckID),
		zap.Float64("amount", stored.TotalExpenses))
	return stored, nil
}

// ListRecords returns the owner's full record collection.
func (s *Service) ListRecords(ctx context.Context, ownerID string) ([]models.FinancialRecord, error) {
	return s.repo.ListRecords(ctx, ownerID)
}

// DeleteRecord removes one record wholesale. Records are never partially
// updated; delete-and-reenter is the only correction path.
func (s *Service) DeleteRecord(ctx context.Context, ownerID, id string) error {
	if err := s.repo.DeleteRecord(ctx, ownerID, id); err != nil {
		return err
	}
	s.logger.Info("record deleted", zap.String("id", id))
	return nil
}

// Dashboard folds the owner's records into the summary views.
func (s *Service) Dashboard(ctx context.Context, ownerID string) (models.Dashboard, error) {
	records, err := s.repo.ListRecords(ctx, ownerID)
	if err != nil {
		return models.Dashboard{}, err
	}

	return models.Dashboard{
		Totals:       ledger.ComputeTotals(records),
		Series:       ledger.BuildProfitSeries(records),
		Destinations: ledger.ComputeDestinationStats(records),
		Costs:        ledger.ComputeCostBreakdown(records),
	}, nil
}

// Rates returns the rate configuration currently applied to new trips.
func (s *Service) Rates() models.RateConfig {
	return s.rates.Current()
}

// UpdateRates replaces the active rates. Existing records keep the rates
// they were created with.
func (s *Service) UpdateRates(cfg models.RateConfig) error {
	if err := s.rates.Update(cfg); err != nil {
		return err
	}
	s.logger.Info("rates updated",
		zap.Float64("fuel_price_per_liter", cfg.FuelPricePerLiter),
		zap.Float64("revenue_per_ton", cfg.RevenuePerTon),
		zap.Float64("labor_cost_per_ton", cfg.LaborCostPerTon))
	return nil
}
