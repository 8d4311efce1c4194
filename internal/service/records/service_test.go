package records

import (
	"context"
	"fmt"
	"testing"

	"github.com/HaidarCreator/Translog-gn/internal/domain/models"
	"github.com/HaidarCreator/Translog-gn/internal/ledger"
	"github.com/HaidarCreator/Translog-gn/internal/repository/mongodb"
)

type fakeRepo struct {
	records   []models.FinancialRecord
	snapshots []models.DailySnapshot
	nextID    int
}

func (f *fakeRepo) InsertRecord(_ context.Context, record models.FinancialRecord) (models.FinancialRecord, error) {
	f.nextID++
	record.ID = fmt.Sprintf("rec-%d", f.nextID)
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeRepo) ListRecords(_ context.Context, ownerID string) ([]models.FinancialRecord, error) {
	var out []models.FinancialRecord
	for _, r := range f.records {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteRecord(_ context.Context, ownerID, id string) error {
	for i, r := range f.records {
		if r.ID == id && r.OwnerID == ownerID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return mongodb.ErrNotFound
}

func (f *fakeRepo) SaveSnapshot(_ context.Context, snapshot models.DailySnapshot) error {
	f.snapshots = append(f.snapshots, snapshot)
	return nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := &fakeRepo{}
	rates := ledger.NewRateSource(models.RateConfig{
		FuelPricePerLiter: 12000,
		RevenuePerTon:     85000,
		LaborCostPerTon:   15000,
	})
	return NewService(repo, rates, nil), repo
}

func TestRecordTripPersists(t *testing.T) {
	svc, repo := newTestService()

	rec, err := svc.RecordTrip(context.Background(), "owner-1", models.TripInput{
		TruckID:     "gn-1",
		Destination: "Coyah",
		Date:        "2025-03-14",
		BagCount:    700,
		FuelLiters:  50,
	})
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	if rec.ID == "" {
		t.Fatalf("persistence layer must assign an id")
	}
	if rec.OwnerID != "owner-1" {
		t.Fatalf("owner = %q", rec.OwnerID)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatalf("created_at not set")
	}
	if rec.NetProfit != 1850000 {
		t.Fatalf("net profit = %v", rec.NetProfit)
	}
	if len(repo.records) != 1 {
		t.Fatalf("stored %d records", len(repo.records))
	}
}

func TestRecordTripValidationFailureDoesNotPersist(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.RecordTrip(context.Background(), "owner-1", models.TripInput{
		TruckID:  "gn-1",
		Date:     "2025-03-14",
		BagCount: 0,
	})
	if !ledger.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("no record must be produced on validation failure")
	}
}

func TestRecordExpensePersists(t *testing.T) {
	svc, repo := newTestService()

	rec, err := svc.RecordExpense(context.Background(), "owner-1", models.ExpenseInput{
		TruckID:  "gn-2",
		Date:     "2025-03-15",
		Category: "tires",
		Amount:   80000,
	})
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if rec.NetProfit != -80000 {
		t.Fatalf("net profit = %v", rec.NetProfit)
	}
	if len(repo.records) != 1 {
		t.Fatalf("stored %d records", len(repo.records))
	}
}

func TestDeleteRecord(t *testing.T) {
	svc, _ := newTestService()

	rec, err := svc.RecordExpense(context.Background(), "owner-1", models.ExpenseInput{
		TruckID:  "gn-2",
		Date:     "2025-03-15",
		Category: "other",
		Amount:   1000,
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}

	if err := svc.DeleteRecord(context.Background(), "owner-1", rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteRecord(context.Background(), "owner-1", rec.ID); err != mongodb.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// Another owner's id never matches.
	if err := svc.DeleteRecord(context.Background(), "owner-2", "rec-1"); err != mongodb.ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
}

func TestDashboard(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.RecordTrip(ctx, "owner-1", models.TripInput{TruckID: "a", Destination: "Coyah", Date: "2025-01-02", BagCount: 400}); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	if _, err := svc.RecordTrip(ctx, "owner-1", models.TripInput{TruckID: "b", Date: "2025-01-01", BagCount: 200, FuelLiters: 10}); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	if _, err := svc.RecordExpense(ctx, "owner-1", models.ExpenseInput{TruckID: "a", Date: "2025-01-03", Category: "maintenance", Amount: 50000}); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	// Foreign records stay out of the dashboard.
	if _, err := svc.RecordTrip(ctx, "owner-2", models.TripInput{TruckID: "z", Date: "2025-01-01", BagCount: 9999}); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	dash, err := svc.Dashboard(ctx, "owner-1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if dash.Totals.TotalTripCount != 2 {
		t.Fatalf("trip count = %d", dash.Totals.TotalTripCount)
	}
	if dash.Totals.TotalTons != 30 {
		t.Fatalf("tons = %v", dash.Totals.TotalTons)
	}
	if len(dash.Series) != 3 {
		t.Fatalf("series length = %d", len(dash.Series))
	}
	if !dash.Series[0].Date.Before(dash.Series[1].Date) {
		t.Fatalf("series not chronological")
	}
	if len(dash.Destinations) != 2 || dash.Destinations[0].Name != "Coyah" {
		t.Fatalf("destinations = %+v", dash.Destinations)
	}
	if dash.Costs.Maintenance != 50000 {
		t.Fatalf("maintenance = %v", dash.Costs.Maintenance)
	}
}

func TestUpdateRatesAffectsOnlyNewRecords(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	before, err := svc.RecordTrip(ctx, "owner-1", models.TripInput{TruckID: "a", Date: "2025-01-01", BagCount: 100})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}

	if err := svc.UpdateRates(models.RateConfig{FuelPricePerLiter: 12000, RevenuePerTon: 100000, LaborCostPerTon: 15000}); err != nil {
		t.Fatalf("update rates: %v", err)
	}

	after, err := svc.RecordTrip(ctx, "owner-1", models.TripInput{TruckID: "a", Date: "2025-01-02", BagCount: 100})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}

	if before.Trip.Revenue != 5*85000 {
		t.Fatalf("old record revenue = %v", before.Trip.Revenue)
	}
	if after.Trip.Revenue != 5*100000 {
		t.Fatalf("new record revenue = %v", after.Trip.Revenue)
	}
	if svc.Rates().RevenuePerTon != 100000 {
		t.Fatalf("rates = %+v", svc.Rates())
	}
}
