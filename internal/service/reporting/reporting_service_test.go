package reporting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/HaidarCreator/Translog-gn/internal/domain/models"
	"github.com/HaidarCreator/Translog-gn/internal/ledger"
	"github.com/HaidarCreator/Translog-gn/internal/repository/mongodb"
	"github.com/HaidarCreator/Translog-gn/pkg/clients/anthropic"
)

type fakeRepo struct {
	records   []models.FinancialRecord
	snapshots []models.DailySnapshot
}

func (f *fakeRepo) InsertRecord(_ context.Context, record models.FinancialRecord) (models.FinancialRecord, error) {
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

func (f *fakeRepo) DeleteRecord(_ context.Context, _, _ string) error { return mongodb.ErrNotFound }

func (f *fakeRepo) SaveSnapshot(_ context.Context, snapshot models.DailySnapshot) error {
	f.snapshots = append(f.snapshots, snapshot)
	return nil
}

type fakeAI struct {
	gotRecordsJSON string
	report         string
	receipt        anthropic.ReceiptFields
	receiptErr     error
}

func (f *fakeAI) GenerateReport(_ context.Context, recordsJSON string) (string, error) {
	f.gotRecordsJSON = recordsJSON
	return f.report, nil
}

func (f *fakeAI) ExtractReceipt(_ context.Context, _, _ string) (anthropic.ReceiptFields, error) {
	return f.receipt, f.receiptErr
}

type fakeExporter struct {
	appended []models.DailySnapshot
}

func (f *fakeExporter) AppendSnapshot(_ context.Context, snapshot models.DailySnapshot) error {
	f.appended = append(f.appended, snapshot)
	return nil
}

func tripFixture(t *testing.T, owner, truck, date string, bags int) models.FinancialRecord {
	t.Helper()
	rec, err := ledger.NormalizeTrip(models.TripInput{TruckID: truck, Date: date, BagCount: bags}, models.RateConfig{
		FuelPricePerLiter: 12000,
		RevenuePerTon:     85000,
		LaborCostPerTon:   15000,
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	rec.OwnerID = owner
	return rec
}

func TestGenerateReportUsesNewestWindow(t *testing.T) {
	repo := &fakeRepo{}
	for i := 0; i < 35; i++ {
		rec := tripFixture(t, "owner-1", fmt.Sprintf("t-%d", i), fmt.Sprintf("2025-01-%02d", i%28+1), 100)
		repo.records = append(repo.records, rec)
	}

	ai := &fakeAI{report: "Section 1 ... Section 4"}
	svc := NewService(repo, ai, nil, nil)

	report, err := svc.GenerateReport(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if report != "Section 1 ... Section 4" {
		t.Fatalf("report is not passed through verbatim: %q", report)
	}

	var sent []models.FinancialRecord
	if err := json.Unmarshal([]byte(ai.gotRecordsJSON), &sent); err != nil {
		t.Fatalf("records payload is not json: %v", err)
	}
	if len(sent) != 30 {
		t.Fatalf("sent %d records, want 30", len(sent))
	}
	// The oldest five entries fall off the window.
	if sent[0].TruckID != "T-5" {
		t.Fatalf("window starts at %q, want T-5", sent[0].TruckID)
	}
}

func TestGenerateReportDisabledWithoutClient(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil, nil, nil)
	if _, err := svc.GenerateReport(context.Background(), "owner-1"); !errors.Is(err, ErrReportingDisabled) {
		t.Fatalf("expected ErrReportingDisabled, got %v", err)
	}
}

func TestExtractReceiptBuildsValidatedCandidate(t *testing.T) {
	ai := &fakeAI{receipt: anthropic.ReceiptFields{Date: "2025-04-02", Amount: 150000, Description: "engine oil"}}
	svc := NewService(&fakeRepo{}, ai, nil, nil)

	extraction, err := svc.ExtractReceipt(context.Background(), "gn-9", "maintenance", []byte("img"), "image/jpeg")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	c := extraction.Candidate
	if c.Kind != models.KindExpense || c.Expense == nil {
		t.Fatalf("candidate = %+v", c)
	}
	if c.TruckID != "GN-9" || c.Expense.Amount != 150000 || c.Expense.Category != models.CategoryMaintenance {
		t.Fatalf("candidate fields = %+v", c)
	}
	if c.NetProfit != -150000 {
		t.Fatalf("net profit = %v", c.NetProfit)
	}
	if c.ID != "" {
		t.Fatalf("candidate must not be persisted")
	}
}

func TestExtractReceiptRejectsInvalidFields(t *testing.T) {
	cases := []anthropic.ReceiptFields{
		{Date: "", Amount: 1000, Description: "no date"},
		{Date: "yesterday", Amount: 1000, Description: "bad date"},
		{Date: "2025-04-02", Amount: -5, Description: "negative"},
	}
	for i, fields := range cases {
		svc := NewService(&fakeRepo{}, &fakeAI{receipt: fields}, nil, nil)
		_, err := svc.ExtractReceipt(context.Background(), "gn-9", "other", []byte("img"), "image/jpeg")
		if !ledger.IsValidationError(err) {
			t.Fatalf("case %d: expected ValidationError, got %v", i, err)
		}
	}
}

func TestSnapshotDaily(t *testing.T) {
	repo := &fakeRepo{records: []models.FinancialRecord{
		tripFixture(t, "owner-1", "a", "2025-01-01", 700),
	}}
	exporter := &fakeExporter{}
	svc := NewService(repo, nil, exporter, nil)

	if err := svc.SnapshotDaily(context.Background(), "owner-1"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	if len(repo.snapshots) != 1 {
		t.Fatalf("stored %d snapshots", len(repo.snapshots))
	}
	snap := repo.snapshots[0]
	if snap.OwnerID != "owner-1" || snap.Totals.TotalTripCount != 1 || snap.Totals.TotalTons != 35 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if len(exporter.appended) != 1 {
		t.Fatalf("exporter received %d rows", len(exporter.appended))
	}
}
