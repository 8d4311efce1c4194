package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/HaidarCreator/Translog-gn/internal/config"
	"github.com/HaidarCreator/Translog-gn/internal/domain/models"
)

const snapshotRange = "Snapshots!A:H"

// Exporter appends summary rows to a shared spreadsheet so the owner can
// eyeball the ledger without the app.
type Exporter interface {
	AppendSnapshot(ctx context.Context, snapshot models.DailySnapshot) error
}

// GoogleSheetExporter implements Exporter using the official Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Sheets-backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSnapshot writes one row: date, trips, tons, revenue, expenses,
// profit, plus the fuel and maintenance cost buckets.
func (e *GoogleSheetExporter) AppendSnapshot(ctx context.Context, snapshot models.DailySnapshot) error {
	values := []interface{}{
		snapshot.Date.Format("2006-01-02"),
		snapshot.Totals.TotalTripCount,
		snapshot.Totals.TotalTons,
		snapshot.Totals.TotalRevenue,
		snapshot.Totals.TotalExpenses,
		snapshot.Totals.TotalProfit,
		snapshot.Costs.Fuel,
		snapshot.Costs.Maintenance,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, snapshotRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append snapshot row: %w", err)
	}

	e.logger.Debug("snapshot row appended to sheet", zap.String("range", snapshotRange))
	return nil
}
