package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/HaidarCreator/Translog-gn/internal/config"
	"github.com/HaidarCreator/Translog-gn/internal/ledger"
	"github.com/HaidarCreator/Translog-gn/internal/repository/mongodb"
	"github.com/HaidarCreator/Translog-gn/internal/repository/sheets"
	"github.com/HaidarCreator/Translog-gn/internal/scheduler"
	"github.com/HaidarCreator/Translog-gn/internal/server/handlers"
	"github.com/HaidarCreator/Translog-gn/internal/server/router"
	recordsvc "github.com/HaidarCreator/Translog-gn/internal/service/records"
	reportingsvc "github.com/HaidarCreator/Translog-gn/internal/service/reporting"
	"github.com/HaidarCreator/Translog-gn/pkg/clients/anthropic"
	"github.com/HaidarCreator/Translog-gn/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	// Initialize AI Client
	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, report generation and receipt extraction disabled")
	}

	// Optional spreadsheet export
	var exporter sheets.Exporter
	if cfg.Sheets.SpreadsheetID != "" {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("sheet export enabled")
	} else {
		baseLogger.Warn("export spreadsheet not configured, snapshots stay in mongodb only")
	}

	rateSource := ledger.NewRateSource(cfg.Rates)
	recordSvc := recordsvc.NewService(mongoRepo, rateSource, baseLogger.Named("svc.records"))
	reportingSvc := reportingsvc.NewService(mongoRepo, aiClient, exporter, baseLogger.Named("svc.reporting"))

	recordHandler := handlers.NewRecordHandler(recordSvc, cfg.Server.DefaultOwnerID, baseLogger.Named("handlers.records"))
	reportHandler := handlers.NewReportHandler(reportingSvc, cfg.Server.DefaultOwnerID, baseLogger.Named("handlers.reports"))
	engine := router.New(recordHandler, reportHandler, baseLogger.Named("router"))

	// Initialize Scheduler
	sched := scheduler.NewScheduler(*cfg, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
