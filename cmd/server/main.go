package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/config"
	"github.com/mamadbah2/herdtrack/internal/repository/mongodb"
	"github.com/mamadbah2/herdtrack/internal/repository/sheets"
	"github.com/mamadbah2/herdtrack/internal/scheduler"
	"github.com/mamadbah2/herdtrack/internal/server/handlers"
	"github.com/mamadbah2/herdtrack/internal/server/router"
	analyticssvc "github.com/mamadbah2/herdtrack/internal/service/analytics"
	weightssvc "github.com/mamadbah2/herdtrack/internal/service/weights"
	"github.com/mamadbah2/herdtrack/pkg/clients/alert"
	"github.com/mamadbah2/herdtrack/pkg/logger"
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

	var sheetRepo sheets.Repository
	if cfg.SheetImportEnabled() {
		sheetRepo, err = sheets.NewWeightSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("sheet import enabled")
	} else {
		baseLogger.Warn("sheet credentials missing, spreadsheet import disabled")
	}

	analyticsSvc := analyticssvc.NewService(mongoRepo, mongoRepo, baseLogger.Named("svc.analytics"))
	weightsSvc := weightssvc.NewService(mongoRepo, sheetRepo, analyticsSvc, baseLogger.Named("svc.weights"))

	analyticsHandler := handlers.NewAnalyticsHandler(analyticsSvc, baseLogger.Named("handlers.analytics"))
	weightsHandler := handlers.NewWeightsHandler(weightsSvc, baseLogger.Named("handlers.weights"))
	engine := router.New(analyticsHandler, weightsHandler, baseLogger.Named("router"))

	var alertClient alert.Client
	if cfg.AlertingEnabled() {
		alertClient = alert.NewClient(cfg.Alert)
		baseLogger.Info("health alert webhook enabled")
	} else {
		baseLogger.Warn("alert webhook missing, health alerts disabled")
	}

	sched := scheduler.NewScheduler(*cfg, mongoRepo, alertClient, baseLogger.Named("scheduler"))
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
