// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/api"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/cache"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/config"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/report"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/repository/postgres"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/service"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/sheets"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/storage"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	sheetCache := cache.NewSheetCache(time.Duration(cfg.Sheets.CacheTTLSeconds)*time.Second, nil)
	source, err := sheets.NewService(cfg.Sheets.CredentialsJSON, cfg.Sheets.SpreadsheetID, sheetCache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to build sheets client")
	}

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Dashboard cache unavailable, continuing without it")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	dashboardService := service.NewDashboardService(source, dashboardCache, cfg.Sheets.ScansSheet)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Report.Enabled {
		reportService := buildReportService(ctx, cfg, source)
		scheduler := report.NewScheduler(cfg.Report.Hour, cfg.Report.Minute, cfg.Report.Timezone, reportService.Run)
		go scheduler.Run(ctx)
	}

	router := api.NewRouter(&api.Services{DashboardService: dashboardService}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// buildReportService assembles the daily report pipeline with its optional
// storage and run-log backends.
func buildReportService(ctx context.Context, cfg *config.Config, source *sheets.Service) *service.ReportService {
	var store storage.ObjectStorage
	if cfg.Storage.Enabled {
		client, err := storage.NewMinioClient(ctx, cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Object storage unavailable, reports will not be uploaded")
		} else {
			store = client
		}
	}

	var runs *postgres.ReportRunRepository
	if cfg.Database.DSN != "" {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Report run log database unavailable")
		} else {
			runs = postgres.NewReportRunRepository(db)
			if err := runs.EnsureSchema(ctx); err != nil {
				logger.Log.Warn().Err(err).Msg("Report run schema setup failed")
				runs = nil
			}
		}
	}

	return service.NewReportService(source, source, cfg, store, runs)
}
