// cmd/report/main.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/cache"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/config"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/repository/postgres"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/service"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/sheets"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/storage"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/pkg/logger"
)

func newSource(cfg *config.Config) (*sheets.Service, error) {
	sheetCache := cache.NewSheetCache(time.Duration(cfg.Sheets.CacheTTLSeconds)*time.Second, nil)
	return sheets.NewService(cfg.Sheets.CredentialsJSON, cfg.Sheets.SpreadsheetID, sheetCache)
}

func runReport(c *cli.Context) error {
	cfg := config.Load()
	logger.SetLevel(cfg.LogLevel)

	source, err := newSource(cfg)
	if err != nil {
		return fmt.Errorf("sheets client: %w", err)
	}

	var store storage.ObjectStorage
	if cfg.Storage.Enabled {
		client, err := storage.NewMinioClient(c.Context, cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("object storage unavailable, skipping uploads")
		} else {
			store = client
		}
	}

	var runs *postgres.ReportRunRepository
	if cfg.Database.DSN != "" {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("run log database unavailable")
		} else {
			runs = postgres.NewReportRunRepository(db)
			if err := runs.EnsureSchema(c.Context); err != nil {
				logger.Log.Warn().Err(err).Msg("run log schema setup failed")
				runs = nil
			}
		}
	}

	svc := service.NewReportService(source, source, cfg, store, runs)
	return svc.Run(c.Context)
}

// reportHistory prints recent run-log entries and stored report artifacts.
func reportHistory(c *cli.Context) error {
	cfg := config.Load()
	logger.SetLevel(cfg.LogLevel)

	out := struct {
		Runs    []postgres.ReportRun `json:"runs,omitempty"`
		Objects []storage.ObjectInfo `json:"objects,omitempty"`
	}{}

	if cfg.Database.DSN != "" {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return fmt.Errorf("run log database: %w", err)
		}
		repo := postgres.NewReportRunRepository(db)
		out.Runs, err = repo.Recent(c.Context, c.Int("limit"))
		if err != nil {
			return err
		}
	}

	if cfg.Storage.Enabled {
		client, err := storage.NewMinioClient(c.Context, cfg.Storage)
		if err != nil {
			return fmt.Errorf("object storage: %w", err)
		}
		out.Objects, err = client.ListObjects(c.Context, c.String("prefix"))
		if err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func probeSheet(c *cli.Context) error {
	cfg := config.Load()
	logger.SetLevel(cfg.LogLevel)

	source, err := newSource(cfg)
	if err != nil {
		return fmt.Errorf("sheets client: %w", err)
	}

	result, err := source.Probe(c.Context)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func main() {
	app := &cli.App{
		Name:  "report",
		Usage: "Build and send the daily inventory report",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Build today's report and email it",
				Action: runReport,
			},
			{
				Name:   "probe",
				Usage:  "Verify spreadsheet credentials and access",
				Action: probeSheet,
			},
			{
				Name:   "history",
				Usage:  "List recent report runs and uploaded artifacts",
				Action: reportHistory,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "maximum run-log entries to show",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "object key prefix to list",
						Value: "reports/",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("report command failed")
	}
}
