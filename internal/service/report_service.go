package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/analytics"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/config"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/report"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/repository/postgres"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/sheets"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/storage"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/pkg/logger"
)

// CacheClearer lets the report job force a fresh fetch before building the
// day's snapshot.
type CacheClearer interface {
	ClearCache()
}

// ReportService builds and delivers the daily inventory report: today's
// Items rows as an xlsx plus per-category charts, optionally uploaded to
// object storage, then emailed.
type ReportService struct {
	source     sheets.Source
	clearer    CacheClearer
	mailer     *report.Mailer
	store      storage.ObjectStorage
	runs       *postgres.ReportRunRepository
	itemsSheet string
	outputDir  string
	timezone   *time.Location
	dashboard  string
}

// NewReportService wires the report pipeline. store and runs may be nil;
// the corresponding steps are skipped.
func NewReportService(source sheets.Source, clearer CacheClearer, cfg *config.Config, store storage.ObjectStorage, runs *postgres.ReportRunRepository) *ReportService {
	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		logger.Log.Warn().Str("timezone", cfg.Report.Timezone).Err(err).Msg("unknown report timezone, using UTC")
		loc = time.UTC
	}
	return &ReportService{
		source:     source,
		clearer:    clearer,
		mailer:     report.NewMailer(cfg.Mail),
		store:      store,
		runs:       runs,
		itemsSheet: cfg.Sheets.ItemsSheet,
		outputDir:  cfg.Report.OutputDir,
		timezone:   loc,
		dashboard:  cfg.Mail.DashboardURL,
	}
}

// todayRows keeps rows whose parsed date is today in the report timezone.
func (s *ReportService) todayRows(rows []domain.RawRow, now time.Time) []domain.RawRow {
	today := now.In(s.timezone)
	var out []domain.RawRow
	for _, row := range rows {
		ix := analytics.NewRowIndex(row)
		dateVal, ok := ix.Resolve("date", "countdate", "inventorydate", "datenow", "timestamp")
		if !ok {
			continue
		}
		date, ok := analytics.ParseFlexibleDate(dateVal)
		if !ok {
			continue
		}
		// compare calendar fields, not instants: a cell saying "Jan 1"
		// means Jan 1 regardless of which zone parsed it
		if analytics.SameDay(date, today) {
			out = append(out, row)
		}
	}
	return out
}

// Run executes one report cycle. Zero matching rows is a quiet no-op; any
// later failure is returned (and logged by the caller) but must never crash
// the host process.
func (s *ReportService) Run(ctx context.Context) error {
	now := time.Now()
	dateKey := analytics.DateKey(now.In(s.timezone))

	var runID int64
	if s.runs != nil {
		id, err := s.runs.Create(ctx, dateKey)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("report run log unavailable")
		} else {
			runID = id
		}
	}

	rows, err := s.collect(ctx, now)
	if err != nil {
		s.failRun(ctx, runID, err)
		return err
	}
	if len(rows) == 0 {
		logger.Log.Info().Str("date", dateKey).Msg("no rows counted today, skipping report")
		if s.runs != nil && runID != 0 {
			if err := s.runs.Complete(ctx, runID, 0, 0); err != nil {
				logger.Log.Warn().Err(err).Msg("report run log update failed")
			}
		}
		return nil
	}

	artifacts, err := s.buildArtifacts(ctx, rows, dateKey)
	if err != nil {
		s.failRun(ctx, runID, err)
		return err
	}

	if s.store != nil {
		for _, path := range artifacts {
			key := fmt.Sprintf("reports/%s/%s", dateKey, filepath.Base(path))
			if err := s.store.UploadFile(ctx, key, path); err != nil {
				logger.Log.Warn().Err(err).Str("key", key).Msg("artifact upload failed")
			}
		}
	}

	subject := fmt.Sprintf("Daily Inventory Report — %s", dateKey)
	body := fmt.Sprintf("<p>%d items were counted on %s.</p>", len(rows), dateKey)
	if s.dashboard != "" {
		body += fmt.Sprintf(`<p><a href="%s">Open the dashboard</a></p>`, s.dashboard)
	}
	if err := s.mailer.Send(subject, body, artifacts); err != nil {
		s.failRun(ctx, runID, err)
		return err
	}

	logger.Log.Info().
		Str("date", dateKey).
		Int("rows", len(rows)).
		Int("artifacts", len(artifacts)).
		Msg("daily report sent")

	if s.runs != nil && runID != 0 {
		if err := s.runs.Complete(ctx, runID, len(rows), len(artifacts)); err != nil {
			logger.Log.Warn().Err(err).Msg("report run log update failed")
		}
	}
	return nil
}

// collect clears the sheet cache and fetches today's Items rows fresh.
func (s *ReportService) collect(ctx context.Context, now time.Time) ([]domain.RawRow, error) {
	if s.clearer != nil {
		s.clearer.ClearCache()
	}
	rows, err := s.source.FetchSheet(ctx, s.itemsSheet)
	if err != nil {
		return nil, err
	}
	return s.todayRows(rows, now), nil
}

// buildArtifacts renders the workbook and the two charts concurrently and
// returns the paths of everything written.
func (s *ReportService) buildArtifacts(ctx context.Context, rows []domain.RawRow, dateKey string) ([]string, error) {
	xlsxPath := filepath.Join(s.outputDir, fmt.Sprintf("inventory-%s.xlsx", dateKey))
	itemsPath := filepath.Join(s.outputDir, fmt.Sprintf("items-by-category-%s.png", dateKey))
	piecesPath := filepath.Join(s.outputDir, fmt.Sprintf("pieces-by-category-%s.png", dateKey))

	var chartPaths []string
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return report.BuildWorkbook(rows, "Daily Inventory Report "+dateKey, xlsxPath)
	})
	g.Go(func() error {
		paths, err := report.RenderCategoryCharts(rows, itemsPath, piecesPath)
		chartPaths = paths
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return append([]string{xlsxPath}, chartPaths...), nil
}

func (s *ReportService) failRun(ctx context.Context, runID int64, runErr error) {
	if s.runs == nil || runID == 0 {
		return
	}
	if err := s.runs.Fail(ctx, runID, runErr); err != nil {
		logger.Log.Warn().Err(err).Msg("report run log update failed")
	}
}
