package service

import (
	"context"
	"strings"
	"time"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/analytics"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/cache"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/sheets"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/pkg/logger"
)

// Sort modes accepted by the dashboard endpoint.
const (
	SortTopGain = "top_gain"
	SortTopLoss = "top_loss"
)

// DashboardService runs the full reporting pipeline: fetch raw rows,
// normalize, aggregate history, reconcile, filter. Every request recomputes
// from the raw rows; only the raw sheet data and the final response are
// cached, never intermediate state.
type DashboardService struct {
	source     sheets.Source
	cache      cache.DashboardCache
	normalizer *analytics.Normalizer
	analyzer   *analytics.Analyzer
	scansSheet string
}

// NewDashboardService wires the pipeline. A nil cache falls back to no-op.
func NewDashboardService(source sheets.Source, c cache.DashboardCache, scansSheet string) *DashboardService {
	if c == nil {
		c = cache.NewNoopDashboardCache()
	}
	return &DashboardService{
		source:     source,
		cache:      c,
		normalizer: analytics.NewNormalizer(),
		analyzer:   analytics.NewAnalyzer(),
		scansSheet: scansSheet,
	}
}

// scanRows returns rows from the audit-scan sheets: any sheet whose title
// matches the configured scans sheet or contains "scan". When no sheet
// qualifies, every row is used so a renamed sheet degrades instead of
// emptying the dashboard.
func (s *DashboardService) scanRows(ctx context.Context) ([]domain.RawRow, error) {
	rows, err := s.source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	var scans []domain.RawRow
	for _, row := range rows {
		title, _ := row[domain.SheetNameKey].(string)
		if strings.EqualFold(title, s.scansSheet) || strings.Contains(strings.ToLower(title), "scan") {
			scans = append(scans, row)
		}
	}
	if len(scans) == 0 {
		return rows, nil
	}
	return scans, nil
}

// GetDashboard builds the dashboard payload for the given filter set. The
// sort mode orders uniqueProducts only; the filtered record list keeps
// source order.
func (s *DashboardService) GetDashboard(ctx context.Context, criteria domain.FilterCriteria, sort string) (*domain.DashboardData, error) {
	if sort == "" {
		if data, ok, err := s.cache.Get(ctx, criteria); err == nil && ok {
			return data, nil
		} else if err != nil {
			logger.Log.Warn().Err(err).Msg("dashboard cache read failed")
		}
	}

	rows, err := s.scanRows(ctx)
	if err != nil {
		return nil, err
	}

	records, stats := s.normalizer.NormalizeAll(rows)
	history := analytics.BuildHistory(records)
	views := analytics.BuildProductViews(records, history)
	filtered := analytics.ApplyFilters(views, criteria)

	unique := analytics.UniqueLatest(filtered)
	switch sort {
	case SortTopGain:
		analytics.SortByDelta(unique, false)
	case SortTopLoss:
		analytics.SortByDelta(unique, true)
	}

	data := &domain.DashboardData{
		Products:       filtered,
		UniqueProducts: unique,
		KPIs:           analytics.Reconcile(filtered),
		ExpiryAnalysis: s.analyzer.AnalyzeExpiry(rows),
		Meta: domain.Meta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			SheetName: s.scansSheet,
			RowCount:  len(filtered),
		},
	}

	logger.Log.Info().
		Int("input_rows", stats.Input).
		Int("valid", stats.Valid).
		Int("rejected_code", stats.RejectedCode).
		Int("rejected_date", stats.RejectedDate).
		Int("filtered", len(filtered)).
		Msg("dashboard built")

	if sort == "" {
		if err := s.cache.Set(ctx, criteria, data); err != nil {
			logger.Log.Warn().Err(err).Msg("dashboard cache write failed")
		}
	}

	return data, nil
}

// GetAnalysis runs the smart analysis over the scan rows.
func (s *DashboardService) GetAnalysis(ctx context.Context) (*domain.InventoryAnalysis, error) {
	rows, err := s.scanRows(ctx)
	if err != nil {
		return nil, err
	}
	return s.analyzer.AnalyzeInventory(rows), nil
}

// ProductivityData bundles the hourly slots with the overview KPIs.
type ProductivityData struct {
	Hourly   []domain.HourlyProductivity `json:"hourlyProductivity"`
	Overview domain.ProductivityOverview `json:"overview"`
}

// GetProductivity computes scanning-throughput analytics over the scan rows.
func (s *DashboardService) GetProductivity(ctx context.Context) (*ProductivityData, error) {
	rows, err := s.scanRows(ctx)
	if err != nil {
		return nil, err
	}
	hourly := s.analyzer.AnalyzeProductivity(rows)
	return &ProductivityData{
		Hourly:   hourly,
		Overview: analytics.ProductivityOverviewFromSlots(hourly),
	}, nil
}

// SheetTitles lists the spreadsheet's sheets.
func (s *DashboardService) SheetTitles(ctx context.Context) ([]string, error) {
	return s.source.SheetTitles(ctx)
}

// Probe checks spreadsheet connectivity.
func (s *DashboardService) Probe(ctx context.Context) (*sheets.ProbeResult, error) {
	return s.source.Probe(ctx)
}
