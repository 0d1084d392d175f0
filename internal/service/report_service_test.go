package service

import (
	"context"
	"testing"
	"time"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/config"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

func testReportService(t *testing.T, source *fakeSource) *ReportService {
	t.Helper()
	cfg := &config.Config{
		Sheets: config.SheetsConfig{ItemsSheet: "Items"},
		Report: config.ReportConfig{Timezone: "UTC", OutputDir: t.TempDir()},
		Mail:   config.MailConfig{To: []string{"ops@example.com"}},
	}
	return NewReportService(source, nil, cfg, nil, nil)
}

func itemRow(code string, date any) domain.RawRow {
	return domain.RawRow{
		"sku":               code,
		"finalqty":          float64(3),
		"date":              date,
		domain.SheetNameKey: "Items",
	}
}

func TestTodayRows(t *testing.T) {
	svc := testReportService(t, &fakeSource{})
	now := time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC)

	rows := []domain.RawRow{
		itemRow("today-serial", float64(46023)),   // 2026-01-01
		itemRow("today-string", "01/01/2026"),
		itemRow("yesterday", float64(46022)),
		itemRow("tomorrow", "02/01/2026"),
		itemRow("no-date", nil),
		itemRow("bad-date", "garbage"),
	}

	got := svc.todayRows(rows, now)
	if len(got) != 2 {
		t.Fatalf("today rows = %d, want 2", len(got))
	}
	for _, row := range got {
		code := row["sku"].(string)
		if code != "today-serial" && code != "today-string" {
			t.Errorf("unexpected row %s", code)
		}
	}
}

func TestRunNoRowsIsNoop(t *testing.T) {
	// every row is dated far in the past, so the job must return nil
	// without attempting to mail anything
	source := &fakeSource{rows: []domain.RawRow{
		itemRow("old", float64(44562)),
	}}
	svc := testReportService(t, source)

	if err := svc.Run(context.Background()); err != nil {
		t.Errorf("zero-row run should be a no-op, got %v", err)
	}
}

func TestRunSourceErrorPropagates(t *testing.T) {
	source := &fakeSource{err: context.DeadlineExceeded}
	svc := testReportService(t, source)

	if err := svc.Run(context.Background()); err == nil {
		t.Error("source failure should surface as an error")
	}
}
