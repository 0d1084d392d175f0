package analytics

import (
	"sort"
	"time"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

// BuildHistory groups records by product key and calendar date, summing
// same-day duplicates, and returns each product's history sorted ascending
// by date. Diff is always computed against the immediately prior
// chronological entry, and the per-date status is re-derived from the summed
// quantities, which may differ from any individual record's own status.
func BuildHistory(records []domain.CanonicalRecord) map[string][]domain.HistoryEntry {
	type bucket struct {
		date      time.Time
		quantity  int
		systemQty int
	}

	byProduct := make(map[string]map[string]*bucket)
	for _, rec := range records {
		key := rec.ProductKey()
		days, ok := byProduct[key]
		if !ok {
			days = make(map[string]*bucket)
			byProduct[key] = days
		}
		dk := DateKey(rec.Date)
		b, ok := days[dk]
		if !ok {
			b = &bucket{date: rec.Date}
			days[dk] = b
		}
		b.quantity += rec.PhysicalQty
		b.systemQty += rec.SystemQty
	}

	history := make(map[string][]domain.HistoryEntry, len(byProduct))
	for key, days := range byProduct {
		entries := make([]domain.HistoryEntry, 0, len(days))
		for _, b := range days {
			entries = append(entries, domain.HistoryEntry{
				Date:      b.date,
				Quantity:  b.quantity,
				SystemQty: b.systemQty,
				Status:    domain.CompareQuantities(b.quantity, b.systemQty),
			})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Date.Before(entries[j].Date)
		})
		for i := range entries {
			if i > 0 {
				entries[i].Diff = entries[i].Quantity - entries[i-1].Quantity
			}
		}
		history[key] = entries
	}

	return history
}

// BuildProductViews enriches each record with its product's full history,
// the trailing trend window and the diff of the history entry matching the
// record's own audit event (same day and same quantity; a day bucket that
// summed several scans no longer represents any single one of them, so the
// record keeps a zero diff in that case).
func BuildProductViews(records []domain.CanonicalRecord, history map[string][]domain.HistoryEntry) []domain.ProductView {
	views := make([]domain.ProductView, 0, len(records))
	for _, rec := range records {
		full := history[rec.ProductKey()]

		lastDiff := 0
		for _, entry := range full {
			if SameDay(entry.Date, rec.Date) {
				if entry.Quantity == rec.PhysicalQty {
					lastDiff = entry.Diff
				}
				break
			}
		}

		trend := full
		if len(trend) > domain.TrendWindow {
			trend = trend[len(trend)-domain.TrendWindow:]
		}

		views = append(views, domain.ProductView{
			CanonicalRecord: rec,
			LastDiff:        lastDiff,
			History:         full,
			LatestTrend:     trend,
		})
	}
	return views
}
