package analytics

import (
	"strings"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

// ApplyFilters reduces a view set to the records matching every active
// criterion. Filters compose as AND, each pass preserves input order, and an
// empty criteria set returns the input unchanged.
func ApplyFilters(views []domain.ProductView, c domain.FilterCriteria) []domain.ProductView {
	out := views

	if s := strings.ToLower(strings.TrimSpace(c.Search)); s != "" {
		out = keep(out, func(v domain.ProductView) bool {
			return strings.Contains(strings.ToLower(v.ProductName), s) ||
				strings.Contains(strings.ToLower(v.ProductCode), s) ||
				strings.Contains(strings.ToLower(v.AltID), s)
		})
	}

	if c.Category != "" {
		if c.Category == domain.BlankCategorySentinel {
			out = keep(out, func(v domain.ProductView) bool {
				return strings.TrimSpace(v.Category) == "" || v.Category == domain.BlankCategorySentinel
			})
		} else {
			out = keep(out, func(v domain.ProductView) bool {
				return strings.EqualFold(v.Category, c.Category)
			})
		}
	}

	if c.Warehouse != "" {
		out = keep(out, func(v domain.ProductView) bool {
			return strings.EqualFold(v.Warehouse, c.Warehouse)
		})
	}

	if want, ok := resolveTypeFilter(c.Type); ok {
		// Product-aware: the whole product group is kept or dropped on
		// the status of its latest record inside the current result set.
		latest := make(map[string]domain.ProductView)
		for _, v := range out {
			cur, seen := latest[v.ProductCode]
			if !seen || v.Date.After(cur.Date) {
				latest[v.ProductCode] = v
			}
		}
		out = keep(out, func(v domain.ProductView) bool {
			s := latest[v.ProductCode].Status
			if want == domain.StatusMatch {
				return s != domain.StatusGain && s != domain.StatusLoss
			}
			return s == want
		})
	}

	if c.StartDate != "" {
		out = keep(out, func(v domain.ProductView) bool {
			return DateKey(v.Date) >= c.StartDate
		})
	}
	if c.EndDate != "" {
		out = keep(out, func(v domain.ProductView) bool {
			return DateKey(v.Date) <= c.EndDate
		})
	}

	if c.HighMovement != nil {
		threshold := *c.HighMovement
		out = keep(out, func(v domain.ProductView) bool {
			return abs(v.LastDiff) > threshold
		})
	}

	if c.ContinuousDecreaseDays != nil {
		days := *c.ContinuousDecreaseDays
		out = keep(out, func(v domain.ProductView) bool {
			return continuousDecrease(v.History, days)
		})
	}

	return out
}

// resolveTypeFilter maps the accepted type-filter spellings onto a status.
// "stable" and its synonyms also cover records without a gain/loss signal.
// Unrecognized values disable the filter rather than matching nothing.
func resolveTypeFilter(raw string) (domain.Status, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "increased", "gain", "top_gain":
		return domain.StatusGain, true
	case "decreased", "loss", "top_loss":
		return domain.StatusLoss, true
	case "stable", "match", "top_match":
		return domain.StatusMatch, true
	}
	return "", false
}

// continuousDecrease reports whether the last n history entries all have a
// negative diff. Products with fewer than n entries never qualify.
func continuousDecrease(history []domain.HistoryEntry, n int) bool {
	if n <= 0 || len(history) < n {
		return false
	}
	for _, e := range history[len(history)-n:] {
		if e.Diff >= 0 {
			return false
		}
	}
	return true
}

func keep(views []domain.ProductView, pred func(domain.ProductView) bool) []domain.ProductView {
	out := views[:0:0]
	for _, v := range views {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
