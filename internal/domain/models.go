// internal/domain/models.go
package domain

import "time"

// RawRow is a single spreadsheet row keyed by normalized header text
// (lowercased, whitespace stripped). Values come back from the Sheets API
// unformatted, so a cell may be a string, a float64 or nil.
type RawRow map[string]any

// SheetNameKey carries the originating sheet title inside a RawRow.
const SheetNameKey = "_sheetname"

// CanonicalRecord is a normalized audit row with a fixed field set,
// independent of original spreadsheet header spelling.
type CanonicalRecord struct {
	ProductCode string    `json:"product_code"`
	AltID       string    `json:"alt_id"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	Warehouse   string    `json:"warehouse"`
	PhysicalQty int       `json:"physical_qty"`
	SystemQty   int       `json:"system_qty"`
	Status      Status    `json:"status"`
	Date        time.Time `json:"date"`
}

// ProductKey groups records belonging to the same product.
func (r CanonicalRecord) ProductKey() string {
	return r.ProductCode
}

// HistoryEntry is one aggregated-by-date point for a product. Multiple scans
// on the same day collapse into one entry with summed quantities; Diff is the
// quantity change against the immediately preceding entry (0 for the first).
type HistoryEntry struct {
	Date      time.Time `json:"date"`
	Quantity  int       `json:"quantity"`
	SystemQty int       `json:"system_qty"`
	Status    Status    `json:"status"`
	Diff      int       `json:"diff"`
}

// TrendWindow is the number of trailing history entries exposed as LatestTrend.
const TrendWindow = 7

// ProductView is a CanonicalRecord enriched with its product's full history
// and the diff of the history entry matching this record's own audit event.
type ProductView struct {
	CanonicalRecord
	LastDiff    int            `json:"last_diff"`
	History     []HistoryEntry `json:"history"`
	LatestTrend []HistoryEntry `json:"latest_trend"`
}

// DiffPointer names the record holding an extreme single-period diff.
type DiffPointer struct {
	Value   int    `json:"val"`
	Product string `json:"product"`
}

// KPISet aggregates counts, sums and percentages over a record collection.
type KPISet struct {
	TotalProducts   int         `json:"total_products"`
	TotalRecords    int         `json:"total_records"`
	TotalQuantity   int         `json:"total_quantity"`
	MatchCount      int         `json:"match_count"`
	GainCount       int         `json:"gain_count"`
	LossCount       int         `json:"loss_count"`
	SumMatch        int         `json:"sum_match"`
	SumGain         int         `json:"sum_gain"`
	SumLoss         int         `json:"sum_loss"`
	PercentMatch    int         `json:"percent_match"`
	PercentGain     int         `json:"percent_gain"`
	PercentLoss     int         `json:"percent_loss"`
	Accuracy        int         `json:"accuracy"`
	BiggestIncrease DiffPointer `json:"biggest_increase"`
	BiggestDecrease DiffPointer `json:"biggest_decrease"`
}

// FilterCriteria holds the optional dashboard filters; zero values mean
// "filter not applied".
type FilterCriteria struct {
	Search                 string
	Category               string
	Warehouse              string
	Type                   string
	StartDate              string
	EndDate                string
	HighMovement           *int
	ContinuousDecreaseDays *int
}

// BlankCategorySentinel matches records with an empty or missing category.
const BlankCategorySentinel = "(Blank)"

// DashboardData is the payload served to the dashboard frontend.
type DashboardData struct {
	Products       []ProductView  `json:"products"`
	UniqueProducts []ProductView  `json:"uniqueProducts"`
	KPIs           KPISet         `json:"kpis"`
	ExpiryAnalysis ExpiryAnalysis `json:"expiryAnalysis"`
	Meta           Meta           `json:"meta"`
}

// Meta carries response provenance.
type Meta struct {
	Timestamp string `json:"timestamp"`
	SheetName string `json:"sheetName,omitempty"`
	RowCount  int    `json:"count,omitempty"`
}
