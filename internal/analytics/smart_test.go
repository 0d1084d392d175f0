package analytics

import (
	"testing"
	"time"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

func fixedAnalyzer() *Analyzer {
	a := NewAnalyzer()
	a.Now = func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	}
	return a
}

func scanRow(code, location string, physical, system float64, extra map[string]any) domain.RawRow {
	row := domain.RawRow{
		"sku":       code,
		"name":      code,
		"location":  location,
		"finalqty":  physical,
		"sysqty":    system,
		"date":      "13/03/2026",
		"createdby": "sara.ahmed@example.com",
	}
	for k, v := range extra {
		row[k] = v
	}
	return row
}

func TestAnalyzeInventoryLocationReport(t *testing.T) {
	rows := []domain.RawRow{
		scanRow("p-1", "Main", 10, 10, nil),
		scanRow("p-2", "Main", 12, 10, nil),
		scanRow("p-3", "Main", 5, 9, nil),
		scanRow("p-4", "East", 7, 7, nil),
	}

	res := fixedAnalyzer().AnalyzeInventory(rows)

	main := res.LocationReport["Main"]
	if main == nil {
		t.Fatal("missing Main location")
	}
	if main.TotalItems != 3 || main.Matched != 1 || main.Gain != 1 || main.Loss != 1 {
		t.Errorf("Main = %+v", main)
	}
	if main.Accuracy != 33.33 {
		t.Errorf("Main accuracy = %v, want 33.33", main.Accuracy)
	}
	// risk = (3*loss + gain) / total
	if main.RiskScore != 1.33 {
		t.Errorf("Main risk = %v, want 1.33", main.RiskScore)
	}

	east := res.LocationReport["East"]
	if east == nil || east.Accuracy != 100 || east.RiskScore != 0 {
		t.Errorf("East = %+v", east)
	}
}

func TestAnalyzeInventoryKPIs(t *testing.T) {
	rows := []domain.RawRow{
		scanRow("p-1", "Main", 10, 10, nil),
		scanRow("p-1", "Main", 10, 10, nil),
		scanRow("p-2", "Main", 12, 10, nil),
		scanRow("p-3", "Main", 5, 9, nil),
	}

	res := fixedAnalyzer().AnalyzeInventory(rows)
	k := res.KPIs

	if k.TotalRows != 4 || k.TotalDistinctProducts != 3 {
		t.Errorf("rows/products = %d/%d", k.TotalRows, k.TotalDistinctProducts)
	}
	if k.TotalMatched != 2 || k.TotalGain != 1 || k.TotalLoss != 1 {
		t.Errorf("counts = %d/%d/%d", k.TotalMatched, k.TotalGain, k.TotalLoss)
	}
	if k.MatchedPercentage != 50 || k.OverallAccuracy != 50 {
		t.Errorf("percent = %d/%d", k.MatchedPercentage, k.OverallAccuracy)
	}
	if k.PhysicalQtyTotal != 37 || k.SystemQtyTotal != 39 {
		t.Errorf("qty totals = %v/%v", k.PhysicalQtyTotal, k.SystemQtyTotal)
	}

	dk := k.DailyTrends["2026-03-13"]
	if dk.Total != 4 || dk.Matched != 2 {
		t.Errorf("daily trend = %+v", dk)
	}
}

func TestAnalyzeInventoryStaff(t *testing.T) {
	rows := []domain.RawRow{
		scanRow("p-1", "Main", 10, 10, nil),
		scanRow("p-2", "Main", 12, 10, map[string]any{"employeeaccuracy": "missing"}),
		{"sku": "p-3", "finalqty": float64(5), "sysqty": float64(5), "date": "13/03/2026"},
	}

	res := fixedAnalyzer().AnalyzeInventory(rows)

	sara := res.StaffReport["Sara Ahmed"]
	if sara == nil {
		t.Fatal("email should normalize to Sara Ahmed")
	}
	if sara.Total != 2 || sara.Match != 1 || sara.Gain != 1 {
		t.Errorf("sara = %+v", sara)
	}
	if sara.HumanError != 1 {
		t.Errorf("human error = %d, want 1 (non-match evaluation)", sara.HumanError)
	}
	if sara.Accuracy != 50 {
		t.Errorf("accuracy = %v, want 50", sara.Accuracy)
	}

	if res.StaffReport["System"] == nil {
		t.Error("rows without a creator should fall to System")
	}
}

func TestAnalyzeInventoryDiscrepanciesSorted(t *testing.T) {
	rows := []domain.RawRow{
		scanRow("small", "Main", 11, 10, nil),
		scanRow("big", "Main", 2, 30, nil),
		scanRow("mid", "Main", 20, 10, nil),
		scanRow("even", "Main", 10, 10, nil),
	}

	res := fixedAnalyzer().AnalyzeInventory(rows)

	if len(res.Discrepancies) != 3 {
		t.Fatalf("discrepancies = %d, want 3 (matches excluded)", len(res.Discrepancies))
	}
	want := []string{"big", "mid", "small"}
	for i, d := range res.Discrepancies {
		if d.ProductID != want[i] {
			t.Errorf("discrepancy %d = %s, want %s", i, d.ProductID, want[i])
		}
	}
}

func TestAnalyzeExpiryBuckets(t *testing.T) {
	rows := []domain.RawRow{
		scanRow("gone", "Main", 1, 1, map[string]any{"expirationdate": "10/03/2026"}),
		scanRow("soon", "Main", 1, 1, map[string]any{"expirationdate": "18/03/2026"}),
		scanRow("later", "Main", 1, 1, map[string]any{"expirationdate": "10/04/2026"}),
		scanRow("far", "Main", 1, 1, map[string]any{"expirationdate": "10/08/2026"}),
		scanRow("nodate", "Main", 1, 1, nil),
		// duplicate product key is skipped
		scanRow("gone", "Main", 1, 1, map[string]any{"expirationdate": "10/03/2026"}),
	}

	exp := fixedAnalyzer().AnalyzeExpiry(rows)

	if len(exp.Expired) != 1 || exp.Expired[0].ProductID != "gone" {
		t.Errorf("expired = %+v", exp.Expired)
	}
	if len(exp.Expiring7Days) != 1 || exp.Expiring7Days[0].ProductID != "soon" {
		t.Errorf("expiring 7 = %+v", exp.Expiring7Days)
	}
	if len(exp.Expiring30) != 1 || exp.Expiring30[0].ProductID != "later" {
		t.Errorf("expiring 30 = %+v", exp.Expiring30)
	}
}

func TestAnalyzeInventoryInsightsAndAlerts(t *testing.T) {
	rows := []domain.RawRow{
		scanRow("p-1", "BadShelf", 5, 9, map[string]any{"expirationdate": "01/03/2026"}),
		scanRow("p-1", "BadShelf", 6, 9, nil),
		scanRow("p-2", "GoodShelf", 7, 7, nil),
	}

	res := fixedAnalyzer().AnalyzeInventory(rows)

	foundAccuracy := false
	foundProduct := false
	for _, in := range res.Insights {
		switch in.Type {
		case "location_accuracy":
			foundAccuracy = true
		case "problematic_products":
			foundProduct = true
		}
	}
	if !foundAccuracy {
		t.Error("expected low-accuracy location insight")
	}
	if !foundProduct {
		t.Error("expected problematic-product insight")
	}

	foundExpired := false
	for _, al := range res.Alerts {
		if al.Type == "expired_items" {
			foundExpired = true
		}
	}
	if !foundExpired {
		t.Error("expected expired-items alert")
	}
}

func TestNormalizeStaffName(t *testing.T) {
	tests := []struct {
		createdBy, explicit, want string
	}{
		{"sara.ahmed@example.com", "", "Sara Ahmed"},
		{"omar_hassan@example.com", "", "Omar Hassan"},
		{"plainname@example.com", "", "Plainname"},
		{"", "mona  aly", "Mona Aly"},
		{"", "", "System"},
		{"@example.com", "", "System"},
	}
	for _, tt := range tests {
		if got := normalizeStaffName(tt.createdBy, tt.explicit); got != tt.want {
			t.Errorf("normalizeStaffName(%q, %q) = %q, want %q", tt.createdBy, tt.explicit, got, tt.want)
		}
	}
}

func TestMostCommon(t *testing.T) {
	if got := mostCommon([]string{"a", "b", "b", "c"}); got != "b" {
		t.Errorf("mostCommon = %q, want b", got)
	}
	if got := mostCommon(nil); got != "" {
		t.Errorf("mostCommon(nil) = %q, want empty", got)
	}
}
