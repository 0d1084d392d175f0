package analytics

import (
	"testing"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

func view(code string, status domain.Status, physical, system, lastDiff int) domain.ProductView {
	return domain.ProductView{
		CanonicalRecord: domain.CanonicalRecord{
			ProductCode: code,
			ProductName: code,
			PhysicalQty: physical,
			SystemQty:   system,
			Status:      status,
		},
		LastDiff: lastDiff,
	}
}

func TestReconcileEmpty(t *testing.T) {
	kpis := Reconcile(nil)
	if kpis != (domain.KPISet{}) {
		t.Errorf("empty input should yield zero KPIs, got %+v", kpis)
	}
}

func TestReconcileCounts(t *testing.T) {
	views := []domain.ProductView{
		view("a", domain.StatusMatch, 10, 10, 0),
		view("a", domain.StatusGain, 12, 10, 2),
		view("b", domain.StatusLoss, 5, 8, -3),
		view("c", domain.StatusUnknown, 7, 7, 0),
	}

	kpis := Reconcile(views)

	if kpis.TotalRecords != 4 {
		t.Errorf("total records = %d, want 4", kpis.TotalRecords)
	}
	if kpis.TotalProducts != 3 {
		t.Errorf("total products = %d, want 3", kpis.TotalProducts)
	}
	// unknown counts toward match
	if kpis.MatchCount != 2 || kpis.GainCount != 1 || kpis.LossCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", kpis.MatchCount, kpis.GainCount, kpis.LossCount)
	}
	if kpis.MatchCount+kpis.GainCount+kpis.LossCount != kpis.TotalRecords {
		t.Error("status counts must partition the records")
	}
	if kpis.TotalQuantity != 34 {
		t.Errorf("total quantity = %d, want 34", kpis.TotalQuantity)
	}
	if kpis.SumMatch != 17 || kpis.SumGain != 12 || kpis.SumLoss != 5 {
		t.Errorf("sums = %d/%d/%d", kpis.SumMatch, kpis.SumGain, kpis.SumLoss)
	}
	if kpis.PercentMatch != 50 || kpis.PercentGain != 25 || kpis.PercentLoss != 25 {
		t.Errorf("percents = %d/%d/%d", kpis.PercentMatch, kpis.PercentGain, kpis.PercentLoss)
	}
	if kpis.Accuracy != kpis.PercentMatch {
		t.Error("accuracy should equal match percentage")
	}
	if kpis.BiggestIncrease.Product != "a" || kpis.BiggestIncrease.Value != 2 {
		t.Errorf("biggest increase = %+v", kpis.BiggestIncrease)
	}
	if kpis.BiggestDecrease.Product != "b" || kpis.BiggestDecrease.Value != -3 {
		t.Errorf("biggest decrease = %+v", kpis.BiggestDecrease)
	}
}

func TestReconcileBiggestDiffTieKeepsFirst(t *testing.T) {
	views := []domain.ProductView{
		view("first", domain.StatusGain, 10, 5, 5),
		view("second", domain.StatusGain, 10, 5, 5),
	}
	kpis := Reconcile(views)
	if kpis.BiggestIncrease.Product != "first" {
		t.Errorf("tie should keep first-seen, got %q", kpis.BiggestIncrease.Product)
	}
}

func TestReconcileDeterministic(t *testing.T) {
	views := []domain.ProductView{
		view("a", domain.StatusMatch, 10, 10, 0),
		view("b", domain.StatusLoss, 3, 9, -6),
		view("c", domain.StatusGain, 9, 3, 6),
	}
	first := Reconcile(views)
	for i := 0; i < 5; i++ {
		if got := Reconcile(views); got != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestUniqueLatest(t *testing.T) {
	older := view("a", domain.StatusMatch, 10, 10, 0)
	older.Date = day(1)
	newer := view("a", domain.StatusGain, 12, 10, 2)
	newer.Date = day(5)
	other := view("b", domain.StatusLoss, 5, 8, -3)
	other.Date = day(3)

	unique := UniqueLatest([]domain.ProductView{older, other, newer})
	if len(unique) != 2 {
		t.Fatalf("unique = %d, want 2", len(unique))
	}
	// first-seen order preserved, newest record per code kept
	if unique[0].ProductCode != "a" || !unique[0].Date.Equal(day(5)) {
		t.Errorf("unique[0] = %s@%v, want a@day5", unique[0].ProductCode, unique[0].Date)
	}
	if unique[1].ProductCode != "b" {
		t.Errorf("unique[1] = %s, want b", unique[1].ProductCode)
	}
}

func TestSortByDelta(t *testing.T) {
	views := []domain.ProductView{
		view("flat", domain.StatusMatch, 10, 10, 0),
		view("gain", domain.StatusGain, 20, 10, 10),
		view("loss", domain.StatusLoss, 5, 15, -10),
	}

	SortByDelta(views, false)
	if views[0].ProductCode != "gain" {
		t.Errorf("top gain first = %s", views[0].ProductCode)
	}

	SortByDelta(views, true)
	if views[0].ProductCode != "loss" {
		t.Errorf("top loss first = %s", views[0].ProductCode)
	}
}
