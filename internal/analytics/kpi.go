package analytics

import (
	"math"
	"sort"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

// Reconcile rolls a record collection up into a KPISet. Every record lands in
// exactly one bucket; records without an explicit gain/loss signal count as
// match. For a fixed input the output is identical across calls: counts and
// sums are order-independent and the "biggest" pointers break ties by
// keeping the first-seen record.
func Reconcile(views []domain.ProductView) domain.KPISet {
	var kpis domain.KPISet
	if len(views) == 0 {
		return kpis
	}

	seen := make(map[string]struct{})
	for _, v := range views {
		kpis.TotalRecords++
		kpis.TotalQuantity += v.PhysicalQty
		seen[v.ProductCode] = struct{}{}

		switch v.Status {
		case domain.StatusGain:
			kpis.GainCount++
			kpis.SumGain += v.PhysicalQty
		case domain.StatusLoss:
			kpis.LossCount++
			kpis.SumLoss += v.PhysicalQty
		default:
			kpis.MatchCount++
			kpis.SumMatch += v.PhysicalQty
		}

		// Only a strictly larger (resp. smaller) diff than the running
		// extreme replaces it, so ties keep the first-seen product.
		if v.LastDiff > kpis.BiggestIncrease.Value {
			kpis.BiggestIncrease = domain.DiffPointer{Value: v.LastDiff, Product: v.ProductName}
		}
		if v.LastDiff < kpis.BiggestDecrease.Value {
			kpis.BiggestDecrease = domain.DiffPointer{Value: v.LastDiff, Product: v.ProductName}
		}
	}

	kpis.TotalProducts = len(seen)
	kpis.PercentMatch = roundPercent(kpis.MatchCount, kpis.TotalRecords)
	kpis.PercentGain = roundPercent(kpis.GainCount, kpis.TotalRecords)
	kpis.PercentLoss = roundPercent(kpis.LossCount, kpis.TotalRecords)
	kpis.Accuracy = kpis.PercentMatch

	return kpis
}

// roundPercent computes round(part/total*100), guarding total == 0.
func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// UniqueLatest deduplicates views down to the newest record per product
// code. Output order follows each product's first appearance in the input,
// and a tie on date keeps the earlier record, so the result is stable.
func UniqueLatest(views []domain.ProductView) []domain.ProductView {
	index := make(map[string]int)
	unique := make([]domain.ProductView, 0)

	for _, v := range views {
		if at, ok := index[v.ProductCode]; ok {
			if v.Date.After(unique[at].Date) {
				unique[at] = v
			}
			continue
		}
		index[v.ProductCode] = len(unique)
		unique = append(unique, v)
	}

	return unique
}

// SortByDelta orders unique products for the "top gain" / "top loss" views
// by the physical-vs-system delta. The sort is stable so equal deltas keep
// their dedupe order.
func SortByDelta(views []domain.ProductView, topLoss bool) {
	sort.SliceStable(views, func(i, j int) bool {
		di := views[i].PhysicalQty - views[i].SystemQty
		dj := views[j].PhysicalQty - views[j].SystemQty
		if topLoss {
			return di < dj
		}
		return di > dj
	})
}
