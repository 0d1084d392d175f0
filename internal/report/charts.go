package report

import (
	"fmt"
	"os"
	"sort"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/analytics"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

// categoryTotals aggregates per-category row counts and summed quantities.
func categoryTotals(rows []domain.RawRow) (categories []string, items, pieces map[string]float64) {
	items = make(map[string]float64)
	pieces = make(map[string]float64)

	normalizer := analytics.NewNormalizer()
	for _, row := range rows {
		rec, ok := normalizer.Normalize(row)
		if !ok {
			continue
		}
		if _, seen := items[rec.Category]; !seen {
			categories = append(categories, rec.Category)
		}
		items[rec.Category]++
		pieces[rec.Category] += float64(rec.PhysicalQty)
	}

	sort.Strings(categories)
	return categories, items, pieces
}

// RenderCategoryCharts writes two bar-chart PNGs: items counted per category
// and pieces counted per category. Returns the written paths.
func RenderCategoryCharts(rows []domain.RawRow, itemsPath, piecesPath string) ([]string, error) {
	categories, items, pieces := categoryTotals(rows)
	if len(categories) == 0 {
		return nil, nil
	}

	if err := renderBarChart("Items Counted per Category", categories, items, itemsPath); err != nil {
		return nil, err
	}
	if err := renderBarChart("Pieces Counted per Category", categories, pieces, piecesPath); err != nil {
		return nil, err
	}
	return []string{itemsPath, piecesPath}, nil
}

func renderBarChart(title string, categories []string, values map[string]float64, path string) error {
	bars := make([]chart.Value, 0, len(categories))
	for _, c := range categories {
		bars = append(bars, chart.Value{Label: c, Value: values[c]})
	}

	graph := chart.BarChart{
		Title:    title,
		Height:   512,
		BarWidth: 48,
		Bars:     bars,
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
