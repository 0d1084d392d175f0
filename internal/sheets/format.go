package sheets

import (
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/analytics"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

// FormatRows converts a raw cell grid into RawRows. The first row is the
// header; its cells are normalized (lowercased, whitespace stripped) and
// become the keys of every following row. Short rows get nil for the missing
// trailing cells, and each row is tagged with its sheet title.
func FormatRows(sheetTitle string, grid [][]any) []domain.RawRow {
	if len(grid) < 2 {
		return nil
	}

	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		if s, ok := h.(string); ok {
			headers[i] = analytics.NormalizeHeader(s)
		}
	}

	rows := make([]domain.RawRow, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		row := make(domain.RawRow, len(headers)+1)
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = nil
			}
		}
		row[domain.SheetNameKey] = sheetTitle
		rows = append(rows, row)
	}
	return rows
}
