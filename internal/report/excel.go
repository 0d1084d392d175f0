package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

const dataSheet = "Report"

// BuildWorkbook writes the day's rows into an xlsx file at path. Headers are
// the union of all row keys, sorted, so the column layout is identical for
// equal inputs regardless of map iteration order.
func BuildWorkbook(rows []domain.RawRow, title, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(dataSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	headers := headerUnion(rows)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(dataSheet, cell, h); err != nil {
			return err
		}
	}
	if len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(dataSheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range rows {
		for col, h := range headers {
			v, ok := row[h]
			if !ok || v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(dataSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if title != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: title}); err != nil {
			return fmt.Errorf("doc props: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// headerUnion collects every key appearing in any row, sorted, skipping the
// internal sheet-name tag.
func headerUnion(rows []domain.RawRow) []string {
	set := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			if strings.HasPrefix(k, "_") {
				continue
			}
			set[k] = struct{}{}
		}
	}
	headers := make([]string, 0, len(set))
	for k := range set {
		headers = append(headers, k)
	}
	sort.Strings(headers)
	return headers
}
