package sheets

import (
	"testing"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

func TestFormatRows(t *testing.T) {
	grid := [][]any{
		{"Bread Fast ID", "Final QTY", "Sys Qty", "Date"},
		{"p-1", float64(10), float64(9), float64(46023)},
		{"p-2", float64(3)}, // short row
	}

	rows := FormatRows("Scans", grid)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	first := rows[0]
	if first["breadfastid"] != "p-1" {
		t.Errorf("breadfastid = %v", first["breadfastid"])
	}
	if first["finalqty"] != float64(10) || first["sysqty"] != float64(9) {
		t.Errorf("quantities = %v/%v", first["finalqty"], first["sysqty"])
	}
	if first[domain.SheetNameKey] != "Scans" {
		t.Errorf("sheet tag = %v", first[domain.SheetNameKey])
	}

	second := rows[1]
	if second["sysqty"] != nil || second["date"] != nil {
		t.Errorf("short row should carry nil for missing cells, got %v/%v", second["sysqty"], second["date"])
	}
}

func TestFormatRowsHeaderOnly(t *testing.T) {
	if rows := FormatRows("Scans", [][]any{{"a", "b"}}); rows != nil {
		t.Errorf("header-only grid = %v, want nil", rows)
	}
	if rows := FormatRows("Scans", nil); rows != nil {
		t.Errorf("empty grid = %v, want nil", rows)
	}
}

func TestFormatRowsSkipsBlankHeaders(t *testing.T) {
	grid := [][]any{
		{"sku", "", "qty"},
		{"p-1", "ignored", float64(4)},
	}
	rows := FormatRows("Items", grid)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if _, ok := rows[0][""]; ok {
		t.Error("blank header should not produce a key")
	}
	if rows[0]["qty"] != float64(4) {
		t.Errorf("qty = %v", rows[0]["qty"])
	}
}

func TestColumnToLetter(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"}, {26, "Z"}, {27, "AA"}, {52, "AZ"}, {53, "BA"}, {702, "ZZ"}, {703, "AAA"},
	}
	for _, tt := range tests {
		if got := columnToLetter(tt.col); got != tt.want {
			t.Errorf("columnToLetter(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}
