package analytics

import (
	"testing"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

func prodRow(code, creator, date string, qty float64, location string) domain.RawRow {
	return domain.RawRow{
		"sku":       code,
		"createdby": creator,
		"date":      date,
		"finalqty":  qty,
		"location":  location,
	}
}

func TestAnalyzeProductivityGrouping(t *testing.T) {
	rows := []domain.RawRow{
		prodRow("p-1", "sara.ahmed@x.com", "13/05/2026 09:15", 5, "A1"),
		prodRow("p-2", "sara.ahmed@x.com", "13/05/2026 09:40", 3, "A2"),
		prodRow("p-1", "sara.ahmed@x.com", "13/05/2026 09:50", 2, "A1"),
		prodRow("p-3", "sara.ahmed@x.com", "13/05/2026 10:05", 1, "A1"),
		prodRow("p-4", "omar@x.com", "13/05/2026 09:30", 7, "B1"),
		// junk code and bad date are dropped
		prodRow("0", "sara.ahmed@x.com", "13/05/2026 09:00", 9, "A1"),
		prodRow("p-5", "sara.ahmed@x.com", "someday", 9, "A1"),
	}

	slots := fixedAnalyzer().AnalyzeProductivity(rows)
	if len(slots) != 3 {
		t.Fatalf("slots = %d, want 3", len(slots))
	}

	// deterministic order: employee, date, hour
	if slots[0].Employee != "Omar" || slots[1].Employee != "Sara Ahmed" {
		t.Errorf("order = %s, %s", slots[0].Employee, slots[1].Employee)
	}

	sara9 := slots[1]
	if sara9.Hour != "09:00" {
		t.Errorf("hour = %s, want 09:00", sara9.Hour)
	}
	if sara9.TotalTasks != 3 || sara9.TotalQuantity != 10 {
		t.Errorf("tasks/qty = %d/%v, want 3/10", sara9.TotalTasks, sara9.TotalQuantity)
	}
	if sara9.UniqueProducts != 2 || sara9.UniqueLocations != 2 {
		t.Errorf("unique = %d products/%d locations, want 2/2", sara9.UniqueProducts, sara9.UniqueLocations)
	}

	sara10 := slots[2]
	if sara10.Hour != "10:00" || sara10.TotalTasks != 1 {
		t.Errorf("sara 10:00 = %+v", sara10)
	}
}

func TestProductivityOverview(t *testing.T) {
	slots := []domain.HourlyProductivity{
		{Employee: "A", Date: "2026-05-13", Hour: "09:00", UniqueProducts: 4, UniqueLocations: 2},
		{Employee: "A", Date: "2026-05-13", Hour: "10:00", UniqueProducts: 2, UniqueLocations: 1},
		{Employee: "B", Date: "2026-05-14", Hour: "09:00", UniqueProducts: 6, UniqueLocations: 3},
	}

	o := ProductivityOverviewFromSlots(slots)

	if o.TotalItems != 12 {
		t.Errorf("total items = %d, want 12", o.TotalItems)
	}
	if o.AvgPerHour != 4 {
		t.Errorf("avg/hour = %v, want 4", o.AvgPerHour)
	}
	if o.AvgPerDay != 6 {
		t.Errorf("avg/day = %v, want 6", o.AvgPerDay)
	}
	if o.AvgLocsPerHour != 2 {
		t.Errorf("avg locs/hour = %v, want 2", o.AvgLocsPerHour)
	}
	if o.AvgLocsPerDay != 3 {
		t.Errorf("avg locs/day = %v, want 3", o.AvgLocsPerDay)
	}

	a := o.StaffProductivity["A"]
	if a.TotalItems != 6 || a.AvgPerHour != 3 || a.AvgPerDay != 6 {
		t.Errorf("staff A = %+v", a)
	}
	b := o.StaffProductivity["B"]
	if b.TotalItems != 6 || b.AvgPerHour != 6 || b.AvgPerDay != 6 {
		t.Errorf("staff B = %+v", b)
	}
}

func TestProductivityOverviewEmpty(t *testing.T) {
	o := ProductivityOverviewFromSlots(nil)
	if o.TotalItems != 0 || len(o.StaffProductivity) != 0 {
		t.Errorf("empty overview = %+v", o)
	}
}
