package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

// AnalyzeProductivity groups raw scan rows into employee/date/hour slots and
// reports scanning throughput per slot. Output is sorted by employee, then
// date, then hour, so equal inputs always produce identical slices.
func (a *Analyzer) AnalyzeProductivity(rows []domain.RawRow) []domain.HourlyProductivity {
	type slot struct {
		employee  string
		date      string
		hour      int
		tasks     int
		quantity  float64
		products  map[string]struct{}
		locations map[string]struct{}
	}

	slots := make(map[string]*slot)

	for _, row := range rows {
		ix := NewRowIndex(row)

		code := strings.ToLower(ix.String(productCodeCandidates...))
		if IsJunkValue(code) {
			continue
		}

		dateVal, _ := ix.Resolve(dateCandidates...)
		date, hour, ok := ParseFlexibleDateTime(dateVal)
		if !ok {
			continue
		}

		employee := normalizeStaffName(ix.String(createdByCandidates...), ix.String(staffNameCandidates...))
		dk := DateKey(date)
		key := fmt.Sprintf("%s|%s|%02d", employee, dk, hour)

		s := slots[key]
		if s == nil {
			s = &slot{
				employee:  employee,
				date:      dk,
				hour:      hour,
				products:  make(map[string]struct{}),
				locations: make(map[string]struct{}),
			}
			slots[key] = s
		}
		s.tasks++
		s.quantity += float64(parseQty(ix, physicalQtyCandidates))
		s.products[code] = struct{}{}
		if loc := ix.String(warehouseCandidates...); loc != "" {
			s.locations[loc] = struct{}{}
		}
	}

	out := make([]domain.HourlyProductivity, 0, len(slots))
	for _, s := range slots {
		out = append(out, domain.HourlyProductivity{
			Employee:        s.employee,
			Date:            s.date,
			Hour:            fmt.Sprintf("%02d:00", s.hour),
			TotalTasks:      s.tasks,
			TotalQuantity:   s.quantity,
			UniqueProducts:  len(s.products),
			UniqueLocations: len(s.locations),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Employee != out[j].Employee {
			return out[i].Employee < out[j].Employee
		}
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Hour < out[j].Hour
	})

	return out
}

// ProductivityOverview reduces hourly slots to global and per-staff averages.
// Hour averages divide by the number of occupied hour slots, day averages by
// the number of occupied days.
func ProductivityOverviewFromSlots(slots []domain.HourlyProductivity) domain.ProductivityOverview {
	overview := domain.ProductivityOverview{
		StaffProductivity: make(map[string]domain.StaffProductivity),
	}
	if len(slots) == 0 {
		return overview
	}

	days := make(map[string]struct{})
	locationVisits := 0

	type staffAcc struct {
		items int
		hours int
		days  map[string]struct{}
	}
	staff := make(map[string]*staffAcc)

	for _, s := range slots {
		overview.TotalItems += s.UniqueProducts
		days[s.Date] = struct{}{}
		locationVisits += s.UniqueLocations

		acc := staff[s.Employee]
		if acc == nil {
			acc = &staffAcc{days: make(map[string]struct{})}
			staff[s.Employee] = acc
		}
		acc.items += s.UniqueProducts
		acc.hours++
		acc.days[s.Date] = struct{}{}
	}

	hourSlots := float64(len(slots))
	daySlots := float64(len(days))

	overview.AvgPerHour = round2(float64(overview.TotalItems) / hourSlots)
	overview.AvgPerDay = round2(float64(overview.TotalItems) / daySlots)
	overview.AvgLocsPerHour = round2(float64(locationVisits) / hourSlots)
	overview.AvgLocsPerDay = round2(float64(locationVisits) / daySlots)

	for name, acc := range staff {
		overview.StaffProductivity[name] = domain.StaffProductivity{
			TotalItems: acc.items,
			AvgPerHour: round2(float64(acc.items) / float64(acc.hours)),
			AvgPerDay:  round2(float64(acc.items) / float64(len(acc.days))),
		}
	}

	return overview
}
