package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

// Raw-field candidate lists used only by the analysis drill-down, where the
// original cell text is reported verbatim instead of being normalized away.
var (
	barcodeCandidates        = []string{"barcode", "productbarcode", "ean"}
	lotSerialCandidates      = []string{"lot/serialnumber", "lotserial", "lot", "serial"}
	productionDateCandidates = []string{"productiondate", "proddate", "mfgdate"}
	expirationDateCandidates = []string{"expirationdate", "expirydate", "expiry", "expdate", "bestbefore"}
	firstQtyCandidates       = []string{"firstqty", "first qty", "first_qty", "initialqty"}
	locationStatusCandidates = []string{"locationstatus", "loc.status", "locatonstatus", "lotatus"}
	lotStatusCandidates      = []string{"lotstatus", "lot/serialstatus"}
	createdByCandidates      = []string{"createdby", "created by", "user", "email", "auditor"}
	staffNameCandidates      = []string{"staffname", "employee", "staff"}
	staffEvalCandidates      = []string{"employeeaccuracy", "staffevaluation", "staffstatus", "evaluation"}
)

// Analyzer produces the smart-analysis view over raw audit rows. Now is
// injected so expiry bucketing is reproducible in tests.
type Analyzer struct {
	Keywords domain.StatusKeywords
	Now      func() time.Time
}

// NewAnalyzer returns an Analyzer with default keywords and wall-clock time.
func NewAnalyzer() *Analyzer {
	return &Analyzer{Keywords: domain.DefaultStatusKeywords(), Now: time.Now}
}

// AnalyzeInventory walks every raw row once and builds the location, product
// and staff reports, the discrepancy drill-down, global KPIs, trends, expiry
// buckets, insights, alerts and chart inputs.
func (a *Analyzer) AnalyzeInventory(rows []domain.RawRow) *domain.InventoryAnalysis {
	res := &domain.InventoryAnalysis{
		LocationReport: make(map[string]*domain.LocationStats),
		ProductReport:  make(map[string]*domain.ProductStats),
		StaffReport:    make(map[string]*domain.StaffStats),
		Discrepancies:  []domain.Discrepancy{},
	}
	res.KPIs.DailyTrends = make(map[string]domain.TrendBucket)
	res.KPIs.WeeklyTrends = make(map[string]domain.TrendBucket)

	distinct := make(map[string]struct{})

	for _, row := range rows {
		ix := NewRowIndex(row)

		code := strings.ToLower(ix.String(productCodeCandidates...))
		if IsJunkValue(code) {
			continue
		}
		name := ix.String(productNameCandidates...)
		if name == "" {
			name = code
		}
		location := ix.String(warehouseCandidates...)
		if location == "" {
			location = "Main"
		}

		physical := parseQty(ix, physicalQtyCandidates)
		system := parseQty(ix, systemQtyCandidates)
		diff := physical - system

		status := a.Keywords.Classify(ix.String(statusCandidates...))
		if status == domain.StatusUnknown {
			status = domain.CompareQuantities(physical, system)
		}

		distinct[code] = struct{}{}

		// Location rollup.
		loc := res.LocationReport[location]
		if loc == nil {
			loc = &domain.LocationStats{}
			res.LocationReport[location] = loc
		}
		loc.TotalItems++
		if ls := ix.String(locationStatusCandidates...); ls != "" {
			loc.LocationStatuses = append(loc.LocationStatuses, ls)
		}

		// Product rollup.
		prod := res.ProductReport[name]
		if prod == nil {
			prod = &domain.ProductStats{
				Name:   name,
				ItemID: code,
				Issues: make(map[domain.Status]int),
			}
			res.ProductReport[name] = prod
		}
		prod.TotalAudits++
		if !containsString(prod.Locations, location) {
			prod.Locations = append(prod.Locations, location)
		}

		// Staff rollup.
		staffName := normalizeStaffName(ix.String(createdByCandidates...), ix.String(staffNameCandidates...))
		staff := res.StaffReport[staffName]
		if staff == nil {
			staff = &domain.StaffStats{}
			res.StaffReport[staffName] = staff
		}
		staff.Total++

		res.KPIs.TotalRows++
		res.KPIs.PhysicalQtyTotal += float64(physical)
		res.KPIs.SystemQtyTotal += float64(system)

		switch status {
		case domain.StatusGain:
			loc.Gain++
			staff.Gain++
			prod.Issues[domain.StatusGain]++
			res.KPIs.TotalGain++
			res.KPIs.PhysicalQtyGain += float64(physical)
		case domain.StatusLoss:
			loc.Loss++
			staff.Loss++
			prod.Issues[domain.StatusLoss]++
			res.KPIs.TotalLoss++
			res.KPIs.PhysicalQtyLoss += float64(physical)
		default:
			loc.Matched++
			staff.Match++
			res.KPIs.TotalMatched++
			res.KPIs.PhysicalQtyMatched += float64(physical)
		}

		// Anything in the evaluation cell other than an explicit match marks
		// a human error against the auditor.
		if eval := ix.String(staffEvalCandidates...); eval != "" {
			if a.Keywords.Classify(eval) != domain.StatusMatch {
				staff.HumanError++
			}
		}

		dateVal, _ := ix.Resolve(dateCandidates...)
		if date, ok := ParseFlexibleDate(dateVal); ok {
			dk := DateKey(date)
			db := res.KPIs.DailyTrends[dk]
			db.Total++
			wy, wn := date.ISOWeek()
			wk := fmt.Sprintf("%d-W%02d", wy, wn)
			wb := res.KPIs.WeeklyTrends[wk]
			wb.Total++
			if status == domain.StatusMatch {
				db.Matched++
				wb.Matched++
			}
			res.KPIs.DailyTrends[dk] = db
			res.KPIs.WeeklyTrends[wk] = wb
		}

		if status != domain.StatusMatch {
			res.Discrepancies = append(res.Discrepancies, domain.Discrepancy{
				Location:       location,
				Category:       ix.String(categoryCandidates...),
				Product:        name,
				ProductID:      code,
				Barcode:        ix.String(barcodeCandidates...),
				LotSerial:      ix.String(lotSerialCandidates...),
				ProductionDate: ix.String(productionDateCandidates...),
				ExpirationDate: ix.String(expirationDateCandidates...),
				FirstQty:       ix.String(firstQtyCandidates...),
				FinalQty:       ix.String(physicalQtyCandidates...),
				SystemQty:      system,
				PhysicalQty:    physical,
				Diff:           diff,
				LocationStatus: ix.String(locationStatusCandidates...),
				LotStatus:      ix.String(lotStatusCandidates...),
				ProductStatus:  string(status),
				CreatedBy:      ix.String(createdByCandidates...),
				StaffName:      staffName,
				StaffStatus:    ix.String(staffEvalCandidates...),
				AuditDate:      ix.String(dateCandidates...),
			})
		}
	}

	for _, loc := range res.LocationReport {
		if loc.TotalItems > 0 {
			loc.Accuracy = round2(float64(loc.Matched) / float64(loc.TotalItems) * 100)
			loc.RiskScore = round2(float64(3*loc.Loss+loc.Gain) / float64(loc.TotalItems))
		}
		loc.MostCommonStatus = mostCommon(loc.LocationStatuses)
	}
	for _, prod := range res.ProductReport {
		issues := prod.Issues[domain.StatusGain] + prod.Issues[domain.StatusLoss]
		if prod.TotalAudits > 0 {
			prod.IssueFrequency = round2(float64(issues) / float64(prod.TotalAudits) * 100)
		}
	}
	for _, staff := range res.StaffReport {
		if staff.Total > 0 {
			staff.Accuracy = round2(float64(staff.Match) / float64(staff.Total) * 100)
		}
	}

	res.KPIs.TotalDistinctProducts = len(distinct)
	res.KPIs.MatchedPercentage = roundPercent(res.KPIs.TotalMatched, res.KPIs.TotalRows)
	res.KPIs.GainPercentage = roundPercent(res.KPIs.TotalGain, res.KPIs.TotalRows)
	res.KPIs.LossPercentage = roundPercent(res.KPIs.TotalLoss, res.KPIs.TotalRows)
	res.KPIs.OverallAccuracy = res.KPIs.MatchedPercentage

	sort.SliceStable(res.Discrepancies, func(i, j int) bool {
		return abs(res.Discrepancies[i].Diff) > abs(res.Discrepancies[j].Diff)
	})

	res.ExpiryAnalysis = a.AnalyzeExpiry(rows)
	res.Insights = buildInsights(res)
	res.Alerts = buildAlerts(res)
	res.ChartData = buildChartData(res)

	return res
}

// AnalyzeExpiry buckets rows with a parseable expiration date into expired,
// expiring within 7 days, and expiring within 30 days, relative to the
// analyzer clock. Only the first row per product key is considered.
func (a *Analyzer) AnalyzeExpiry(rows []domain.RawRow) domain.ExpiryAnalysis {
	out := domain.ExpiryAnalysis{
		Expired:       []domain.ExpiryItem{},
		Expiring7Days: []domain.ExpiryItem{},
		Expiring30:    []domain.ExpiryItem{},
	}

	now := a.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	seen := make(map[string]struct{})

	for _, row := range rows {
		ix := NewRowIndex(row)
		code := strings.ToLower(ix.String(productCodeCandidates...))
		if IsJunkValue(code) {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}

		expVal, _ := ix.Resolve(expirationDateCandidates...)
		exp, ok := ParseFlexibleDate(expVal)
		if !ok {
			continue
		}
		seen[code] = struct{}{}

		days := int(exp.Sub(today).Hours() / 24)
		item := domain.ExpiryItem{
			ProductID:     code,
			ProductName:   ix.String(productNameCandidates...),
			Location:      ix.String(warehouseCandidates...),
			ExpiryDate:    DateKey(exp),
			InventoryDate: ix.String(dateCandidates...),
		}
		switch {
		case days < 0:
			out.Expired = append(out.Expired, item)
		case days <= 7:
			out.Expiring7Days = append(out.Expiring7Days, item)
		case days <= 30:
			out.Expiring30 = append(out.Expiring30, item)
		}
	}

	return out
}

// normalizeStaffName resolves a display name for the auditor. An explicit
// staff-name cell wins; otherwise the created-by email's local part is split
// on dots and underscores and title-cased. No signal at all means "System".
func normalizeStaffName(createdBy, explicit string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return capitalizeWords(s)
	}
	s := strings.TrimSpace(createdBy)
	if s == "" {
		return "System"
	}
	if at := strings.Index(s, "@"); at >= 0 {
		s = s[:at]
	}
	s = strings.NewReplacer(".", " ", "_", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "System"
	}
	return capitalizeWords(s)
}

func capitalizeWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func buildInsights(res *domain.InventoryAnalysis) []domain.Insight {
	insights := []domain.Insight{}

	var lowAccuracy []string
	for name, loc := range res.LocationReport {
		if loc.TotalItems > 0 && loc.Accuracy < 85 {
			lowAccuracy = append(lowAccuracy, fmt.Sprintf("%s (%.1f%%)", name, loc.Accuracy))
		}
	}
	sort.Strings(lowAccuracy)
	if len(lowAccuracy) > 0 {
		insights = append(insights, domain.Insight{
			Type:     "location_accuracy",
			Severity: "warning",
			Message:  fmt.Sprintf("%d location(s) below 85%% audit accuracy", len(lowAccuracy)),
			Details:  lowAccuracy,
		})
	}

	var problematic []string
	for name, prod := range res.ProductReport {
		if prod.TotalAudits > 1 && prod.IssueFrequency > 20 {
			problematic = append(problematic, fmt.Sprintf("%s (%.1f%%)", name, prod.IssueFrequency))
		}
	}
	sort.Strings(problematic)
	if len(problematic) > 0 {
		insights = append(insights, domain.Insight{
			Type:     "problematic_products",
			Severity: "warning",
			Message:  fmt.Sprintf("%d product(s) with issue frequency above 20%%", len(problematic)),
			Details:  problematic,
		})
	}

	return insights
}

func buildAlerts(res *domain.InventoryAnalysis) []domain.Alert {
	alerts := []domain.Alert{}
	if n := len(res.ExpiryAnalysis.Expired); n > 0 {
		alerts = append(alerts, domain.Alert{
			Type:    "expired_items",
			Message: fmt.Sprintf("%d item(s) past their expiration date", n),
			Action:  "Remove expired stock and adjust system quantities",
		})
	}
	if n := len(res.ExpiryAnalysis.Expiring7Days); n > 0 {
		alerts = append(alerts, domain.Alert{
			Type:    "expiring_soon",
			Message: fmt.Sprintf("%d item(s) expiring within 7 days", n),
			Action:  "Prioritize these items for sale or transfer",
		})
	}
	return alerts
}

func buildChartData(res *domain.InventoryAnalysis) domain.ChartData {
	var cd domain.ChartData

	locations := make([]string, 0, len(res.LocationReport))
	for name := range res.LocationReport {
		locations = append(locations, name)
	}
	sort.Strings(locations)
	for _, name := range locations {
		cd.LocationAccuracy.Labels = append(cd.LocationAccuracy.Labels, name)
		cd.LocationAccuracy.Datasets = append(cd.LocationAccuracy.Datasets, res.LocationReport[name].Accuracy)
	}

	cd.StatusDistribution = domain.ChartSeries{
		Labels: []string{"Matched", "Gain", "Loss"},
		Datasets: []float64{
			float64(res.KPIs.TotalMatched),
			float64(res.KPIs.TotalGain),
			float64(res.KPIs.TotalLoss),
		},
	}

	cd.ExpirySeverity = domain.ChartSeries{
		Labels: []string{"Expired", "7 Days", "30 Days"},
		Datasets: []float64{
			float64(len(res.ExpiryAnalysis.Expired)),
			float64(len(res.ExpiryAnalysis.Expiring7Days)),
			float64(len(res.ExpiryAnalysis.Expiring30)),
		},
	}

	return cd
}

func mostCommon(values []string) string {
	if len(values) == 0 {
		return ""
	}
	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
