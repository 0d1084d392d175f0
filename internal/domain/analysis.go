package domain

// LocationStats aggregates audit outcomes for one warehouse location.
type LocationStats struct {
	TotalItems       int      `json:"total_items"`
	Matched          int      `json:"matched"`
	Gain             int      `json:"gain"`
	Loss             int      `json:"loss"`
	Accuracy         float64  `json:"accuracy"`
	RiskScore        float64  `json:"risk_score"`
	MostCommonStatus string   `json:"most_common_status"`
	LocationStatuses []string `json:"-"`
}

// ProductStats aggregates audit outcomes for one product key.
type ProductStats struct {
	Name           string         `json:"name"`
	ItemID         string         `json:"item_id"`
	TotalAudits    int            `json:"total_audits"`
	Locations      []string       `json:"locations"`
	Issues         map[Status]int `json:"issues"`
	IssueFrequency float64        `json:"issue_frequency"`
}

// StaffStats tracks per-staff audit accuracy. HumanError counts rows whose
// employee-accuracy cell carried anything other than an explicit match.
type StaffStats struct {
	Total      int     `json:"total"`
	Match      int     `json:"match"`
	Gain       int     `json:"gain"`
	Loss       int     `json:"loss"`
	HumanError int     `json:"human_error"`
	Accuracy   float64 `json:"accuracy"`
}

// Discrepancy is one drill-down row of the analysis view.
type Discrepancy struct {
	Location       string `json:"location"`
	Category       string `json:"category"`
	Product        string `json:"product"`
	ProductID      string `json:"product_id"`
	Barcode        string `json:"barcode"`
	LotSerial      string `json:"lot_serial"`
	ProductionDate string `json:"production_date"`
	ExpirationDate string `json:"expiration_date"`
	FirstQty       string `json:"first_qty"`
	FinalQty       string `json:"final_qty"`
	SystemQty      int    `json:"system_qty"`
	PhysicalQty    int    `json:"physical_qty"`
	Diff           int    `json:"diff"`
	LocationStatus string `json:"location_status"`
	LotStatus      string `json:"lot_status"`
	ProductStatus  string `json:"product_status"`
	CreatedBy      string `json:"created_by"`
	StaffName      string `json:"staff_name"`
	StaffStatus    string `json:"staff_evaluation"`
	AuditDate      string `json:"audit_date"`
}

// TrendBucket counts total vs. matched audits inside one day or week.
type TrendBucket struct {
	Total   int `json:"total"`
	Matched int `json:"matched"`
}

// AnalysisKPIs are the global KPI fields of the smart analysis view.
type AnalysisKPIs struct {
	OverallAccuracy       int                    `json:"overall_accuracy"`
	TotalMatched          int                    `json:"total_matched"`
	TotalGain             int                    `json:"total_gain"`
	TotalLoss             int                    `json:"total_loss"`
	TotalRows             int                    `json:"total_rows"`
	TotalDistinctProducts int                    `json:"total_distinct_products"`
	PhysicalQtyMatched    float64                `json:"physical_qty_matched"`
	PhysicalQtyGain       float64                `json:"physical_qty_gain"`
	PhysicalQtyLoss       float64                `json:"physical_qty_loss"`
	PhysicalQtyTotal      float64                `json:"physical_qty_total"`
	SystemQtyTotal        float64                `json:"system_qty_total"`
	MatchedPercentage     int                    `json:"matched_percentage"`
	GainPercentage        int                    `json:"gain_percentage"`
	LossPercentage        int                    `json:"loss_percentage"`
	DailyTrends           map[string]TrendBucket `json:"daily_trends"`
	WeeklyTrends          map[string]TrendBucket `json:"weekly_trends"`
}

// ExpiryItem is one product with a known expiration date.
type ExpiryItem struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Location      string `json:"location"`
	ExpiryDate    string `json:"expiry_date"`
	InventoryDate string `json:"inventory_date"`
}

// ExpiryAnalysis buckets products by proximity of their expiration date.
type ExpiryAnalysis struct {
	Expired       []ExpiryItem `json:"expired"`
	Expiring7Days []ExpiryItem `json:"expiring7Days"`
	Expiring30    []ExpiryItem `json:"expiring30Days"`
}

// Insight is a generated observation surfaced on the analysis page.
type Insight struct {
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Severity string   `json:"severity,omitempty"`
	Details  []string `json:"details,omitempty"`
}

// Alert is an actionable warning generated from the analysis.
type Alert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

// ChartSeries pairs labels with numeric values for the frontend charts.
type ChartSeries struct {
	Labels   []string  `json:"labels"`
	Datasets []float64 `json:"datasets"`
}

// ChartData bundles the pre-computed chart inputs.
type ChartData struct {
	LocationAccuracy   ChartSeries `json:"locationAccuracy"`
	StatusDistribution ChartSeries `json:"statusDistribution"`
	ExpirySeverity     ChartSeries `json:"expirySeverity"`
}

// InventoryAnalysis is the full smart-analysis result.
type InventoryAnalysis struct {
	LocationReport map[string]*LocationStats `json:"locationReport"`
	ProductReport  map[string]*ProductStats  `json:"productReport"`
	StaffReport    map[string]*StaffStats    `json:"staffReport"`
	Discrepancies  []Discrepancy             `json:"discrepanciesArr"`
	KPIs           AnalysisKPIs              `json:"kpis"`
	ExpiryAnalysis ExpiryAnalysis            `json:"expiryAnalysis"`
	Insights       []Insight                 `json:"insights"`
	Alerts         []Alert                   `json:"alerts"`
	ChartData      ChartData                 `json:"chartData"`
}

// HourlyProductivity is one staff member's output inside one hour slot.
type HourlyProductivity struct {
	Employee        string `json:"employee"`
	Date            string `json:"date"`
	Hour            string `json:"hour"`
	TotalTasks      int    `json:"totalTasks"`
	TotalQuantity   float64 `json:"totalQuantity"`
	UniqueProducts  int    `json:"uniqueProducts"`
	UniqueLocations int    `json:"uniqueLocations"`
}

// StaffProductivity summarizes one staff member's scanning output.
type StaffProductivity struct {
	TotalItems int     `json:"totalItems"`
	AvgPerHour float64 `json:"avgPerHour"`
	AvgPerDay  float64 `json:"avgPerDay"`
}

// ProductivityOverview holds global scanning-throughput KPIs.
type ProductivityOverview struct {
	TotalItems        int                          `json:"totalItems"`
	AvgPerHour        float64                      `json:"avgPerHour"`
	AvgPerDay         float64                      `json:"avgPerDay"`
	AvgLocsPerHour    float64                      `json:"avgLocsPerHour"`
	AvgLocsPerDay     float64                      `json:"avgLocsPerDay"`
	StaffProductivity map[string]StaffProductivity `json:"staffProductivity"`
}
