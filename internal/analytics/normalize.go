package analytics

import (
	"strconv"
	"strings"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

// Candidate header lists per canonical field, in descending priority. The
// spellings cover every variant observed across the audit sheets, including
// the misspelled ones ("Proudact Status", "locatonstatus").
var (
	productCodeCandidates = []string{"breadfastid", "sku", "productcode", "code", "id"}
	altIDCandidates       = []string{"breadfastid", "bfid", "itemid"}
	productNameCandidates = []string{"productname", "name", "item"}
	dateCandidates        = []string{"date", "countdate", "inventorydate", "datenow", "invdate", "datecounted", "timestamp"}
	physicalQtyCandidates = []string{"finalqty", "final qty", "final_qty", "physicalqty", "num", "quantity", "qty", "count", "stockqty"}
	systemQtyCandidates   = []string{"sysqty", "systemqty", "stockqty", "logicalqty", "bookqty", "logicqty", "expected", "expectedqty", "system"}
	statusCandidates      = []string{
		"productstatus", "proudactstatus", "status", "matchstatus", "discrepancy",
		"match/extra/missingstatus", "inventorystatus", "notes", "result",
		"auditresult", "finalstatus", "adjustment", "variance", "audit",
		"finalvar", "firstvar", "lotatus", "locationstatus", "loc.status",
	}
	categoryCandidates  = []string{"product/productcategory", "category", "type", "cat"}
	warehouseCandidates = []string{"warehouse", "location", "store"}
)

// junkValues are placeholder strings that must never be treated as a real
// product identifier.
var junkValues = map[string]struct{}{
	"0": {}, "(blank)": {}, "null": {}, "undefined": {},
	"-": {}, "nan": {}, "n/a": {}, "": {},
}

// IsJunkValue reports whether a cell value is an empty/invalid placeholder.
func IsJunkValue(s string) bool {
	_, ok := junkValues[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// NormalizeStats counts rows excluded during normalization, for diagnostics.
type NormalizeStats struct {
	Input        int
	Valid        int
	RejectedCode int
	RejectedDate int
}

// Normalizer converts raw sheet rows into canonical audit records.
type Normalizer struct {
	Keywords domain.StatusKeywords
}

// NewNormalizer returns a Normalizer with the default status keyword set.
func NewNormalizer() *Normalizer {
	return &Normalizer{Keywords: domain.DefaultStatusKeywords()}
}

// Normalize maps one raw row onto a CanonicalRecord. Rows with a junk or
// missing product code, or a date that cannot be parsed, are rejected; a
// rejected row is reported through the bool return, never through an error.
func (n *Normalizer) Normalize(row domain.RawRow) (domain.CanonicalRecord, bool) {
	ix := NewRowIndex(row)

	code := strings.ToLower(ix.String(productCodeCandidates...))
	altID := strings.ToLower(ix.String(altIDCandidates...))
	if code == "" {
		code = altID
	}
	if IsJunkValue(code) {
		return domain.CanonicalRecord{}, false
	}

	dateVal, _ := ix.Resolve(dateCandidates...)
	date, ok := ParseFlexibleDate(dateVal)
	if !ok {
		return domain.CanonicalRecord{}, false
	}

	name := ix.String(productNameCandidates...)
	if name == "" {
		name = code
	}

	category := ix.String(categoryCandidates...)
	if category == "" {
		category = "Other"
	}

	warehouse := ix.String(warehouseCandidates...)
	if warehouse == "" {
		warehouse = "Main"
	}

	physical := parseQty(ix, physicalQtyCandidates)
	system := parseQty(ix, systemQtyCandidates)

	status := n.Keywords.Classify(ix.String(statusCandidates...))
	if status == domain.StatusUnknown {
		status = domain.CompareQuantities(physical, system)
	}

	return domain.CanonicalRecord{
		ProductCode: code,
		AltID:       altID,
		ProductName: name,
		Category:    category,
		Warehouse:   warehouse,
		PhysicalQty: physical,
		SystemQty:   system,
		Status:      status,
		Date:        date,
	}, true
}

// NormalizeAll converts a batch of raw rows, counting rejects instead of
// failing the batch.
func (n *Normalizer) NormalizeAll(rows []domain.RawRow) ([]domain.CanonicalRecord, NormalizeStats) {
	stats := NormalizeStats{Input: len(rows)}
	records := make([]domain.CanonicalRecord, 0, len(rows))

	for _, row := range rows {
		ix := NewRowIndex(row)
		code := strings.ToLower(ix.String(productCodeCandidates...))
		if code == "" {
			code = strings.ToLower(ix.String(altIDCandidates...))
		}
		if IsJunkValue(code) {
			stats.RejectedCode++
			continue
		}

		rec, ok := n.Normalize(row)
		if !ok {
			stats.RejectedDate++
			continue
		}
		records = append(records, rec)
	}

	stats.Valid = len(records)
	return records, stats
}

// parseQty reads an integer quantity, tolerating float-formatted cells and
// defaulting to 0 when the cell is absent or unparseable.
func parseQty(ix RowIndex, candidates []string) int {
	v, ok := ix.Resolve(candidates...)
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case float64:
		return int(x)
	case int:
		return x
	}

	s := strings.TrimSpace(cellString(v))
	if s == "" {
		return 0
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
