package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func criteriaFor(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/inventory/dashboard?"+rawQuery, nil)
	return c
}

func TestParseCriteriaCamelCase(t *testing.T) {
	h := NewInventoryHandler(nil)
	c := criteriaFor(t, "search=milk&category=Dairy&warehouse=East&type=increased"+
		"&startDate=2026-01-01&endDate=2026-01-31&highMovement=5&continuousDecreaseDays=3")

	got := h.parseCriteria(c)

	if got.Search != "milk" || got.Category != "Dairy" || got.Warehouse != "East" || got.Type != "increased" {
		t.Errorf("string filters = %+v", got)
	}
	if got.StartDate != "2026-01-01" || got.EndDate != "2026-01-31" {
		t.Errorf("dates = %q..%q, want 2026-01-01..2026-01-31", got.StartDate, got.EndDate)
	}
	if got.HighMovement == nil || *got.HighMovement != 5 {
		t.Errorf("highMovement = %v, want 5", got.HighMovement)
	}
	if got.ContinuousDecreaseDays == nil || *got.ContinuousDecreaseDays != 3 {
		t.Errorf("continuousDecreaseDays = %v, want 3", got.ContinuousDecreaseDays)
	}
}

func TestParseCriteriaSnakeCaseAlias(t *testing.T) {
	h := NewInventoryHandler(nil)
	c := criteriaFor(t, "start_date=2026-02-01&end_date=2026-02-28&high_movement=10&continuous_decrease_days=2")

	got := h.parseCriteria(c)

	if got.StartDate != "2026-02-01" || got.EndDate != "2026-02-28" {
		t.Errorf("dates = %q..%q, want 2026-02-01..2026-02-28", got.StartDate, got.EndDate)
	}
	if got.HighMovement == nil || *got.HighMovement != 10 {
		t.Errorf("high_movement = %v, want 10", got.HighMovement)
	}
	if got.ContinuousDecreaseDays == nil || *got.ContinuousDecreaseDays != 2 {
		t.Errorf("continuous_decrease_days = %v, want 2", got.ContinuousDecreaseDays)
	}
}

func TestParseCriteriaBadNumbers(t *testing.T) {
	h := NewInventoryHandler(nil)
	c := criteriaFor(t, "highMovement=abc&continuousDecreaseDays=0")

	got := h.parseCriteria(c)

	if got.HighMovement != nil {
		t.Errorf("highMovement = %v, want nil for non-numeric input", got.HighMovement)
	}
	if got.ContinuousDecreaseDays != nil {
		t.Errorf("continuousDecreaseDays = %v, want nil for zero input", got.ContinuousDecreaseDays)
	}
}
