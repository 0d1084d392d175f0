package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/service"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/sheets"
)

type InventoryHandler struct {
	service *service.DashboardService
}

func NewInventoryHandler(service *service.DashboardService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// parseCriteria reads the dashboard filter set from query parameters.
// Multi-word parameters are camelCase, with snake_case accepted as an
// alias. Numeric filters are only applied when the parameter parses
// cleanly.
func (h *InventoryHandler) parseCriteria(c *gin.Context) domain.FilterCriteria {
	criteria := domain.FilterCriteria{
		Search:    strings.TrimSpace(c.Query("search")),
		Category:  strings.TrimSpace(c.Query("category")),
		Warehouse: strings.TrimSpace(c.Query("warehouse")),
		Type:      strings.TrimSpace(c.Query("type")),
		StartDate: queryAlias(c, "startDate", "start_date"),
		EndDate:   queryAlias(c, "endDate", "end_date"),
	}

	if raw := queryAlias(c, "highMovement", "high_movement"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			criteria.HighMovement = &n
		}
	}
	if raw := queryAlias(c, "continuousDecreaseDays", "continuous_decrease_days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			criteria.ContinuousDecreaseDays = &n
		}
	}

	return criteria
}

// queryAlias returns the first non-blank query value among names.
func queryAlias(c *gin.Context, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(c.Query(name)); v != "" {
			return v
		}
	}
	return ""
}

func (h *InventoryHandler) GetDashboard(c *gin.Context) {
	criteria := h.parseCriteria(c)
	sort := strings.TrimSpace(c.Query("sort"))

	data, err := h.service.GetDashboard(c.Request.Context(), criteria, sort)
	if err != nil {
		h.sourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *InventoryHandler) GetAnalysis(c *gin.Context) {
	analysis, err := h.service.GetAnalysis(c.Request.Context())
	if err != nil {
		h.sourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *InventoryHandler) GetProductivity(c *gin.Context) {
	data, err := h.service.GetProductivity(c.Request.Context())
	if err != nil {
		h.sourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *InventoryHandler) GetSheets(c *gin.Context) {
	titles, err := h.service.SheetTitles(c.Request.Context())
	if err != nil {
		h.sourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sheets": titles})
}

func (h *InventoryHandler) Probe(c *gin.Context) {
	result, err := h.service.Probe(c.Request.Context())
	if err != nil {
		h.sourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// sourceError maps upstream sheet failures to 502 and everything else to 500.
func (h *InventoryHandler) sourceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, sheets.ErrSourceUnavailable) {
		status = http.StatusBadGateway
	}
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	c.JSON(status, gin.H{"error": err.Error()})
}
