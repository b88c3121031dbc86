package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printshop/backend/internal/application/report"
)

// ReportHandler exposes the reporting read models over HTTP
type ReportHandler struct {
	BaseHandler
	service *report.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *report.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.Dashboard)
		reports.GET("/movements", h.MovementTotals)
		reports.DELETE("/cache", h.InvalidateCache)
	}
}

// Dashboard handles GET /reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// MovementTotals handles GET /reports/movements. An absent range
// defaults to the current month.
func (h *ReportHandler) MovementTotals(c *gin.Context) {
	var query struct {
		From time.Time `form:"from" time_format:"2006-01-02"`
		To   time.Time `form:"to" time_format:"2006-01-02"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err)
		return
	}
	totals, err := h.service.GetMovementTotals(c.Request.Context(), query.From, query.To)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, totals)
}

// InvalidateCache handles DELETE /reports/cache
func (h *ReportHandler) InvalidateCache(c *gin.Context) {
	if err := h.service.InvalidateCache(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
