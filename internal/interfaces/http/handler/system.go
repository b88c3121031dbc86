package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/printshop/backend/internal/interfaces/http/dto"
	"gorm.io/gorm"
)

// SystemHandler exposes health and readiness probes
type SystemHandler struct {
	BaseHandler
	db      *gorm.DB
	version string
	started time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *gorm.DB, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version, started: time.Now()}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

// Ready handles GET /ready. Fails when the database is unreachable.
func (h *SystemHandler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable,
			dto.NewErrorResponse("NOT_READY", "database unreachable"))
		return
	}
	h.Success(c, gin.H{"status": "ready"})
}
