package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/printshop/backend/internal/application/cashbook"
)

// CashbookHandler exposes the cash ledger over HTTP
type CashbookHandler struct {
	BaseHandler
	service *cashbook.Service
}

// NewCashbookHandler creates a new CashbookHandler
func NewCashbookHandler(service *cashbook.Service) *CashbookHandler {
	return &CashbookHandler{service: service}
}

// RegisterRoutes registers cashbook routes
func (h *CashbookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cash := rg.Group("/cashbook")
	{
		cash.GET("/balance", h.GetBalance)
		cash.PUT("/balance", h.SetInitial)
		cash.POST("/transfers", h.Transfer)
		cash.POST("/adjustments", h.Adjust)
		cash.GET("/movements", h.ListMovements)
		cash.GET("/reconciliation", h.Reconcile)
	}
}

// GetBalance handles GET /cashbook/balance
func (h *CashbookHandler) GetBalance(c *gin.Context) {
	resp, err := h.service.GetBalance(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetInitial handles PUT /cashbook/balance
func (h *CashbookHandler) SetInitial(c *gin.Context) {
	var req cashbook.SetInitialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.SetInitial(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Transfer handles POST /cashbook/transfers
func (h *CashbookHandler) Transfer(c *gin.Context) {
	var req cashbook.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.Transfer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Adjust handles POST /cashbook/adjustments
func (h *CashbookHandler) Adjust(c *gin.Context) {
	var req cashbook.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.Adjust(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListMovements handles GET /cashbook/movements
func (h *CashbookHandler) ListMovements(c *gin.Context) {
	var filter cashbook.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}
	normalizePaging(&filter.Page, &filter.PageSize)
	movements, total, err := h.service.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}

// Reconcile handles GET /cashbook/reconciliation
func (h *CashbookHandler) Reconcile(c *gin.Context) {
	result, err := h.service.Reconcile(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
