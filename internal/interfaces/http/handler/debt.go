package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/printshop/backend/internal/application/debt"
)

// DebtHandler exposes the debtor ledger and debt accounts over HTTP
type DebtHandler struct {
	BaseHandler
	service *debt.Service
}

// NewDebtHandler creates a new DebtHandler
func NewDebtHandler(service *debt.Service) *DebtHandler {
	return &DebtHandler{service: service}
}

// RegisterRoutes registers debt and debt account routes
func (h *DebtHandler) RegisterRoutes(rg *gin.RouterGroup) {
	debts := rg.Group("/debts")
	{
		debts.POST("", h.Create)
		debts.GET("", h.List)
		debts.GET("/:id", h.Get)
		debts.DELETE("/:id", h.Delete)
		debts.POST("/:id/repayments", h.Repay)
	}

	accounts := rg.Group("/debt-accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.GET("", h.ListAccounts)
		accounts.PUT("/:id", h.UpdateAccount)
		accounts.DELETE("/:id", h.DeleteAccount)
	}
}

// Create handles POST /debts
func (h *DebtHandler) Create(c *gin.Context) {
	var req debt.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /debts
func (h *DebtHandler) List(c *gin.Context) {
	var filter debt.DebtListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}
	normalizePaging(&filter.Page, &filter.PageSize)
	debts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, debts, total, filter.Page, filter.PageSize)
}

// Get handles GET /debts/:id
func (h *DebtHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /debts/:id
func (h *DebtHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Repay handles POST /debts/:id/repayments
func (h *DebtHandler) Repay(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req debt.RepayDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.Repay(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// CreateAccount handles POST /debt-accounts
func (h *DebtHandler) CreateAccount(c *gin.Context) {
	var req debt.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.CreateAccount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListAccounts handles GET /debt-accounts
func (h *DebtHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.service.ListAccounts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}

// UpdateAccount handles PUT /debt-accounts/:id
func (h *DebtHandler) UpdateAccount(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req debt.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.UpdateAccount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteAccount handles DELETE /debt-accounts/:id
func (h *DebtHandler) DeleteAccount(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAccount(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
