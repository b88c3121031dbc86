package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/printshop/backend/internal/application/partner"
)

// SupplierHandler exposes suppliers and the supplier payable ledger over HTTP
type SupplierHandler struct {
	BaseHandler
	service *partner.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(service *partner.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

// RegisterRoutes registers supplier routes
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.Create)
		suppliers.GET("", h.List)
		suppliers.GET("/:id", h.Get)
		suppliers.PUT("/:id", h.Update)
		suppliers.POST("/:id/activate", h.Activate)
		suppliers.POST("/:id/deactivate", h.Deactivate)
		suppliers.POST("/:id/payments", h.AddPayment)
		suppliers.GET("/:id/payments", h.ListPayments)
		suppliers.GET("/:id/payable", h.OutstandingPayable)
	}

	// marking a single invoice cost as paid lives under the invoice it
	// belongs to, but drives the supplier ledger
	rg.POST("/invoices/:id/costs/:costId/mark-paid", h.MarkCostPaid)
}

// Create handles POST /suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req partner.SupplierRequest
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

// List handles GET /suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	var filter partner.SupplierListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}
	normalizePaging(&filter.Page, &filter.PageSize)
	suppliers, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, suppliers, total, filter.Page, filter.PageSize)
}

// Get handles GET /suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
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

// Update handles PUT /suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req partner.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate handles POST /suppliers/:id/activate
func (h *SupplierHandler) Activate(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.service.Activate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate handles POST /suppliers/:id/deactivate
func (h *SupplierHandler) Deactivate(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddPayment handles POST /suppliers/:id/payments
func (h *SupplierHandler) AddPayment(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req partner.SupplierPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.AddPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListPayments handles GET /suppliers/:id/payments
func (h *SupplierHandler) ListPayments(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	payments, err := h.service.ListPayments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// OutstandingPayable handles GET /suppliers/:id/payable
func (h *SupplierHandler) OutstandingPayable(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	resp, err := h.service.OutstandingPayable(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkCostPaid handles POST /invoices/:id/costs/:costId/mark-paid
func (h *SupplierHandler) MarkCostPaid(c *gin.Context) {
	invoiceID, ok := h.bindID(c)
	if !ok {
		return
	}
	costID, err := uuid.Parse(c.Param("costId"))
	if err != nil {
		h.BadRequest(c, err)
		return
	}
	if err := h.service.MarkCostPaid(c.Request.Context(), invoiceID, costID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
