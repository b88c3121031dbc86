package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/printshop/backend/internal/application/inventory"
)

// InventoryHandler exposes stock items and stock movements over HTTP
type InventoryHandler struct {
	BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/inventory")
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/:id", h.Get)
		items.PUT("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
		items.POST("/:id/stock-in", h.StockIn)
		items.POST("/:id/stock-out", h.StockOut)
		items.GET("/:id/movements", h.ListMovements)
		items.POST("/:id/deactivate", h.Deactivate)
	}
}

// Create handles POST /inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventory.ItemRequest
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

// List handles GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventory.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}
	normalizePaging(&filter.Page, &filter.PageSize)
	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Get handles GET /inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
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

// Update handles PUT /inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req inventory.ItemRequest
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

// Delete handles DELETE /inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
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

// StockIn handles POST /inventory/:id/stock-in
func (h *InventoryHandler) StockIn(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req inventory.StockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.StockIn(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// StockOut handles POST /inventory/:id/stock-out
func (h *InventoryHandler) StockOut(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req inventory.StockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}
	resp, err := h.service.StockOut(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListMovements handles GET /inventory/:id/movements
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var paging struct {
		Page     int `form:"page" binding:"omitempty,min=1"`
		PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&paging); err != nil {
		h.BadRequest(c, err)
		return
	}
	normalizePaging(&paging.Page, &paging.PageSize)
	movements, total, err := h.service.ListMovements(c.Request.Context(), id, paging.Page, paging.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, movements, total, paging.Page, paging.PageSize)
}

// Deactivate handles POST /inventory/:id/deactivate
func (h *InventoryHandler) Deactivate(c *gin.Context) {
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
