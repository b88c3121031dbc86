package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ItemRequest creates or updates a stock item
type ItemRequest struct {
	Name            string          `json:"name" binding:"required,max=200"`
	Unit            string          `json:"unit" binding:"required,max=20"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	Notes           string          `json:"notes" binding:"max=500"`
}

// StockInRequest adds stock, optionally repricing the weighted average
type StockInRequest struct {
	Quantity decimal.Decimal  `json:"quantity" binding:"required"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
	Notes    string           `json:"notes" binding:"max=500"`
}

// StockOutRequest draws stock off the shelf
type StockOutRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Notes    string          `json:"notes" binding:"max=500"`
}

// ItemListFilter represents filter options for the item list
type ItemListFilter struct {
	IncludeInactive bool   `form:"include_inactive"`
	LowStockOnly    bool   `form:"low_stock_only"`
	Search          string `form:"search"`
	Page            int    `form:"page" binding:"omitempty,min=1"`
	PageSize        int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ItemResponse represents a stock item in API responses
type ItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	StockValue      decimal.Decimal `json:"stock_value"`
	IsLowStock      bool            `json:"is_low_stock"`
	Notes           string          `json:"notes,omitempty"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// MovementResponse represents a stock movement in API responses
type MovementResponse struct {
	ID           uuid.UUID        `json:"id"`
	ItemID       uuid.UUID        `json:"item_id"`
	Direction    string           `json:"direction"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	MovementDate time.Time        `json:"movement_date"`
}

// ToItemResponse converts a domain item to its API representation
func ToItemResponse(item *inventory.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Unit:            item.Unit,
		CurrentQuantity: item.CurrentQuantity.Decimal(),
		MinimumQuantity: item.MinimumQuantity.Decimal(),
		UnitCost:        item.UnitCost.Amount(),
		StockValue:      item.UnitCost.Amount().Mul(item.CurrentQuantity.Decimal()),
		IsLowStock:      item.IsLowStock(),
		Notes:           item.Notes,
		Active:          item.Active,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// ToItemResponses converts a slice of domain items
func ToItemResponses(items []inventory.InventoryItem) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToItemResponse(&items[i]))
	}
	return responses
}

// ToMovementResponses converts a slice of stock movements
func ToMovementResponses(movements []inventory.InventoryMovement) []MovementResponse {
	responses := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		m := &movements[i]
		resp := MovementResponse{
			ID:           m.ID,
			ItemID:       m.ItemID,
			Direction:    string(m.Direction),
			Quantity:     m.Quantity.Decimal(),
			Notes:        m.Notes,
			MovementDate: m.MovementDate,
		}
		if m.UnitCost != nil {
			cost := m.UnitCost.Amount()
			resp.UnitCost = &cost
		}
		responses = append(responses, resp)
	}
	return responses
}
