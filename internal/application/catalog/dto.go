package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductRequest creates or updates a catalog product
type ProductRequest struct {
	Name      string          `json:"name" binding:"required,max=200"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Unit      string          `json:"unit" binding:"max=20"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	IncludeInactive bool   `form:"include_inactive"`
	Search          string `form:"search"`
	Page            int    `form:"page" binding:"omitempty,min=1"`
	PageSize        int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Unit      string          `json:"unit,omitempty"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		SalePrice: p.SalePrice.Amount(),
		Unit:      p.Unit,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}
