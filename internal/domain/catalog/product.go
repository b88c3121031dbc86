package catalog

import (
	"time"

	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// UnspecifiedProductName is the fallback item name used when an invoice
// line carries neither a product reference nor a free-text name.
const UnspecifiedProductName = "unspecified product"

// Product is a priced catalog entry. Read-mostly: invoice items resolve
// their display name from here when created by product reference.
type Product struct {
	shared.BaseEntity
	Name      string
	SalePrice valueobject.Money
	Unit      string
	Active    bool
}

// NewProduct creates an active product
func NewProduct(name string, salePrice valueobject.Money, unit string) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Product name cannot be empty")
	}
	if salePrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Sale price cannot be negative")
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		SalePrice:  salePrice,
		Unit:       unit,
		Active:     true,
	}, nil
}

// Update changes the product's fields
func (p *Product) Update(name string, salePrice valueobject.Money, unit string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_FAILED", "Product name cannot be empty")
	}
	if salePrice.IsNegative() {
		return shared.NewDomainError("VALIDATION_FAILED", "Sale price cannot be negative")
	}
	p.Name = name
	p.SalePrice = salePrice
	p.Unit = unit
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the product from default listings
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}
