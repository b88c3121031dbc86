package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// InvoiceItem is a line item on an invoice. TotalPrice is always
// Quantity x UnitPrice. TotalCost is the raw sum of attached cost
// amounts; cost entries already carry the full amount for the line,
// so they are never multiplied by quantity.
type InvoiceItem struct {
	shared.BaseEntity
	InvoiceID   uuid.UUID
	ProductID   *uuid.UUID // nil for ad-hoc custom work
	ProductName string
	Description string
	Quantity    valueobject.Quantity
	UnitPrice   valueobject.Money
	TotalPrice  valueobject.Money
	Costs       []ItemCost
	TotalCost   valueobject.Money
	Profit      valueobject.Money
}

// NewInvoiceItem creates a line item and derives its price totals
func NewInvoiceItem(productID *uuid.UUID, productName, description string, quantity valueobject.Quantity, unitPrice valueobject.Money) (*InvoiceItem, error) {
	if productName == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Item name cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Item unit price cannot be negative")
	}

	item := &InvoiceItem{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		ProductName: productName,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Costs:       make([]ItemCost, 0),
		TotalCost:   valueobject.ZeroMoney(),
	}
	item.recalculate()

	return item, nil
}

// AddCost attaches a cost entry and recomputes the line's cost and profit
func (i *InvoiceItem) AddCost(cost *ItemCost) {
	cost.InvoiceItemID = i.ID
	i.Costs = append(i.Costs, *cost)
	i.recalculate()
	i.UpdatedAt = time.Now()
}

func (i *InvoiceItem) recalculate() {
	i.TotalPrice = i.UnitPrice.Multiply(i.Quantity.Decimal())

	totalCost := valueobject.ZeroMoney()
	for _, c := range i.Costs {
		totalCost = totalCost.Add(c.Amount)
	}
	i.TotalCost = totalCost
	i.Profit = i.TotalPrice.Subtract(i.TotalCost)
}
