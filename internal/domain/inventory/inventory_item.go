package inventory

import (
	"fmt"
	"time"

	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// InventoryItem tracks a consumable the shop keeps in stock (paper,
// vinyl, ink). UnitCost is a weighted average recomputed on every
// stock-in that carries a cost.
type InventoryItem struct {
	shared.BaseAggregateRoot
	Name            string
	Unit            string
	CurrentQuantity valueobject.Quantity
	MinimumQuantity valueobject.Quantity
	UnitCost        valueobject.Money
	Notes           string
	Active          bool
}

// NewInventoryItem creates a stock item starting at zero quantity
func NewInventoryItem(name, unit string, minimumQuantity valueobject.Quantity, notes string) (*InventoryItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Item name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Item unit cannot be empty")
	}
	if minimumQuantity.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Minimum quantity cannot be negative")
	}

	return &InventoryItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Unit:              unit,
		CurrentQuantity:   valueobject.ZeroQuantity(),
		MinimumQuantity:   minimumQuantity,
		UnitCost:          valueobject.ZeroMoney(),
		Notes:             notes,
		Active:            true,
	}, nil
}

// AddStock increases the quantity and, when a unit cost is supplied,
// recomputes the weighted average cost over old and new stock
func (i *InventoryItem) AddStock(quantity valueobject.Quantity, unitCost *valueobject.Money) (*InventoryMovement, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Stock-in quantity must be positive")
	}
	if unitCost != nil && unitCost.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Unit cost cannot be negative")
	}

	if unitCost != nil {
		avg, err := valueobject.WeightedAverageCost(i.CurrentQuantity, i.UnitCost, quantity, *unitCost)
		if err != nil {
			return nil, err
		}
		i.UnitCost = avg
	}
	i.CurrentQuantity = i.CurrentQuantity.Add(quantity)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return NewInventoryMovement(i.ID, MovementIn, quantity, unitCost, ""), nil
}

// RemoveStock decreases the quantity, rejecting draws beyond what is
// on the shelf
func (i *InventoryItem) RemoveStock(quantity valueobject.Quantity, notes string) (*InventoryMovement, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Stock-out quantity must be positive")
	}
	if quantity.GreaterThan(i.CurrentQuantity) {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Cannot remove %s %s: only %s in stock", quantity, i.Unit, i.CurrentQuantity))
	}

	remaining, err := i.CurrentQuantity.Subtract(quantity)
	if err != nil {
		return nil, err
	}
	i.CurrentQuantity = remaining
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return NewInventoryMovement(i.ID, MovementOut, quantity, nil, notes), nil
}

// IsLowStock reports whether the item has fallen below its minimum
func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentQuantity.LessThan(i.MinimumQuantity)
}

// Update changes the item's descriptive fields
func (i *InventoryItem) Update(name, unit string, minimumQuantity valueobject.Quantity, notes string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_FAILED", "Item name cannot be empty")
	}
	if unit == "" {
		return shared.NewDomainError("VALIDATION_FAILED", "Item unit cannot be empty")
	}
	if minimumQuantity.IsNegative() {
		return shared.NewDomainError("VALIDATION_FAILED", "Minimum quantity cannot be negative")
	}
	i.Name = name
	i.Unit = unit
	i.MinimumQuantity = minimumQuantity
	i.Notes = notes
	i.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the item from default listings
func (i *InventoryItem) Deactivate() {
	i.Active = false
	i.UpdatedAt = time.Now()
}
