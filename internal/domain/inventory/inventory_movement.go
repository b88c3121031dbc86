package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// MovementDirection marks stock entering or leaving the shelf
type MovementDirection string

const (
	MovementIn  MovementDirection = "in"
	MovementOut MovementDirection = "out"
)

// IsValid returns true if the direction is valid
func (d MovementDirection) IsValid() bool {
	return d == MovementIn || d == MovementOut
}

// InventoryMovement is an append-only record of a stock change. Created
// only through InventoryItem.AddStock / RemoveStock.
type InventoryMovement struct {
	shared.BaseEntity
	ItemID       uuid.UUID
	Direction    MovementDirection
	Quantity     valueobject.Quantity
	UnitCost     *valueobject.Money // set on priced stock-ins only
	Notes        string
	MovementDate time.Time
}

// NewInventoryMovement creates a movement record
func NewInventoryMovement(itemID uuid.UUID, direction MovementDirection, quantity valueobject.Quantity, unitCost *valueobject.Money, notes string) *InventoryMovement {
	return &InventoryMovement{
		BaseEntity:   shared.NewBaseEntity(),
		ItemID:       itemID,
		Direction:    direction,
		Quantity:     quantity,
		UnitCost:     unitCost,
		Notes:        notes,
		MovementDate: time.Now(),
	}
}
