package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/inventory"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// InventoryItemModel is the persistence model for the InventoryItem aggregate root.
type InventoryItemModel struct {
	AggregateModel
	Name            string               `gorm:"type:varchar(200);not null;index"`
	Unit            string               `gorm:"type:varchar(50);not null"`
	CurrentQuantity valueobject.Quantity `gorm:"type:decimal(18,4);not null;default:0"`
	MinimumQuantity valueobject.Quantity `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost        valueobject.Money    `gorm:"type:decimal(18,2);not null;default:0"`
	Notes           string               `gorm:"type:varchar(500)"`
	Active          bool                 `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem
func (m *InventoryItemModel) ToDomain() *inventory.InventoryItem {
	return &inventory.InventoryItem{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Unit:              m.Unit,
		CurrentQuantity:   m.CurrentQuantity,
		MinimumQuantity:   m.MinimumQuantity,
		UnitCost:          m.UnitCost,
		Notes:             m.Notes,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain InventoryItem
func (m *InventoryItemModel) FromDomain(item *inventory.InventoryItem) {
	m.FromDomainAggregateRoot(item.BaseAggregateRoot)
	m.Name = item.Name
	m.Unit = item.Unit
	m.CurrentQuantity = item.CurrentQuantity
	m.MinimumQuantity = item.MinimumQuantity
	m.UnitCost = item.UnitCost
	m.Notes = item.Notes
	m.Active = item.Active
}

// InventoryMovementModel is the persistence model for the append-only stock log.
type InventoryMovementModel struct {
	BaseModel
	ItemID       uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Direction    inventory.MovementDirection `gorm:"type:varchar(5);not null"`
	Quantity     valueobject.Quantity        `gorm:"type:decimal(18,4);not null"`
	UnitCost     *valueobject.Money          `gorm:"type:decimal(18,2)"`
	Notes        string                      `gorm:"type:varchar(500)"`
	MovementDate time.Time                   `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (InventoryMovementModel) TableName() string {
	return "inventory_movements"
}

// ToDomain converts the persistence model to a domain InventoryMovement
func (m *InventoryMovementModel) ToDomain() *inventory.InventoryMovement {
	return &inventory.InventoryMovement{
		BaseEntity:   m.BaseModel.ToDomain(),
		ItemID:       m.ItemID,
		Direction:    m.Direction,
		Quantity:     m.Quantity,
		UnitCost:     m.UnitCost,
		Notes:        m.Notes,
		MovementDate: m.MovementDate,
	}
}

// FromDomain populates the persistence model from a domain InventoryMovement
func (m *InventoryMovementModel) FromDomain(mv *inventory.InventoryMovement) {
	m.FromDomainBaseEntity(mv.BaseEntity)
	m.ItemID = mv.ItemID
	m.Direction = mv.Direction
	m.Quantity = mv.Quantity
	m.UnitCost = mv.UnitCost
	m.Notes = mv.Notes
	m.MovementDate = mv.MovementDate
}
