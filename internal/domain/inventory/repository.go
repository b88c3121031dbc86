package inventory

import (
	"context"

	"github.com/google/uuid"
)

// ItemFilter narrows inventory item queries
type ItemFilter struct {
	Active       *bool
	LowStockOnly bool
	Search       string
	Page         int
	PageSize     int
}

// InventoryItemRepository persists stock items
type InventoryItemRepository interface {
	Save(ctx context.Context, item *InventoryItem) error
	// SaveWithLock updates quantity and cost guarded by the version column
	SaveWithLock(ctx context.Context, item *InventoryItem, expectedVersion int) error
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	FindAll(ctx context.Context, filter ItemFilter) ([]InventoryItem, error)
	Count(ctx context.Context, filter ItemFilter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// InventoryMovementRepository persists the append-only stock log
type InventoryMovementRepository interface {
	Append(ctx context.Context, movement *InventoryMovement) error
	FindByItem(ctx context.Context, itemID uuid.UUID, page, pageSize int) ([]InventoryMovement, error)
	CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error)
}
