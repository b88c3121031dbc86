package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/inventory"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInventoryItemRepository implements InventoryItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// Save inserts or updates an inventory item
func (r *GormInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	db := dbFromContext(ctx, r.db)

	model := &models.InventoryItemModel{}
	model.FromDomain(item)
	return db.Save(model).Error
}

// SaveWithLock updates quantity and cost guarded by the version column.
// Returns ErrConcurrencyConflict when another writer won.
func (r *GormInventoryItemRepository) SaveWithLock(ctx context.Context, item *inventory.InventoryItem, expectedVersion int) error {
	db := dbFromContext(ctx, r.db)

	model := &models.InventoryItemModel{}
	model.FromDomain(item)

	result := db.Model(&models.InventoryItemModel{}).
		Where("id = ? AND version = ?", item.ID, expectedVersion).
		Updates(map[string]any{
			"name":             model.Name,
			"unit":             model.Unit,
			"current_quantity": model.CurrentQuantity,
			"minimum_quantity": model.MinimumQuantity,
			"unit_cost":        model.UnitCost,
			"notes":            model.Notes,
			"active":           model.Active,
			"version":          model.Version,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds an inventory item by its ID
func (r *GormInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	db := dbFromContext(ctx, r.db)

	var model models.InventoryItemModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns inventory items matching the filter, alphabetically
func (r *GormInventoryItemRepository) FindAll(ctx context.Context, filter inventory.ItemFilter) ([]inventory.InventoryItem, error) {
	db := dbFromContext(ctx, r.db)

	var modelList []models.InventoryItemModel
	query := r.applyFilter(db.Model(&models.InventoryItemModel{}), filter).Order("name ASC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&modelList).Error; err != nil {
		return nil, err
	}

	items := make([]inventory.InventoryItem, 0, len(modelList))
	for i := range modelList {
		items = append(items, *modelList[i].ToDomain())
	}
	return items, nil
}

// Count returns the number of items matching the filter
func (r *GormInventoryItemRepository) Count(ctx context.Context, filter inventory.ItemFilter) (int64, error) {
	db := dbFromContext(ctx, r.db)

	var count int64
	err := r.applyFilter(db.Model(&models.InventoryItemModel{}), filter).Count(&count).Error
	return count, err
}

// Delete removes an item and its movement log
func (r *GormInventoryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Where("item_id = ?", id).Delete(&models.InventoryMovementModel{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.InventoryItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormInventoryItemRepository) applyFilter(query *gorm.DB, filter inventory.ItemFilter) *gorm.DB {
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.LowStockOnly {
		query = query.Where("current_quantity < minimum_quantity")
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

// GormInventoryMovementRepository implements InventoryMovementRepository using GORM
type GormInventoryMovementRepository struct {
	db *gorm.DB
}

// NewGormInventoryMovementRepository creates a new GormInventoryMovementRepository
func NewGormInventoryMovementRepository(db *gorm.DB) *GormInventoryMovementRepository {
	return &GormInventoryMovementRepository{db: db}
}

// Append inserts a movement into the append-only log
func (r *GormInventoryMovementRepository) Append(ctx context.Context, movement *inventory.InventoryMovement) error {
	db := dbFromContext(ctx, r.db)

	model := &models.InventoryMovementModel{}
	model.FromDomain(movement)
	return db.Create(model).Error
}

// FindByItem returns an item's movements, newest first
func (r *GormInventoryMovementRepository) FindByItem(ctx context.Context, itemID uuid.UUID, page, pageSize int) ([]inventory.InventoryMovement, error) {
	db := dbFromContext(ctx, r.db)

	query := db.Where("item_id = ?", itemID).
		Order("movement_date DESC, created_at DESC")

	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var modelList []models.InventoryMovementModel
	if err := query.Find(&modelList).Error; err != nil {
		return nil, err
	}

	movements := make([]inventory.InventoryMovement, 0, len(modelList))
	for i := range modelList {
		movements = append(movements, *modelList[i].ToDomain())
	}
	return movements, nil
}

// CountByItem returns the number of movements logged for an item
func (r *GormInventoryMovementRepository) CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	db := dbFromContext(ctx, r.db)

	var count int64
	err := db.Model(&models.InventoryMovementModel{}).
		Where("item_id = ?", itemID).
		Count(&count).Error
	return count, err
}
