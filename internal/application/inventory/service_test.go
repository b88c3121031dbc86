package inventory

import (
	"context"
	"testing"

	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/infrastructure/persistence"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newInventoryService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.InventoryItemModel{},
		&models.InventoryMovementModel{},
	))

	return NewService(
		persistence.NewGormInventoryItemRepository(db),
		persistence.NewGormInventoryMovementRepository(db),
		persistence.NewUnitOfWork(db),
	)
}

func createPaperItem(t *testing.T, service *Service) *ItemResponse {
	t.Helper()
	item, err := service.Create(context.Background(), ItemRequest{
		Name:            "A4 paper",
		Unit:            "ream",
		MinimumQuantity: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	return item
}

func TestInventoryService_StockIn(t *testing.T) {
	ctx := context.Background()

	t.Run("stock-in reprices the weighted average", func(t *testing.T) {
		service := newInventoryService(t)
		item := createPaperItem(t, service)

		cost1 := decimal.NewFromInt(10)
		resp, err := service.StockIn(ctx, item.ID, StockInRequest{
			Quantity: decimal.NewFromInt(10),
			UnitCost: &cost1,
		})
		require.NoError(t, err)
		assert.Equal(t, "10", resp.CurrentQuantity.String())
		assert.Equal(t, "10", resp.UnitCost.String())

		// 10 @ 10 plus 10 @ 20 averages to 15
		cost2 := decimal.NewFromInt(20)
		resp, err = service.StockIn(ctx, item.ID, StockInRequest{
			Quantity: decimal.NewFromInt(10),
			UnitCost: &cost2,
		})
		require.NoError(t, err)
		assert.Equal(t, "20", resp.CurrentQuantity.String())
		assert.Equal(t, "15", resp.UnitCost.String())
		assert.Equal(t, "300", resp.StockValue.String())
	})

	t.Run("costless stock-in keeps the old average", func(t *testing.T) {
		service := newInventoryService(t)
		item := createPaperItem(t, service)

		cost := decimal.NewFromInt(10)
		_, err := service.StockIn(ctx, item.ID, StockInRequest{
			Quantity: decimal.NewFromInt(10),
			UnitCost: &cost,
		})
		require.NoError(t, err)

		resp, err := service.StockIn(ctx, item.ID, StockInRequest{
			Quantity: decimal.NewFromInt(5),
		})
		require.NoError(t, err)
		assert.Equal(t, "15", resp.CurrentQuantity.String())
		assert.Equal(t, "10", resp.UnitCost.String())
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		service := newInventoryService(t)
		item := createPaperItem(t, service)

		_, err := service.StockIn(ctx, item.ID, StockInRequest{Quantity: decimal.Zero})
		require.ErrorIs(t, err, shared.ErrValidationFailed)
	})
}

func TestInventoryService_StockOut(t *testing.T) {
	ctx := context.Background()

	t.Run("draw reduces quantity and logs a movement", func(t *testing.T) {
		service := newInventoryService(t)
		item := createPaperItem(t, service)

		_, err := service.StockIn(ctx, item.ID, StockInRequest{Quantity: decimal.NewFromInt(10)})
		require.NoError(t, err)

		resp, err := service.StockOut(ctx, item.ID, StockOutRequest{
			Quantity: decimal.NewFromInt(4),
			Notes:    "banner job",
		})
		require.NoError(t, err)
		assert.Equal(t, "6", resp.CurrentQuantity.String())

		movements, total, err := service.ListMovements(ctx, item.ID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, movements, 2)
		assert.Equal(t, "out", movements[0].Direction)
		assert.Equal(t, "banner job", movements[0].Notes)
	})

	t.Run("drawing beyond stock is rejected", func(t *testing.T) {
		service := newInventoryService(t)
		item := createPaperItem(t, service)

		_, err := service.StockIn(ctx, item.ID, StockInRequest{Quantity: decimal.NewFromInt(3)})
		require.NoError(t, err)

		_, err = service.StockOut(ctx, item.ID, StockOutRequest{Quantity: decimal.NewFromInt(5)})
		require.ErrorIs(t, err, shared.ErrInsufficientStock)

		resp, err := service.Get(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "3", resp.CurrentQuantity.String())
	})
}

func TestInventoryService_List(t *testing.T) {
	ctx := context.Background()
	service := newInventoryService(t)

	low := createPaperItem(t, service) // minimum 5, quantity 0
	stocked, err := service.Create(ctx, ItemRequest{
		Name: "Vinyl roll", Unit: "roll", MinimumQuantity: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	_, err = service.StockIn(ctx, stocked.ID, StockInRequest{Quantity: decimal.NewFromInt(8)})
	require.NoError(t, err)

	t.Run("low stock filter", func(t *testing.T) {
		items, total, err := service.List(ctx, ItemListFilter{LowStockOnly: true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, low.ID, items[0].ID)
		assert.True(t, items[0].IsLowStock)
	})

	t.Run("deactivated items hidden by default", func(t *testing.T) {
		require.NoError(t, service.Deactivate(ctx, low.ID))

		items, _, err := service.List(ctx, ItemListFilter{})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, stocked.ID, items[0].ID)

		items, _, err = service.List(ctx, ItemListFilter{IncludeInactive: true})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})
}

func TestInventoryService_Delete(t *testing.T) {
	ctx := context.Background()
	service := newInventoryService(t)
	item := createPaperItem(t, service)

	require.NoError(t, service.Delete(ctx, item.ID))
	_, err := service.Get(ctx, item.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
