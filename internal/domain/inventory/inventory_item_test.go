package inventory

import (
	"testing"

	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(t *testing.T) *InventoryItem {
	t.Helper()
	item, err := NewInventoryItem("A4 paper", "ream", valueobject.NewQuantityFromFloat(5), "")
	require.NoError(t, err)
	return item
}

func TestNewInventoryItem_Validation(t *testing.T) {
	_, err := NewInventoryItem("", "ream", valueobject.ZeroQuantity(), "")
	assert.Error(t, err)

	_, err = NewInventoryItem("A4 paper", "", valueobject.ZeroQuantity(), "")
	assert.Error(t, err)

	item := newItem(t)
	assert.True(t, item.Active)
	assert.True(t, item.CurrentQuantity.IsZero())
	assert.Equal(t, "0.00", item.UnitCost.String())
}

func TestInventoryItem_AddStock_WeightedAverage(t *testing.T) {
	item := newItem(t)

	cost5 := valueobject.NewMoneyFromFloat(5)
	m, err := item.AddStock(valueobject.NewQuantityFromFloat(10), &cost5)
	require.NoError(t, err)
	assert.Equal(t, MovementIn, m.Direction)
	assert.Equal(t, "5.00", item.UnitCost.String())

	// 10 @ 5.00 blended with 10 @ 7.00 averages to 6.00
	cost7 := valueobject.NewMoneyFromFloat(7)
	_, err = item.AddStock(valueobject.NewQuantityFromFloat(10), &cost7)
	require.NoError(t, err)
	assert.Equal(t, "6.00", item.UnitCost.String())
	assert.Equal(t, "20", item.CurrentQuantity.String())
}

func TestInventoryItem_AddStock_WithoutCostKeepsAverage(t *testing.T) {
	item := newItem(t)
	cost := valueobject.NewMoneyFromFloat(4)
	_, err := item.AddStock(valueobject.NewQuantityFromFloat(3), &cost)
	require.NoError(t, err)

	_, err = item.AddStock(valueobject.NewQuantityFromFloat(2), nil)
	require.NoError(t, err)
	assert.Equal(t, "4.00", item.UnitCost.String())
	assert.Equal(t, "5", item.CurrentQuantity.String())
}

func TestInventoryItem_AddStock_Validation(t *testing.T) {
	item := newItem(t)

	_, err := item.AddStock(valueobject.ZeroQuantity(), nil)
	assert.Error(t, err)

	neg := valueobject.NewMoneyFromFloat(-1)
	_, err = item.AddStock(valueobject.NewQuantityFromFloat(1), &neg)
	assert.Error(t, err)
}

func TestInventoryItem_RemoveStock(t *testing.T) {
	item := newItem(t)
	_, err := item.AddStock(valueobject.NewQuantityFromFloat(10), nil)
	require.NoError(t, err)

	m, err := item.RemoveStock(valueobject.NewQuantityFromFloat(4), "banner job")
	require.NoError(t, err)
	assert.Equal(t, MovementOut, m.Direction)
	assert.Equal(t, "banner job", m.Notes)
	assert.Equal(t, "6", item.CurrentQuantity.String())
}

func TestInventoryItem_RemoveStock_InsufficientStock(t *testing.T) {
	item := newItem(t)
	_, err := item.AddStock(valueobject.NewQuantityFromFloat(3), nil)
	require.NoError(t, err)

	_, err = item.RemoveStock(valueobject.NewQuantityFromFloat(3.5), "")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Equal(t, "3", item.CurrentQuantity.String())

	_, err = item.RemoveStock(valueobject.ZeroQuantity(), "")
	assert.Error(t, err)

	// Removing exactly what is on the shelf is allowed
	_, err = item.RemoveStock(valueobject.NewQuantityFromFloat(3), "")
	require.NoError(t, err)
	assert.True(t, item.CurrentQuantity.IsZero())
}

func TestInventoryItem_FractionalUnits(t *testing.T) {
	item, err := NewInventoryItem("Vinyl roll", "meter", valueobject.NewQuantityFromFloat(2), "")
	require.NoError(t, err)

	cost := valueobject.NewMoneyFromFloat(3)
	_, err = item.AddStock(valueobject.NewQuantityFromFloat(12.5), &cost)
	require.NoError(t, err)

	_, err = item.RemoveStock(valueobject.NewQuantityFromFloat(0.75), "")
	require.NoError(t, err)
	assert.Equal(t, "11.75", item.CurrentQuantity.String())
}

func TestInventoryItem_IsLowStock(t *testing.T) {
	item := newItem(t) // minimum 5
	assert.True(t, item.IsLowStock())

	_, err := item.AddStock(valueobject.NewQuantityFromFloat(5), nil)
	require.NoError(t, err)
	assert.False(t, item.IsLowStock(), "at minimum is not low")

	_, err = item.RemoveStock(valueobject.NewQuantityFromFloat(0.5), "")
	require.NoError(t, err)
	assert.True(t, item.IsLowStock())
}

func TestInventoryItem_StockChangesIncrementVersion(t *testing.T) {
	item := newItem(t)
	before := item.Version

	_, err := item.AddStock(valueobject.NewQuantityFromFloat(1), nil)
	require.NoError(t, err)
	_, err = item.RemoveStock(valueobject.NewQuantityFromFloat(1), "")
	require.NoError(t, err)

	assert.Equal(t, before+2, item.Version)
}
