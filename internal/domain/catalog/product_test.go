package catalog

import (
	"testing"

	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	_, err := NewProduct("", valueobject.NewMoneyFromFloat(10), "pc")
	assert.Error(t, err)

	_, err = NewProduct("Business cards (100)", valueobject.NewMoneyFromFloat(-1), "box")
	assert.Error(t, err)

	p, err := NewProduct("Business cards (100)", valueobject.NewMoneyFromFloat(25), "box")
	require.NoError(t, err)
	assert.True(t, p.Active)
	assert.Equal(t, "25.00", p.SalePrice.String())
}

func TestProduct_Update(t *testing.T) {
	p, err := NewProduct("Banner", valueobject.NewMoneyFromFloat(80), "pc")
	require.NoError(t, err)

	require.NoError(t, p.Update("Vinyl banner", valueobject.NewMoneyFromFloat(85), "pc"))
	assert.Equal(t, "Vinyl banner", p.Name)
	assert.Equal(t, "85.00", p.SalePrice.String())

	assert.Error(t, p.Update("", valueobject.NewMoneyFromFloat(85), "pc"))

	p.Deactivate()
	assert.False(t, p.Active)
}
