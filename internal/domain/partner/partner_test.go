package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplierType_IsValid(t *testing.T) {
	for _, st := range []SupplierType{SupplierTypePrinter, SupplierTypeDesigner, SupplierTypeService, SupplierTypeMaterial, SupplierTypeOther} {
		assert.True(t, st.IsValid(), st)
	}
	assert.False(t, SupplierType("wholesaler").IsValid())
}

func TestNewSupplier(t *testing.T) {
	_, err := NewSupplier("", SupplierTypePrinter, "", "")
	assert.Error(t, err)

	_, err = NewSupplier("PrintWorks", SupplierType("bogus"), "", "")
	assert.Error(t, err)

	s, err := NewSupplier("PrintWorks", SupplierTypePrinter, "09-123", "large format")
	require.NoError(t, err)
	assert.True(t, s.Active)
	assert.Equal(t, "0.00", s.TotalDebt.String())
}

func TestSupplier_UpdateAndActivation(t *testing.T) {
	s, err := NewSupplier("PrintWorks", SupplierTypePrinter, "", "")
	require.NoError(t, err)

	require.NoError(t, s.Update("PrintWorks Ltd", SupplierTypeService, "09-456", ""))
	assert.Equal(t, "PrintWorks Ltd", s.Name)
	assert.Equal(t, SupplierTypeService, s.Type)

	assert.Error(t, s.Update("", SupplierTypeService, "", ""))

	s.Deactivate()
	assert.False(t, s.Active)
	s.Activate()
	assert.True(t, s.Active)
}

func TestSupplier_ValidatePayment(t *testing.T) {
	s, err := NewSupplier("PrintWorks", SupplierTypePrinter, "", "")
	require.NoError(t, err)

	assert.Error(t, s.ValidatePayment(valueobject.ZeroMoney()))
	assert.Error(t, s.ValidatePayment(valueobject.NewMoneyFromFloat(-5)))
	assert.NoError(t, s.ValidatePayment(valueobject.NewMoneyFromFloat(5)))
	// Cached payable may lag; overshooting it is allowed
	assert.NoError(t, s.ValidatePayment(valueobject.NewMoneyFromFloat(9999)))
}

func TestNewSupplierPayment(t *testing.T) {
	id := uuid.New()

	_, err := NewSupplierPayment(id, valueobject.ZeroMoney(), PaymentMethodCash, "")
	assert.Error(t, err)

	_, err = NewSupplierPayment(id, valueobject.NewMoneyFromFloat(10), PaymentMethod("cheque"), "")
	assert.Error(t, err)

	p, err := NewSupplierPayment(id, valueobject.NewMoneyFromFloat(10), PaymentMethodBank, "settle June")
	require.NoError(t, err)
	assert.Equal(t, id, p.SupplierID)
	assert.False(t, p.PaymentDate.IsZero())
}

func TestCustomer(t *testing.T) {
	_, err := NewCustomer("", "", "")
	assert.Error(t, err)

	c, err := NewCustomer("Daw Mya", "09-789", "")
	require.NoError(t, err)
	assert.True(t, c.Active)

	require.NoError(t, c.Update("Daw Mya Mya", "09-789", "regular"))
	assert.Equal(t, "Daw Mya Mya", c.Name)
	assert.Error(t, c.Update("", "", ""))

	c.Deactivate()
	assert.False(t, c.Active)
}
