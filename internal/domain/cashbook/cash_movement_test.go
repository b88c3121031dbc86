package cashbook

import (
	"testing"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementType_IsValid(t *testing.T) {
	valid := []MovementType{
		MovementTypeInitial, MovementTypeIncome, MovementTypeExpense,
		MovementTypeWithdrawal, MovementTypeTransferIn, MovementTypeTransferOut,
		MovementTypeAdjustment, MovementTypeInvoicePayment, MovementTypeDebtRepayment,
		MovementTypeDebtCreated, MovementTypeSupplierPayment,
	}
	for _, mt := range valid {
		assert.True(t, mt.IsValid(), mt)
	}
	assert.False(t, MovementType("refund").IsValid())
	assert.False(t, MovementType("").IsValid())
}

func TestMovementType_FlowClassification(t *testing.T) {
	tests := []struct {
		movementType MovementType
		inflow       bool
		outflow      bool
	}{
		{MovementTypeInitial, true, false},
		{MovementTypeIncome, true, false},
		{MovementTypeTransferIn, true, false},
		{MovementTypeInvoicePayment, true, false},
		{MovementTypeDebtRepayment, true, false},
		{MovementTypeExpense, false, true},
		{MovementTypeWithdrawal, false, true},
		{MovementTypeTransferOut, false, true},
		{MovementTypeSupplierPayment, false, true},
		{MovementTypeDebtCreated, false, true},
		{MovementTypeAdjustment, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.movementType), func(t *testing.T) {
			assert.Equal(t, tt.inflow, tt.movementType.IsInflow())
			assert.Equal(t, tt.outflow, tt.movementType.IsOutflow())
		})
	}
}

func TestNewCashMovement_Validation(t *testing.T) {
	_, err := NewCashMovement(MovementType("bogus"), SourceCash, valueobject.NewMoneyFromFloat(10), "")
	assert.Error(t, err)

	_, err = NewCashMovement(MovementTypeIncome, BalanceSource("wallet"), valueobject.NewMoneyFromFloat(10), "")
	assert.Error(t, err)

	m, err := NewCashMovement(MovementTypeIncome, SourceCash, valueobject.NewMoneyFromFloat(10), "sale")
	require.NoError(t, err)
	assert.Equal(t, "sale", m.Description)
	assert.False(t, m.MovementDate.IsZero())
}

func TestCashMovement_SignedAmount(t *testing.T) {
	inflow, err := NewCashMovement(MovementTypeInvoicePayment, SourceBank, valueobject.NewMoneyFromFloat(120), "")
	require.NoError(t, err)
	assert.Equal(t, "120.00", inflow.SignedAmount().String())

	outflow, err := NewCashMovement(MovementTypeSupplierPayment, SourceCash, valueobject.NewMoneyFromFloat(80), "")
	require.NoError(t, err)
	assert.Equal(t, "-80.00", outflow.SignedAmount().String())

	// Adjust stores the original signed value under an income/expense type;
	// the signed contribution must match the stored sign either way.
	negAdjust, err := NewCashMovement(MovementTypeExpense, SourceCash, valueobject.NewMoneyFromFloat(-50), "correction")
	require.NoError(t, err)
	assert.Equal(t, "-50.00", negAdjust.SignedAmount().String())
	assert.Equal(t, "50.00", negAdjust.DisplayAmount().String())
}

func TestCashMovement_WithReference(t *testing.T) {
	m, err := NewCashMovement(MovementTypeInvoicePayment, SourceCash, valueobject.NewMoneyFromFloat(25), "")
	require.NoError(t, err)

	refID := uuid.New()
	m.WithReference(ReferenceTypeInvoicePayment, refID)

	require.NotNil(t, m.ReferenceType)
	assert.Equal(t, ReferenceTypeInvoicePayment, *m.ReferenceType)
	require.NotNil(t, m.ReferenceID)
	assert.Equal(t, refID, *m.ReferenceID)
}

func TestCashBalance_Apply(t *testing.T) {
	b := NewCashBalance()
	require.NoError(t, b.Apply(SourceCash, valueobject.NewMoneyFromFloat(100)))
	require.NoError(t, b.Apply(SourceBank, valueobject.NewMoneyFromFloat(40)))
	require.NoError(t, b.Apply(SourceCash, valueobject.NewMoneyFromFloat(-30)))

	assert.Equal(t, "70.00", b.CashAmount.String())
	assert.Equal(t, "40.00", b.BankAmount.String())
	assert.Equal(t, "110.00", b.Total().String())

	assert.Error(t, b.Apply(BalanceSource("vault"), valueobject.NewMoneyFromFloat(1)))
}

func TestCashBalance_Reset(t *testing.T) {
	b := NewCashBalance()
	require.NoError(t, b.Apply(SourceCash, valueobject.NewMoneyFromFloat(10)))

	b.Reset(valueobject.NewMoneyFromFloat(500), valueobject.NewMoneyFromFloat(1000))
	assert.Equal(t, "500.00", b.CashAmount.String())
	assert.Equal(t, "1000.00", b.BankAmount.String())
}

func TestCashBalance_AmountFor(t *testing.T) {
	b := NewCashBalance()
	require.NoError(t, b.Apply(SourceBank, valueobject.NewMoneyFromFloat(5)))
	assert.Equal(t, "5.00", b.AmountFor(SourceBank).String())
	assert.Equal(t, "0.00", b.AmountFor(SourceCash).String())
}
