package cashbook

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// BalanceSource identifies which balance a movement touched
type BalanceSource string

const (
	SourceCash BalanceSource = "cash"
	SourceBank BalanceSource = "bank"
)

// IsValid returns true if the balance source is valid
func (s BalanceSource) IsValid() bool {
	return s == SourceCash || s == SourceBank
}

// String returns the string representation of BalanceSource
func (s BalanceSource) String() string {
	return string(s)
}

// MovementType classifies a cash movement
type MovementType string

const (
	MovementTypeInitial         MovementType = "initial"
	MovementTypeIncome          MovementType = "income"
	MovementTypeExpense         MovementType = "expense"
	MovementTypeWithdrawal      MovementType = "withdrawal"
	MovementTypeTransferIn      MovementType = "transfer_in"
	MovementTypeTransferOut     MovementType = "transfer_out"
	MovementTypeAdjustment      MovementType = "adjustment"
	MovementTypeInvoicePayment  MovementType = "invoice_payment"
	MovementTypeDebtRepayment   MovementType = "debt_repayment"
	MovementTypeDebtCreated     MovementType = "debt_created"
	MovementTypeSupplierPayment MovementType = "supplier_payment"
)

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeInitial, MovementTypeIncome, MovementTypeExpense,
		MovementTypeWithdrawal, MovementTypeTransferIn, MovementTypeTransferOut,
		MovementTypeAdjustment, MovementTypeInvoicePayment, MovementTypeDebtRepayment,
		MovementTypeDebtCreated, MovementTypeSupplierPayment:
		return true
	}
	return false
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsInflow returns true if this movement type increases its balance.
// Classification is by type, never by the sign of the stored amount.
func (t MovementType) IsInflow() bool {
	switch t {
	case MovementTypeInitial, MovementTypeIncome, MovementTypeTransferIn,
		MovementTypeInvoicePayment, MovementTypeDebtRepayment:
		return true
	}
	return false
}

// IsOutflow returns true if this movement type decreases its balance
func (t MovementType) IsOutflow() bool {
	switch t {
	case MovementTypeExpense, MovementTypeWithdrawal, MovementTypeTransferOut,
		MovementTypeSupplierPayment, MovementTypeDebtCreated:
		return true
	}
	return false
}

// ReferenceType identifies the kind of document a movement originated from
type ReferenceType string

const (
	ReferenceTypeInvoicePayment  ReferenceType = "invoice_payment"
	ReferenceTypeDebtRepayment   ReferenceType = "debt_repayment"
	ReferenceTypeSupplierPayment ReferenceType = "supplier_payment"
)

// CashMovement is an immutable audit record explaining one balance change.
// Corrections are made with new movements, never by editing existing rows.
type CashMovement struct {
	shared.BaseEntity
	MovementType  MovementType
	Source        BalanceSource
	Amount        valueobject.Money // adjustments keep the original sign; other types store the magnitude
	Description   string
	ReferenceType *ReferenceType
	ReferenceID   *uuid.UUID
	MovementDate  time.Time
}

// NewCashMovement creates a new cash movement
func NewCashMovement(movementType MovementType, source BalanceSource, amount valueobject.Money, description string) (*CashMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid cash movement type")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Balance source must be cash or bank")
	}

	return &CashMovement{
		BaseEntity:   shared.NewBaseEntity(),
		MovementType: movementType,
		Source:       source,
		Amount:       amount,
		Description:  description,
		MovementDate: time.Now(),
	}, nil
}

// WithReference links the movement to its originating document
func (m *CashMovement) WithReference(refType ReferenceType, refID uuid.UUID) *CashMovement {
	m.ReferenceType = &refType
	m.ReferenceID = &refID
	return m
}

// WithMovementDate overrides the movement date
func (m *CashMovement) WithMovementDate(date time.Time) *CashMovement {
	m.MovementDate = date
	return m
}

// SignedAmount returns the movement's contribution to its balance:
// positive for inflows, negative for outflows. Adjustment movements keep
// their stored sign.
func (m *CashMovement) SignedAmount() valueobject.Money {
	switch {
	case m.MovementType.IsInflow():
		return m.Amount.Abs()
	case m.MovementType.IsOutflow():
		return m.Amount.Abs().Negate()
	default:
		return m.Amount
	}
}

// DisplayAmount returns the magnitude for presentation; direction comes
// from the movement type
func (m *CashMovement) DisplayAmount() valueobject.Money {
	return m.Amount.Abs()
}
