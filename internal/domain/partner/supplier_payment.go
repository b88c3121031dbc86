package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// PaymentMethod identifies which balance a supplier payment leaves from
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodBank PaymentMethod = "bank"
)

// IsValid returns true if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash || m == PaymentMethodBank
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// SupplierPayment is an immutable record of money paid out to a
// supplier against the outstanding payable
type SupplierPayment struct {
	shared.BaseEntity
	SupplierID  uuid.UUID
	Amount      valueobject.Money
	Method      PaymentMethod
	PaymentDate time.Time
	Notes       string
}

// NewSupplierPayment creates a supplier payment record
func NewSupplierPayment(supplierID uuid.UUID, amount valueobject.Money, method PaymentMethod, notes string) (*SupplierPayment, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Payment method must be cash or bank")
	}
	return &SupplierPayment{
		BaseEntity:  shared.NewBaseEntity(),
		SupplierID:  supplierID,
		Amount:      amount,
		Method:      method,
		PaymentDate: time.Now(),
		Notes:       notes,
	}, nil
}
