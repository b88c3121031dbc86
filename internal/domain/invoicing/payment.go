package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// InvoicePayment is an immutable record of money collected against an
// invoice. Validation happens in Invoice.ApplyPayment; payments are only
// created through the aggregate.
type InvoicePayment struct {
	shared.BaseEntity
	InvoiceID   uuid.UUID
	Amount      valueobject.Money
	Method      PaymentMethod
	PaymentType PaymentType
	PaymentDate time.Time
	Notes       string
}

// NewInvoicePayment creates a payment record
func NewInvoicePayment(invoiceID uuid.UUID, amount valueobject.Money, method PaymentMethod, paymentType PaymentType, paymentDate time.Time, notes string) *InvoicePayment {
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}
	return &InvoicePayment{
		BaseEntity:  shared.NewBaseEntity(),
		InvoiceID:   invoiceID,
		Amount:      amount,
		Method:      method,
		PaymentType: paymentType,
		PaymentDate: paymentDate,
		Notes:       notes,
	}
}
