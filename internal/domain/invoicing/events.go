package invoicing

import (
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceCreated        = "InvoiceCreated"
	EventTypeInvoicePaymentApplied = "InvoicePaymentApplied"
	EventTypeInvoiceStatusChanged  = "InvoiceStatusChanged"
)

// InvoiceCreatedEvent is raised when an invoice enters the system
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string            `json:"invoice_number"`
	Total         valueobject.Money `json:"total"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
		Total:           inv.Total,
	}
}

// InvoicePaymentAppliedEvent is raised when a payment lands on an invoice
type InvoicePaymentAppliedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber   string            `json:"invoice_number"`
	Amount          valueobject.Money `json:"amount"`
	Method          PaymentMethod     `json:"method"`
	RemainingAmount valueobject.Money `json:"remaining_amount"`
}

// NewInvoicePaymentAppliedEvent creates a new InvoicePaymentAppliedEvent
func NewInvoicePaymentAppliedEvent(inv *Invoice, payment *InvoicePayment) *InvoicePaymentAppliedEvent {
	return &InvoicePaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaymentApplied, AggregateTypeInvoice, inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
		Amount:          payment.Amount,
		Method:          payment.Method,
		RemainingAmount: inv.RemainingAmount,
	}
}

// InvoiceStatusChangedEvent is raised on every workflow transition
type InvoiceStatusChangedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string        `json:"invoice_number"`
	NewStatus     InvoiceStatus `json:"new_status"`
}

// NewInvoiceStatusChangedEvent creates a new InvoiceStatusChangedEvent
func NewInvoiceStatusChangedEvent(inv *Invoice, newStatus InvoiceStatus) *InvoiceStatusChangedEvent {
	return &InvoiceStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceStatusChanged, AggregateTypeInvoice, inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
		NewStatus:       newStatus,
	}
}
