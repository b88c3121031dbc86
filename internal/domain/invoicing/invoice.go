package invoicing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the workflow status of an invoice
type InvoiceStatus string

const (
	StatusNew        InvoiceStatus = "new"
	StatusInProgress InvoiceStatus = "in_progress"
	StatusReady      InvoiceStatus = "ready"
	StatusDelivered  InvoiceStatus = "delivered"
	StatusCancelled  InvoiceStatus = "cancelled"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo enforces the linear production workflow:
// new -> in_progress -> ready -> delivered, with cancellation allowed
// from any non-cancelled state. Cancelled is terminal.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	if s == StatusCancelled {
		return false
	}
	if target == StatusCancelled {
		return true
	}
	switch s {
	case StatusNew:
		return target == StatusInProgress
	case StatusInProgress:
		return target == StatusReady
	case StatusReady:
		return target == StatusDelivered
	}
	return false
}

// IsTerminal returns true for statuses that end the workflow
func (s InvoiceStatus) IsTerminal() bool {
	return s == StatusCancelled
}

// PaymentMethod identifies which balance a payment settles into
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

// PaymentType classifies how a payment relates to the invoice total
type PaymentType string

const (
	PaymentTypeDeposit PaymentType = "deposit"
	PaymentTypePartial PaymentType = "partial"
	PaymentTypeFull    PaymentType = "full"
)

// IsValid returns true if the payment type is valid
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeDeposit || t == PaymentTypePartial || t == PaymentTypeFull
}

// Invoice is the aggregate root for the invoice financial lifecycle.
// All monetary totals are derived: Subtotal from items, Total from
// Subtotal minus Discount, TotalCost from item costs, Profit from
// Total minus TotalCost, RemainingAmount from Total minus PaidAmount
// (floored at zero).
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber   string
	CustomerID      *uuid.UUID // nil means a walk-in cash customer
	CustomerName    string
	Status          InvoiceStatus
	Items           []InvoiceItem
	Payments        []InvoicePayment
	Discount        valueobject.Money
	Subtotal        valueobject.Money
	Total           valueobject.Money
	TotalCost       valueobject.Money
	Profit          valueobject.Money
	PaidAmount      valueobject.Money
	RemainingAmount valueobject.Money
	InvoiceDate     time.Time
	DeliveryDate    *time.Time
	Notes           string
	CancelledAt     *time.Time
}

// NewInvoice creates a new invoice in the "new" status with no items.
// Items are added with AddItem; the caller must add at least one before
// persisting.
func NewInvoice(invoiceNumber string, customerID *uuid.UUID, customerName string, invoiceDate time.Time) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Status:            StatusNew,
		Items:             make([]InvoiceItem, 0),
		Payments:          make([]InvoicePayment, 0),
		Discount:          valueobject.ZeroMoney(),
		Subtotal:          valueobject.ZeroMoney(),
		Total:             valueobject.ZeroMoney(),
		TotalCost:         valueobject.ZeroMoney(),
		Profit:            valueobject.ZeroMoney(),
		PaidAmount:        valueobject.ZeroMoney(),
		RemainingAmount:   valueobject.ZeroMoney(),
		InvoiceDate:       invoiceDate,
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// AddItem appends a line item and recomputes invoice totals
func (inv *Invoice) AddItem(item *InvoiceItem) error {
	if inv.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot add items to a cancelled invoice")
	}
	item.InvoiceID = inv.ID
	inv.Items = append(inv.Items, *item)
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()
	return nil
}

// ReplaceItems swaps the entire item set and recomputes totals.
// The caller is responsible for releasing supplier payables accrued by
// the outgoing items' costs before discarding them.
func (inv *Invoice) ReplaceItems(items []InvoiceItem) error {
	if inv.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit items on a cancelled invoice")
	}
	if len(items) == 0 {
		return shared.NewDomainError("VALIDATION_FAILED", "Invoice requires at least one item")
	}
	for i := range items {
		items[i].InvoiceID = inv.ID
	}
	inv.Items = items
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// ApplyDiscount sets the order-level discount and recomputes totals
func (inv *Invoice) ApplyDiscount(discount valueobject.Money) error {
	if discount.IsNegative() {
		return shared.NewDomainError("VALIDATION_FAILED", "Discount cannot be negative")
	}
	if discount.GreaterThan(inv.Subtotal) {
		return shared.NewDomainError("VALIDATION_FAILED", "Discount cannot exceed subtotal")
	}
	inv.Discount = discount
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()
	return nil
}

// ApplyPayment records a payment against the invoice and updates
// paid/remaining amounts. Overpayment is rejected uniformly here.
func (inv *Invoice) ApplyPayment(amount valueobject.Money, method PaymentMethod, paymentType PaymentType, paymentDate time.Time, notes string) (*InvoicePayment, error) {
	if inv.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot apply payment to a cancelled invoice")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Payment method must be cash or bank")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Payment type must be deposit, partial or full")
	}
	if amount.GreaterThan(inv.RemainingAmount) {
		return nil, shared.NewDomainError("EXCEEDS_REMAINING",
			fmt.Sprintf("Payment amount %s exceeds remaining amount %s", amount, inv.RemainingAmount))
	}

	payment := NewInvoicePayment(inv.ID, amount, method, paymentType, paymentDate, notes)
	inv.Payments = append(inv.Payments, *payment)

	inv.PaidAmount = inv.PaidAmount.Add(amount)
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoicePaymentAppliedEvent(inv, payment))

	return payment, nil
}

// ChangeStatus moves the invoice through the production workflow
func (inv *Invoice) ChangeStatus(target InvoiceStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("VALIDATION_FAILED", "Invalid invoice status")
	}
	if target == inv.Status {
		return nil
	}
	if !inv.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot move invoice from %s to %s", inv.Status, target))
	}

	now := time.Now()
	inv.Status = target
	if target == StatusCancelled {
		inv.CancelledAt = &now
	}
	inv.UpdatedAt = now
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, target))

	return nil
}

// CanDelete returns true only when no payment has ever been applied.
// Paid invoices must be cancelled, never hard-deleted.
func (inv *Invoice) CanDelete() bool {
	return len(inv.Payments) == 0 && inv.PaidAmount.IsZero()
}

// SetCustomer updates the customer reference
func (inv *Invoice) SetCustomer(customerID *uuid.UUID, customerName string) {
	inv.CustomerID = customerID
	inv.CustomerName = customerName
	inv.UpdatedAt = time.Now()
}

// SetDeliveryDate updates the expected delivery date
func (inv *Invoice) SetDeliveryDate(date *time.Time) {
	inv.DeliveryDate = date
	inv.UpdatedAt = time.Now()
}

// SetInvoiceDate updates the invoice date
func (inv *Invoice) SetInvoiceDate(date time.Time) {
	if !date.IsZero() {
		inv.InvoiceDate = date
		inv.UpdatedAt = time.Now()
	}
}

// SetNotes updates the free-text notes
func (inv *Invoice) SetNotes(notes string) {
	inv.Notes = notes
	inv.UpdatedAt = time.Now()
}

// IsFullyPaid returns true when nothing remains to collect
func (inv *Invoice) IsFullyPaid() bool {
	return inv.RemainingAmount.IsZero() && inv.PaidAmount.GreaterThanOrEqual(inv.Total)
}

// ExternalUnpaidCosts returns all costs that accrue a supplier payable
func (inv *Invoice) ExternalUnpaidCosts() []ItemCost {
	var costs []ItemCost
	for i := range inv.Items {
		for _, c := range inv.Items[i].Costs {
			if c.AccruesPayable() {
				costs = append(costs, c)
			}
		}
	}
	return costs
}

// recalculateTotals rebuilds every derived figure from the item set.
// RemainingAmount is floored at zero so a reduced total on an already
// partially paid invoice never reports a negative receivable.
func (inv *Invoice) recalculateTotals() {
	subtotal := valueobject.ZeroMoney()
	totalCost := valueobject.ZeroMoney()
	for i := range inv.Items {
		subtotal = subtotal.Add(inv.Items[i].TotalPrice)
		totalCost = totalCost.Add(inv.Items[i].TotalCost)
	}

	inv.Subtotal = subtotal
	inv.Total = subtotal.Subtract(inv.Discount)
	inv.TotalCost = totalCost
	inv.Profit = inv.Total.Subtract(inv.TotalCost)

	remaining := inv.Total.Subtract(inv.PaidAmount)
	if remaining.IsNegative() {
		remaining = valueobject.ZeroMoney()
	}
	inv.RemainingAmount = remaining
}
