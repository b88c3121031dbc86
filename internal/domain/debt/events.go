package debt

import (
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeDebt = "Debt"

// Event type constants
const (
	EventTypeDebtCreated = "DebtCreated"
	EventTypeDebtRepaid  = "DebtRepaid"
)

// DebtCreatedEvent is raised when a receivable is registered
type DebtCreatedEvent struct {
	shared.BaseDomainEvent
	DebtorName string            `json:"debtor_name"`
	Amount     valueobject.Money `json:"amount"`
}

// NewDebtCreatedEvent creates a new DebtCreatedEvent
func NewDebtCreatedEvent(d *Debt) *DebtCreatedEvent {
	return &DebtCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtCreated, AggregateTypeDebt, d.ID),
		DebtorName:      d.DebtorName,
		Amount:          d.Amount,
	}
}

// DebtRepaidEvent is raised on every repayment
type DebtRepaidEvent struct {
	shared.BaseDomainEvent
	DebtorName      string            `json:"debtor_name"`
	Amount          valueobject.Money `json:"amount"`
	RemainingAmount valueobject.Money `json:"remaining_amount"`
	FullyRepaid     bool              `json:"fully_repaid"`
}

// NewDebtRepaidEvent creates a new DebtRepaidEvent
func NewDebtRepaidEvent(d *Debt, repayment *DebtRepayment) *DebtRepaidEvent {
	return &DebtRepaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtRepaid, AggregateTypeDebt, d.ID),
		DebtorName:      d.DebtorName,
		Amount:          repayment.Amount,
		RemainingAmount: d.RemainingAmount,
		FullyRepaid:     d.IsPaid,
	}
}
