package debt

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// RepaymentMethod identifies which balance a repayment lands in
type RepaymentMethod string

const (
	RepaymentMethodCash RepaymentMethod = "cash"
	RepaymentMethodBank RepaymentMethod = "bank"
)

// IsValid returns true if the repayment method is valid
func (m RepaymentMethod) IsValid() bool {
	return m == RepaymentMethodCash || m == RepaymentMethodBank
}

// String returns the string representation of RepaymentMethod
func (m RepaymentMethod) String() string {
	return string(m)
}

// Debt is money lent out of the till that a debtor owes back. Creating
// a debt records the receivable only; it does not move cash. IsPaid is
// true exactly when RemainingAmount reaches zero.
type Debt struct {
	shared.BaseAggregateRoot
	AccountID       *uuid.UUID // optional grouping under a DebtAccount
	DebtorName      string
	Source          RepaymentMethod // which balance the money originally left
	Amount          valueobject.Money
	PaidAmount      valueobject.Money
	RemainingAmount valueobject.Money
	IsPaid          bool
	DebtDate        time.Time
	DueDate         *time.Time
	Notes           string
	Repayments      []DebtRepayment
}

// NewDebt registers a new receivable
func NewDebt(accountID *uuid.UUID, debtorName string, source RepaymentMethod, amount valueobject.Money, debtDate time.Time, dueDate *time.Time, notes string) (*Debt, error) {
	if debtorName == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Debtor name cannot be empty")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Debt source must be cash or bank")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Debt amount must be positive")
	}
	if debtDate.IsZero() {
		debtDate = time.Now()
	}

	d := &Debt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountID:         accountID,
		DebtorName:        debtorName,
		Source:            source,
		Amount:            amount,
		PaidAmount:        valueobject.ZeroMoney(),
		RemainingAmount:   amount,
		DebtDate:          debtDate,
		DueDate:           dueDate,
		Notes:             notes,
		Repayments:        make([]DebtRepayment, 0),
	}

	d.AddDomainEvent(NewDebtCreatedEvent(d))

	return d, nil
}

// Repay records a partial or full repayment against the debt
func (d *Debt) Repay(amount valueobject.Money, method RepaymentMethod, notes string) (*DebtRepayment, error) {
	if d.IsPaid {
		return nil, shared.NewDomainError("INVALID_STATE", "Debt is already fully repaid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Repayment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Repayment method must be cash or bank")
	}
	if amount.GreaterThan(d.RemainingAmount) {
		return nil, shared.NewDomainError("EXCEEDS_REMAINING",
			fmt.Sprintf("Repayment amount %s exceeds remaining amount %s", amount, d.RemainingAmount))
	}

	repayment := NewDebtRepayment(d.ID, amount, method, notes)
	d.Repayments = append(d.Repayments, *repayment)

	d.PaidAmount = d.PaidAmount.Add(amount)
	d.RemainingAmount = d.Amount.Subtract(d.PaidAmount)
	d.IsPaid = d.RemainingAmount.IsZero()
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDebtRepaidEvent(d, repayment))

	return repayment, nil
}

// IsOverdue returns true for unpaid debts past their due date
func (d *Debt) IsOverdue(now time.Time) bool {
	return !d.IsPaid && d.DueDate != nil && d.DueDate.Before(now)
}
