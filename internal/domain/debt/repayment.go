package debt

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// DebtRepayment is an immutable record of money collected against a
// debt. Created only through Debt.Repay.
type DebtRepayment struct {
	shared.BaseEntity
	DebtID        uuid.UUID
	Amount        valueobject.Money
	Method        RepaymentMethod
	RepaymentDate time.Time
	Notes         string
}

// NewDebtRepayment creates a repayment record
func NewDebtRepayment(debtID uuid.UUID, amount valueobject.Money, method RepaymentMethod, notes string) *DebtRepayment {
	return &DebtRepayment{
		BaseEntity:    shared.NewBaseEntity(),
		DebtID:        debtID,
		Amount:        amount,
		Method:        method,
		RepaymentDate: time.Now(),
		Notes:         notes,
	}
}
