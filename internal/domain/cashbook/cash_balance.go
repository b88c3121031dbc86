package cashbook

import (
	"time"

	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// CashBalance is the single source of truth for cash-on-hand and bank
// balances. It is a singleton aggregate: one row, created lazily with zero
// balances and never deleted. Every change to it must be paired with an
// appended CashMovement in the same transaction.
type CashBalance struct {
	shared.BaseAggregateRoot
	CashAmount valueobject.Money
	BankAmount valueobject.Money
}

// NewCashBalance creates the singleton balance with zero amounts
func NewCashBalance() *CashBalance {
	return &CashBalance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CashAmount:        valueobject.ZeroMoney(),
		BankAmount:        valueobject.ZeroMoney(),
	}
}

// AmountFor returns the balance for the given source
func (b *CashBalance) AmountFor(source BalanceSource) valueobject.Money {
	if source == SourceBank {
		return b.BankAmount
	}
	return b.CashAmount
}

// Apply adds a signed delta to the balance for the given source.
// Balances may go negative; the business tolerates temporary overdraw
// and surfaces it through reporting rather than blocking the operation.
func (b *CashBalance) Apply(source BalanceSource, delta valueobject.Money) error {
	if !source.IsValid() {
		return shared.NewDomainError("INVALID_SOURCE", "Balance source must be cash or bank")
	}
	if source == SourceBank {
		b.BankAmount = b.BankAmount.Add(delta)
	} else {
		b.CashAmount = b.CashAmount.Add(delta)
	}
	b.UpdatedAt = time.Now()
	return nil
}

// Reset overwrites both balances. This is a destructive seed operation:
// prior movements are left untouched, so ledger reconciliation is only
// guaranteed from this point forward.
func (b *CashBalance) Reset(cash, bank valueobject.Money) {
	b.CashAmount = cash
	b.BankAmount = bank
	b.UpdatedAt = time.Now()
}

// Total returns cash plus bank
func (b *CashBalance) Total() valueobject.Money {
	return b.CashAmount.Add(b.BankAmount)
}
