package cashbook

import (
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeCashBalance = "CashBalance"

// Event type constants
const (
	EventTypeCashTransferred   = "CashTransferred"
	EventTypeCashAdjusted      = "CashAdjusted"
	EventTypeInitialBalanceSet = "InitialBalanceSet"
)

// CashTransferredEvent is raised when money moves between cash and bank
type CashTransferredEvent struct {
	shared.BaseDomainEvent
	From   BalanceSource     `json:"from"`
	To     BalanceSource     `json:"to"`
	Amount valueobject.Money `json:"amount"`
}

// NewCashTransferredEvent creates a new CashTransferredEvent
func NewCashTransferredEvent(balance *CashBalance, from, to BalanceSource, amount valueobject.Money) *CashTransferredEvent {
	return &CashTransferredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCashTransferred, AggregateTypeCashBalance, balance.ID),
		From:            from,
		To:              to,
		Amount:          amount,
	}
}

// CashAdjustedEvent is raised when a manual adjustment changes a balance
type CashAdjustedEvent struct {
	shared.BaseDomainEvent
	Source       BalanceSource     `json:"source"`
	SignedAmount valueobject.Money `json:"signed_amount"`
	Description  string            `json:"description"`
}

// NewCashAdjustedEvent creates a new CashAdjustedEvent
func NewCashAdjustedEvent(balance *CashBalance, source BalanceSource, signedAmount valueobject.Money, description string) *CashAdjustedEvent {
	return &CashAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCashAdjusted, AggregateTypeCashBalance, balance.ID),
		Source:          source,
		SignedAmount:    signedAmount,
		Description:     description,
	}
}

// InitialBalanceSetEvent is raised when balances are destructively seeded
type InitialBalanceSetEvent struct {
	shared.BaseDomainEvent
	CashAmount valueobject.Money `json:"cash_amount"`
	BankAmount valueobject.Money `json:"bank_amount"`
}

// NewInitialBalanceSetEvent creates a new InitialBalanceSetEvent
func NewInitialBalanceSetEvent(balance *CashBalance) *InitialBalanceSetEvent {
	return &InitialBalanceSetEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInitialBalanceSet, AggregateTypeCashBalance, balance.ID),
		CashAmount:      balance.CashAmount,
		BankAmount:      balance.BankAmount,
	}
}
