package cashbook

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// CashBalanceRepository persists the singleton balance row
type CashBalanceRepository interface {
	// Get returns the singleton balance, creating it with zeros on first access
	Get(ctx context.Context) (*CashBalance, error)
	// ApplyDelta applies a signed delta to one balance as a single relative
	// update statement, safe under concurrent writers
	ApplyDelta(ctx context.Context, source BalanceSource, delta valueobject.Money) error
	// SetBalances destructively overwrites both balances
	SetBalances(ctx context.Context, cash, bank valueobject.Money) error
}

// MovementFilter narrows movement queries
type MovementFilter struct {
	MovementType *MovementType
	Source       *BalanceSource
	FromDate     *time.Time
	ToDate       *time.Time
	SortBy       string
	SortOrder    string
	Page         int
	PageSize     int
}

// CashMovementRepository persists the append-only movement log
type CashMovementRepository interface {
	Append(ctx context.Context, movement *CashMovement) error
	FindByID(ctx context.Context, id uuid.UUID) (*CashMovement, error)
	FindAll(ctx context.Context, filter MovementFilter) ([]CashMovement, error)
	Count(ctx context.Context, filter MovementFilter) (int64, error)
	// SumSignedBySource returns the signed sum of all movements for a source,
	// used for ledger-vs-balance reconciliation
	SumSignedBySource(ctx context.Context, source BalanceSource) (valueobject.Money, error)
}
