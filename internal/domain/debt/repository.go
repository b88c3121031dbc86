package debt

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DebtFilter narrows debt list queries
type DebtFilter struct {
	AccountID   *uuid.UUID
	IsPaid      *bool
	OverdueOnly bool
	Search      string // matches debtor name
	FromDate    *time.Time
	ToDate      *time.Time
	Page        int
	PageSize    int
}

// DebtRepository persists debts with their repayments
type DebtRepository interface {
	Save(ctx context.Context, debt *Debt) error
	// SaveWithLock updates paid/remaining guarded by the version column
	// and returns ErrConcurrencyConflict when another writer won
	SaveWithLock(ctx context.Context, debt *Debt, expectedVersion int) error
	FindByID(ctx context.Context, id uuid.UUID) (*Debt, error)
	FindAll(ctx context.Context, filter DebtFilter) ([]Debt, error)
	Count(ctx context.Context, filter DebtFilter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountUnpaidByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
	FindRepayments(ctx context.Context, debtID uuid.UUID) ([]DebtRepayment, error)
}

// DebtAccountRepository persists debt account groupings
type DebtAccountRepository interface {
	Save(ctx context.Context, account *DebtAccount) error
	FindByID(ctx context.Context, id uuid.UUID) (*DebtAccount, error)
	FindAll(ctx context.Context) ([]DebtAccount, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
