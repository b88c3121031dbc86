package debt

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/cashbook"
	"github.com/printshop/backend/internal/domain/debt"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/infrastructure/persistence"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type debtServiceFixture struct {
	db       *gorm.DB
	service  *Service
	balances cashbook.CashBalanceRepository
}

func newDebtServiceFixture(t *testing.T) *debtServiceFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.CashBalanceModel{},
		&models.CashMovementModel{},
		&models.DebtModel{},
		&models.DebtRepaymentModel{},
		&models.DebtAccountModel{},
	))

	balances := persistence.NewGormCashBalanceRepository(db)
	service := NewService(
		persistence.NewGormDebtRepository(db),
		persistence.NewGormDebtAccountRepository(db),
		balances,
		persistence.NewGormCashMovementRepository(db),
		persistence.NewUnitOfWork(db),
	)
	return &debtServiceFixture{db: db, service: service, balances: balances}
}

// contendedService builds a second service whose debt loads trigger
// compete exactly once, simulating a writer that lands between the load
// and the guarded save
func (f *debtServiceFixture) contendedService(compete func()) *Service {
	contended := &contendedDebtRepository{
		DebtRepository: persistence.NewGormDebtRepository(f.db),
		compete:        compete,
	}
	return NewService(
		contended,
		persistence.NewGormDebtAccountRepository(f.db),
		f.balances,
		persistence.NewGormCashMovementRepository(f.db),
		persistence.NewUnitOfWork(f.db),
	)
}

type contendedDebtRepository struct {
	debt.DebtRepository
	compete func()
	once    sync.Once
}

func (r *contendedDebtRepository) FindByID(ctx context.Context, id uuid.UUID) (*debt.Debt, error) {
	d, err := r.DebtRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.once.Do(r.compete)
	return d, nil
}

func TestDebtService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("registers receivable without moving cash", func(t *testing.T) {
		f := newDebtServiceFixture(t)

		resp, err := f.service.Create(ctx, CreateDebtRequest{
			DebtorName: "Ali",
			Source:     "cash",
			Amount:     decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		assert.Equal(t, "100", resp.RemainingAmount.String())
		assert.False(t, resp.IsPaid)

		balance, err := f.balances.Get(ctx)
		require.NoError(t, err)
		assert.True(t, balance.CashAmount.IsZero())
		assert.True(t, balance.BankAmount.IsZero())
	})

	t.Run("unknown account is rejected", func(t *testing.T) {
		f := newDebtServiceFixture(t)
		account, err := f.service.CreateAccount(ctx, AccountRequest{Name: "Regulars"})
		require.NoError(t, err)
		require.NoError(t, f.service.DeleteAccount(ctx, account.ID))

		_, err = f.service.Create(ctx, CreateDebtRequest{
			AccountID:  &account.ID,
			DebtorName: "Ali",
			Source:     "cash",
			Amount:     decimal.NewFromInt(50),
		})
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		f := newDebtServiceFixture(t)
		_, err := f.service.Create(ctx, CreateDebtRequest{
			DebtorName: "Ali",
			Source:     "cash",
			Amount:     decimal.Zero,
		})
		require.ErrorIs(t, err, shared.ErrValidationFailed)
	})
}

func TestDebtService_Repay(t *testing.T) {
	ctx := context.Background()

	t.Run("repayment moves the balance and logs a movement", func(t *testing.T) {
		f := newDebtServiceFixture(t)
		created, err := f.service.Create(ctx, CreateDebtRequest{
			DebtorName: "Ali",
			Source:     "cash",
			Amount:     decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		resp, err := f.service.Repay(ctx, created.ID, RepayDebtRequest{
			Amount: decimal.NewFromInt(40),
			Method: "bank",
		})
		require.NoError(t, err)
		assert.Equal(t, "40", resp.PaidAmount.String())
		assert.Equal(t, "60", resp.RemainingAmount.String())
		assert.False(t, resp.IsPaid)
		require.Len(t, resp.Repayments, 1)

		balance, err := f.balances.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "40", balance.BankAmount.Amount().String())
		assert.True(t, balance.CashAmount.IsZero())
	})

	t.Run("full repayment flips the paid flag", func(t *testing.T) {
		f := newDebtServiceFixture(t)
		created, err := f.service.Create(ctx, CreateDebtRequest{
			DebtorName: "Ali",
			Source:     "cash",
			Amount:     decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		resp, err := f.service.Repay(ctx, created.ID, RepayDebtRequest{
			Amount: decimal.NewFromInt(100),
			Method: "cash",
		})
		require.NoError(t, err)
		assert.True(t, resp.IsPaid)
		assert.True(t, resp.RemainingAmount.IsZero())

		_, err = f.service.Repay(ctx, created.ID, RepayDebtRequest{
			Amount: decimal.NewFromInt(1),
			Method: "cash",
		})
		require.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("repayment retries after losing the version race", func(t *testing.T) {
		f := newDebtServiceFixture(t)
		created, err := f.service.Create(ctx, CreateDebtRequest{
			DebtorName: "Ali",
			Source:     "cash",
			Amount:     decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		contended := f.contendedService(func() {
			_, err := f.service.Repay(ctx, created.ID, RepayDebtRequest{
				Amount: decimal.NewFromInt(40),
				Method: "cash",
			})
			require.NoError(t, err)
		})

		resp, err := contended.Repay(ctx, created.ID, RepayDebtRequest{
			Amount: decimal.NewFromInt(60),
			Method: "cash",
		})
		require.NoError(t, err)
		assert.Equal(t, "100", resp.PaidAmount.String())
		assert.True(t, resp.IsPaid)
		require.Len(t, resp.Repayments, 2)

		// both repayments hit the till exactly once
		balance, err := f.balances.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "100", balance.CashAmount.Amount().String())
	})

	t.Run("overpayment is rejected without side effects", func(t *testing.T) {
		f := newDebtServiceFixture(t)
		created, err := f.service.Create(ctx, CreateDebtRequest{
			DebtorName: "Ali",
			Source:     "cash",
			Amount:     decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		_, err = f.service.Repay(ctx, created.ID, RepayDebtRequest{
			Amount: decimal.NewFromInt(150),
			Method: "cash",
		})
		require.ErrorIs(t, err, shared.ErrExceedsRemaining)

		balance, err := f.balances.Get(ctx)
		require.NoError(t, err)
		assert.True(t, balance.CashAmount.IsZero())
	})
}

func TestDebtService_List(t *testing.T) {
	ctx := context.Background()
	f := newDebtServiceFixture(t)

	pastDue := time.Now().Add(-48 * time.Hour)
	_, err := f.service.Create(ctx, CreateDebtRequest{
		DebtorName: "Ali",
		Source:     "cash",
		Amount:     decimal.NewFromInt(100),
		DueDate:    &pastDue,
	})
	require.NoError(t, err)

	settled, err := f.service.Create(ctx, CreateDebtRequest{
		DebtorName: "Omar",
		Source:     "bank",
		Amount:     decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	_, err = f.service.Repay(ctx, settled.ID, RepayDebtRequest{
		Amount: decimal.NewFromInt(50),
		Method: "bank",
	})
	require.NoError(t, err)

	t.Run("overdue filter", func(t *testing.T) {
		list, total, err := f.service.List(ctx, DebtListFilter{OverdueOnly: true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, "Ali", list[0].DebtorName)
		assert.True(t, list[0].IsOverdue)
	})

	t.Run("paid filter", func(t *testing.T) {
		paid := true
		list, _, err := f.service.List(ctx, DebtListFilter{IsPaid: &paid})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Omar", list[0].DebtorName)
	})
}

func TestDebtService_Accounts(t *testing.T) {
	ctx := context.Background()

	t.Run("account lifecycle", func(t *testing.T) {
		f := newDebtServiceFixture(t)
		account, err := f.service.CreateAccount(ctx, AccountRequest{Name: "Regulars", Notes: "tab"})
		require.NoError(t, err)

		renamed, err := f.service.UpdateAccount(ctx, account.ID, AccountRequest{Name: "VIP regulars"})
		require.NoError(t, err)
		assert.Equal(t, "VIP regulars", renamed.Name)

		accounts, err := f.service.ListAccounts(ctx)
		require.NoError(t, err)
		assert.Len(t, accounts, 1)

		require.NoError(t, f.service.DeleteAccount(ctx, account.ID))
	})

	t.Run("account with unpaid debts cannot be deleted", func(t *testing.T) {
		f := newDebtServiceFixture(t)
		account, err := f.service.CreateAccount(ctx, AccountRequest{Name: "Regulars"})
		require.NoError(t, err)

		created, err := f.service.Create(ctx, CreateDebtRequest{
			AccountID:  &account.ID,
			DebtorName: "Ali",
			Source:     "cash",
			Amount:     decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		err = f.service.DeleteAccount(ctx, account.ID)
		require.ErrorIs(t, err, shared.ErrHasUnpaidDebts)

		_, err = f.service.Repay(ctx, created.ID, RepayDebtRequest{
			Amount: decimal.NewFromInt(100),
			Method: "cash",
		})
		require.NoError(t, err)
		require.NoError(t, f.service.DeleteAccount(ctx, account.ID))
	})
}
