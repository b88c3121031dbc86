package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/debt"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormDebtRepository_SaveAndRepay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)
	ctx := context.Background()

	d, err := debt.NewDebt(nil, "Long-time customer", debt.RepaymentMethodCash,
		valueobject.NewMoneyFromFloat(100), time.Now(), nil, "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, d))

	t.Run("repayment persists through the version guard", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, d.ID)
		require.NoError(t, err)

		expected := loaded.Version
		_, err = loaded.Repay(valueobject.NewMoneyFromFloat(40), debt.RepaymentMethodCash, "")
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithLock(ctx, loaded, expected))

		found, err := repo.FindByID(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, "40", found.PaidAmount.Amount().String())
		assert.Equal(t, "60", found.RemainingAmount.Amount().String())
		assert.False(t, found.IsPaid)
		require.Len(t, found.Repayments, 1)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, d.ID)
		require.NoError(t, err)

		_, err = loaded.Repay(valueobject.NewMoneyFromFloat(10), debt.RepaymentMethodBank, "")
		require.NoError(t, err)

		err = repo.SaveWithLock(ctx, loaded, loaded.Version+5)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("full repayment flips the paid flag", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, d.ID)
		require.NoError(t, err)

		expected := loaded.Version
		_, err = loaded.Repay(loaded.RemainingAmount, debt.RepaymentMethodCash, "settled")
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithLock(ctx, loaded, expected))

		found, err := repo.FindByID(ctx, d.ID)
		require.NoError(t, err)
		assert.True(t, found.IsPaid)
		assert.True(t, found.RemainingAmount.IsZero())
	})
}

func TestGormDebtRepository_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	pastDue := time.Now().Add(-48 * time.Hour)

	open, err := debt.NewDebt(&accountID, "Alice", debt.RepaymentMethodCash,
		valueobject.NewMoneyFromFloat(50), time.Now(), &pastDue, "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, open))

	settled, err := debt.NewDebt(&accountID, "Bob", debt.RepaymentMethodBank,
		valueobject.NewMoneyFromFloat(30), time.Now(), nil, "")
	require.NoError(t, err)
	_, err = settled.Repay(valueobject.NewMoneyFromFloat(30), debt.RepaymentMethodBank, "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, settled))

	t.Run("is paid filter", func(t *testing.T) {
		paid := true
		debts, err := repo.FindAll(ctx, debt.DebtFilter{IsPaid: &paid})
		require.NoError(t, err)
		require.Len(t, debts, 1)
		assert.Equal(t, "Bob", debts[0].DebtorName)
	})

	t.Run("overdue only", func(t *testing.T) {
		debts, err := repo.FindAll(ctx, debt.DebtFilter{OverdueOnly: true})
		require.NoError(t, err)
		require.Len(t, debts, 1)
		assert.Equal(t, "Alice", debts[0].DebtorName)
	})

	t.Run("search by debtor name", func(t *testing.T) {
		count, err := repo.Count(ctx, debt.DebtFilter{Search: "Ali"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unpaid count guards account deletion", func(t *testing.T) {
		count, err := repo.CountUnpaidByAccount(ctx, accountID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormDebtAccountRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtAccountRepository(db)
	ctx := context.Background()

	account, err := debt.NewDebtAccount("Regulars", "walk-in customers with a tab")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, account))

	t.Run("find and list", func(t *testing.T) {
		found, err := repo.FindByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, "Regulars", found.Name)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, account.ID))
		_, err := repo.FindByID(ctx, account.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
