package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/printshop/backend/internal/domain/cashbook"
	"github.com/printshop/backend/internal/domain/catalog"
	"github.com/printshop/backend/internal/domain/debt"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormReportRepository_GetDashboardSummary(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	ctx := context.Background()
	now := time.Now()

	balanceRepo := NewGormCashBalanceRepository(db)
	require.NoError(t, balanceRepo.ApplyDelta(ctx, cashbook.SourceCash, valueobject.NewMoneyFromFloat(500)))
	require.NoError(t, balanceRepo.ApplyDelta(ctx, cashbook.SourceBank, valueobject.NewMoneyFromFloat(1500)))

	movementRepo := NewGormCashMovementRepository(db)
	income, err := cashbook.NewCashMovement(cashbook.MovementTypeIncome,
		cashbook.SourceCash, valueobject.NewMoneyFromFloat(300), "walk-in sales")
	require.NoError(t, err)
	require.NoError(t, movementRepo.Append(ctx, income))

	expense, err := cashbook.NewCashMovement(cashbook.MovementTypeExpense,
		cashbook.SourceCash, valueobject.NewMoneyFromFloat(120), "paper order")
	require.NoError(t, err)
	require.NoError(t, movementRepo.Append(ctx, expense))

	invoiceRepo := NewGormInvoiceRepository(db)
	require.NoError(t, invoiceRepo.Save(ctx, buildTestInvoice(t, "INV-20260831-00001")))

	debtRepo := NewGormDebtRepository(db)
	pastDue := now.Add(-72 * time.Hour)
	d, err := debt.NewDebt(nil, "Overdue debtor", debt.RepaymentMethodCash,
		valueobject.NewMoneyFromFloat(80), now, &pastDue, "")
	require.NoError(t, err)
	require.NoError(t, debtRepo.Save(ctx, d))

	supplier := createTestSupplier(t, db, "Paper mill")
	supplierRepo := NewGormSupplierRepository(db)
	require.NoError(t, supplierRepo.AccruePayable(ctx, supplier.ID, valueobject.NewMoneyFromFloat(60)))

	summary, err := repo.GetDashboardSummary(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, "500", summary.CashBalance.String())
	assert.Equal(t, "1500", summary.BankBalance.String())
	assert.Equal(t, "2000", summary.TotalBalance.String())
	assert.Equal(t, "50", summary.InvoiceReceivables.String())
	assert.Equal(t, int64(1), summary.UnpaidInvoices)
	assert.Equal(t, "80", summary.DebtReceivables.String())
	assert.Equal(t, int64(1), summary.OverdueDebts)
	assert.Equal(t, "60", summary.SupplierPayables.String())
	assert.Equal(t, "300", summary.MonthIncome.String())
	assert.Equal(t, "120", summary.MonthExpense.String())
	assert.Equal(t, "180", summary.MonthProfit.String())
}

func TestGormReportRepository_GetMovementTotals(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReportRepository(db)
	movementRepo := NewGormCashMovementRepository(db)
	ctx := context.Background()

	for _, amount := range []float64{100, 50} {
		mv, err := cashbook.NewCashMovement(cashbook.MovementTypeIncome,
			cashbook.SourceCash, valueobject.NewMoneyFromFloat(amount), "")
		require.NoError(t, err)
		require.NoError(t, movementRepo.Append(ctx, mv))
	}
	expense, err := cashbook.NewCashMovement(cashbook.MovementTypeExpense,
		cashbook.SourceBank, valueobject.NewMoneyFromFloat(70), "")
	require.NoError(t, err)
	require.NoError(t, movementRepo.Append(ctx, expense))

	totals, err := repo.GetMovementTotals(ctx,
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, totals, 2)

	byType := map[string]string{}
	for _, total := range totals {
		byType[total.MovementType] = total.Total.String()
	}
	assert.Equal(t, "150", byType["income"])
	assert.Equal(t, "70", byType["expense"])
}

func TestGormProductRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product, err := catalog.NewProduct("Business cards 300gsm", valueobject.NewMoneyFromFloat(0.5), "piece")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	t.Run("round-trip", func(t *testing.T) {
		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Business cards 300gsm", found.Name)
		assert.Equal(t, "0.5", found.SalePrice.Amount().String())
	})

	t.Run("search and active filter", func(t *testing.T) {
		count, err := repo.Count(ctx, true, "cards")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, product.ID))
		_, err := repo.FindByID(ctx, product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
