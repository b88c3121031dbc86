package cashbook

import (
	"context"
	"testing"

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

func newCashbookService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.CashBalanceModel{},
		&models.CashMovementModel{},
	))

	return NewService(
		persistence.NewGormCashBalanceRepository(db),
		persistence.NewGormCashMovementRepository(db),
		persistence.NewUnitOfWork(db),
	)
}

func TestCashbookService_GetBalance(t *testing.T) {
	service := newCashbookService(t)

	balance, err := service.GetBalance(context.Background())
	require.NoError(t, err)
	assert.True(t, balance.CashAmount.IsZero())
	assert.True(t, balance.BankAmount.IsZero())
	assert.True(t, balance.Total.IsZero())
}

func TestCashbookService_SetInitial(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds both balances and logs opening movements", func(t *testing.T) {
		service := newCashbookService(t)

		balance, err := service.SetInitial(ctx, SetInitialRequest{
			CashAmount: decimal.NewFromInt(500),
			BankAmount: decimal.NewFromInt(1500),
		})
		require.NoError(t, err)
		assert.Equal(t, "500", balance.CashAmount.String())
		assert.Equal(t, "1500", balance.BankAmount.String())
		assert.Equal(t, "2000", balance.Total.String())

		movements, total, err := service.ListMovements(ctx, MovementListFilter{MovementType: "initial"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, movements, 2)
	})

	t.Run("reset overwrites rather than accumulates", func(t *testing.T) {
		service := newCashbookService(t)

		_, err := service.SetInitial(ctx, SetInitialRequest{
			CashAmount: decimal.NewFromInt(100),
			BankAmount: decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		balance, err := service.SetInitial(ctx, SetInitialRequest{
			CashAmount: decimal.NewFromInt(50),
			BankAmount: decimal.NewFromInt(60),
		})
		require.NoError(t, err)
		assert.Equal(t, "50", balance.CashAmount.String())
		assert.Equal(t, "60", balance.BankAmount.String())
	})

	t.Run("negative opening balance rejected", func(t *testing.T) {
		service := newCashbookService(t)
		_, err := service.SetInitial(ctx, SetInitialRequest{
			CashAmount: decimal.NewFromInt(-1),
		})
		require.ErrorIs(t, err, shared.ErrValidationFailed)
	})
}

func TestCashbookService_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("moves money between balances", func(t *testing.T) {
		service := newCashbookService(t)
		_, err := service.SetInitial(ctx, SetInitialRequest{
			CashAmount: decimal.NewFromInt(300),
			BankAmount: decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		balance, err := service.Transfer(ctx, TransferRequest{
			From:   "cash",
			To:     "bank",
			Amount: decimal.NewFromInt(120),
		})
		require.NoError(t, err)
		assert.Equal(t, "180", balance.CashAmount.String())
		assert.Equal(t, "220", balance.BankAmount.String())
		assert.Equal(t, "400", balance.Total.String())

		out, _, err := service.ListMovements(ctx, MovementListFilter{MovementType: "transfer_out"})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "cash", out[0].Source)
		assert.Equal(t, "-120", out[0].SignedAmount.String())

		in, _, err := service.ListMovements(ctx, MovementListFilter{MovementType: "transfer_in"})
		require.NoError(t, err)
		require.Len(t, in, 1)
		assert.Equal(t, "bank", in[0].Source)
		assert.Equal(t, "120", in[0].SignedAmount.String())
	})

	t.Run("same account rejected", func(t *testing.T) {
		service := newCashbookService(t)
		_, err := service.Transfer(ctx, TransferRequest{
			From:   "cash",
			To:     "cash",
			Amount: decimal.NewFromInt(10),
		})
		require.ErrorIs(t, err, shared.ErrSameAccountTransfer)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		service := newCashbookService(t)
		_, err := service.Transfer(ctx, TransferRequest{
			From:   "cash",
			To:     "bank",
			Amount: decimal.Zero,
		})
		require.ErrorIs(t, err, shared.ErrValidationFailed)
	})

	t.Run("transfer may drive a balance negative", func(t *testing.T) {
		service := newCashbookService(t)
		balance, err := service.Transfer(ctx, TransferRequest{
			From:   "cash",
			To:     "bank",
			Amount: decimal.NewFromInt(50),
		})
		require.NoError(t, err)
		assert.Equal(t, "-50", balance.CashAmount.String())
		assert.Equal(t, "50", balance.BankAmount.String())
	})
}

func TestCashbookService_Adjust(t *testing.T) {
	ctx := context.Background()

	t.Run("positive adjustment is typed income", func(t *testing.T) {
		service := newCashbookService(t)
		balance, err := service.Adjust(ctx, AdjustRequest{
			Source:      "cash",
			Amount:      decimal.NewFromInt(25),
			Description: "found in drawer",
		})
		require.NoError(t, err)
		assert.Equal(t, "25", balance.CashAmount.String())

		movements, _, err := service.ListMovements(ctx, MovementListFilter{MovementType: "income"})
		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, "25", movements[0].SignedAmount.String())
	})

	t.Run("negative adjustment is typed expense", func(t *testing.T) {
		service := newCashbookService(t)
		balance, err := service.Adjust(ctx, AdjustRequest{
			Source:      "bank",
			Amount:      decimal.NewFromInt(-40),
			Description: "bank fee",
		})
		require.NoError(t, err)
		assert.Equal(t, "-40", balance.BankAmount.String())

		movements, _, err := service.ListMovements(ctx, MovementListFilter{MovementType: "expense"})
		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, "-40", movements[0].SignedAmount.String())
		assert.Equal(t, "40", movements[0].Amount.String())
	})

	t.Run("zero adjustment is typed income and leaves balance unchanged", func(t *testing.T) {
		service := newCashbookService(t)
		balance, err := service.Adjust(ctx, AdjustRequest{
			Source:      "cash",
			Amount:      decimal.Zero,
			Description: "till counted, no difference",
		})
		require.NoError(t, err)
		assert.True(t, balance.CashAmount.IsZero())

		movements, _, err := service.ListMovements(ctx, MovementListFilter{MovementType: "income"})
		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.True(t, movements[0].SignedAmount.IsZero())
	})
}

func TestCashbookService_ListMovements(t *testing.T) {
	ctx := context.Background()
	service := newCashbookService(t)

	_, err := service.Adjust(ctx, AdjustRequest{
		Source: "cash", Amount: decimal.NewFromInt(10), Description: "a",
	})
	require.NoError(t, err)
	_, err = service.Adjust(ctx, AdjustRequest{
		Source: "bank", Amount: decimal.NewFromInt(20), Description: "b",
	})
	require.NoError(t, err)

	t.Run("source filter", func(t *testing.T) {
		movements, total, err := service.ListMovements(ctx, MovementListFilter{Source: "bank"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, movements, 1)
		assert.Equal(t, "b", movements[0].Description)
	})

	t.Run("unknown movement type rejected", func(t *testing.T) {
		_, _, err := service.ListMovements(ctx, MovementListFilter{MovementType: "teleport"})
		require.ErrorIs(t, err, shared.ErrValidationFailed)
	})
}

func TestCashbookService_Reconcile(t *testing.T) {
	ctx := context.Background()
	service := newCashbookService(t)

	_, err := service.SetInitial(ctx, SetInitialRequest{
		CashAmount: decimal.NewFromInt(100),
		BankAmount: decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	_, err = service.Transfer(ctx, TransferRequest{
		From: "cash", To: "bank", Amount: decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	result, err := service.Reconcile(ctx)
	require.NoError(t, err)
	assert.True(t, result["cash"])
	assert.True(t, result["bank"])
}
