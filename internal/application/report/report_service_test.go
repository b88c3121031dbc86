package report

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/printshop/backend/internal/domain/report"
	"github.com/printshop/backend/internal/infrastructure/persistence"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// memoryCache is a test double for the Redis cache
type memoryCache struct {
	mu        sync.Mutex
	dashboard *report.DashboardSummary
	hits      int
	writes    int
}

func (c *memoryCache) GetDashboard(ctx context.Context) (*report.DashboardSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dashboard != nil {
		c.hits++
	}
	return c.dashboard, nil
}

func (c *memoryCache) SetDashboard(ctx context.Context, summary *report.DashboardSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dashboard = summary
	c.writes++
	return nil
}

func (c *memoryCache) GetMovementTotals(ctx context.Context, from, to time.Time) ([]report.MovementTotal, error) {
	return nil, nil
}

func (c *memoryCache) SetMovementTotals(ctx context.Context, from, to time.Time, totals []report.MovementTotal) error {
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dashboard = nil
	return nil
}

func newReportFixture(t *testing.T) (report.ReportRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.CashBalanceModel{},
		&models.CashMovementModel{},
		&models.InvoiceModel{},
		&models.InvoiceItemModel{},
		&models.ItemCostModel{},
		&models.InvoicePaymentModel{},
		&models.DebtModel{},
		&models.DebtRepaymentModel{},
		&models.DebtAccountModel{},
		&models.SupplierModel{},
		&models.SupplierPaymentModel{},
		&models.InventoryItemModel{},
		&models.InventoryMovementModel{},
	))
	return persistence.NewGormReportRepository(db), db
}

func TestReportService_GetDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("without cache reads straight through", func(t *testing.T) {
		repo, _ := newReportFixture(t)
		service := NewService(repo, nil, nil)

		summary, err := service.GetDashboard(ctx)
		require.NoError(t, err)
		assert.True(t, summary.TotalBalance.IsZero())
	})

	t.Run("second read hits the cache", func(t *testing.T) {
		repo, _ := newReportFixture(t)
		cache := &memoryCache{}
		service := NewService(repo, cache, nil)

		_, err := service.GetDashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.writes)

		_, err = service.GetDashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, cache.hits)
		assert.Equal(t, 1, cache.writes)
	})

	t.Run("invalidate forces a recompute", func(t *testing.T) {
		repo, _ := newReportFixture(t)
		cache := &memoryCache{}
		service := NewService(repo, cache, nil)

		_, err := service.GetDashboard(ctx)
		require.NoError(t, err)
		require.NoError(t, service.InvalidateCache(ctx))

		_, err = service.GetDashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, cache.writes)
	})
}

func TestReportService_GetMovementTotals(t *testing.T) {
	ctx := context.Background()
	repo, _ := newReportFixture(t)
	service := NewService(repo, nil, nil)

	// zero range defaults to the current month
	totals, err := service.GetMovementTotals(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, totals)
}
