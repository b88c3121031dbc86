package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/invoicing"
	"github.com/printshop/backend/internal/domain/partner"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestSupplier(t *testing.T, db *gorm.DB, name string) *partner.Supplier {
	t.Helper()

	supplier, err := partner.NewSupplier(name, partner.SupplierTypePrinter, "0901234567", "")
	require.NoError(t, err)
	require.NoError(t, NewGormSupplierRepository(db).Save(context.Background(), supplier))
	return supplier
}

func TestGormSupplierRepository_Payable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSupplierRepository(db)
	ctx := context.Background()

	supplier := createTestSupplier(t, db, "Offset printing house")

	t.Run("accrue and release move the cached payable", func(t *testing.T) {
		require.NoError(t, repo.AccruePayable(ctx, supplier.ID, valueobject.NewMoneyFromFloat(200)))
		require.NoError(t, repo.AccruePayable(ctx, supplier.ID, valueobject.NewMoneyFromFloat(50)))
		require.NoError(t, repo.ReleasePayable(ctx, supplier.ID, valueobject.NewMoneyFromFloat(80)))

		found, err := repo.FindByID(ctx, supplier.ID)
		require.NoError(t, err)
		assert.Equal(t, "170", found.TotalDebt.Amount().String())
	})

	t.Run("accrue on unknown supplier fails", func(t *testing.T) {
		err := repo.AccruePayable(ctx, uuid.New(), valueobject.NewMoneyFromFloat(10))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save never touches the cached payable", func(t *testing.T) {
		found, err := repo.FindByID(ctx, supplier.ID)
		require.NoError(t, err)

		require.NoError(t, found.Update("Offset printing house", partner.SupplierTypePrinter, "0907654321", "new phone"))
		require.NoError(t, repo.Save(ctx, found))

		reloaded, err := repo.FindByID(ctx, supplier.ID)
		require.NoError(t, err)
		assert.Equal(t, "170", reloaded.TotalDebt.Amount().String())
		assert.Equal(t, "0907654321", reloaded.Phone)
	})
}

func TestGormSupplierRepository_OutstandingPayable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSupplierRepository(db)
	ctx := context.Background()

	supplier := createTestSupplier(t, db, "Lamination service")

	// Two unpaid external costs and one already-settled cost
	seedCost := func(amount float64, isPaid bool) {
		cost, err := invoicing.NewItemCost(&supplier.ID, supplier.Name,
			invoicing.CostTypeOutsourcing, valueobject.NewMoneyFromFloat(amount), false, "")
		require.NoError(t, err)
		if isPaid {
			require.NoError(t, cost.MarkPaid())
		}
		cost.InvoiceItemID = uuid.New()

		model := &models.ItemCostModel{}
		model.FromDomain(cost)
		require.NoError(t, db.Create(model).Error)
	}
	seedCost(120, false)
	seedCost(30, false)
	seedCost(999, true)

	payment, err := partner.NewSupplierPayment(supplier.ID, valueobject.NewMoneyFromFloat(50),
		partner.PaymentMethodBank, "")
	require.NoError(t, err)
	require.NoError(t, repo.AddPayment(ctx, payment))

	// 120 + 30 - 50 = 100; the paid cost is excluded
	outstanding, err := repo.OutstandingPayable(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, "100", outstanding.Amount().String())

	payments, err := repo.FindPayments(ctx, supplier.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "50", payments[0].Amount.Amount().String())
}

func TestGormSupplierRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSupplierRepository(db)
	ctx := context.Background()

	active := createTestSupplier(t, db, "Active printer")
	_ = active

	inactive := createTestSupplier(t, db, "Closed shop")
	inactive.Deactivate()
	require.NoError(t, repo.Save(ctx, inactive))

	t.Run("active filter", func(t *testing.T) {
		isActive := true
		suppliers, err := repo.FindAll(ctx, partner.SupplierFilter{Active: &isActive})
		require.NoError(t, err)
		require.Len(t, suppliers, 1)
		assert.Equal(t, "Active printer", suppliers[0].Name)
	})

	t.Run("search by name", func(t *testing.T) {
		count, err := repo.Count(ctx, partner.SupplierFilter{Search: "Closed"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormCustomerRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	customer, err := partner.NewCustomer("Corner cafe", "0912345678", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, customer))

	t.Run("round-trip", func(t *testing.T) {
		found, err := repo.FindByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "Corner cafe", found.Name)
	})

	t.Run("active-only list hides deactivated customers", func(t *testing.T) {
		customer.Deactivate()
		require.NoError(t, repo.Save(ctx, customer))

		customers, err := repo.FindAll(ctx, true, "", 0, 0)
		require.NoError(t, err)
		assert.Empty(t, customers)

		all, err := repo.FindAll(ctx, false, "", 0, 0)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("counts referencing invoices", func(t *testing.T) {
		count, err := repo.CountInvoices(ctx, customer.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
