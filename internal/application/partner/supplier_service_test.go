package partner

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/cashbook"
	domainpartner "github.com/printshop/backend/internal/domain/partner"
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

type partnerServiceFixture struct {
	db        *gorm.DB
	suppliers *SupplierService
	customers *CustomerService
	balances  cashbook.CashBalanceRepository
	movements cashbook.CashMovementRepository
}

func newPartnerServiceFixture(t *testing.T) *partnerServiceFixture {
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
		&models.SupplierModel{},
		&models.SupplierPaymentModel{},
		&models.CustomerModel{},
	))

	supplierRepo := persistence.NewGormSupplierRepository(db)
	invoiceRepo := persistence.NewGormInvoiceRepository(db)
	balances := persistence.NewGormCashBalanceRepository(db)
	movements := persistence.NewGormCashMovementRepository(db)
	uow := persistence.NewUnitOfWork(db)

	return &partnerServiceFixture{
		db:        db,
		suppliers: NewSupplierService(supplierRepo, invoiceRepo, balances, movements, uow),
		customers: NewCustomerService(persistence.NewGormCustomerRepository(db)),
		balances:  balances,
		movements: movements,
	}
}

func (f *partnerServiceFixture) createSupplier(t *testing.T) *SupplierResponse {
	t.Helper()
	resp, err := f.suppliers.Create(context.Background(), SupplierRequest{
		Name: "Print House",
		Type: "printer",
	})
	require.NoError(t, err)
	return resp
}

// accrue simulates the payable an invoice cost would have accrued
func (f *partnerServiceFixture) accrue(t *testing.T, supplierID uuid.UUID, amount int64) {
	t.Helper()
	err := f.db.Model(&models.SupplierModel{}).
		Where("id = ?", supplierID).
		Update("total_debt", gorm.Expr("total_debt + ?", amount)).Error
	require.NoError(t, err)
}

func TestSupplierService_CRUD(t *testing.T) {
	ctx := context.Background()
	f := newPartnerServiceFixture(t)

	created := f.createSupplier(t)
	assert.Equal(t, "Print House", created.Name)
	assert.True(t, created.Active)
	assert.True(t, created.TotalDebt.IsZero())

	t.Run("update", func(t *testing.T) {
		updated, err := f.suppliers.Update(ctx, created.ID, SupplierRequest{
			Name:  "Print House Ltd",
			Type:  "printer",
			Phone: "0501234567",
		})
		require.NoError(t, err)
		assert.Equal(t, "Print House Ltd", updated.Name)
		assert.Equal(t, "0501234567", updated.Phone)
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		_, err := f.suppliers.Create(ctx, SupplierRequest{Name: "X", Type: "plumber"})
		require.ErrorIs(t, err, shared.ErrValidationFailed)
	})

	t.Run("deactivated suppliers hidden by default", func(t *testing.T) {
		require.NoError(t, f.suppliers.Deactivate(ctx, created.ID))

		list, total, err := f.suppliers.List(ctx, SupplierListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, list)

		list, _, err = f.suppliers.List(ctx, SupplierListFilter{IncludeInactive: true})
		require.NoError(t, err)
		assert.Len(t, list, 1)

		require.NoError(t, f.suppliers.Activate(ctx, created.ID))
	})
}

func TestSupplierService_AddPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("payment releases payable and moves the balance", func(t *testing.T) {
		f := newPartnerServiceFixture(t)
		supplier := f.createSupplier(t)
		f.accrue(t, supplier.ID, 200)

		resp, err := f.suppliers.AddPayment(ctx, supplier.ID, SupplierPaymentRequest{
			Amount: decimal.NewFromInt(80),
			Method: "cash",
		})
		require.NoError(t, err)
		assert.Equal(t, "120", resp.TotalDebt.String())

		balance, err := f.balances.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "-80", balance.CashAmount.Amount().String())

		movementType := cashbook.MovementTypeSupplierPayment
		movements, err := f.movements.FindAll(ctx, cashbook.MovementFilter{
			MovementType: &movementType, Page: 1, PageSize: 10,
		})
		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, "80", movements[0].DisplayAmount().Amount().String())

		payments, err := f.suppliers.ListPayments(ctx, supplier.ID)
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, "cash", payments[0].Method)
	})

	t.Run("non-positive payment rejected", func(t *testing.T) {
		f := newPartnerServiceFixture(t)
		supplier := f.createSupplier(t)

		_, err := f.suppliers.AddPayment(ctx, supplier.ID, SupplierPaymentRequest{
			Amount: decimal.Zero,
			Method: "cash",
		})
		require.ErrorIs(t, err, shared.ErrValidationFailed)
	})
}

func TestSupplierService_OutstandingPayable(t *testing.T) {
	ctx := context.Background()
	f := newPartnerServiceFixture(t)
	supplier := f.createSupplier(t)

	resp, err := f.suppliers.OutstandingPayable(ctx, supplier.ID)
	require.NoError(t, err)
	assert.True(t, resp.InSync)
	assert.True(t, resp.Outstanding.IsZero())
}

func TestCustomerService(t *testing.T) {
	ctx := context.Background()

	t.Run("lifecycle", func(t *testing.T) {
		f := newPartnerServiceFixture(t)
		created, err := f.customers.Create(ctx, CustomerRequest{Name: "Acme", Phone: "123"})
		require.NoError(t, err)
		assert.True(t, created.Active)

		updated, err := f.customers.Update(ctx, created.ID, CustomerRequest{Name: "Acme Corp"})
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", updated.Name)

		list, total, err := f.customers.List(ctx, CustomerListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, list, 1)

		require.NoError(t, f.customers.Delete(ctx, created.ID))
		_, err = f.customers.Get(ctx, created.ID)
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("customer with invoices cannot be deleted", func(t *testing.T) {
		f := newPartnerServiceFixture(t)
		created, err := f.customers.Create(ctx, CustomerRequest{Name: "Acme"})
		require.NoError(t, err)

		// reference the customer from an invoice row
		inv := &models.InvoiceModel{
			InvoiceNumber: "INV-20250101-00001",
			CustomerID:    &created.ID,
			CustomerName:  "Acme",
			Status:        "new",
			InvoiceDate:   time.Now(),
		}
		inv.ID = uuid.New()
		inv.CreatedAt = time.Now()
		inv.UpdatedAt = time.Now()
		inv.Version = 1
		require.NoError(t, f.db.Create(inv).Error)

		err = f.customers.Delete(ctx, created.ID)
		require.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

var _ domainpartner.SupplierRepository = (*persistence.GormSupplierRepository)(nil)
