package persistence

import (
	"testing"

	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
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
		&models.CustomerModel{},
		&models.ProductModel{},
		&models.InventoryItemModel{},
		&models.InventoryMovementModel{},
	)
	require.NoError(t, err)

	return db
}
