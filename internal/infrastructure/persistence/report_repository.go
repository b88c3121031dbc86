package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/printshop/backend/internal/domain/cashbook"
	"github.com/printshop/backend/internal/domain/invoicing"
	"github.com/printshop/backend/internal/domain/report"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements ReportRepository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// GetDashboardSummary aggregates the dashboard figures in one pass
func (r *GormReportRepository) GetDashboardSummary(ctx context.Context, now time.Time) (*report.DashboardSummary, error) {
	db := dbFromContext(ctx, r.db)

	var balance models.CashBalanceModel
	if err := db.First(&balance).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cash := balance.CashAmount.Amount()
	bank := balance.BankAmount.Amount()

	var invoiceReceivables decimal.NullDecimal
	if err := db.Model(&models.InvoiceModel{}).
		Select("COALESCE(SUM(remaining_amount), 0)").
		Where("remaining_amount > 0 AND status <> ?", invoicing.StatusCancelled).
		Scan(&invoiceReceivables).Error; err != nil {
		return nil, err
	}

	var unpaidInvoices int64
	if err := db.Model(&models.InvoiceModel{}).
		Where("remaining_amount > 0 AND status <> ?", invoicing.StatusCancelled).
		Count(&unpaidInvoices).Error; err != nil {
		return nil, err
	}

	var debtReceivables decimal.NullDecimal
	if err := db.Model(&models.DebtModel{}).
		Select("COALESCE(SUM(remaining_amount), 0)").
		Where("is_paid = ?", false).
		Scan(&debtReceivables).Error; err != nil {
		return nil, err
	}

	var overdueDebts int64
	if err := db.Model(&models.DebtModel{}).
		Where("is_paid = ? AND due_date IS NOT NULL AND due_date < ?", false, now).
		Count(&overdueDebts).Error; err != nil {
		return nil, err
	}

	var supplierPayables decimal.NullDecimal
	if err := db.Model(&models.SupplierModel{}).
		Select("COALESCE(SUM(total_debt), 0)").
		Where("active = ?", true).
		Scan(&supplierPayables).Error; err != nil {
		return nil, err
	}

	var lowStock int64
	if err := db.Model(&models.InventoryItemModel{}).
		Where("active = ? AND current_quantity < minimum_quantity", true).
		Count(&lowStock).Error; err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	monthIncome, err := r.sumMovements(db, []cashbook.MovementType{
		cashbook.MovementTypeIncome, cashbook.MovementTypeInvoicePayment,
		cashbook.MovementTypeDebtRepayment,
	}, monthStart, now)
	if err != nil {
		return nil, err
	}

	monthExpense, err := r.sumMovements(db, []cashbook.MovementType{
		cashbook.MovementTypeExpense, cashbook.MovementTypeWithdrawal,
		cashbook.MovementTypeSupplierPayment,
	}, monthStart, now)
	if err != nil {
		return nil, err
	}

	return &report.DashboardSummary{
		CashBalance:        cash,
		BankBalance:        bank,
		TotalBalance:       cash.Add(bank),
		InvoiceReceivables: invoiceReceivables.Decimal,
		DebtReceivables:    debtReceivables.Decimal,
		SupplierPayables:   supplierPayables.Decimal,
		UnpaidInvoices:     unpaidInvoices,
		OverdueDebts:       overdueDebts,
		LowStockItems:      lowStock,
		MonthIncome:        monthIncome,
		MonthExpense:       monthExpense,
		MonthProfit:        monthIncome.Sub(monthExpense),
		GeneratedAt:        now,
	}, nil
}

// GetMovementTotals groups cash movements by type over a period
func (r *GormReportRepository) GetMovementTotals(ctx context.Context, from, to time.Time) ([]report.MovementTotal, error) {
	db := dbFromContext(ctx, r.db)

	var totals []report.MovementTotal
	err := db.Model(&models.CashMovementModel{}).
		Select("movement_type, COALESCE(SUM(ABS(amount)), 0) AS total, COUNT(*) AS count").
		Where("movement_date BETWEEN ? AND ?", from, to).
		Group("movement_type").
		Order("movement_type ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *GormReportRepository) sumMovements(db *gorm.DB, types []cashbook.MovementType, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := db.Model(&models.CashMovementModel{}).
		Select("COALESCE(SUM(ABS(amount)), 0)").
		Where("movement_type IN ? AND movement_date BETWEEN ? AND ?", types, from, to).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
