package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/debt"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDebtRepository implements DebtRepository using GORM
type GormDebtRepository struct {
	db *gorm.DB
}

// NewGormDebtRepository creates a new GormDebtRepository
func NewGormDebtRepository(db *gorm.DB) *GormDebtRepository {
	return &GormDebtRepository{db: db}
}

// Save inserts or updates the debt header. Repayments are append-only
// and inserted when missing.
func (r *GormDebtRepository) Save(ctx context.Context, d *debt.Debt) error {
	db := dbFromContext(ctx, r.db)
	model := models.DebtModelFromDomain(d)

	var existing models.DebtModel
	err := db.Select("id").First(&existing, "id = ?", d.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(model).Error
	}
	if err != nil {
		return err
	}

	if err := db.Model(&models.DebtModel{}).Where("id = ?", d.ID).
		Updates(scalarDebtColumns(model)).Error; err != nil {
		return err
	}
	if len(model.Repayments) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Repayments).Error; err != nil {
			return err
		}
	}
	return nil
}

// SaveWithLock updates the paid figures guarded by the version column
// and appends new repayment rows. Returns ErrConcurrencyConflict when
// another writer won.
func (r *GormDebtRepository) SaveWithLock(ctx context.Context, d *debt.Debt, expectedVersion int) error {
	db := dbFromContext(ctx, r.db)
	model := models.DebtModelFromDomain(d)

	result := db.Model(&models.DebtModel{}).
		Where("id = ? AND version = ?", d.ID, expectedVersion).
		Updates(scalarDebtColumns(model))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	if len(model.Repayments) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Repayments).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindByID loads the debt with its repayments
func (r *GormDebtRepository) FindByID(ctx context.Context, id uuid.UUID) (*debt.Debt, error) {
	db := dbFromContext(ctx, r.db)

	var model models.DebtModel
	err := db.Preload("Repayments").First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns debts matching the filter, newest first
func (r *GormDebtRepository) FindAll(ctx context.Context, filter debt.DebtFilter) ([]debt.Debt, error) {
	db := dbFromContext(ctx, r.db)

	var modelList []models.DebtModel
	query := r.applyFilter(db.Model(&models.DebtModel{}), filter).
		Order("debt_date DESC, created_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&modelList).Error; err != nil {
		return nil, err
	}

	debts := make([]debt.Debt, 0, len(modelList))
	for i := range modelList {
		debts = append(debts, *modelList[i].ToDomain())
	}
	return debts, nil
}

// Count returns the number of debts matching the filter
func (r *GormDebtRepository) Count(ctx context.Context, filter debt.DebtFilter) (int64, error) {
	db := dbFromContext(ctx, r.db)

	var count int64
	err := r.applyFilter(db.Model(&models.DebtModel{}), filter).Count(&count).Error
	return count, err
}

// Delete removes the debt and its repayments
func (r *GormDebtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Where("debt_id = ?", id).Delete(&models.DebtRepaymentModel{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.DebtModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountUnpaidByAccount counts open debts attached to an account
func (r *GormDebtRepository) CountUnpaidByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	db := dbFromContext(ctx, r.db)

	var count int64
	err := db.Model(&models.DebtModel{}).
		Where("account_id = ? AND is_paid = ?", accountID, false).
		Count(&count).Error
	return count, err
}

// FindRepayments returns a debt's repayments, oldest first
func (r *GormDebtRepository) FindRepayments(ctx context.Context, debtID uuid.UUID) ([]debt.DebtRepayment, error) {
	db := dbFromContext(ctx, r.db)

	var modelList []models.DebtRepaymentModel
	err := db.Where("debt_id = ?", debtID).
		Order("repayment_date ASC, created_at ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	repayments := make([]debt.DebtRepayment, 0, len(modelList))
	for i := range modelList {
		repayments = append(repayments, *modelList[i].ToDomain())
	}
	return repayments, nil
}

func (r *GormDebtRepository) applyFilter(query *gorm.DB, filter debt.DebtFilter) *gorm.DB {
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.IsPaid != nil {
		query = query.Where("is_paid = ?", *filter.IsPaid)
	}
	if filter.OverdueOnly {
		query = query.Where("is_paid = ? AND due_date IS NOT NULL AND due_date < ?", false, time.Now())
	}
	if filter.Search != "" {
		query = query.Where("debtor_name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.FromDate != nil {
		query = query.Where("debt_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("debt_date <= ?", *filter.ToDate)
	}
	return query
}

func scalarDebtColumns(m *models.DebtModel) map[string]any {
	return map[string]any{
		"account_id":       m.AccountID,
		"debtor_name":      m.DebtorName,
		"source":           m.Source,
		"amount":           m.Amount,
		"paid_amount":      m.PaidAmount,
		"remaining_amount": m.RemainingAmount,
		"is_paid":          m.IsPaid,
		"debt_date":        m.DebtDate,
		"due_date":         m.DueDate,
		"notes":            m.Notes,
		"version":          m.Version,
		"updated_at":       time.Now(),
	}
}
