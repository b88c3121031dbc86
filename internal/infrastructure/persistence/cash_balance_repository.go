package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/printshop/backend/internal/domain/cashbook"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCashBalanceRepository implements CashBalanceRepository using GORM.
// The balance table holds exactly one row, created lazily.
type GormCashBalanceRepository struct {
	db *gorm.DB
}

// NewGormCashBalanceRepository creates a new GormCashBalanceRepository
func NewGormCashBalanceRepository(db *gorm.DB) *GormCashBalanceRepository {
	return &GormCashBalanceRepository{db: db}
}

// Get returns the singleton balance, creating it with zeros on first access
func (r *GormCashBalanceRepository) Get(ctx context.Context) (*cashbook.CashBalance, error) {
	db := dbFromContext(ctx, r.db)

	var model models.CashBalanceModel
	err := db.First(&model).Error
	if err == nil {
		return model.ToDomain(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	balance := cashbook.NewCashBalance()
	model.FromDomain(balance)
	if err := db.Create(&model).Error; err != nil {
		// A concurrent first access may have created the row already
		var existing models.CashBalanceModel
		if ferr := db.First(&existing).Error; ferr == nil {
			return existing.ToDomain(), nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ApplyDelta applies a signed delta to one balance column as a single
// relative update, safe under concurrent writers
func (r *GormCashBalanceRepository) ApplyDelta(ctx context.Context, source cashbook.BalanceSource, delta valueobject.Money) error {
	balance, err := r.Get(ctx)
	if err != nil {
		return err
	}

	column := "cash_amount"
	if source == cashbook.SourceBank {
		column = "bank_amount"
	}

	db := dbFromContext(ctx, r.db)
	return db.Model(&models.CashBalanceModel{}).
		Where("id = ?", balance.ID).
		Updates(map[string]any{
			column:       gorm.Expr(column+" + ?", delta.Amount()),
			"updated_at": time.Now(),
		}).Error
}

// SetBalances destructively overwrites both balances
func (r *GormCashBalanceRepository) SetBalances(ctx context.Context, cash, bank valueobject.Money) error {
	balance, err := r.Get(ctx)
	if err != nil {
		return err
	}

	db := dbFromContext(ctx, r.db)
	return db.Model(&models.CashBalanceModel{}).
		Where("id = ?", balance.ID).
		Updates(map[string]any{
			"cash_amount": cash,
			"bank_amount": bank,
			"updated_at":  time.Now(),
		}).Error
}
