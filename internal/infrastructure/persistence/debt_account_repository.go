package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/debt"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDebtAccountRepository implements DebtAccountRepository using GORM
type GormDebtAccountRepository struct {
	db *gorm.DB
}

// NewGormDebtAccountRepository creates a new GormDebtAccountRepository
func NewGormDebtAccountRepository(db *gorm.DB) *GormDebtAccountRepository {
	return &GormDebtAccountRepository{db: db}
}

// Save inserts or updates a debt account
func (r *GormDebtAccountRepository) Save(ctx context.Context, account *debt.DebtAccount) error {
	db := dbFromContext(ctx, r.db)

	model := &models.DebtAccountModel{}
	model.FromDomain(account)
	return db.Save(model).Error
}

// FindByID finds a debt account by its ID
func (r *GormDebtAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*debt.DebtAccount, error) {
	db := dbFromContext(ctx, r.db)

	var model models.DebtAccountModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all debt accounts, alphabetically
func (r *GormDebtAccountRepository) FindAll(ctx context.Context) ([]debt.DebtAccount, error) {
	db := dbFromContext(ctx, r.db)

	var modelList []models.DebtAccountModel
	if err := db.Order("name ASC").Find(&modelList).Error; err != nil {
		return nil, err
	}

	accounts := make([]debt.DebtAccount, 0, len(modelList))
	for i := range modelList {
		accounts = append(accounts, *modelList[i].ToDomain())
	}
	return accounts, nil
}

// Delete removes a debt account
func (r *GormDebtAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := dbFromContext(ctx, r.db)

	result := db.Delete(&models.DebtAccountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
