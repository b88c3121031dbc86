package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/cashbook"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCashMovementRepository implements CashMovementRepository using GORM
type GormCashMovementRepository struct {
	db *gorm.DB
}

// NewGormCashMovementRepository creates a new GormCashMovementRepository
func NewGormCashMovementRepository(db *gorm.DB) *GormCashMovementRepository {
	return &GormCashMovementRepository{db: db}
}

// Append inserts a movement into the append-only log
func (r *GormCashMovementRepository) Append(ctx context.Context, movement *cashbook.CashMovement) error {
	db := dbFromContext(ctx, r.db)
	model := models.CashMovementModelFromDomain(movement)
	return db.Create(model).Error
}

// FindByID finds a movement by its ID
func (r *GormCashMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*cashbook.CashMovement, error) {
	db := dbFromContext(ctx, r.db)

	var model models.CashMovementModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns movements matching the filter, newest first unless the
// filter asks for a different ordering
func (r *GormCashMovementRepository) FindAll(ctx context.Context, filter cashbook.MovementFilter) ([]cashbook.CashMovement, error) {
	db := dbFromContext(ctx, r.db)

	sortField := ValidateSortField(filter.SortBy, CashMovementSortFields, "movement_date")
	sortOrder := ValidateSortOrder(filter.SortOrder)

	var modelList []models.CashMovementModel
	query := r.applyFilter(db.Model(&models.CashMovementModel{}), filter).
		Order(sortField + " " + sortOrder + ", created_at DESC")

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

	movements := make([]cashbook.CashMovement, 0, len(modelList))
	for i := range modelList {
		movements = append(movements, *modelList[i].ToDomain())
	}
	return movements, nil
}

// Count returns the number of movements matching the filter
func (r *GormCashMovementRepository) Count(ctx context.Context, filter cashbook.MovementFilter) (int64, error) {
	db := dbFromContext(ctx, r.db)

	var count int64
	err := r.applyFilter(db.Model(&models.CashMovementModel{}), filter).Count(&count).Error
	return count, err
}

// SumSignedBySource returns the signed sum of all movements for a
// source. Inflow types contribute positively, outflow types negatively,
// and adjustments contribute their stored signed amount as-is.
func (r *GormCashMovementRepository) SumSignedBySource(ctx context.Context, source cashbook.BalanceSource) (valueobject.Money, error) {
	db := dbFromContext(ctx, r.db)

	inflows := []cashbook.MovementType{
		cashbook.MovementTypeInitial, cashbook.MovementTypeIncome,
		cashbook.MovementTypeTransferIn, cashbook.MovementTypeInvoicePayment,
		cashbook.MovementTypeDebtRepayment,
	}
	outflows := []cashbook.MovementType{
		cashbook.MovementTypeExpense, cashbook.MovementTypeWithdrawal,
		cashbook.MovementTypeTransferOut, cashbook.MovementTypeSupplierPayment,
		cashbook.MovementTypeDebtCreated,
	}

	var sum decimal.NullDecimal
	err := db.Model(&models.CashMovementModel{}).
		Select(`COALESCE(SUM(CASE
			WHEN movement_type IN ? THEN ABS(amount)
			WHEN movement_type IN ? THEN -ABS(amount)
			ELSE amount END), 0)`, inflows, outflows).
		Where("source = ?", source).
		Scan(&sum).Error
	if err != nil {
		return valueobject.ZeroMoney(), err
	}
	if !sum.Valid {
		return valueobject.ZeroMoney(), nil
	}
	return valueobject.NewMoney(sum.Decimal), nil
}

func (r *GormCashMovementRepository) applyFilter(query *gorm.DB, filter cashbook.MovementFilter) *gorm.DB {
	if filter.MovementType != nil {
		query = query.Where("movement_type = ?", *filter.MovementType)
	}
	if filter.Source != nil {
		query = query.Where("source = ?", *filter.Source)
	}
	if filter.FromDate != nil {
		query = query.Where("movement_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("movement_date <= ?", *filter.ToDate)
	}
	return query
}
