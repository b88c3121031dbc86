package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/partner"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// Save inserts or updates the supplier header. The cached payable is
// never written here; it only moves through AccruePayable and
// ReleasePayable.
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	db := dbFromContext(ctx, r.db)
	model := models.SupplierModelFromDomain(supplier)

	var existing models.SupplierModel
	err := db.Select("id").First(&existing, "id = ?", supplier.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(model).Error
	}
	if err != nil {
		return err
	}

	return db.Model(&models.SupplierModel{}).Where("id = ?", supplier.ID).
		Updates(map[string]any{
			"name":       model.Name,
			"type":       model.Type,
			"phone":      model.Phone,
			"notes":      model.Notes,
			"active":     model.Active,
			"version":    model.Version,
			"updated_at": time.Now(),
		}).Error
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	db := dbFromContext(ctx, r.db)

	var model models.SupplierModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns suppliers matching the filter, alphabetically
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter partner.SupplierFilter) ([]partner.Supplier, error) {
	db := dbFromContext(ctx, r.db)

	var modelList []models.SupplierModel
	query := r.applyFilter(db.Model(&models.SupplierModel{}), filter).Order("name ASC")

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

	suppliers := make([]partner.Supplier, 0, len(modelList))
	for i := range modelList {
		suppliers = append(suppliers, *modelList[i].ToDomain())
	}
	return suppliers, nil
}

// Count returns the number of suppliers matching the filter
func (r *GormSupplierRepository) Count(ctx context.Context, filter partner.SupplierFilter) (int64, error) {
	db := dbFromContext(ctx, r.db)

	var count int64
	err := r.applyFilter(db.Model(&models.SupplierModel{}), filter).Count(&count).Error
	return count, err
}

// Delete removes a supplier and its payment history
func (r *GormSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := dbFromContext(ctx, r.db)

	if err := db.Where("supplier_id = ?", id).Delete(&models.SupplierPaymentModel{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.SupplierModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AccruePayable increments the cached payable with a single relative
// update, safe under concurrent writers
func (r *GormSupplierRepository) AccruePayable(ctx context.Context, supplierID uuid.UUID, amount valueobject.Money) error {
	return r.adjustPayable(ctx, supplierID, "total_debt + ?", amount)
}

// ReleasePayable decrements the cached payable with a single relative update
func (r *GormSupplierRepository) ReleasePayable(ctx context.Context, supplierID uuid.UUID, amount valueobject.Money) error {
	return r.adjustPayable(ctx, supplierID, "total_debt - ?", amount)
}

func (r *GormSupplierRepository) adjustPayable(ctx context.Context, supplierID uuid.UUID, expr string, amount valueobject.Money) error {
	db := dbFromContext(ctx, r.db)

	result := db.Model(&models.SupplierModel{}).
		Where("id = ?", supplierID).
		Updates(map[string]any{
			"total_debt": gorm.Expr(expr, amount.Amount()),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddPayment appends a payment record
func (r *GormSupplierRepository) AddPayment(ctx context.Context, payment *partner.SupplierPayment) error {
	db := dbFromContext(ctx, r.db)

	model := &models.SupplierPaymentModel{}
	model.FromDomain(payment)
	return db.Create(model).Error
}

// FindPayments returns a supplier's payments, newest first
func (r *GormSupplierRepository) FindPayments(ctx context.Context, supplierID uuid.UUID) ([]partner.SupplierPayment, error) {
	db := dbFromContext(ctx, r.db)

	var modelList []models.SupplierPaymentModel
	err := db.Where("supplier_id = ?", supplierID).
		Order("payment_date DESC, created_at DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	payments := make([]partner.SupplierPayment, 0, len(modelList))
	for i := range modelList {
		payments = append(payments, *modelList[i].ToDomain())
	}
	return payments, nil
}

// OutstandingPayable derives the live payable from unpaid external
// invoice costs minus recorded payments. It can drift from the cached
// TotalDebt and can go negative; callers surface both figures.
func (r *GormSupplierRepository) OutstandingPayable(ctx context.Context, supplierID uuid.UUID) (valueobject.Money, error) {
	db := dbFromContext(ctx, r.db)

	var costs decimal.NullDecimal
	err := db.Model(&models.ItemCostModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("supplier_id = ? AND is_internal = ? AND is_paid = ?", supplierID, false, false).
		Scan(&costs).Error
	if err != nil {
		return valueobject.ZeroMoney(), err
	}

	var paid decimal.NullDecimal
	err = db.Model(&models.SupplierPaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("supplier_id = ?", supplierID).
		Scan(&paid).Error
	if err != nil {
		return valueobject.ZeroMoney(), err
	}

	total := decimal.Zero
	if costs.Valid {
		total = costs.Decimal
	}
	if paid.Valid {
		total = total.Sub(paid.Decimal)
	}
	return valueobject.NewMoney(total), nil
}

func (r *GormSupplierRepository) applyFilter(query *gorm.DB, filter partner.SupplierFilter) *gorm.DB {
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", pattern, pattern)
	}
	return query
}
