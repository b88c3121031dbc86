package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/partner"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Save inserts or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	db := dbFromContext(ctx, r.db)

	model := &models.CustomerModel{}
	model.FromDomain(customer)
	return db.Save(model).Error
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	db := dbFromContext(ctx, r.db)

	var model models.CustomerModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns customers, alphabetically
func (r *GormCustomerRepository) FindAll(ctx context.Context, activeOnly bool, search string, page, pageSize int) ([]partner.Customer, error) {
	db := dbFromContext(ctx, r.db)

	var modelList []models.CustomerModel
	query := r.applyFilter(db.Model(&models.CustomerModel{}), activeOnly, search).Order("name ASC")

	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	if err := query.Find(&modelList).Error; err != nil {
		return nil, err
	}

	customers := make([]partner.Customer, 0, len(modelList))
	for i := range modelList {
		customers = append(customers, *modelList[i].ToDomain())
	}
	return customers, nil
}

// Count returns the number of matching customers
func (r *GormCustomerRepository) Count(ctx context.Context, activeOnly bool, search string) (int64, error) {
	db := dbFromContext(ctx, r.db)

	var count int64
	err := r.applyFilter(db.Model(&models.CustomerModel{}), activeOnly, search).Count(&count).Error
	return count, err
}

// Delete removes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := dbFromContext(ctx, r.db)

	result := db.Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountInvoices counts invoices referencing the customer
func (r *GormCustomerRepository) CountInvoices(ctx context.Context, customerID uuid.UUID) (int64, error) {
	db := dbFromContext(ctx, r.db)

	var count int64
	err := db.Model(&models.InvoiceModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}

func (r *GormCustomerRepository) applyFilter(query *gorm.DB, activeOnly bool, search string) *gorm.DB {
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", pattern, pattern)
	}
	return query
}
