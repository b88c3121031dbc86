package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/catalog"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save inserts or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	db := dbFromContext(ctx, r.db)

	model := &models.ProductModel{}
	model.FromDomain(product)
	return db.Save(model).Error
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	db := dbFromContext(ctx, r.db)

	var model models.ProductModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns products, alphabetically
func (r *GormProductRepository) FindAll(ctx context.Context, activeOnly bool, search string, page, pageSize int) ([]catalog.Product, error) {
	db := dbFromContext(ctx, r.db)

	var modelList []models.ProductModel
	query := r.applyFilter(db.Model(&models.ProductModel{}), activeOnly, search).Order("name ASC")

	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	if err := query.Find(&modelList).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(modelList))
	for i := range modelList {
		products = append(products, *modelList[i].ToDomain())
	}
	return products, nil
}

// Count returns the number of matching products
func (r *GormProductRepository) Count(ctx context.Context, activeOnly bool, search string) (int64, error) {
	db := dbFromContext(ctx, r.db)

	var count int64
	err := r.applyFilter(db.Model(&models.ProductModel{}), activeOnly, search).Count(&count).Error
	return count, err
}

// Delete removes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := dbFromContext(ctx, r.db)

	result := db.Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, activeOnly bool, search string) *gorm.DB {
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	return query
}
