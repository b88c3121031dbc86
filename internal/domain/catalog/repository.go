package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository persists catalog products
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, activeOnly bool, search string, page, pageSize int) ([]Product, error)
	Count(ctx context.Context, activeOnly bool, search string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
