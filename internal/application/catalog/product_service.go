package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/catalog"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// ProductService handles the product catalog
type ProductService struct {
	products catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Create registers a new product
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, valueobject.NewMoney(req.SalePrice), req.Unit)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Update changes a product's fields
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, valueobject.NewMoney(req.SalePrice), req.Unit); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Get returns one product
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List returns a filtered, paginated product list
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	activeOnly := !filter.IncludeInactive
	products, err := s.products.FindAll(ctx, activeOnly, filter.Search, filter.Page, filter.PageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.Count(ctx, activeOnly, filter.Search)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Deactivate hides a product from default listings. Existing invoice
// items keep their denormalised name and price.
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Deactivate()
	return s.products.Save(ctx, product)
}

// Delete removes a product. Invoice items reference products by a
// nullable ID and carry their own name, so deletion never breaks an
// invoice.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}
