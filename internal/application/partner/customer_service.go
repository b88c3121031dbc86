package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/partner"
	"github.com/printshop/backend/internal/domain/shared"
)

// CustomerService handles the customer register
type CustomerService struct {
	customers partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customers partner.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// Create registers a new customer
func (s *CustomerService) Create(ctx context.Context, req CustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Phone, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Update changes a customer's details
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(req.Name, req.Phone, req.Notes); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Get returns one customer
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List returns a filtered, paginated customer list
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	activeOnly := !filter.IncludeInactive
	customers, err := s.customers.FindAll(ctx, activeOnly, filter.Search, filter.Page, filter.PageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customers.Count(ctx, activeOnly, filter.Search)
	if err != nil {
		return nil, 0, err
	}
	return ToCustomerResponses(customers), total, nil
}

// Deactivate hides a customer from default listings
func (s *CustomerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	customer.Deactivate()
	return s.customers.Save(ctx, customer)
}

// Delete removes a customer that no invoice references. Customers with
// invoice history should be deactivated instead.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customers.FindByID(ctx, id); err != nil {
		return err
	}
	invoices, err := s.customers.CountInvoices(ctx, id)
	if err != nil {
		return err
	}
	if invoices > 0 {
		return shared.NewDomainError("INVALID_STATE",
			"Customer has invoices and cannot be deleted, deactivate it instead")
	}
	return s.customers.Delete(ctx, id)
}
