package partner

import (
	"time"

	"github.com/printshop/backend/internal/domain/shared"
)

// Customer is a named buyer. Invoices may reference one or be issued to
// a walk-in cash customer with no record here.
type Customer struct {
	shared.BaseEntity
	Name   string
	Phone  string
	Notes  string
	Active bool
}

// NewCustomer creates an active customer
func NewCustomer(name, phone, notes string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Customer name cannot be empty")
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
		Notes:      notes,
		Active:     true,
	}, nil
}

// Update changes the customer's descriptive fields
func (c *Customer) Update(name, phone, notes string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_FAILED", "Customer name cannot be empty")
	}
	c.Name = name
	c.Phone = phone
	c.Notes = notes
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the customer from default listings
func (c *Customer) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
}
