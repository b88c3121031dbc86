package partner

import (
	"fmt"
	"time"

	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// SupplierType classifies what the supplier provides
type SupplierType string

const (
	SupplierTypePrinter  SupplierType = "printer"
	SupplierTypeDesigner SupplierType = "designer"
	SupplierTypeService  SupplierType = "service"
	SupplierTypeMaterial SupplierType = "material"
	SupplierTypeOther    SupplierType = "other"
)

// IsValid checks if the supplier type is valid
func (t SupplierType) IsValid() bool {
	switch t {
	case SupplierTypePrinter, SupplierTypeDesigner, SupplierTypeService, SupplierTypeMaterial, SupplierTypeOther:
		return true
	}
	return false
}

// Supplier is an external party the shop outsources work or buys
// material from. TotalDebt is the cached outstanding payable; it is
// written only inside the same transactions that write the costs and
// payments it summarises.
type Supplier struct {
	shared.BaseAggregateRoot
	Name      string
	Type      SupplierType
	Phone     string
	Notes     string
	TotalDebt valueobject.Money
	Active    bool
}

// NewSupplier creates a supplier with no outstanding payable
func NewSupplier(name string, supplierType SupplierType, phone, notes string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Supplier name cannot be empty")
	}
	if !supplierType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_FAILED",
			fmt.Sprintf("Invalid supplier type: %s", supplierType))
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              supplierType,
		Phone:             phone,
		Notes:             notes,
		TotalDebt:         valueobject.ZeroMoney(),
		Active:            true,
	}, nil
}

// Update changes the supplier's descriptive fields
func (s *Supplier) Update(name string, supplierType SupplierType, phone, notes string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_FAILED", "Supplier name cannot be empty")
	}
	if !supplierType.IsValid() {
		return shared.NewDomainError("VALIDATION_FAILED",
			fmt.Sprintf("Invalid supplier type: %s", supplierType))
	}
	s.Name = name
	s.Type = supplierType
	s.Phone = phone
	s.Notes = notes
	s.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the supplier from default listings without losing
// its payment history
func (s *Supplier) Deactivate() {
	s.Active = false
	s.UpdatedAt = time.Now()
}

// Activate restores the supplier to default listings
func (s *Supplier) Activate() {
	s.Active = true
	s.UpdatedAt = time.Now()
}

// ValidatePayment checks a payment against the supplier before it is
// recorded. Payments may exceed the cached payable because the cache
// can lag behind costs written in flight; only sign and activity are
// enforced here.
func (s *Supplier) ValidatePayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("VALIDATION_FAILED", "Payment amount must be positive")
	}
	return nil
}
