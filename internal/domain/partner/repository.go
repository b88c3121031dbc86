package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// SupplierFilter narrows supplier list queries. Nil Active means both;
// services default to active-only.
type SupplierFilter struct {
	Type     *SupplierType
	Active   *bool
	Search   string
	Page     int
	PageSize int
}

// SupplierRepository persists suppliers and the cached payable.
// AccruePayable and ReleasePayable are explicit calls made by the
// invoice and supplier services inside the same transaction that
// writes the cost or payment; they issue single-statement relative
// updates so concurrent writers never lose increments.
type SupplierRepository interface {
	Save(ctx context.Context, supplier *Supplier) error
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindAll(ctx context.Context, filter SupplierFilter) ([]Supplier, error)
	Count(ctx context.Context, filter SupplierFilter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AccruePayable(ctx context.Context, supplierID uuid.UUID, amount valueobject.Money) error
	ReleasePayable(ctx context.Context, supplierID uuid.UUID, amount valueobject.Money) error
	AddPayment(ctx context.Context, payment *SupplierPayment) error
	FindPayments(ctx context.Context, supplierID uuid.UUID) ([]SupplierPayment, error)
	// OutstandingPayable derives the live payable from unpaid external
	// costs minus payments, for reconciliation against TotalDebt
	OutstandingPayable(ctx context.Context, supplierID uuid.UUID) (valueobject.Money, error)
}

// CustomerRepository persists customers
type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, activeOnly bool, search string, page, pageSize int) ([]Customer, error)
	Count(ctx context.Context, activeOnly bool, search string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// CountInvoices guards customer deletion against dangling references
	CountInvoices(ctx context.Context, customerID uuid.UUID) (int64, error)
}
