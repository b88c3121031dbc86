package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InvoiceFilter narrows invoice list queries
type InvoiceFilter struct {
	Status     *InvoiceStatus
	CustomerID *uuid.UUID
	Search     string // matches invoice number or customer name
	FromDate   *time.Time
	ToDate     *time.Time
	UnpaidOnly bool
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// InvoiceRepository persists the invoice aggregate with its items,
// costs and payments
type InvoiceRepository interface {
	// Save inserts or fully updates the aggregate, replacing child rows
	Save(ctx context.Context, invoice *Invoice) error
	// SaveWithLock updates the aggregate guarded by its version column
	// and returns ErrConcurrencyConflict when another writer won
	SaveWithLock(ctx context.Context, invoice *Invoice, expectedVersion int) error
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	ExistsByNumber(ctx context.Context, invoiceNumber string) (bool, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// NextSequence returns the next per-day sequence number used to build
	// invoice numbers like INV-20250131-00001
	NextSequence(ctx context.Context, day time.Time) (int64, error)
}
