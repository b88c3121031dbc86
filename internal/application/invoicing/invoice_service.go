package invoicing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/cashbook"
	"github.com/printshop/backend/internal/domain/catalog"
	"github.com/printshop/backend/internal/domain/invoicing"
	"github.com/printshop/backend/internal/domain/partner"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

const (
	// invoiceNumberFormat builds numbers like INV-20250131-00001
	invoiceNumberFormat = "INV-%s-%05d"

	// maxSaveRetries bounds optimistic-lock and number-collision retries
	maxSaveRetries = 3
)

// InvoiceService orchestrates the invoice financial lifecycle. Writes
// that touch supplier payables or the cash ledger run inside one unit
// of work with the invoice itself.
type InvoiceService struct {
	invoices  invoicing.InvoiceRepository
	suppliers partner.SupplierRepository
	customers partner.CustomerRepository
	products  catalog.ProductRepository
	balances  cashbook.CashBalanceRepository
	movements cashbook.CashMovementRepository
	uow       shared.UnitOfWork
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoices invoicing.InvoiceRepository,
	suppliers partner.SupplierRepository,
	customers partner.CustomerRepository,
	products catalog.ProductRepository,
	balances cashbook.CashBalanceRepository,
	movements cashbook.CashMovementRepository,
	uow shared.UnitOfWork,
) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		suppliers: suppliers,
		customers: customers,
		products:  products,
		balances:  balances,
		movements: movements,
		uow:       uow,
	}
}

// Create builds a numbered invoice with its items and costs, and
// accrues supplier payables for every external unpaid cost. The per-day
// invoice number is retried on collision with a concurrent creator.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	customerName, err := s.resolveCustomerName(ctx, req.CustomerID, req.CustomerName)
	if err != nil {
		return nil, err
	}

	invoiceDate := time.Now()
	if req.InvoiceDate != nil {
		invoiceDate = *req.InvoiceDate
	}

	var created *invoicing.Invoice
	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		err = s.uow.Execute(ctx, func(txCtx context.Context) error {
			seq, err := s.invoices.NextSequence(txCtx, invoiceDate)
			if err != nil {
				return err
			}
			number := fmt.Sprintf(invoiceNumberFormat, invoiceDate.Format("20060102"), seq)

			inv, err := invoicing.NewInvoice(number, req.CustomerID, customerName, invoiceDate)
			if err != nil {
				return err
			}
			inv.SetDeliveryDate(req.DeliveryDate)
			inv.SetNotes(req.Notes)

			items, err := s.buildItems(txCtx, req.Items)
			if err != nil {
				return err
			}
			for i := range items {
				if err := inv.AddItem(&items[i]); err != nil {
					return err
				}
			}
			if err := inv.ApplyDiscount(valueobject.NewMoney(req.Discount)); err != nil {
				return err
			}

			if err := s.invoices.Save(txCtx, inv); err != nil {
				return err
			}
			if err := s.accruePayables(txCtx, inv.ExternalUnpaidCosts()); err != nil {
				return err
			}

			created = inv
			return nil
		})
		if errors.Is(err, shared.ErrAlreadyExists) {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	return s.getResponse(ctx, created.ID)
}

// Update patches the invoice header and optionally replaces the item
// set. Replacing items releases the payables accrued by the outgoing
// costs and accrues the incoming ones, all in one transaction. The save
// is version-guarded so a payment landing between load and save is
// never reverted; on conflict the patch is re-applied to a fresh copy.
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	var lastErr error
	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		inv, err := s.invoices.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		expectedVersion := inv.Version

		releasedCosts, err := s.applyUpdate(ctx, inv, req)
		if err != nil {
			return nil, err
		}

		lastErr = s.uow.Execute(ctx, func(txCtx context.Context) error {
			if err := s.releasePayables(txCtx, releasedCosts); err != nil {
				return err
			}
			if err := s.invoices.SaveWithLock(txCtx, inv, expectedVersion); err != nil {
				return err
			}
			if req.Items != nil {
				return s.accruePayables(txCtx, inv.ExternalUnpaidCosts())
			}
			return nil
		})
		if errors.Is(lastErr, shared.ErrConcurrencyConflict) {
			continue
		}
		if lastErr != nil {
			return nil, lastErr
		}
		return s.getResponse(ctx, inv.ID)
	}
	return nil, lastErr
}

// applyUpdate patches the loaded aggregate from the request and returns
// the costs whose payables must be released when items are replaced.
// The version always advances so a concurrent payment writer loses its
// guard instead of reverting the header.
func (s *InvoiceService) applyUpdate(ctx context.Context, inv *invoicing.Invoice, req UpdateInvoiceRequest) ([]invoicing.ItemCost, error) {
	if req.CustomerID != nil || req.CustomerName != nil {
		name := inv.CustomerName
		if req.CustomerName != nil {
			name = *req.CustomerName
		}
		customerID := inv.CustomerID
		if req.CustomerID != nil {
			customerID = req.CustomerID
		}
		name, err := s.resolveCustomerName(ctx, customerID, name)
		if err != nil {
			return nil, err
		}
		inv.SetCustomer(customerID, name)
	}
	if req.InvoiceDate != nil {
		inv.SetInvoiceDate(*req.InvoiceDate)
	}
	if req.DeliveryDate != nil {
		inv.SetDeliveryDate(req.DeliveryDate)
	}
	if req.Notes != nil {
		inv.SetNotes(*req.Notes)
	}

	var releasedCosts []invoicing.ItemCost
	if req.Items != nil {
		releasedCosts = inv.ExternalUnpaidCosts()
		items, err := s.buildItems(ctx, *req.Items)
		if err != nil {
			return nil, err
		}
		if err := inv.ReplaceItems(items); err != nil {
			return nil, err
		}
	}
	if req.Discount != nil {
		if err := inv.ApplyDiscount(valueobject.NewMoney(*req.Discount)); err != nil {
			return nil, err
		}
	}

	inv.IncrementVersion()
	return releasedCosts, nil
}

// AddPayment records a payment, writes the matching cash movement and
// moves the target balance, all atomically. A lost optimistic-lock race
// is retried on a fresh copy of the invoice.
func (s *InvoiceService) AddPayment(ctx context.Context, id uuid.UUID, req AddPaymentRequest) (*InvoiceResponse, error) {
	amount := valueobject.NewMoney(req.Amount)
	method := invoicing.PaymentMethod(req.Method)
	paymentType := invoicing.PaymentType(req.PaymentType)
	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	var lastErr error
	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		inv, err := s.invoices.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		expectedVersion := inv.Version

		payment, err := inv.ApplyPayment(amount, method, paymentType, paymentDate, req.Notes)
		if err != nil {
			return nil, err
		}

		lastErr = s.uow.Execute(ctx, func(txCtx context.Context) error {
			if err := s.invoices.SaveWithLock(txCtx, inv, expectedVersion); err != nil {
				return err
			}

			source := cashbook.BalanceSource(method)
			mv, err := cashbook.NewCashMovement(cashbook.MovementTypeInvoicePayment, source, amount,
				fmt.Sprintf("Payment for invoice %s", inv.InvoiceNumber))
			if err != nil {
				return err
			}
			mv = mv.WithReference(cashbook.ReferenceTypeInvoicePayment, payment.ID).
				WithMovementDate(paymentDate)
			if err := s.movements.Append(txCtx, mv); err != nil {
				return err
			}
			return s.balances.ApplyDelta(txCtx, source, amount)
		})
		if errors.Is(lastErr, shared.ErrConcurrencyConflict) {
			continue
		}
		if lastErr != nil {
			return nil, lastErr
		}
		return s.getResponse(ctx, id)
	}
	return nil, lastErr
}

// UpdateStatus moves the invoice through the production workflow. The
// save is version-guarded and retried so it never clobbers a payment
// committed after the load.
func (s *InvoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*InvoiceResponse, error) {
	var lastErr error
	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		inv, err := s.invoices.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		expectedVersion := inv.Version

		if err := inv.ChangeStatus(invoicing.InvoiceStatus(req.Status)); err != nil {
			return nil, err
		}

		lastErr = s.invoices.SaveWithLock(ctx, inv, expectedVersion)
		if errors.Is(lastErr, shared.ErrConcurrencyConflict) {
			continue
		}
		if lastErr != nil {
			return nil, lastErr
		}
		return s.getResponse(ctx, id)
	}
	return nil, lastErr
}

// Delete removes an invoice that has never been paid, releasing the
// supplier payables its costs accrued
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !inv.CanDelete() {
		return shared.ErrHasPayments
	}

	return s.uow.Execute(ctx, func(txCtx context.Context) error {
		if err := s.releasePayables(txCtx, inv.ExternalUnpaidCosts()); err != nil {
			return err
		}
		return s.invoices.Delete(txCtx, id)
	})
}

// Get returns a single invoice with items, costs and payments
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	return s.getResponse(ctx, id)
}

// GetByNumber returns a single invoice looked up by its number
func (s *InvoiceService) GetByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// List returns a filtered, paginated invoice list
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) ([]InvoiceListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := invoicing.InvoiceFilter{
		CustomerID: filter.CustomerID,
		Search:     filter.Search,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
		UnpaidOnly: filter.UnpaidOnly,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}
	if filter.Status != "" {
		status := invoicing.InvoiceStatus(filter.Status)
		domainFilter.Status = &status
	}

	invoices, err := s.invoices.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoices.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToInvoiceListResponses(invoices), total, nil
}

func (s *InvoiceService) getResponse(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// resolveCustomerName fills the denormalised customer name from the
// catalog when the caller gave an ID without a name
func (s *InvoiceService) resolveCustomerName(ctx context.Context, customerID *uuid.UUID, name string) (string, error) {
	if customerID == nil {
		return name, nil
	}
	customer, err := s.customers.FindByID(ctx, *customerID)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = customer.Name
	}
	return name, nil
}

// buildItems turns item requests into domain items, resolving product
// and supplier display names
func (s *InvoiceService) buildItems(ctx context.Context, reqs []InvoiceItemRequest) ([]invoicing.InvoiceItem, error) {
	items := make([]invoicing.InvoiceItem, 0, len(reqs))
	for _, itemReq := range reqs {
		productName := itemReq.ProductName
		if productName == "" && itemReq.ProductID != nil {
			product, err := s.products.FindByID(ctx, *itemReq.ProductID)
			if err != nil {
				if !errors.Is(err, shared.ErrNotFound) {
					return nil, err
				}
			} else {
				productName = product.Name
			}
		}
		if productName == "" {
			productName = catalog.UnspecifiedProductName
		}

		item, err := invoicing.NewInvoiceItem(itemReq.ProductID, productName, itemReq.Description,
			valueobject.NewQuantity(itemReq.Quantity), valueobject.NewMoney(itemReq.UnitPrice))
		if err != nil {
			return nil, err
		}

		for _, costReq := range itemReq.Costs {
			supplierName := ""
			if costReq.SupplierID != nil {
				supplier, err := s.suppliers.FindByID(ctx, *costReq.SupplierID)
				if err != nil {
					return nil, err
				}
				supplierName = supplier.Name
			}
			cost, err := invoicing.NewItemCost(costReq.SupplierID, supplierName,
				invoicing.CostType(costReq.CostType), valueobject.NewMoney(costReq.Amount),
				costReq.IsInternal, costReq.Notes)
			if err != nil {
				return nil, err
			}
			item.AddCost(cost)
		}
		items = append(items, *item)
	}
	return items, nil
}

func (s *InvoiceService) accruePayables(ctx context.Context, costs []invoicing.ItemCost) error {
	for i := range costs {
		if err := s.suppliers.AccruePayable(ctx, *costs[i].SupplierID, costs[i].Amount); err != nil {
			return err
		}
	}
	return nil
}

func (s *InvoiceService) releasePayables(ctx context.Context, costs []invoicing.ItemCost) error {
	for i := range costs {
		if err := s.suppliers.ReleasePayable(ctx, *costs[i].SupplierID, costs[i].Amount); err != nil {
			return err
		}
	}
	return nil
}
