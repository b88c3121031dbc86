package partner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/cashbook"
	"github.com/printshop/backend/internal/domain/invoicing"
	"github.com/printshop/backend/internal/domain/partner"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// maxMarkPaidRetries bounds optimistic-lock retries against concurrent
// invoice writers
const maxMarkPaidRetries = 3

// SupplierService handles suppliers and their outstanding payables.
// Paying a supplier moves cash out, logs the movement and releases the
// cached payable in one transaction.
type SupplierService struct {
	suppliers partner.SupplierRepository
	invoices  invoicing.InvoiceRepository
	balances  cashbook.CashBalanceRepository
	movements cashbook.CashMovementRepository
	uow       shared.UnitOfWork
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(
	suppliers partner.SupplierRepository,
	invoices invoicing.InvoiceRepository,
	balances cashbook.CashBalanceRepository,
	movements cashbook.CashMovementRepository,
	uow shared.UnitOfWork,
) *SupplierService {
	return &SupplierService{
		suppliers: suppliers,
		invoices:  invoices,
		balances:  balances,
		movements: movements,
		uow:       uow,
	}
}

// Create registers a new supplier
func (s *SupplierService) Create(ctx context.Context, req SupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, partner.SupplierType(req.Type), req.Phone, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Update changes a supplier's descriptive fields
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req SupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.Name, partner.SupplierType(req.Type), req.Phone, req.Notes); err != nil {
		return nil, err
	}
	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Get returns one supplier
func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List returns a filtered, paginated supplier list. Inactive suppliers
// are hidden unless explicitly requested.
func (s *SupplierService) List(ctx context.Context, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := partner.SupplierFilter{
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Type != "" {
		supplierType := partner.SupplierType(filter.Type)
		domainFilter.Type = &supplierType
	}
	if !filter.IncludeInactive {
		active := true
		domainFilter.Active = &active
	}

	suppliers, err := s.suppliers.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.suppliers.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToSupplierResponses(suppliers), total, nil
}

// Deactivate hides a supplier from default listings. History and the
// payable stay intact.
func (s *SupplierService) Deactivate(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	supplier.Deactivate()
	return s.suppliers.Save(ctx, supplier)
}

// Activate restores a supplier to default listings
func (s *SupplierService) Activate(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	supplier.Activate()
	return s.suppliers.Save(ctx, supplier)
}

// AddPayment pays down the supplier's payable. The payment record, the
// outgoing cash movement, the balance decrement and the payable release
// commit together.
func (s *SupplierService) AddPayment(ctx context.Context, id uuid.UUID, req SupplierPaymentRequest) (*SupplierResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	amount := valueobject.NewMoney(req.Amount)
	if err := supplier.ValidatePayment(amount); err != nil {
		return nil, err
	}

	payment, err := partner.NewSupplierPayment(id, amount, partner.PaymentMethod(req.Method), req.Notes)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		if err := s.suppliers.AddPayment(txCtx, payment); err != nil {
			return err
		}

		source := cashbook.BalanceSource(req.Method)
		mv, err := cashbook.NewCashMovement(cashbook.MovementTypeSupplierPayment, source, amount,
			fmt.Sprintf("Payment to %s", supplier.Name))
		if err != nil {
			return err
		}
		mv = mv.WithReference(cashbook.ReferenceTypeSupplierPayment, payment.ID)
		if err := s.movements.Append(txCtx, mv); err != nil {
			return err
		}
		if err := s.balances.ApplyDelta(txCtx, source, amount.Negate()); err != nil {
			return err
		}
		return s.suppliers.ReleasePayable(txCtx, id, amount)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// ListPayments returns a supplier's payment history, newest first
func (s *SupplierService) ListPayments(ctx context.Context, id uuid.UUID) ([]SupplierPaymentResponse, error) {
	if _, err := s.suppliers.FindByID(ctx, id); err != nil {
		return nil, err
	}
	payments, err := s.suppliers.FindPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSupplierPaymentResponses(payments), nil
}

// OutstandingPayable derives the live payable from unpaid external
// costs minus payments. Read beside the cached TotalDebt, a mismatch
// signals drift worth investigating.
func (s *SupplierService) OutstandingPayable(ctx context.Context, id uuid.UUID) (*SupplierPayableResponse, error) {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.suppliers.OutstandingPayable(ctx, id)
	if err != nil {
		return nil, err
	}
	return &SupplierPayableResponse{
		SupplierID:  id,
		CachedDebt:  supplier.TotalDebt.Amount(),
		Outstanding: outstanding.Amount(),
		InSync:      supplier.TotalDebt.Equals(outstanding),
	}, nil
}

// MarkCostPaid settles one external cost directly against its supplier
// without a cash payment, releasing the payable it accrued. The save is
// version-guarded so a payment landing on the invoice between load and
// save is never reverted.
func (s *SupplierService) MarkCostPaid(ctx context.Context, invoiceID, costID uuid.UUID) error {
	var lastErr error
	for attempt := 0; attempt < maxMarkPaidRetries; attempt++ {
		inv, err := s.invoices.FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		expectedVersion := inv.Version

		var cost *invoicing.ItemCost
		for i := range inv.Items {
			for j := range inv.Items[i].Costs {
				if inv.Items[i].Costs[j].ID == costID {
					cost = &inv.Items[i].Costs[j]
				}
			}
		}
		if cost == nil {
			return shared.ErrNotFound
		}

		accrued := cost.AccruesPayable()
		if err := cost.MarkPaid(); err != nil {
			return err
		}
		inv.IncrementVersion()

		lastErr = s.uow.Execute(ctx, func(txCtx context.Context) error {
			if err := s.invoices.SaveWithLock(txCtx, inv, expectedVersion); err != nil {
				return err
			}
			if accrued {
				return s.suppliers.ReleasePayable(txCtx, *cost.SupplierID, cost.Amount)
			}
			return nil
		})
		if errors.Is(lastErr, shared.ErrConcurrencyConflict) {
			continue
		}
		return lastErr
	}
	return lastErr
}
