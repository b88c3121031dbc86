package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/inventory"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// maxStockRetries bounds optimistic-lock retries on concurrent stock moves
const maxStockRetries = 3

// Service handles the stock of consumables. Quantity changes go through
// the aggregate's version lock so two clerks drawing the same roll of
// vinyl never lose an update.
type Service struct {
	items     inventory.InventoryItemRepository
	movements inventory.InventoryMovementRepository
	uow       shared.UnitOfWork
}

// NewService creates a new inventory Service
func NewService(
	items inventory.InventoryItemRepository,
	movements inventory.InventoryMovementRepository,
	uow shared.UnitOfWork,
) *Service {
	return &Service{
		items:     items,
		movements: movements,
		uow:       uow,
	}
}

// Create registers a stock item starting at zero quantity
func (s *Service) Create(ctx context.Context, req ItemRequest) (*ItemResponse, error) {
	item, err := inventory.NewInventoryItem(req.Name, req.Unit,
		valueobject.NewQuantity(req.MinimumQuantity), req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// Update changes an item's descriptive fields
func (s *Service) Update(ctx context.Context, id uuid.UUID, req ItemRequest) (*ItemResponse, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.Update(req.Name, req.Unit, valueobject.NewQuantity(req.MinimumQuantity), req.Notes); err != nil {
		return nil, err
	}
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// Get returns one stock item
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// List returns a filtered, paginated item list
func (s *Service) List(ctx context.Context, filter ItemListFilter) ([]ItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := inventory.ItemFilter{
		LowStockOnly: filter.LowStockOnly,
		Search:       filter.Search,
		Page:         filter.Page,
		PageSize:     filter.PageSize,
	}
	if !filter.IncludeInactive {
		active := true
		domainFilter.Active = &active
	}

	items, err := s.items.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.items.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToItemResponses(items), total, nil
}

// StockIn adds stock, repricing the weighted average cost when the
// delivery carries a unit cost
func (s *Service) StockIn(ctx context.Context, id uuid.UUID, req StockInRequest) (*ItemResponse, error) {
	return s.moveStock(ctx, id, func(item *inventory.InventoryItem) (*inventory.InventoryMovement, error) {
		var unitCost *valueobject.Money
		if req.UnitCost != nil {
			cost := valueobject.NewMoney(*req.UnitCost)
			unitCost = &cost
		}
		mv, err := item.AddStock(valueobject.NewQuantity(req.Quantity), unitCost)
		if err != nil {
			return nil, err
		}
		mv.Notes = req.Notes
		return mv, nil
	})
}

// StockOut draws stock off the shelf, rejecting draws beyond the
// current quantity
func (s *Service) StockOut(ctx context.Context, id uuid.UUID, req StockOutRequest) (*ItemResponse, error) {
	return s.moveStock(ctx, id, func(item *inventory.InventoryItem) (*inventory.InventoryMovement, error) {
		return item.RemoveStock(valueobject.NewQuantity(req.Quantity), req.Notes)
	})
}

// moveStock runs a quantity change under the version lock, retrying on
// a fresh copy when a concurrent writer won
func (s *Service) moveStock(ctx context.Context, id uuid.UUID,
	change func(*inventory.InventoryItem) (*inventory.InventoryMovement, error)) (*ItemResponse, error) {

	var lastErr error
	for attempt := 0; attempt < maxStockRetries; attempt++ {
		item, err := s.items.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		expectedVersion := item.Version

		mv, err := change(item)
		if err != nil {
			return nil, err
		}

		lastErr = s.uow.Execute(ctx, func(txCtx context.Context) error {
			if err := s.items.SaveWithLock(txCtx, item, expectedVersion); err != nil {
				return err
			}
			return s.movements.Append(txCtx, mv)
		})
		if errors.Is(lastErr, shared.ErrConcurrencyConflict) {
			continue
		}
		if lastErr != nil {
			return nil, lastErr
		}

		response := ToItemResponse(item)
		return &response, nil
	}
	return nil, lastErr
}

// ListMovements returns an item's stock log, newest first
func (s *Service) ListMovements(ctx context.Context, id uuid.UUID, page, pageSize int) ([]MovementResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if _, err := s.items.FindByID(ctx, id); err != nil {
		return nil, 0, err
	}

	movements, err := s.movements.FindByItem(ctx, id, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.movements.CountByItem(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return ToMovementResponses(movements), total, nil
}

// Deactivate hides an item from default listings
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return err
	}
	item.Deactivate()
	return s.items.Save(ctx, item)
}

// Delete removes an item and its movement log
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.items.FindByID(ctx, id); err != nil {
		return err
	}
	return s.items.Delete(ctx, id)
}
