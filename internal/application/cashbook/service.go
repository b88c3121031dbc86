package cashbook

import (
	"context"
	"fmt"

	"github.com/printshop/backend/internal/domain/cashbook"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// Service handles cash ledger operations. Every mutation appends
// movements and applies balance deltas inside one unit of work so the
// ledger and the cached balances never diverge.
type Service struct {
	balances  cashbook.CashBalanceRepository
	movements cashbook.CashMovementRepository
	uow       shared.UnitOfWork
}

// NewService creates a new cashbook Service
func NewService(balances cashbook.CashBalanceRepository, movements cashbook.CashMovementRepository, uow shared.UnitOfWork) *Service {
	return &Service{
		balances:  balances,
		movements: movements,
		uow:       uow,
	}
}

// GetBalance returns the current cash position, creating the singleton
// row on first access
func (s *Service) GetBalance(ctx context.Context) (*BalanceResponse, error) {
	balance, err := s.balances.Get(ctx)
	if err != nil {
		return nil, err
	}
	response := ToBalanceResponse(balance)
	return &response, nil
}

// Transfer moves money between the cash and bank balances
func (s *Service) Transfer(ctx context.Context, req TransferRequest) (*BalanceResponse, error) {
	from := cashbook.BalanceSource(req.From)
	to := cashbook.BalanceSource(req.To)
	if from == to {
		return nil, shared.ErrSameAccountTransfer
	}
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Transfer amount must be positive")
	}
	amount := valueobject.NewMoney(req.Amount)

	description := req.Notes
	if description == "" {
		description = fmt.Sprintf("Transfer %s to %s", from, to)
	}

	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		out, err := cashbook.NewCashMovement(cashbook.MovementTypeTransferOut, from, amount, description)
		if err != nil {
			return err
		}
		if err := s.movements.Append(txCtx, out); err != nil {
			return err
		}

		in, err := cashbook.NewCashMovement(cashbook.MovementTypeTransferIn, to, amount, description)
		if err != nil {
			return err
		}
		if err := s.movements.Append(txCtx, in); err != nil {
			return err
		}

		if err := s.balances.ApplyDelta(txCtx, from, amount.Negate()); err != nil {
			return err
		}
		return s.balances.ApplyDelta(txCtx, to, amount)
	})
	if err != nil {
		return nil, err
	}
	return s.GetBalance(ctx)
}

// SetInitial overwrites both balances with opening figures. Prior
// movements are left untouched; the reset itself is recorded.
func (s *Service) SetInitial(ctx context.Context, req SetInitialRequest) (*BalanceResponse, error) {
	if req.CashAmount.IsNegative() || req.BankAmount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Opening balances cannot be negative")
	}

	cash := valueobject.NewMoney(req.CashAmount)
	bank := valueobject.NewMoney(req.BankAmount)

	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		cashMv, err := cashbook.NewCashMovement(cashbook.MovementTypeInitial,
			cashbook.SourceCash, cash, "Opening balance")
		if err != nil {
			return err
		}
		if err := s.movements.Append(txCtx, cashMv); err != nil {
			return err
		}

		bankMv, err := cashbook.NewCashMovement(cashbook.MovementTypeInitial,
			cashbook.SourceBank, bank, "Opening balance")
		if err != nil {
			return err
		}
		if err := s.movements.Append(txCtx, bankMv); err != nil {
			return err
		}

		return s.balances.SetBalances(txCtx, cash, bank)
	})
	if err != nil {
		return nil, err
	}
	return s.GetBalance(ctx)
}

// Adjust records a manual correction. A non-negative amount is typed
// income (zero included, a pure bookkeeping mark), a negative one
// expense; the signed amount is preserved on the record.
func (s *Service) Adjust(ctx context.Context, req AdjustRequest) (*BalanceResponse, error) {
	source := cashbook.BalanceSource(req.Source)

	movementType := cashbook.MovementTypeIncome
	if req.Amount.IsNegative() {
		movementType = cashbook.MovementTypeExpense
	}
	signed := valueobject.NewMoney(req.Amount)

	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		mv, err := cashbook.NewCashMovement(movementType, source, signed, req.Description)
		if err != nil {
			return err
		}
		if err := s.movements.Append(txCtx, mv); err != nil {
			return err
		}
		return s.balances.ApplyDelta(txCtx, source, signed)
	})
	if err != nil {
		return nil, err
	}
	return s.GetBalance(ctx)
}

// ListMovements returns the movement log, newest first
func (s *Service) ListMovements(ctx context.Context, filter MovementListFilter) ([]MovementResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := cashbook.MovementFilter{
		FromDate:  filter.FromDate,
		ToDate:    filter.ToDate,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	}
	if filter.MovementType != "" {
		mt := cashbook.MovementType(filter.MovementType)
		if !mt.IsValid() {
			return nil, 0, shared.NewDomainError("VALIDATION_FAILED", "Unknown movement type")
		}
		domainFilter.MovementType = &mt
	}
	if filter.Source != "" {
		source := cashbook.BalanceSource(filter.Source)
		domainFilter.Source = &source
	}

	movements, err := s.movements.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.movements.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToMovementResponses(movements), total, nil
}

// Reconcile compares each cached balance with the signed movement sum
// for its source; a mismatch signals drift worth investigating
func (s *Service) Reconcile(ctx context.Context) (map[string]bool, error) {
	balance, err := s.balances.Get(ctx)
	if err != nil {
		return nil, err
	}

	cashSum, err := s.movements.SumSignedBySource(ctx, cashbook.SourceCash)
	if err != nil {
		return nil, err
	}
	bankSum, err := s.movements.SumSignedBySource(ctx, cashbook.SourceBank)
	if err != nil {
		return nil, err
	}

	return map[string]bool{
		"cash": balance.CashAmount.Equals(cashSum),
		"bank": balance.BankAmount.Equals(bankSum),
	}, nil
}
