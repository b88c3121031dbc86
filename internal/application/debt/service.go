package debt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/cashbook"
	"github.com/printshop/backend/internal/domain/debt"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// maxRepayRetries bounds optimistic-lock retries on concurrent repayments
const maxRepayRetries = 3

// Service handles the debt ledger. Registering a debt only records the
// receivable; repayments put money back on a balance through the cash
// ledger in the same transaction.
type Service struct {
	debts     debt.DebtRepository
	accounts  debt.DebtAccountRepository
	balances  cashbook.CashBalanceRepository
	movements cashbook.CashMovementRepository
	uow       shared.UnitOfWork
}

// NewService creates a new debt Service
func NewService(
	debts debt.DebtRepository,
	accounts debt.DebtAccountRepository,
	balances cashbook.CashBalanceRepository,
	movements cashbook.CashMovementRepository,
	uow shared.UnitOfWork,
) *Service {
	return &Service{
		debts:     debts,
		accounts:  accounts,
		balances:  balances,
		movements: movements,
		uow:       uow,
	}
}

// Create registers a new receivable. No cash movement is written; the
// money already left the till when it was lent out.
func (s *Service) Create(ctx context.Context, req CreateDebtRequest) (*DebtResponse, error) {
	if req.AccountID != nil {
		if _, err := s.accounts.FindByID(ctx, *req.AccountID); err != nil {
			return nil, err
		}
	}

	debtDate := time.Now()
	if req.DebtDate != nil {
		debtDate = *req.DebtDate
	}

	d, err := debt.NewDebt(req.AccountID, req.DebtorName, debt.RepaymentMethod(req.Source),
		valueobject.NewMoney(req.Amount), debtDate, req.DueDate, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.debts.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDebtResponse(d)
	return &response, nil
}

// Repay collects money against a debt. The repayment, the matching
// cash movement and the balance increment commit together; a lost
// optimistic-lock race is retried on a fresh copy.
func (s *Service) Repay(ctx context.Context, id uuid.UUID, req RepayDebtRequest) (*DebtResponse, error) {
	amount := valueobject.NewMoney(req.Amount)
	method := debt.RepaymentMethod(req.Method)

	var lastErr error
	for attempt := 0; attempt < maxRepayRetries; attempt++ {
		d, err := s.debts.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		expectedVersion := d.Version

		repayment, err := d.Repay(amount, method, req.Notes)
		if err != nil {
			return nil, err
		}

		lastErr = s.uow.Execute(ctx, func(txCtx context.Context) error {
			if err := s.debts.SaveWithLock(txCtx, d, expectedVersion); err != nil {
				return err
			}

			source := cashbook.BalanceSource(method)
			mv, err := cashbook.NewCashMovement(cashbook.MovementTypeDebtRepayment, source, amount,
				fmt.Sprintf("Repayment from %s", d.DebtorName))
			if err != nil {
				return err
			}
			mv = mv.WithReference(cashbook.ReferenceTypeDebtRepayment, repayment.ID)
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
		return s.get(ctx, id)
	}
	return nil, lastErr
}

// Get returns a single debt with its repayments
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*DebtResponse, error) {
	return s.get(ctx, id)
}

// List returns a filtered, paginated debt list
func (s *Service) List(ctx context.Context, filter DebtListFilter) ([]DebtResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := debt.DebtFilter{
		AccountID:   filter.AccountID,
		IsPaid:      filter.IsPaid,
		OverdueOnly: filter.OverdueOnly,
		Search:      filter.Search,
		FromDate:    filter.FromDate,
		ToDate:      filter.ToDate,
		Page:        filter.Page,
		PageSize:    filter.PageSize,
	}

	debts, err := s.debts.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.debts.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToDebtResponses(debts), total, nil
}

// Delete removes a debt and its repayment history
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.debts.FindByID(ctx, id); err != nil {
		return err
	}
	return s.debts.Delete(ctx, id)
}

// CreateAccount creates a debt account grouping
func (s *Service) CreateAccount(ctx context.Context, req AccountRequest) (*AccountResponse, error) {
	account, err := debt.NewDebtAccount(req.Name, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// UpdateAccount renames a debt account
func (s *Service) UpdateAccount(ctx context.Context, id uuid.UUID, req AccountRequest) (*AccountResponse, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := account.Rename(req.Name, req.Notes); err != nil {
		return nil, err
	}
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// ListAccounts returns every debt account
func (s *Service) ListAccounts(ctx context.Context) ([]AccountResponse, error) {
	accounts, err := s.accounts.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToAccountResponses(accounts), nil
}

// DeleteAccount removes an account. Accounts still carrying unpaid
// debts are protected.
func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.accounts.FindByID(ctx, id); err != nil {
		return err
	}
	unpaid, err := s.debts.CountUnpaidByAccount(ctx, id)
	if err != nil {
		return err
	}
	if unpaid > 0 {
		return shared.ErrHasUnpaidDebts
	}
	return s.accounts.Delete(ctx, id)
}

func (s *Service) get(ctx context.Context, id uuid.UUID) (*DebtResponse, error) {
	d, err := s.debts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToDebtResponse(d)
	return &response, nil
}
