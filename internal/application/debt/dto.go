package debt

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/debt"
	"github.com/shopspring/decimal"
)

// CreateDebtRequest registers money owed back to the shop. Creation
// records the receivable only; the cash already left when it was lent.
type CreateDebtRequest struct {
	AccountID  *uuid.UUID      `json:"account_id"`
	DebtorName string          `json:"debtor_name" binding:"required,max=200"`
	Source     string          `json:"source" binding:"required,oneof=cash bank"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	DebtDate   *time.Time      `json:"debt_date"`
	DueDate    *time.Time      `json:"due_date"`
	Notes      string          `json:"notes" binding:"max=500"`
}

// RepayDebtRequest records money collected against a debt
type RepayDebtRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required,oneof=cash bank"`
	Notes  string          `json:"notes" binding:"max=500"`
}

// DebtListFilter represents filter options for the debt list
type DebtListFilter struct {
	AccountID   *uuid.UUID `form:"account_id"`
	IsPaid      *bool      `form:"is_paid"`
	OverdueOnly bool       `form:"overdue_only"`
	Search      string     `form:"search"`
	FromDate    *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate      *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AccountRequest creates or renames a debt account
type AccountRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Notes string `json:"notes" binding:"max=500"`
}

// RepaymentResponse represents one repayment in API responses
type RepaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	RepaymentDate time.Time       `json:"repayment_date"`
	Notes         string          `json:"notes,omitempty"`
}

// DebtResponse represents a debt in API responses
type DebtResponse struct {
	ID              uuid.UUID           `json:"id"`
	AccountID       *uuid.UUID          `json:"account_id,omitempty"`
	DebtorName      string              `json:"debtor_name"`
	Source          string              `json:"source"`
	Amount          decimal.Decimal     `json:"amount"`
	PaidAmount      decimal.Decimal     `json:"paid_amount"`
	RemainingAmount decimal.Decimal     `json:"remaining_amount"`
	IsPaid          bool                `json:"is_paid"`
	IsOverdue       bool                `json:"is_overdue"`
	DebtDate        time.Time           `json:"debt_date"`
	DueDate         *time.Time          `json:"due_date,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	Repayments      []RepaymentResponse `json:"repayments"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// AccountResponse represents a debt account in API responses
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToDebtResponse converts a domain debt to its API representation
func ToDebtResponse(d *debt.Debt) DebtResponse {
	repayments := make([]RepaymentResponse, 0, len(d.Repayments))
	for i := range d.Repayments {
		r := &d.Repayments[i]
		repayments = append(repayments, RepaymentResponse{
			ID:            r.ID,
			Amount:        r.Amount.Amount(),
			Method:        r.Method.String(),
			RepaymentDate: r.RepaymentDate,
			Notes:         r.Notes,
		})
	}

	return DebtResponse{
		ID:              d.ID,
		AccountID:       d.AccountID,
		DebtorName:      d.DebtorName,
		Source:          d.Source.String(),
		Amount:          d.Amount.Amount(),
		PaidAmount:      d.PaidAmount.Amount(),
		RemainingAmount: d.RemainingAmount.Amount(),
		IsPaid:          d.IsPaid,
		IsOverdue:       d.IsOverdue(time.Now()),
		DebtDate:        d.DebtDate,
		DueDate:         d.DueDate,
		Notes:           d.Notes,
		Repayments:      repayments,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ToDebtResponses converts a slice of domain debts
func ToDebtResponses(debts []debt.Debt) []DebtResponse {
	responses := make([]DebtResponse, 0, len(debts))
	for i := range debts {
		responses = append(responses, ToDebtResponse(&debts[i]))
	}
	return responses
}

// ToAccountResponse converts a domain debt account
func ToAccountResponse(account *debt.DebtAccount) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Notes:     account.Notes,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain debt accounts
func ToAccountResponses(accounts []debt.DebtAccount) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, ToAccountResponse(&accounts[i]))
	}
	return responses
}
