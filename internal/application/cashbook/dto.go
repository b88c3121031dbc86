package cashbook

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/cashbook"
	"github.com/shopspring/decimal"
)

// BalanceResponse represents the cash position in API responses
type BalanceResponse struct {
	CashAmount decimal.Decimal `json:"cash_amount"`
	BankAmount decimal.Decimal `json:"bank_amount"`
	Total      decimal.Decimal `json:"total"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TransferRequest represents a request to move money between balances
type TransferRequest struct {
	From   string          `json:"from" binding:"required,oneof=cash bank"`
	To     string          `json:"to" binding:"required,oneof=cash bank"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Notes  string          `json:"notes" binding:"max=500"`
}

// SetInitialRequest represents a request to seed the opening balances
type SetInitialRequest struct {
	CashAmount decimal.Decimal `json:"cash_amount"`
	BankAmount decimal.Decimal `json:"bank_amount"`
}

// AdjustRequest represents a manual balance correction. The signed
// amount is kept on the movement record.
type AdjustRequest struct {
	Source      string          `json:"source" binding:"required,oneof=cash bank"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,max=500"`
}

// MovementResponse represents a cash movement in API responses
type MovementResponse struct {
	ID            uuid.UUID       `json:"id"`
	MovementType  string          `json:"movement_type"`
	Source        string          `json:"source"`
	Amount        decimal.Decimal `json:"amount"`
	SignedAmount  decimal.Decimal `json:"signed_amount"`
	Description   string          `json:"description"`
	ReferenceType *string         `json:"reference_type,omitempty"`
	ReferenceID   *uuid.UUID      `json:"reference_id,omitempty"`
	MovementDate  time.Time       `json:"movement_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovementListFilter represents filter options for the movement list
type MovementListFilter struct {
	MovementType string     `form:"movement_type"`
	Source       string     `form:"source" binding:"omitempty,oneof=cash bank"`
	FromDate     *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate       *time.Time `form:"to_date" time_format:"2006-01-02"`
	SortBy       string     `form:"sort_by"`
	SortOrder    string     `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToBalanceResponse converts a domain balance to its API representation
func ToBalanceResponse(balance *cashbook.CashBalance) BalanceResponse {
	return BalanceResponse{
		CashAmount: balance.CashAmount.Amount(),
		BankAmount: balance.BankAmount.Amount(),
		Total:      balance.CashAmount.Add(balance.BankAmount).Amount(),
		UpdatedAt:  balance.UpdatedAt,
	}
}

// ToMovementResponse converts a domain movement to its API representation
func ToMovementResponse(mv *cashbook.CashMovement) MovementResponse {
	resp := MovementResponse{
		ID:           mv.ID,
		MovementType: mv.MovementType.String(),
		Source:       mv.Source.String(),
		Amount:       mv.DisplayAmount().Amount(),
		SignedAmount: mv.SignedAmount().Amount(),
		Description:  mv.Description,
		ReferenceID:  mv.ReferenceID,
		MovementDate: mv.MovementDate,
		CreatedAt:    mv.CreatedAt,
	}
	if mv.ReferenceType != nil {
		refType := string(*mv.ReferenceType)
		resp.ReferenceType = &refType
	}
	return resp
}

// ToMovementResponses converts a slice of domain movements
func ToMovementResponses(movements []cashbook.CashMovement) []MovementResponse {
	responses := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		responses = append(responses, ToMovementResponse(&movements[i]))
	}
	return responses
}
