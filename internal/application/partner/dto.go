package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// SupplierRequest creates or updates a supplier
type SupplierRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Type  string `json:"type" binding:"required,oneof=printer designer service material other"`
	Phone string `json:"phone" binding:"max=50"`
	Notes string `json:"notes" binding:"max=500"`
}

// SupplierPaymentRequest pays down a supplier's outstanding payable
type SupplierPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required,oneof=cash bank"`
	Notes  string          `json:"notes" binding:"max=500"`
}

// SupplierListFilter represents filter options for the supplier list
type SupplierListFilter struct {
	Type            string `form:"type" binding:"omitempty,oneof=printer designer service material other"`
	IncludeInactive bool   `form:"include_inactive"`
	Search          string `form:"search"`
	Page            int    `form:"page" binding:"omitempty,min=1"`
	PageSize        int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CustomerRequest creates or updates a customer
type CustomerRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Phone string `json:"phone" binding:"max=50"`
	Notes string `json:"notes" binding:"max=500"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	IncludeInactive bool   `form:"include_inactive"`
	Search          string `form:"search"`
	Page            int    `form:"page" binding:"omitempty,min=1"`
	PageSize        int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Phone     string          `json:"phone,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	TotalDebt decimal.Decimal `json:"total_debt"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SupplierPaymentResponse represents a supplier payment in API responses
type SupplierPaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	PaymentDate time.Time       `json:"payment_date"`
	Notes       string          `json:"notes,omitempty"`
}

// SupplierPayableResponse compares the cached payable against the
// figure derived from unpaid costs and payments
type SupplierPayableResponse struct {
	SupplierID  uuid.UUID       `json:"supplier_id"`
	CachedDebt  decimal.Decimal `json:"cached_debt"`
	Outstanding decimal.Decimal `json:"outstanding"`
	InSync      bool            `json:"in_sync"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a domain supplier
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Type:      string(s.Type),
		Phone:     s.Phone,
		Notes:     s.Notes,
		TotalDebt: s.TotalDebt.Amount(),
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToSupplierResponses converts a slice of domain suppliers
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	return responses
}

// ToSupplierPaymentResponses converts a slice of supplier payments
func ToSupplierPaymentResponses(payments []partner.SupplierPayment) []SupplierPaymentResponse {
	responses := make([]SupplierPaymentResponse, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		responses = append(responses, SupplierPaymentResponse{
			ID:          p.ID,
			SupplierID:  p.SupplierID,
			Amount:      p.Amount.Amount(),
			Method:      p.Method.String(),
			PaymentDate: p.PaymentDate,
			Notes:       p.Notes,
		})
	}
	return responses
}

// ToCustomerResponse converts a domain customer
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Notes:     c.Notes,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}
	return responses
}
