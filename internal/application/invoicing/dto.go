package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/invoicing"
	"github.com/shopspring/decimal"
)

// ItemCostRequest represents one cost entry on an invoice line
type ItemCostRequest struct {
	SupplierID *uuid.UUID      `json:"supplier_id"`
	CostType   string          `json:"cost_type" binding:"max=50"`
	Amount     decimal.Decimal `json:"amount"`
	IsInternal bool            `json:"is_internal"`
	Notes      string          `json:"notes" binding:"max=500"`
}

// InvoiceItemRequest represents one line item on an invoice
type InvoiceItemRequest struct {
	ProductID   *uuid.UUID        `json:"product_id"`
	ProductName string            `json:"product_name" binding:"max=200"`
	Description string            `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal   `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal   `json:"unit_price"`
	Costs       []ItemCostRequest `json:"costs" binding:"omitempty,dive"`
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	CustomerID   *uuid.UUID           `json:"customer_id"`
	CustomerName string               `json:"customer_name" binding:"max=200"`
	InvoiceDate  *time.Time           `json:"invoice_date"`
	DeliveryDate *time.Time           `json:"delivery_date"`
	Discount     decimal.Decimal      `json:"discount"`
	Notes        string               `json:"notes" binding:"max=500"`
	Items        []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest represents a partial invoice update. A non-nil
// Items slice replaces every line item.
type UpdateInvoiceRequest struct {
	CustomerID   *uuid.UUID            `json:"customer_id"`
	CustomerName *string               `json:"customer_name" binding:"omitempty,max=200"`
	InvoiceDate  *time.Time            `json:"invoice_date"`
	DeliveryDate *time.Time            `json:"delivery_date"`
	Discount     *decimal.Decimal      `json:"discount"`
	Notes        *string               `json:"notes" binding:"omitempty,max=500"`
	Items        *[]InvoiceItemRequest `json:"items" binding:"omitempty,dive"`
}

// AddPaymentRequest represents a payment against an invoice
type AddPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required,oneof=cash bank"`
	PaymentType string          `json:"payment_type" binding:"required,oneof=deposit partial full"`
	PaymentDate *time.Time      `json:"payment_date"`
	Notes       string          `json:"notes" binding:"max=500"`
}

// UpdateStatusRequest represents a status transition request
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new in_progress ready delivered cancelled"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Status     string     `form:"status" binding:"omitempty,oneof=new in_progress ready delivered cancelled"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Search     string     `form:"search"`
	FromDate   *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"to_date" time_format:"2006-01-02"`
	UnpaidOnly bool       `form:"unpaid_only"`
	SortBy     string     `form:"sort_by"`
	SortOrder  string     `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ItemCostResponse represents a cost entry in API responses
type ItemCostResponse struct {
	ID           uuid.UUID       `json:"id"`
	SupplierID   *uuid.UUID      `json:"supplier_id,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
	CostType     string          `json:"cost_type"`
	Amount       decimal.Decimal `json:"amount"`
	IsInternal   bool            `json:"is_internal"`
	IsPaid       bool            `json:"is_paid"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// InvoiceItemResponse represents a line item in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID          `json:"id"`
	ProductID   *uuid.UUID         `json:"product_id,omitempty"`
	ProductName string             `json:"product_name"`
	Description string             `json:"description,omitempty"`
	Quantity    decimal.Decimal    `json:"quantity"`
	UnitPrice   decimal.Decimal    `json:"unit_price"`
	TotalPrice  decimal.Decimal    `json:"total_price"`
	TotalCost   decimal.Decimal    `json:"total_cost"`
	Profit      decimal.Decimal    `json:"profit"`
	Costs       []ItemCostResponse `json:"costs"`
}

// PaymentResponse represents an invoice payment in API responses
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	PaymentType string          `json:"payment_type"`
	PaymentDate time.Time       `json:"payment_date"`
	Notes       string          `json:"notes,omitempty"`
}

// InvoiceResponse represents a full invoice in API responses
type InvoiceResponse struct {
	ID              uuid.UUID             `json:"id"`
	InvoiceNumber   string                `json:"invoice_number"`
	CustomerID      *uuid.UUID            `json:"customer_id,omitempty"`
	CustomerName    string                `json:"customer_name"`
	Status          string                `json:"status"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	Discount        decimal.Decimal       `json:"discount"`
	Total           decimal.Decimal       `json:"total"`
	TotalCost       decimal.Decimal       `json:"total_cost"`
	Profit          decimal.Decimal       `json:"profit"`
	PaidAmount      decimal.Decimal       `json:"paid_amount"`
	RemainingAmount decimal.Decimal       `json:"remaining_amount"`
	InvoiceDate     time.Time             `json:"invoice_date"`
	DeliveryDate    *time.Time            `json:"delivery_date,omitempty"`
	CancelledAt     *time.Time            `json:"cancelled_at,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	Items           []InvoiceItemResponse `json:"items"`
	Payments        []PaymentResponse     `json:"payments"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
	Version         int                   `json:"version"`
}

// InvoiceListResponse is the slim list-view representation
type InvoiceListResponse struct {
	ID              uuid.UUID       `json:"id"`
	InvoiceNumber   string          `json:"invoice_number"`
	CustomerID      *uuid.UUID      `json:"customer_id,omitempty"`
	CustomerName    string          `json:"customer_name"`
	Status          string          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	InvoiceDate     time.Time       `json:"invoice_date"`
	DeliveryDate    *time.Time      `json:"delivery_date,omitempty"`
}

// ToInvoiceResponse converts a domain invoice to its API representation
func ToInvoiceResponse(inv *invoicing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for i := range inv.Items {
		items = append(items, toItemResponse(&inv.Items[i]))
	}
	payments := make([]PaymentResponse, 0, len(inv.Payments))
	for i := range inv.Payments {
		p := &inv.Payments[i]
		payments = append(payments, PaymentResponse{
			ID:          p.ID,
			Amount:      p.Amount.Amount(),
			Method:      p.Method.String(),
			PaymentType: string(p.PaymentType),
			PaymentDate: p.PaymentDate,
			Notes:       p.Notes,
		})
	}

	return InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		Status:          inv.Status.String(),
		Subtotal:        inv.Subtotal.Amount(),
		Discount:        inv.Discount.Amount(),
		Total:           inv.Total.Amount(),
		TotalCost:       inv.TotalCost.Amount(),
		Profit:          inv.Profit.Amount(),
		PaidAmount:      inv.PaidAmount.Amount(),
		RemainingAmount: inv.RemainingAmount.Amount(),
		InvoiceDate:     inv.InvoiceDate,
		DeliveryDate:    inv.DeliveryDate,
		CancelledAt:     inv.CancelledAt,
		Notes:           inv.Notes,
		Items:           items,
		Payments:        payments,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
		Version:         inv.Version,
	}
}

func toItemResponse(item *invoicing.InvoiceItem) InvoiceItemResponse {
	costs := make([]ItemCostResponse, 0, len(item.Costs))
	for i := range item.Costs {
		c := &item.Costs[i]
		costs = append(costs, ItemCostResponse{
			ID:           c.ID,
			SupplierID:   c.SupplierID,
			SupplierName: c.SupplierName,
			CostType:     string(c.CostType),
			Amount:       c.Amount.Amount(),
			IsInternal:   c.IsInternal,
			IsPaid:       c.IsPaid,
			PaidAt:       c.PaidAt,
			Notes:        c.Notes,
		})
	}
	return InvoiceItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Description: item.Description,
		Quantity:    item.Quantity.Decimal(),
		UnitPrice:   item.UnitPrice.Amount(),
		TotalPrice:  item.TotalPrice.Amount(),
		TotalCost:   item.TotalCost.Amount(),
		Profit:      item.Profit.Amount(),
		Costs:       costs,
	}
}

// ToInvoiceListResponses converts domain invoices to the list view
func ToInvoiceListResponses(invoices []invoicing.Invoice) []InvoiceListResponse {
	responses := make([]InvoiceListResponse, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		responses = append(responses, InvoiceListResponse{
			ID:              inv.ID,
			InvoiceNumber:   inv.InvoiceNumber,
			CustomerID:      inv.CustomerID,
			CustomerName:    inv.CustomerName,
			Status:          inv.Status.String(),
			Total:           inv.Total.Amount(),
			PaidAmount:      inv.PaidAmount.Amount(),
			RemainingAmount: inv.RemainingAmount.Amount(),
			InvoiceDate:     inv.InvoiceDate,
			DeliveryDate:    inv.DeliveryDate,
		})
	}
	return responses
}
