package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/invoicing"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	AggregateModel
	InvoiceNumber   string                  `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID      *uuid.UUID              `gorm:"type:uuid;index"`
	CustomerName    string                  `gorm:"type:varchar(200)"`
	Status          invoicing.InvoiceStatus `gorm:"type:varchar(20);not null;index"`
	Discount        valueobject.Money       `gorm:"type:decimal(18,2);not null;default:0"`
	Subtotal        valueobject.Money       `gorm:"type:decimal(18,2);not null;default:0"`
	Total           valueobject.Money       `gorm:"type:decimal(18,2);not null;default:0"`
	TotalCost       valueobject.Money       `gorm:"type:decimal(18,2);not null;default:0"`
	Profit          valueobject.Money       `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount      valueobject.Money       `gorm:"type:decimal(18,2);not null;default:0"`
	RemainingAmount valueobject.Money       `gorm:"type:decimal(18,2);not null;default:0;index"`
	InvoiceDate     time.Time               `gorm:"not null;index"`
	DeliveryDate    *time.Time
	Notes           string `gorm:"type:text"`
	CancelledAt     *time.Time
	Items           []InvoiceItemModel    `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
	Payments        []InvoicePaymentModel `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	items := make([]invoicing.InvoiceItem, 0, len(m.Items))
	for i := range m.Items {
		items = append(items, *m.Items[i].ToDomain())
	}
	payments := make([]invoicing.InvoicePayment, 0, len(m.Payments))
	for i := range m.Payments {
		payments = append(payments, *m.Payments[i].ToDomain())
	}

	return &invoicing.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		InvoiceNumber:     m.InvoiceNumber,
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		Status:            m.Status,
		Items:             items,
		Payments:          payments,
		Discount:          m.Discount,
		Subtotal:          m.Subtotal,
		Total:             m.Total,
		TotalCost:         m.TotalCost,
		Profit:            m.Profit,
		PaidAmount:        m.PaidAmount,
		RemainingAmount:   m.RemainingAmount,
		InvoiceDate:       m.InvoiceDate,
		DeliveryDate:      m.DeliveryDate,
		Notes:             m.Notes,
		CancelledAt:       m.CancelledAt,
	}
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *invoicing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.CustomerID = inv.CustomerID
	m.CustomerName = inv.CustomerName
	m.Status = inv.Status
	m.Discount = inv.Discount
	m.Subtotal = inv.Subtotal
	m.Total = inv.Total
	m.TotalCost = inv.TotalCost
	m.Profit = inv.Profit
	m.PaidAmount = inv.PaidAmount
	m.RemainingAmount = inv.RemainingAmount
	m.InvoiceDate = inv.InvoiceDate
	m.DeliveryDate = inv.DeliveryDate
	m.Notes = inv.Notes
	m.CancelledAt = inv.CancelledAt

	m.Items = make([]InvoiceItemModel, 0, len(inv.Items))
	for i := range inv.Items {
		var im InvoiceItemModel
		im.FromDomain(&inv.Items[i])
		m.Items = append(m.Items, im)
	}
	m.Payments = make([]InvoicePaymentModel, 0, len(inv.Payments))
	for i := range inv.Payments {
		var pm InvoicePaymentModel
		pm.FromDomain(&inv.Payments[i])
		m.Payments = append(m.Payments, pm)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *invoicing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceItemModel is the persistence model for invoice line items.
type InvoiceItemModel struct {
	BaseModel
	InvoiceID   uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID           `gorm:"type:uuid;index"`
	ProductName string               `gorm:"type:varchar(200);not null"`
	Description string               `gorm:"type:varchar(500)"`
	Quantity    valueobject.Quantity `gorm:"type:decimal(18,4);not null"`
	UnitPrice   valueobject.Money    `gorm:"type:decimal(18,2);not null"`
	TotalPrice  valueobject.Money    `gorm:"type:decimal(18,2);not null"`
	TotalCost   valueobject.Money    `gorm:"type:decimal(18,2);not null;default:0"`
	Profit      valueobject.Money    `gorm:"type:decimal(18,2);not null;default:0"`
	Costs       []ItemCostModel      `gorm:"foreignKey:InvoiceItemID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain InvoiceItem
func (m *InvoiceItemModel) ToDomain() *invoicing.InvoiceItem {
	costs := make([]invoicing.ItemCost, 0, len(m.Costs))
	for i := range m.Costs {
		costs = append(costs, *m.Costs[i].ToDomain())
	}
	return &invoicing.InvoiceItem{
		BaseEntity:  m.BaseModel.ToDomain(),
		InvoiceID:   m.InvoiceID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TotalPrice:  m.TotalPrice,
		Costs:       costs,
		TotalCost:   m.TotalCost,
		Profit:      m.Profit,
	}
}

// FromDomain populates the persistence model from a domain InvoiceItem
func (m *InvoiceItemModel) FromDomain(item *invoicing.InvoiceItem) {
	m.FromDomainBaseEntity(item.BaseEntity)
	m.InvoiceID = item.InvoiceID
	m.ProductID = item.ProductID
	m.ProductName = item.ProductName
	m.Description = item.Description
	m.Quantity = item.Quantity
	m.UnitPrice = item.UnitPrice
	m.TotalPrice = item.TotalPrice
	m.TotalCost = item.TotalCost
	m.Profit = item.Profit

	m.Costs = make([]ItemCostModel, 0, len(item.Costs))
	for i := range item.Costs {
		var cm ItemCostModel
		cm.FromDomain(&item.Costs[i])
		m.Costs = append(m.Costs, cm)
	}
}

// ItemCostModel is the persistence model for line-item cost entries.
type ItemCostModel struct {
	BaseModel
	InvoiceItemID uuid.UUID          `gorm:"type:uuid;not null;index"`
	SupplierID    *uuid.UUID         `gorm:"type:uuid;index"`
	SupplierName  string             `gorm:"type:varchar(200)"`
	CostType      invoicing.CostType `gorm:"type:varchar(50);not null"`
	Amount        valueobject.Money  `gorm:"type:decimal(18,2);not null"`
	IsInternal    bool               `gorm:"not null;default:false"`
	IsPaid        bool               `gorm:"not null;default:false;index"`
	PaidAt        *time.Time
	Notes         string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ItemCostModel) TableName() string {
	return "invoice_item_costs"
}

// ToDomain converts the persistence model to a domain ItemCost
func (m *ItemCostModel) ToDomain() *invoicing.ItemCost {
	return &invoicing.ItemCost{
		BaseEntity:    m.BaseModel.ToDomain(),
		InvoiceItemID: m.InvoiceItemID,
		SupplierID:    m.SupplierID,
		SupplierName:  m.SupplierName,
		CostType:      m.CostType,
		Amount:        m.Amount,
		IsInternal:    m.IsInternal,
		IsPaid:        m.IsPaid,
		PaidAt:        m.PaidAt,
		Notes:         m.Notes,
	}
}

// FromDomain populates the persistence model from a domain ItemCost
func (m *ItemCostModel) FromDomain(c *invoicing.ItemCost) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.InvoiceItemID = c.InvoiceItemID
	m.SupplierID = c.SupplierID
	m.SupplierName = c.SupplierName
	m.CostType = c.CostType
	m.Amount = c.Amount
	m.IsInternal = c.IsInternal
	m.IsPaid = c.IsPaid
	m.PaidAt = c.PaidAt
	m.Notes = c.Notes
}

// InvoicePaymentModel is the persistence model for invoice payments.
type InvoicePaymentModel struct {
	BaseModel
	InvoiceID   uuid.UUID               `gorm:"type:uuid;not null;index"`
	Amount      valueobject.Money       `gorm:"type:decimal(18,2);not null"`
	Method      invoicing.PaymentMethod `gorm:"type:varchar(10);not null"`
	PaymentType invoicing.PaymentType   `gorm:"type:varchar(10);not null"`
	PaymentDate time.Time               `gorm:"not null;index"`
	Notes       string                  `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (InvoicePaymentModel) TableName() string {
	return "invoice_payments"
}

// ToDomain converts the persistence model to a domain InvoicePayment
func (m *InvoicePaymentModel) ToDomain() *invoicing.InvoicePayment {
	return &invoicing.InvoicePayment{
		BaseEntity:  m.BaseModel.ToDomain(),
		InvoiceID:   m.InvoiceID,
		Amount:      m.Amount,
		Method:      m.Method,
		PaymentType: m.PaymentType,
		PaymentDate: m.PaymentDate,
		Notes:       m.Notes,
	}
}

// FromDomain populates the persistence model from a domain InvoicePayment
func (m *InvoicePaymentModel) FromDomain(p *invoicing.InvoicePayment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount
	m.Method = p.Method
	m.PaymentType = p.PaymentType
	m.PaymentDate = p.PaymentDate
	m.Notes = p.Notes
}
