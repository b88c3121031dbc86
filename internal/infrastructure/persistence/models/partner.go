package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/partner"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// SupplierModel is the persistence model for the Supplier aggregate root.
type SupplierModel struct {
	AggregateModel
	Name      string                 `gorm:"type:varchar(200);not null;index"`
	Type      partner.SupplierType   `gorm:"type:varchar(20);not null;index"`
	Phone     string                 `gorm:"type:varchar(50)"`
	Notes     string                 `gorm:"type:varchar(500)"`
	TotalDebt valueobject.Money      `gorm:"type:decimal(18,2);not null;default:0"`
	Active    bool                   `gorm:"not null;default:true;index"`
	Payments  []SupplierPaymentModel `gorm:"foreignKey:SupplierID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Type:              m.Type,
		Phone:             m.Phone,
		Notes:             m.Notes,
		TotalDebt:         m.TotalDebt,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Supplier
func (m *SupplierModel) FromDomain(s *partner.Supplier) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.Type = s.Type
	m.Phone = s.Phone
	m.Notes = s.Notes
	m.TotalDebt = s.TotalDebt
	m.Active = s.Active
}

// SupplierModelFromDomain creates a new persistence model from a domain Supplier
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{}
	m.FromDomain(s)
	return m
}

// SupplierPaymentModel is the persistence model for supplier payments.
type SupplierPaymentModel struct {
	BaseModel
	SupplierID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount      valueobject.Money     `gorm:"type:decimal(18,2);not null"`
	Method      partner.PaymentMethod `gorm:"type:varchar(10);not null"`
	PaymentDate time.Time             `gorm:"not null;index"`
	Notes       string                `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SupplierPaymentModel) TableName() string {
	return "supplier_payments"
}

// ToDomain converts the persistence model to a domain SupplierPayment
func (m *SupplierPaymentModel) ToDomain() *partner.SupplierPayment {
	return &partner.SupplierPayment{
		BaseEntity:  m.BaseModel.ToDomain(),
		SupplierID:  m.SupplierID,
		Amount:      m.Amount,
		Method:      m.Method,
		PaymentDate: m.PaymentDate,
		Notes:       m.Notes,
	}
}

// FromDomain populates the persistence model from a domain SupplierPayment
func (m *SupplierPaymentModel) FromDomain(p *partner.SupplierPayment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SupplierID = p.SupplierID
	m.Amount = p.Amount
	m.Method = p.Method
	m.PaymentDate = p.PaymentDate
	m.Notes = p.Notes
}

// CustomerModel is the persistence model for customers.
type CustomerModel struct {
	BaseModel
	Name   string `gorm:"type:varchar(200);not null;index"`
	Phone  string `gorm:"type:varchar(50)"`
	Notes  string `gorm:"type:varchar(500)"`
	Active bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Phone:      m.Phone,
		Notes:      m.Notes,
		Active:     m.Active,
	}
}

// FromDomain populates the persistence model from a domain Customer
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Phone = c.Phone
	m.Notes = c.Notes
	m.Active = c.Active
}
