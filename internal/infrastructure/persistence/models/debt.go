package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/debt"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// DebtModel is the persistence model for the Debt aggregate root.
type DebtModel struct {
	AggregateModel
	AccountID       *uuid.UUID           `gorm:"type:uuid;index"`
	DebtorName      string               `gorm:"type:varchar(200);not null;index"`
	Source          debt.RepaymentMethod `gorm:"type:varchar(10);not null"`
	Amount          valueobject.Money    `gorm:"type:decimal(18,2);not null"`
	PaidAmount      valueobject.Money    `gorm:"type:decimal(18,2);not null;default:0"`
	RemainingAmount valueobject.Money    `gorm:"type:decimal(18,2);not null;index"`
	IsPaid          bool                 `gorm:"not null;default:false;index"`
	DebtDate        time.Time            `gorm:"not null;index"`
	DueDate         *time.Time           `gorm:"index"`
	Notes           string               `gorm:"type:varchar(500)"`
	Repayments      []DebtRepaymentModel `gorm:"foreignKey:DebtID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (DebtModel) TableName() string {
	return "debts"
}

// ToDomain converts the persistence model to a domain Debt
func (m *DebtModel) ToDomain() *debt.Debt {
	repayments := make([]debt.DebtRepayment, 0, len(m.Repayments))
	for i := range m.Repayments {
		repayments = append(repayments, *m.Repayments[i].ToDomain())
	}
	return &debt.Debt{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		AccountID:         m.AccountID,
		DebtorName:        m.DebtorName,
		Source:            m.Source,
		Amount:            m.Amount,
		PaidAmount:        m.PaidAmount,
		RemainingAmount:   m.RemainingAmount,
		IsPaid:            m.IsPaid,
		DebtDate:          m.DebtDate,
		DueDate:           m.DueDate,
		Notes:             m.Notes,
		Repayments:        repayments,
	}
}

// FromDomain populates the persistence model from a domain Debt
func (m *DebtModel) FromDomain(d *debt.Debt) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.AccountID = d.AccountID
	m.DebtorName = d.DebtorName
	m.Source = d.Source
	m.Amount = d.Amount
	m.PaidAmount = d.PaidAmount
	m.RemainingAmount = d.RemainingAmount
	m.IsPaid = d.IsPaid
	m.DebtDate = d.DebtDate
	m.DueDate = d.DueDate
	m.Notes = d.Notes

	m.Repayments = make([]DebtRepaymentModel, 0, len(d.Repayments))
	for i := range d.Repayments {
		var rm DebtRepaymentModel
		rm.FromDomain(&d.Repayments[i])
		m.Repayments = append(m.Repayments, rm)
	}
}

// DebtModelFromDomain creates a new persistence model from a domain Debt
func DebtModelFromDomain(d *debt.Debt) *DebtModel {
	m := &DebtModel{}
	m.FromDomain(d)
	return m
}

// DebtRepaymentModel is the persistence model for debt repayments.
type DebtRepaymentModel struct {
	BaseModel
	DebtID        uuid.UUID            `gorm:"type:uuid;not null;index"`
	Amount        valueobject.Money    `gorm:"type:decimal(18,2);not null"`
	Method        debt.RepaymentMethod `gorm:"type:varchar(10);not null"`
	RepaymentDate time.Time            `gorm:"not null;index"`
	Notes         string               `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DebtRepaymentModel) TableName() string {
	return "debt_repayments"
}

// ToDomain converts the persistence model to a domain DebtRepayment
func (m *DebtRepaymentModel) ToDomain() *debt.DebtRepayment {
	return &debt.DebtRepayment{
		BaseEntity:    m.BaseModel.ToDomain(),
		DebtID:        m.DebtID,
		Amount:        m.Amount,
		Method:        m.Method,
		RepaymentDate: m.RepaymentDate,
		Notes:         m.Notes,
	}
}

// FromDomain populates the persistence model from a domain DebtRepayment
func (m *DebtRepaymentModel) FromDomain(r *debt.DebtRepayment) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.DebtID = r.DebtID
	m.Amount = r.Amount
	m.Method = r.Method
	m.RepaymentDate = r.RepaymentDate
	m.Notes = r.Notes
}

// DebtAccountModel is the persistence model for debt account groupings.
type DebtAccountModel struct {
	BaseModel
	Name  string `gorm:"type:varchar(200);not null"`
	Notes string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DebtAccountModel) TableName() string {
	return "debt_accounts"
}

// ToDomain converts the persistence model to a domain DebtAccount
func (m *DebtAccountModel) ToDomain() *debt.DebtAccount {
	return &debt.DebtAccount{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Notes:      m.Notes,
	}
}

// FromDomain populates the persistence model from a domain DebtAccount
func (m *DebtAccountModel) FromDomain(a *debt.DebtAccount) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Name = a.Name
	m.Notes = a.Notes
}
