package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/cashbook"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// CashBalanceModel is the persistence model for the singleton CashBalance aggregate.
type CashBalanceModel struct {
	AggregateModel
	CashAmount valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	BankAmount valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (CashBalanceModel) TableName() string {
	return "cash_balances"
}

// ToDomain converts the persistence model to a domain CashBalance
func (m *CashBalanceModel) ToDomain() *cashbook.CashBalance {
	return &cashbook.CashBalance{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CashAmount:        m.CashAmount,
		BankAmount:        m.BankAmount,
	}
}

// FromDomain populates the persistence model from a domain CashBalance
func (m *CashBalanceModel) FromDomain(b *cashbook.CashBalance) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.CashAmount = b.CashAmount
	m.BankAmount = b.BankAmount
}

// CashMovementModel is the persistence model for the append-only movement log.
type CashMovementModel struct {
	BaseModel
	MovementType  cashbook.MovementType   `gorm:"type:varchar(30);not null;index"`
	Source        cashbook.BalanceSource  `gorm:"type:varchar(10);not null;index"`
	Amount        valueobject.Money       `gorm:"type:decimal(18,2);not null"`
	Description   string                  `gorm:"type:varchar(500)"`
	ReferenceType *cashbook.ReferenceType `gorm:"type:varchar(30);index"`
	ReferenceID   *uuid.UUID              `gorm:"type:uuid;index"`
	MovementDate  time.Time               `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CashMovementModel) TableName() string {
	return "cash_movements"
}

// ToDomain converts the persistence model to a domain CashMovement
func (m *CashMovementModel) ToDomain() *cashbook.CashMovement {
	return &cashbook.CashMovement{
		BaseEntity:    m.BaseModel.ToDomain(),
		MovementType:  m.MovementType,
		Source:        m.Source,
		Amount:        m.Amount,
		Description:   m.Description,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		MovementDate:  m.MovementDate,
	}
}

// FromDomain populates the persistence model from a domain CashMovement
func (m *CashMovementModel) FromDomain(mv *cashbook.CashMovement) {
	m.FromDomainBaseEntity(mv.BaseEntity)
	m.MovementType = mv.MovementType
	m.Source = mv.Source
	m.Amount = mv.Amount
	m.Description = mv.Description
	m.ReferenceType = mv.ReferenceType
	m.ReferenceID = mv.ReferenceID
	m.MovementDate = mv.MovementDate
}

// CashMovementModelFromDomain creates a new persistence model from a domain CashMovement
func CashMovementModelFromDomain(mv *cashbook.CashMovement) *CashMovementModel {
	m := &CashMovementModel{}
	m.FromDomain(mv)
	return m
}
