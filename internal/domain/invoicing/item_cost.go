package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// CostType classifies what a line-item cost was spent on. Free text by
// design; these constants cover the common cases.
type CostType string

const (
	CostTypeMaterial    CostType = "material"
	CostTypeOutsourcing CostType = "outsourcing"
	CostTypeLabor       CostType = "labor"
	CostTypeOther       CostType = "other"
)

// ItemCost is a cost entry attached to an invoice line item. The amount
// covers the whole line, not a per-unit figure. A cost with a supplier
// that is neither internal nor already paid accrues a supplier payable.
type ItemCost struct {
	shared.BaseEntity
	InvoiceItemID uuid.UUID
	SupplierID    *uuid.UUID
	SupplierName  string
	CostType      CostType
	Amount        valueobject.Money
	IsInternal    bool
	IsPaid        bool
	PaidAt        *time.Time
	Notes         string
}

// NewItemCost creates a cost entry for a line item
func NewItemCost(supplierID *uuid.UUID, supplierName string, costType CostType, amount valueobject.Money, isInternal bool, notes string) (*ItemCost, error) {
	if costType == "" {
		costType = CostTypeOther
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Cost amount cannot be negative")
	}
	if !isInternal && supplierID == nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "External cost requires a supplier")
	}

	return &ItemCost{
		BaseEntity:   shared.NewBaseEntity(),
		SupplierID:   supplierID,
		SupplierName: supplierName,
		CostType:     costType,
		Amount:       amount,
		IsInternal:   isInternal,
		Notes:        notes,
	}, nil
}

// AccruesPayable reports whether this cost contributes to a supplier's
// outstanding payable
func (c *ItemCost) AccruesPayable() bool {
	return c.SupplierID != nil && !c.IsInternal && !c.IsPaid
}

// MarkPaid settles the cost against its supplier
func (c *ItemCost) MarkPaid() error {
	if c.IsPaid {
		return shared.NewDomainError("INVALID_STATE", "Cost is already paid")
	}
	now := time.Now()
	c.IsPaid = true
	c.PaidAt = &now
	c.UpdatedAt = now
	return nil
}
