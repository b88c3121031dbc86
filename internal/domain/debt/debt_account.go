package debt

import (
	"time"

	"github.com/printshop/backend/internal/domain/shared"
)

// DebtAccount is an optional grouping of debts under one debtor
// relationship, e.g. a regular customer who runs a tab.
type DebtAccount struct {
	shared.BaseEntity
	Name  string
	Notes string
}

// NewDebtAccount creates a debt account
func NewDebtAccount(name, notes string) (*DebtAccount, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Account name cannot be empty")
	}
	return &DebtAccount{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Notes:      notes,
	}, nil
}

// Rename updates the account details
func (a *DebtAccount) Rename(name, notes string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_FAILED", "Account name cannot be empty")
	}
	a.Name = name
	a.Notes = notes
	a.UpdatedAt = time.Now()
	return nil
}
