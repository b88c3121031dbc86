package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes a caller-supplied sort direction.
// Anything that is not ASC becomes DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks a caller-supplied sort column against a
// whitelist. Unknown or empty input falls back to defaultField. This is
// the only place user input reaches an ORDER BY clause.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CashMovementSortFields contains allowed sort fields for the movement log
var CashMovementSortFields = map[string]bool{
	"movement_date": true,
	"movement_type": true,
	"amount":        true,
	"created_at":    true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"invoice_number":   true,
	"invoice_date":     true,
	"total":            true,
	"remaining_amount": true,
	"created_at":       true,
}
