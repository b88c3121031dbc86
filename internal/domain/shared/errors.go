package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so errors.Is works against the
// sentinel values below regardless of the message
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrValidationFailed    = NewDomainError("VALIDATION_FAILED", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrHasPayments         = NewDomainError("HAS_PAYMENTS", "Invoice has payments and cannot be deleted, cancel it instead")
	ErrHasUnpaidDebts      = NewDomainError("HAS_UNPAID_DEBTS", "Account has unpaid debts and cannot be deleted")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrSameAccountTransfer = NewDomainError("SAME_ACCOUNT_TRANSFER", "Transfer source and destination must differ")
	ErrExceedsRemaining    = NewDomainError("EXCEEDS_REMAINING", "Amount exceeds the remaining amount")
)
