package dto

import "net/http"

// Transport-level error codes. Domain error codes pass through the
// envelope unchanged; these cover failures before a service is reached.
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes. Business
// rule violations answer 422 so clients can tell a rule rejection from
// malformed input (400) and write conflicts (409).
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeInternal:   http.StatusInternalServerError,

	"VALIDATION_FAILED":      http.StatusBadRequest,
	"INVALID_INVOICE_NUMBER": http.StatusBadRequest,
	"INVALID_MOVEMENT_TYPE":  http.StatusBadRequest,
	"INVALID_SOURCE":         http.StatusBadRequest,

	"NOT_FOUND": http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_STATE":         http.StatusUnprocessableEntity,
	"HAS_PAYMENTS":          http.StatusUnprocessableEntity,
	"HAS_UNPAID_DEBTS":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":    http.StatusUnprocessableEntity,
	"SAME_ACCOUNT_TRANSFER": http.StatusUnprocessableEntity,
	"EXCEEDS_REMAINING":     http.StatusUnprocessableEntity,
}

// HTTPStatusForCode returns the HTTP status for an error code,
// defaulting to 500 for codes the map does not know
func HTTPStatusForCode(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
