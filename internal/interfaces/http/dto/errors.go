package dto

import "net/http"

// HTTP status mapping for domain error codes. Codes missing from the table
// fall back per category: validation-style INVALID_ codes to 400, everything
// else to 500.
var errorCodeHTTPStatus = map[string]int{
	// Resources
	"NOT_FOUND":      http.StatusNotFound,
	"USER_NOT_FOUND": http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,
	"DEBT_EXISTS":    http.StatusConflict,
	"USERNAME_TAKEN": http.StatusConflict,

	// Auth
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"FORBIDDEN":           http.StatusForbidden,

	// Business rules -> 422 Unprocessable Entity
	"INVALID_TRANSITION": http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"EXCESS_PAYMENT":     http.StatusUnprocessableEntity,
	"HAS_PAYMENTS":       http.StatusUnprocessableEntity,
	"SUPPLIER_HAS_DEBT":  http.StatusUnprocessableEntity,
	"SESSION_CLOSED":     http.StatusUnprocessableEntity,
	"INVALID_STATE":      http.StatusUnprocessableEntity,

	// Conflicting state
	"SESSION_ALREADY_OPEN": http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Internal
	"INTERNAL_ERROR":      http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
}

// General error codes used directly by handlers
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// GetHTTPStatus returns the HTTP status code for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if len(code) > 8 && code[:8] == "INVALID_" {
		return http.StatusBadRequest
	}
	if code == ErrCodeBadRequest || code == "NO_ITEMS" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
