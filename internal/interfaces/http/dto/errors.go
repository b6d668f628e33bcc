package dto

import "net/http"

// Error code constants
// Format: ERR_<CATEGORY>
const (
	// ErrCodeInternal is used for store failures and unexpected errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeValidation is used for missing or malformed request fields
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidJSON is used when the body is not parseable JSON
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeUnauthenticated is used when the bearer credential is missing or malformed
	ErrCodeUnauthenticated = "ERR_UNAUTHENTICATED"
	// ErrCodeInvalidCredential is used when the credential is expired, forged or revoked
	ErrCodeInvalidCredential = "ERR_INVALID_CREDENTIAL"
	// ErrCodeForbidden is used when the entity belongs to another shop
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:          http.StatusInternalServerError,
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeInvalidJSON:       http.StatusBadRequest,
	ErrCodeUnauthenticated:   http.StatusUnauthorized,
	ErrCodeInvalidCredential: http.StatusForbidden,
	ErrCodeForbidden:         http.StatusForbidden,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeRequestTooLarge:   http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"VALIDATION_ERROR":   ErrCodeValidation,
	"NOT_FOUND":          ErrCodeNotFound,
	"FORBIDDEN":          ErrCodeForbidden,
	"UNAUTHENTICATED":    ErrCodeUnauthenticated,
	"INVALID_CREDENTIAL": ErrCodeInvalidCredential,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
