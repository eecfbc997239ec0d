package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidAmount is used when a money value is negative or malformed
	ErrCodeInvalidAmount = "ERR_INVALID_AMOUNT"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeAuthExpired is used when the auth token has expired or been revoked
	ErrCodeAuthExpired = "ERR_AUTH_EXPIRED"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeMilestoneNotFound is used when a payment references a milestone
	// the booking's schedule does not contain
	ErrCodeMilestoneNotFound = "ERR_MILESTONE_NOT_FOUND"
)

// Business rule error codes
const (
	// ErrCodeStateConflict is used when a lifecycle transition is not legal
	// from the current state
	ErrCodeStateConflict = "ERR_STATE_CONFLICT"
	// ErrCodeScheduleMismatch is used when milestone amounts do not sum to
	// the booking's deal amount
	ErrCodeScheduleMismatch = "ERR_SCHEDULE_MISMATCH"
	// ErrCodeAlreadyAssigned is used when assigning a lead that has an owner
	ErrCodeAlreadyAssigned = "ERR_ALREADY_ASSIGNED"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodePayloadTooLarge is used when the request body exceeds the limit
	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeInvalidAmount: http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeAuthExpired:  http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeMilestoneNotFound: http.StatusNotFound,
	ErrCodeAlreadyExists:     http.StatusConflict,

	// Business rule errors
	ErrCodeStateConflict:    http.StatusConflict,
	ErrCodeAlreadyAssigned:  http.StatusConflict,
	ErrCodeScheduleMismatch: http.StatusUnprocessableEntity,

	// Input errors
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to wire-level codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":           ErrCodeNotFound,
	"ALREADY_EXISTS":      ErrCodeAlreadyExists,
	"VALIDATION_ERROR":    ErrCodeValidation,
	"STATE_CONFLICT":      ErrCodeStateConflict,
	"SCHEDULE_MISMATCH":   ErrCodeScheduleMismatch,
	"INVALID_AMOUNT":      ErrCodeInvalidAmount,
	"ALREADY_ASSIGNED":    ErrCodeAlreadyAssigned,
	"MILESTONE_NOT_FOUND": ErrCodeMilestoneNotFound,
	"AUTH_EXPIRED":        ErrCodeAuthExpired,
	"UNAUTHORIZED":        ErrCodeUnauthorized,
	"FORBIDDEN":           ErrCodeForbidden,
	"INTERNAL_ERROR":      ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the wire-level format
// If the code is already in the wire format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
