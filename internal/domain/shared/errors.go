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

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrValidation        = NewDomainError("VALIDATION_ERROR", "Invalid or incomplete input")
	ErrStateConflict     = NewDomainError("STATE_CONFLICT", "Transition not legal from current state")
	ErrScheduleMismatch  = NewDomainError("SCHEDULE_MISMATCH", "Schedule total does not match deal amount")
	ErrInvalidAmount     = NewDomainError("INVALID_AMOUNT", "Amount must not be negative")
	ErrAlreadyAssigned   = NewDomainError("ALREADY_ASSIGNED", "Lead already has an owner")
	ErrMilestoneNotFound = NewDomainError("MILESTONE_NOT_FOUND", "No milestone matches the given name")
	ErrAuthExpired       = NewDomainError("AUTH_EXPIRED", "Credentials are invalid or expired")
	ErrUnauthorized      = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
)
