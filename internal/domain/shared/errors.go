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
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)

// Identifier errors raised by the service layer before a write is attempted
var (
	// ErrIdentifierNull is returned when an update carries no identifier in its body
	ErrIdentifierNull = NewDomainError("ID_NULL", "Invalid id")
	// ErrIdentifierMismatch is returned when the path and body identifiers differ
	ErrIdentifierMismatch = NewDomainError("ID_INVALID", "Invalid ID")
	// ErrIdentifierExists is returned when a create request already carries an identifier
	ErrIdentifierExists = NewDomainError("ID_EXISTS", "A new entity cannot already have an ID")
)

// NewNotFoundError returns a not-found error naming the missing entity.
// It matches ErrNotFound under errors.Is.
func NewNotFoundError(entity string) error {
	return &notFoundError{DomainError: DomainError{Code: ErrNotFound.Code, Message: entity + " not found"}}
}

type notFoundError struct {
	DomainError
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *notFoundError) As(target any) bool {
	if t, ok := target.(**DomainError); ok {
		*t = &e.DomainError
		return true
	}
	return false
}

// CheckIdentifier verifies that an update body carries the identifier of the
// addressed resource. The null check runs before the mismatch check.
func CheckIdentifier(pathID int64, bodyID *int64) error {
	if bodyID == nil {
		return ErrIdentifierNull
	}
	if *bodyID != pathID {
		return ErrIdentifierMismatch
	}
	return nil
}
