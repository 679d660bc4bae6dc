package dto

import "net/http"

// API error codes, all of the form ERR_<WHAT>.
const (
	ErrCodeInternal   = "ERR_INTERNAL"
	ErrCodeValidation = "ERR_VALIDATION"

	// ErrCodeIDExists rejects a create body that already carries an id
	ErrCodeIDExists = "ERR_ID_EXISTS"
	// ErrCodeIDNull rejects an update body without an id
	ErrCodeIDNull = "ERR_ID_NULL"
	// ErrCodeIDInvalid rejects a malformed path id, or a body id that differs from it
	ErrCodeIDInvalid = "ERR_ID_INVALID"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"

	ErrCodeBadRequest           = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput         = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON          = "ERR_INVALID_JSON"
	ErrCodeUnsupportedMediaType = "ERR_UNSUPPORTED_MEDIA_TYPE"
	ErrCodeRequestTooLarge      = "ERR_REQUEST_TOO_LARGE"

	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	ErrCodeForbidden   = "ERR_FORBIDDEN"
)

// codeStatus is the HTTP status sent with each API error code.
var codeStatus = map[string]int{
	ErrCodeInternal:             http.StatusInternalServerError,
	ErrCodeValidation:           http.StatusBadRequest,
	ErrCodeIDExists:             http.StatusBadRequest,
	ErrCodeIDNull:               http.StatusBadRequest,
	ErrCodeIDInvalid:            http.StatusBadRequest,
	ErrCodeNotFound:             http.StatusNotFound,
	ErrCodeConcurrencyConflict:  http.StatusConflict,
	ErrCodeBadRequest:           http.StatusBadRequest,
	ErrCodeInvalidInput:         http.StatusBadRequest,
	ErrCodeInvalidJSON:          http.StatusBadRequest,
	ErrCodeUnsupportedMediaType: http.StatusUnsupportedMediaType,
	ErrCodeRequestTooLarge:      http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:          http.StatusTooManyRequests,
	ErrCodeForbidden:            http.StatusForbidden,
}

// domainCodes translates shared.DomainError codes. Every field-level
// rejection from the entities surfaces as ERR_INVALID_INPUT.
var domainCodes = map[string]string{
	"NOT_FOUND":              ErrCodeNotFound,
	"CONCURRENCY_CONFLICT":   ErrCodeConcurrencyConflict,
	"ID_EXISTS":              ErrCodeIDExists,
	"ID_NULL":                ErrCodeIDNull,
	"ID_INVALID":             ErrCodeIDInvalid,
	"INVALID_INPUT":          ErrCodeInvalidInput,
	"INVALID_GENDER":         ErrCodeInvalidInput,
	"INVALID_STATUS":         ErrCodeInvalidInput,
	"INVALID_PAYMENT_METHOD": ErrCodeInvalidInput,
	"VALIDATION_ERROR":       ErrCodeValidation,
	"BAD_REQUEST":            ErrCodeBadRequest,
	"INTERNAL_ERROR":         ErrCodeInternal,
}

// GetHTTPStatus returns the status for an API error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode maps a domain code to its API code.
// API codes and unknown codes come back unchanged.
func NormalizeErrorCode(code string) string {
	if api, ok := domainCodes[code]; ok {
		return api
	}
	return code
}
