package dto

import (
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// Response is the envelope around every API reply. Exactly one of Data or
// Error is set; Meta accompanies list pages.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Details   []ValidationDetail `json:"details,omitempty"`
	Help      string             `json:"help,omitempty"`
}

// ValidationDetail describes one rejected field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta describes the page a list response holds
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Paged wraps one page of items. A non-positive pageSize counts as the default size.
func Paged(items any, total int64, page, pageSize int) Response {
	if pageSize <= 0 {
		pageSize = shared.DefaultPageSize
	}
	meta := Meta{Total: total, Page: page, PageSize: pageSize, TotalPages: shared.TotalPages(total, pageSize)}
	return Response{Success: true, Data: items, Meta: &meta}
}

// Fail builds an error envelope. Domain codes are translated to API codes.
func Fail(code, message, requestID string) Response {
	return Response{Error: &ErrorInfo{
		Code:      NormalizeErrorCode(code),
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	}}
}

// Invalid is an ERR_VALIDATION envelope listing the rejected fields
func Invalid(message, requestID string, details []ValidationDetail) Response {
	r := Fail(ErrCodeValidation, message, requestID)
	r.Error.Details = details
	return r
}

// WithHelp points an error envelope at documentation
func (r Response) WithHelp(help string) Response {
	if r.Error != nil {
		r.Error.Help = help
	}
	return r
}
