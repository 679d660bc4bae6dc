// Package handler contains the gin handlers of the storefront API.
package handler

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// MergePatchContentType is the RFC 7396 media type accepted by PATCH endpoints
const MergePatchContentType = "application/merge-patch+json"

// BaseHandler writes the response envelope for the resource handlers that embed it.
type BaseHandler struct{}

func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.OK(data))
}

func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.OK(data))
}

func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Page sends one page of a list together with its pagination meta
func (h *BaseHandler) Page(c *gin.Context, items any, total int64, filter shared.Filter) {
	c.JSON(http.StatusOK, dto.Paged(items, total, filter.Page, filter.PageSize))
}

// Fail sends an error envelope. The status follows from code.
func (h *BaseHandler) Fail(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.Fail(code, message, middleware.GetRequestID(c)))
}

// HandleError reports a service error. Domain errors keep their message;
// anything else is logged and answered with a generic ERR_INTERNAL.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	switch {
	case err == nil:
	case errors.As(err, &domainErr):
		h.Fail(c, dto.NormalizeErrorCode(domainErr.Code), domainErr.Message)
	default:
		_ = c.Error(err)
		logger.FromContext(c.Request.Context()).Error("Unhandled error", zap.Error(err))
		h.Fail(c, dto.ErrCodeInternal, "An unexpected error occurred")
	}
}

// parseID reads the :id path parameter; anything but a positive integer is ERR_ID_INVALID.
func (h *BaseHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.Fail(c, dto.ErrCodeIDInvalid, "Invalid id")
		return 0, false
	}
	return id, true
}

// bind reports a binding failure. Rule violations carry per-field details,
// everything else becomes fallbackCode.
func (h *BaseHandler) bind(c *gin.Context, err error, fallbackCode, message string) bool {
	switch {
	case err == nil:
		return true
	case middleware.IsValidationError(err):
		middleware.HandleValidationError(c, err)
	default:
		h.Fail(c, fallbackCode, message)
	}
	return false
}

func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	return h.bind(c, c.ShouldBindJSON(req), dto.ErrCodeInvalidJSON, "Malformed JSON request body")
}

func (h *BaseHandler) bindQuery(c *gin.Context, filter any) bool {
	return h.bind(c, c.ShouldBindQuery(filter), dto.ErrCodeBadRequest, "Invalid query parameters")
}

// bindPatch accepts application/json and application/merge-patch+json bodies only.
func (h *BaseHandler) bindPatch(c *gin.Context, req any) bool {
	mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if err != nil || (mediaType != gin.MIMEJSON && mediaType != MergePatchContentType) {
		h.Fail(c, dto.ErrCodeUnsupportedMediaType, "PATCH accepts application/json or "+MergePatchContentType)
		return false
	}
	return h.bindJSON(c, req)
}
