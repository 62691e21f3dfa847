// Package handler holds the gin handlers of the storefront API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/infrastructure/logger"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
	"github.com/jeenmata/impex/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID returns the ID set by the RequestID middleware
func getRequestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}

// currentUserID returns the authenticated user ID, writing a 401 when absent
func (h *BaseHandler) currentUserID(c *gin.Context) (string, bool) {
	id := middleware.GetJWTUserID(c)
	if id == "" {
		h.Unauthorized(c, "Authentication required")
		return "", false
	}
	return id, true
}

// bindJSON binds the body and writes the validation response on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// bindQuery binds query parameters and writes the validation response on failure
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessList sends a list with its row count
func (h *BaseHandler) SuccessList(c *gin.Context, data any, total int) {
	c.JSON(http.StatusOK, dto.NewListResponse(data, total, 0))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving the status from the code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	code = dto.NormalizeErrorCode(code)
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError maps domain errors to their API code and status. Anything
// else is logged and reported as a 500 without details.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.ErrorWithCode(c, domainErr.Code, domainErr.Message)
		return
	}

	logger.FromContext(c.Request.Context()).Error("Unhandled error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	_ = c.Error(err)
	h.InternalError(c, "An unexpected error occurred")
}
