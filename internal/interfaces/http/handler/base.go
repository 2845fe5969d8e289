package handler

import (
	"errors"
	"net/http"

	appintegration "github.com/catalogsync/backend/internal/application/integration"
	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/logger"
	"github.com/catalogsync/backend/internal/infrastructure/scheduler"
	"github.com/catalogsync/backend/internal/interfaces/http/dto"
	"github.com/catalogsync/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

// parsePlatform reads a platform code from a path parameter
func parsePlatform(c *gin.Context, param string) (integration.PlatformCode, error) {
	return integration.ParsePlatformCode(c.Param(param))
}

// parseUUIDParam reads a UUID path parameter
func parseUUIDParam(c *gin.Context, param string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(param))
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Accepted sends a 202 response for queued work
func (h *BaseHandler) Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
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

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ServiceUnavailable sends a 503 response for components that are not configured
func (h *BaseHandler) ServiceUnavailable(c *gin.Context, message string) {
	h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, message)
}

// errorMapping pairs a sentinel with the error code it is answered with and,
// for configuration gaps, a pointer at the setting to fix
type errorMapping struct {
	target error
	code   string
	help   string
}

const platformHelp = "configure the shopify.* and woocommerce.* settings for both platforms"

var errorMappings = []errorMapping{
	{integration.ErrUnsupportedPlatform, dto.ErrCodeUnsupportedPlatform, "supported platforms: SHOPIFY, WOOCOMMERCE"},
	{integration.ErrAdapterNotConfigured, dto.ErrCodePlatformNotConfigured, platformHelp},
	{integration.ErrTransformerNotConfigured, dto.ErrCodePlatformNotConfigured, platformHelp},
	{integration.ErrMappingNotFound, dto.ErrCodeNotFound, ""},
	{integration.ErrCanonicalProductNotFound, dto.ErrCodeNotFound, ""},
	{integration.ErrProductNotFound, dto.ErrCodeNotFound, ""},
	{integration.ErrMappingInvalidCanonicalID, dto.ErrCodeInvalidInput, ""},
	{integration.ErrMappingInvalidPlatformCode, dto.ErrCodeInvalidInput, ""},
	{integration.ErrMappingInvalidPlatformID, dto.ErrCodeInvalidInput, ""},
	{integration.ErrInvalidCanonicalProduct, dto.ErrCodeInvalidInput, ""},
	{appintegration.ErrCanonicalStoreNotConfigured, dto.ErrCodeServiceUnavailable, ""},
	{appintegration.ErrSnapshotsNotConfigured, dto.ErrCodeServiceUnavailable, "set storage.driver to memory or s3"},
	{appintegration.ErrSnapshotNotFound, dto.ErrCodeNotFound, ""},
	{appintegration.ErrInvalidSnapshotName, dto.ErrCodeInvalidInput, ""},
	{scheduler.ErrSyncAlreadyInProgress, dto.ErrCodeSyncInProgress, ""},
	{scheduler.ErrJobQueueFull, dto.ErrCodeServiceUnavailable, ""},
	{scheduler.ErrSchedulerNotRunning, dto.ErrCodeServiceUnavailable, ""},
}

// classify maps an error to its API error code and help text
func classify(err error) (code, help string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.code, m.help
		}
	}
	if integration.IsUpstreamError(err) {
		return dto.ErrCodeUpstream, ""
	}
	return dto.ErrCodeInternal, ""
}

// HandleError answers err with the mapped error code. Internal errors are
// logged and their message is not exposed.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	code, help := classify(err)
	if code == dto.ErrCodeInternal {
		logger.GetGinLogger(c).Error("Request failed", zap.Error(err))
		h.InternalError(c, "An unexpected error occurred")
		return
	}
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithHelp(code, err.Error(), getRequestID(c), help))
}
