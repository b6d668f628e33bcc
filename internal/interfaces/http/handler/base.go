package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/neardukaan/backend/internal/domain/shared"
	"github.com/neardukaan/backend/internal/infrastructure/logger"
	"github.com/neardukaan/backend/internal/interfaces/http/dto"
	"github.com/neardukaan/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Generic messages for failures whose details stay in the logs
const (
	msgInternal    = "Internal server error."
	msgInvalidJSON = "Invalid JSON body."
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

// getShopID returns the authenticated shop. Routes using it sit behind BearerAuth.
func getShopID(c *gin.Context) string {
	return middleware.GetShopID(c)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 validation error response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleDomainError converts domain errors to HTTP responses. Anything else
// is logged and reported as a generic internal error.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	h.handleError(c, err, msgInternal)
}

func (h *BaseHandler) handleError(c *gin.Context, err error, internalMessage string) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	_ = c.Error(err)
	logger.L(c.Request.Context()).Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	h.InternalError(c, internalMessage)
}

// BindJSON decodes the body into req and writes the error response itself
// when it cannot. An empty body or a missing required field is reported
// with missingMessage. It returns false when the handler should stop.
func (h *BaseHandler) BindJSON(c *gin.Context, req any, missingMessage string) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var (
		maxBytesErr  *http.MaxBytesError
		typeErr      *json.UnmarshalTypeError
		syntaxErr    *json.SyntaxError
		validatorMsg = middleware.ValidationMessage(err)
	)
	switch {
	case errors.Is(err, io.EOF):
		h.BadRequest(c, missingMessage)
	case errors.As(err, &maxBytesErr):
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge,
			"Request body exceeds maximum allowed size")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		h.BadRequest(c, "Invalid value for field '"+typeErr.Field+"'.")
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.ErrUnexpectedEOF):
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, msgInvalidJSON)
	case middleware.HasRequiredFailure(err):
		h.BadRequest(c, missingMessage)
	case validatorMsg != "":
		h.BadRequest(c, validatorMsg)
	default:
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, msgInvalidJSON)
	}
	return false
}
