package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthside/backend/internal/apierrors"
	"github.com/hearthside/backend/internal/logger"
	"go.uber.org/zap"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

// RespondWithAPIError sends a structured API error response
func RespondWithAPIError(c *gin.Context, apiErr *apierrors.APIError) {
	if apiErr.Status >= http.StatusInternalServerError {
		logger.Log.Error("API error",
			zap.String("code", string(apiErr.Code)),
			zap.String("message", apiErr.Message),
			zap.Int("status", apiErr.Status),
		)
	} else if apiErr.Status >= http.StatusBadRequest {
		logger.Log.Warn("API error",
			zap.String("code", string(apiErr.Code)),
			zap.String("message", apiErr.Message),
		)
	}

	c.JSON(apiErr.Status, ErrorResponse{
		Code:    string(apiErr.Code),
		Message: apiErr.Message,
		Field:   apiErr.Field,
	})
}

// RespondServiceError renders an error returned by a service. Classified
// failures carry their own status; anything else is an unexpected internal
// error whose detail goes to the log, not the client.
func RespondServiceError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		RespondWithAPIError(c, apiErr)
		return
	}

	logger.Log.Error("unexpected error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	RespondWithAPIError(c, apierrors.InternalError("internal server error"))
}

// RespondUnauthorized sends the uniform 401 used by every auth-gate failure
func RespondUnauthorized(c *gin.Context) {
	RespondWithAPIError(c, apierrors.Unauthorized("authentication required"))
}

// RespondBadRequest sends a 400 Bad Request response
func RespondBadRequest(c *gin.Context, message string) {
	RespondWithAPIError(c, apierrors.BadRequest(message))
}

// RespondNotFound sends a 404 Not Found response
func RespondNotFound(c *gin.Context, resource string) {
	RespondWithAPIError(c, apierrors.NotFound(resource))
}

// RespondForbidden sends a 403 Forbidden response
func RespondForbidden(c *gin.Context, message string) {
	RespondWithAPIError(c, apierrors.Forbidden(message))
}

// RespondInternalError sends a 500 Internal Server Error response
func RespondInternalError(c *gin.Context, message string) {
	RespondWithAPIError(c, apierrors.InternalError(message))
}
