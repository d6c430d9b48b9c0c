package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Total int `json:"total"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Common error responses
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, apperror.Unauthorized.String(), message)
}

func TooManyRequests(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusTooManyRequests, apperror.TooManyRequests.String(), message)
}

func InternalServerError(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, apperror.Internal.String(), "Internal server error")
}

// StatusFor maps an error kind to its HTTP status. Domain failures share 400
// and are told apart by the error code.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.Validation, apperror.NotFound, apperror.Conflict,
		apperror.Forbidden, apperror.InvalidCredentials:
		return http.StatusBadRequest
	case apperror.Unauthorized:
		return http.StatusUnauthorized
	case apperror.TooManyRequests:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// FromError writes the failure envelope for err. Unknown errors are logged
// and reported without details.
func FromError(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok || appErr.Kind == apperror.Internal {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.FullPath()).
			Msg("request failed")
		InternalServerError(c)
		return
	}

	kind := appErr.Kind.String()

	// per-field messages from request validation
	var fieldErrs validation.Errors
	if appErr.Kind == apperror.Validation && errors.As(appErr.Err, &fieldErrs) {
		ErrorWithDetails(c, StatusFor(appErr.Kind), kind, appErr.Message, gin.H{"fields": fieldErrs})
		return
	}

	if appErr.Code != "" && appErr.Code != kind {
		ErrorWithDetails(c, StatusFor(appErr.Kind), kind, appErr.Message, gin.H{"reason": appErr.Code})
		return
	}
	ErrorResponse(c, StatusFor(appErr.Kind), kind, appErr.Message)
}
