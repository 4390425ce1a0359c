package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/logging"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string                `json:"error"`
	Details []apperror.FieldError `json:"details,omitempty"`
}

// StatusFor maps an error onto its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse hides the text of unexpected errors from clients.
func NewErrorResponse(err error) (int, ErrorResponse) {
	status := StatusFor(err)
	resp := ErrorResponse{Error: err.Error()}

	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		resp.Error = "validation failed"
		resp.Details = verr.Fields
	}
	switch status {
	case http.StatusServiceUnavailable:
		resp.Error = "storage temporarily unavailable"
	case http.StatusInternalServerError:
		resp.Error = "internal server error"
	}
	return status, resp
}

// ErrorHandler renders the last error a handler attached with c.Error and
// turns panics into a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logging.Ctx(c.Request.Context()).Error().
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Msg("recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, resp := NewErrorResponse(err)
		if status >= http.StatusInternalServerError {
			logging.Ctx(c.Request.Context()).Error().Err(err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("request failed")
		}
		c.JSON(status, resp)
	}
}
