// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/users/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error      string              `json:"error"`
	Message    string              `json:"message,omitempty"`
	Code       string              `json:"code,omitempty"`
	Violations []ViolationResponse `json:"violations,omitempty"`
}

// ViolationResponse is one rejected field in a validation error response.
type ViolationResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response using Gin.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{
			Error:   "not_found",
			Message: "The requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{
			Error:      "validation_error",
			Message:    err.Error(),
			Violations: violationsOf(err),
		}

	case apperrors.Is(err, apperrors.ErrBadRequest):
		statusCode = http.StatusBadRequest
		errorResponse = ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}

	default:
		// Internal details stay in the log.
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		}
	}

	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	errorResponse := ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	}

	c.JSON(http.StatusBadRequest, errorResponse)
}

func violationsOf(err error) []ViolationResponse {
	var violator apperrors.FieldViolator
	if !apperrors.As(err, &violator) {
		return nil
	}

	fields := violator.FieldViolations()
	out := make([]ViolationResponse, len(fields))
	for i, f := range fields {
		out[i] = ViolationResponse{Field: f.Field, Message: f.Message}
	}
	return out
}
