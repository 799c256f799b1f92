package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"greencart/internal/repository"
	"greencart/internal/service"
)

// ErrorResponse represents an error response. Details carries per-field
// validation messages when present.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Details: ve.Fields})
		return
	}
	if errors.Is(err, service.ErrNoDrivers) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no_drivers"})
		return
	}
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrNoDrivers):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
