package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ecomload/internal/domain"
	"ecomload/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *ListMeta   `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListMeta describes a list response.
type ListMeta struct {
	Count int `json:"count"`
	Limit int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondList sends a 200 success response with list metadata.
func RespondList(c *gin.Context, data interface{}, meta ListMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnknownDataset):
		return http.StatusNotFound, "UNKNOWN_COLLECTION", "unknown collection; allowed: customers, products, orders, order_items"
	case errors.Is(err, domain.ErrUnknownReport):
		return http.StatusNotFound, "UNKNOWN_REPORT", "unknown report; allowed: states, orders, delivery, collection"
	case errors.Is(err, domain.ErrInvalidLocation):
		return http.StatusBadRequest, "INVALID_LOCATION", "invalid location; use a path or s3://bucket/key"
	case errors.Is(err, domain.ErrLedgerDisabled):
		return http.StatusServiceUnavailable, "LEDGER_DISABLED", "run ledger is disabled"
	case errors.Is(err, domain.ErrStoreUnreachable):
		return http.StatusServiceUnavailable, "STORE_UNREACHABLE", "document store not reachable"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		middleware.GetLogger(c).WithError(err).Error("internal error")
	}
	RespondError(c, status, code, msg)
}
