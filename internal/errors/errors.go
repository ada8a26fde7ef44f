package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when the bearer credential is missing, invalid or revoked.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMissingScratchCardID is returned when the request does not name a scratch card.
	ErrMissingScratchCardID = errors.New("scratch_card_id is required")
	// ErrScratchCardNotFound is returned when the scratch card does not exist.
	ErrScratchCardNotFound = errors.New("scratch card not found")
	// ErrScratchCardInactive is returned when the scratch card is not on sale.
	ErrScratchCardInactive = errors.New("scratch card is not active")
	// ErrNoActiveBatch is returned when the card has no single active batch.
	ErrNoActiveBatch = errors.New("no active batch for this scratch card")
	// ErrBatchSoldOut is returned when the active batch has no cards left.
	ErrBatchSoldOut = errors.New("scratch card batch is sold out")
	// ErrNoSymbols is returned when the card has no symbols configured.
	ErrNoSymbols = errors.New("scratch card has no symbols configured")
	// ErrChanceNotFound is returned when a chance does not exist for the caller.
	ErrChanceNotFound = errors.New("scratch chance not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// Internal is the response every unexpected failure collapses to.
func Internal() *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrMissingScratchCardID):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrScratchCardNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SCRATCH_CARD_NOT_FOUND")
	case errors.Is(err, ErrScratchCardInactive):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SCRATCH_CARD_INACTIVE")
	case errors.Is(err, ErrNoActiveBatch):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_ACTIVE_BATCH")
	case errors.Is(err, ErrBatchSoldOut):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SOLD_OUT")
	case errors.Is(err, ErrNoSymbols):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_SYMBOLS")
	case errors.Is(err, ErrChanceNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CHANCE_NOT_FOUND")
	default:
		return Internal()
	}
}
