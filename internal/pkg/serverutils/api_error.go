package serverutils

import "github.com/gofiber/fiber/v2"

// APIError is the single error currency of the HTTP surface. Message is the
// stable top-level error string; Details optionally carries the underlying
// cause.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// NewValidationError rejects a bad request field. Never retried.
func NewValidationError(message string) *APIError {
	return &APIError{Status: fiber.StatusBadRequest, Message: message}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(message string) *APIError {
	return &APIError{Status: fiber.StatusNotFound, Message: message}
}

// NewConfigurationError reports an operator-actionable misconfiguration,
// surfaced verbatim.
func NewConfigurationError(message string) *APIError {
	return &APIError{Status: fiber.StatusInternalServerError, Message: message}
}

// NewUpstreamError wraps a failure of an external inference surface.
func NewUpstreamError(message string, cause error) *APIError {
	e := &APIError{Status: fiber.StatusBadGateway, Message: message}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}
