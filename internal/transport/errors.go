package transport

import (
	"errors"
	"net/http"
)

// Fixed messages for the statuses the pipeline rewrites.
const (
	msgSessionExpired = "Your session has expired. Please sign in again."
	msgForbidden      = "You do not have permission to access this resource."
	msgNotFound       = "The requested resource does not exist."
	msgServerError    = "Server error. Please try again later."
	msgUnavailable    = "The service is unavailable right now."
	msgGeneric        = "An unexpected error occurred."
)

// APIError is the normalized error every service call fails with. The
// pipeline only annotates; the original cause stays reachable via Unwrap.
type APIError struct {
	Status  int
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// NewAPIError builds a normalized error for the given status, applying the
// same message rewriting the response pipeline uses. serverMsg is whatever
// the backend put in its error body, empty when there was none.
func NewAPIError(status int, serverMsg string, cause error) *APIError {
	return &APIError{Status: status, Message: messageFor(status, serverMsg, cause), Cause: cause}
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func messageFor(status int, serverMsg string, cause error) string {
	switch status {
	case http.StatusUnauthorized:
		return msgSessionExpired
	case http.StatusForbidden:
		return msgForbidden
	case http.StatusNotFound:
		return msgNotFound
	case http.StatusInternalServerError:
		return msgServerError
	case http.StatusServiceUnavailable:
		return msgUnavailable
	}
	// Best available message: server-provided, then transport, then generic.
	if serverMsg != "" {
		return serverMsg
	}
	if cause != nil {
		return cause.Error()
	}
	return msgGeneric
}
