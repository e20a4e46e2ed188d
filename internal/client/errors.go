package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/juju/errors"
)

// ErrNetwork marks transport failures: the API could not be reached or the
// connection dropped before a response arrived.
const ErrNetwork = errors.ConstError("network failure")

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsAuthError reports whether err means the session is missing or expired.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// newAPIError builds an APIError from a response body, preferring the
// "message" field, then "error", then a generic status line.
func newAPIError(status int, body []byte) *APIError {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Code    string `json:"code"`
	}
	_ = json.Unmarshal(body, &parsed)
	msg := parsed.Message
	if msg == "" {
		msg = parsed.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP Error: %d", status)
	}
	return &APIError{Status: status, Code: parsed.Code, Message: msg}
}
