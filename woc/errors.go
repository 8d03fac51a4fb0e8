package woc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrLegacyOnly is returned by endpoints that only exist in the legacy profile.
var ErrLegacyOnly = errors.New("endpoint is only available with the legacy profile")

// ServerError reports a response with a non-success status, or a success
// response whose body could not be decoded.
type ServerError struct {
	StatusCode int
	Payload    []byte // raw response body
	Message    string // text body, or the message/error field of a JSON body
	URL        string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("whatsonchain: server returned %d: %s", e.StatusCode, e.Message)
}

// NetworkError reports a request that was sent without a response being
// received: timeouts, refused connections, truncated bodies.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("whatsonchain: no response from %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RequestSetupError reports a request that could not be built or dispatched.
// It carries the original cause unchanged.
type RequestSetupError struct {
	Err error
}

func (e *RequestSetupError) Error() string {
	return e.Err.Error()
}

func (e *RequestSetupError) Unwrap() error {
	return e.Err
}

// IsServerError returns true if err is or wraps a ServerError.
func IsServerError(err error) bool {
	var target *ServerError
	return errors.As(err, &target)
}

// IsNetworkError returns true if err is or wraps a NetworkError.
func IsNetworkError(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}

// IsRequestSetupError returns true if err is or wraps a RequestSetupError.
func IsRequestSetupError(err error) bool {
	var target *RequestSetupError
	return errors.As(err, &target)
}

// StatusCode returns the HTTP status of a ServerError in err's chain, or 0.
func StatusCode(err error) int {
	var se *ServerError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// errorKind labels err for metrics. Empty means success.
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsServerError(err):
		return "server"
	case IsNetworkError(err):
		return "network"
	default:
		return "setup"
	}
}

func newServerError(statusCode int, url string, payload []byte) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		Payload:    payload,
		Message:    serverMessage(statusCode, payload),
		URL:        url,
	}
}

// serverMessage extracts a human-readable message from an error body.
func serverMessage(statusCode int, payload []byte) string {
	text := strings.TrimSpace(string(payload))
	if text == "" {
		return http.StatusText(statusCode)
	}

	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(payload, &obj) == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Error != "" {
			return obj.Error
		}
	}

	var s string
	if json.Unmarshal(payload, &s) == nil && s != "" {
		return s
	}

	return text
}
