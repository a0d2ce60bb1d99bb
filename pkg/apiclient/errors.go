package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when a request exceeds its timeout.
	ErrTimeout = errors.New("request timeout exceeded")

	// ErrBuildRequest is returned when the request cannot be constructed.
	ErrBuildRequest = errors.New("failed to build request")

	// ErrRequestFailed wraps network-level failures (DNS, connection refused, TLS).
	ErrRequestFailed = errors.New("request failed")
)

// TransportError reports a non-2xx HTTP response.
// Message carries the server's "message" field when the body is JSON,
// otherwise the raw JSON body or a generic status message.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	return e.Message
}

// ParseError reports a response body that could not be decoded.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsTransportError reports whether err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// StatusCode returns the HTTP status of a TransportError, or 0.
func StatusCode(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}
