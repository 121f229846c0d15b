package bluegem

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrBadArgument reports a request that failed client-side validation.
// It is returned before any network I/O happens. Match with errors.Is.
var ErrBadArgument = errors.New("bad argument")

// ErrMalformedResponse reports a 2xx response whose body did not match
// the expected shape. The wrapped detail names the offending field and
// record.
var ErrMalformedResponse = errors.New("malformed response")

// Classification sentinels for API errors. They never occur on their own;
// match them against a returned *HTTPError with errors.Is.
var (
	// ErrNotFound matches 404 responses.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest matches 4xx responses other than 404.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrServer matches 5xx responses.
	ErrServer = errors.New("server error")
)

// HTTPError is returned for any non-2xx API response. It keeps the raw
// status and body so callers can inspect what the service actually sent.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("csbluegem: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("csbluegem: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is maps the status code onto the classification sentinels. Exactly one
// of ErrNotFound, ErrInvalidRequest, and ErrServer matches any given
// HTTPError.
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrInvalidRequest:
		return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusNotFound
	case ErrServer:
		return e.StatusCode >= 500
	}
	return false
}

// newHTTPError builds an HTTPError from a response, lifting a JSON
// "message" field out of the body when the service provides one.
func newHTTPError(statusCode int, body []byte) *HTTPError {
	e := &HTTPError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Message = payload.Message
	}

	return e
}

func badArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadArgument, fmt.Sprintf(format, args...))
}

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
