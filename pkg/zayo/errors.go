package zayo

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// maxErrorBody bounds how much of an upstream body is echoed in Error().
const maxErrorBody = 256

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrCaseNotFound        = errors.New("case not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrFetchCancelled      = errors.New("fetch cancelled")
	ErrMissingAccessToken  = errors.New("auth response has no access_token")
	ErrMalformedResponse   = errors.New("malformed response envelope")
	ErrCaseNumberRequired  = errors.New("case number is required")
	ErrCircuitIDRequired   = errors.New("circuit ID is required")
	ErrNotificationNameReq = errors.New("notification name is required")
	ErrIncompleteResult    = errors.New("result incomplete: pages were dropped")
)

// ConfigError reports a required configuration value that is missing or
// invalid. It is raised before any network activity.
type ConfigError struct {
	Key    string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return "missing configuration: " + e.Key
	}

	return fmt.Sprintf("invalid configuration %s: %s", e.Key, e.Reason)
}

// AuthError reports a failed client-credentials exchange.
type AuthError struct {
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, truncate(e.Body))
	case e.Err != nil:
		return "authentication failed: " + e.Err.Error()
	default:
		return "authentication failed"
	}
}

// Unwrap returns the underlying cause.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// UpstreamError is a non-2xx response from the API that is not a timeout.
type UpstreamError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	if len(e.Body) > 0 {
		msg += ": " + truncate(string(e.Body))
	}

	return msg
}

// TransientNetworkError wraps a timeout talking to the API. The paginator
// retries pages that fail this way.
type TransientNetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *TransientNetworkError) Error() string {
	return "transient network error: " + e.Err.Error()
}

// Unwrap returns the underlying network error.
func (e *TransientNetworkError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a not-found condition, either a domain
// lookup that matched nothing or an upstream 404.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrCaseNotFound) || errors.Is(err, ErrServiceNotFound) {
		return true
	}

	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err came from a rejected or expired token.
func IsUnauthorized(err error) bool {
	authErr := &AuthError{}
	if errors.As(err, &authErr) {
		return true
	}

	return hasStatus(err, http.StatusUnauthorized)
}

// IsTransient reports whether err is a timeout that may succeed on retry.
func IsTransient(err error) bool {
	transient := &TransientNetworkError{}

	return errors.As(err, &transient)
}

// IsConfigError reports whether err is a ConfigError.
func IsConfigError(err error) bool {
	cfgErr := &ConfigError{}

	return errors.As(err, &cfgErr)
}

func hasStatus(err error, status int) bool {
	upstream := &UpstreamError{}
	if errors.As(err, &upstream) {
		return upstream.StatusCode == status
	}

	return false
}

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}

	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut] + "..."
}
