package wapi

import (
	"errors"
	"fmt"
)

// Common errors for WAPI operations.
var (
	// ErrUnauthorized indicates the API rejected the request authentication:
	// unknown user, wrong WAPI password, a source address outside the account
	// allowlist, or a disabled WAPI interface.
	ErrUnauthorized = errors.New("authentication rejected")

	// ErrUnavailable indicates the API endpoint could not be reached or did
	// not produce a usable answer at the transport level.
	ErrUnavailable = errors.New("api unavailable")

	// ErrMalformedResponse indicates the API answered with a payload that
	// does not match the documented envelope or data shape.
	ErrMalformedResponse = errors.New("malformed api response")
)

// ConfigError represents an invalid client configuration.
type ConfigError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("configuration error: %s=%q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
}

// ErrConfigMissing creates an error for a missing required configuration field.
func ErrConfigMissing(field string) error {
	return &ConfigError{
		Field:   field,
		Message: "required but not set",
	}
}

// ErrConfigInvalid creates an error for an invalid configuration value.
// Value must never carry a credential.
func ErrConfigInvalid(field, value, message string) error {
	return &ConfigError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// APIError is a WAPI response whose result code is outside the success
// range. Authentication rejections additionally match ErrUnauthorized via
// errors.Is.
type APIError struct {
	Code    int
	Result  string
	Command string
}

func (e *APIError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("wapi %s: %d %s", e.Command, e.Code, e.Result)
	}
	return fmt.Sprintf("wapi: %d %s", e.Code, e.Result)
}

// isAuthCode reports whether a result code is an authentication-class
// rejection: invalid login or auth token, disallowed source IP, or WAPI
// access not enabled for the account.
func isAuthCode(code int) bool {
	return code >= 2050 && code <= 2052
}

// IsConfigError returns true if the error is a client configuration error.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// IsAuthError returns true if the error indicates the API rejected the
// request authentication.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNetworkError returns true if the error indicates the API endpoint was
// unreachable.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsProtocolError returns true if the error indicates an undecodable API
// response.
func IsProtocolError(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

// AsAPIError extracts the *APIError from an error chain, if present.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
