package listings

import (
	"errors"
	"fmt"
)

// ValidationError rejects a query before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// UpstreamError carries a non-success outcome from the listings provider.
type UpstreamError struct {
	StatusCode int
	Message    string
	Details    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("listings provider: %s (status %d): %v", e.Message, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("listings provider: %s (status %d)", e.Message, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means the sanitized body still failed to parse.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed listings response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IsClientSide reports errors caused by the request or payload rather than by
// provider availability. These do not count against the circuit breaker.
func IsClientSide(err error) bool {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return true
	}
	var malformedErr *MalformedResponseError
	if errors.As(err, &malformedErr) {
		return true
	}
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.StatusCode >= 400 && upstreamErr.StatusCode < 500
	}
	return false
}
