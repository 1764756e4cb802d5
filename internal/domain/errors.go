// Package domain provides the canonical request, error, and envelope types
// shared by the resolver, the upstream executor, and the HTTP boundary.
package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the closed set of failure categories the gateway can surface.
type ErrorKind string

const (
	// ErrorKindInvalidIdentifier indicates no pattern recognized the identifier.
	ErrorKindInvalidIdentifier ErrorKind = "invalid_identifier"

	// ErrorKindInvalidParameter indicates the identifier shape matched but a
	// field failed validation.
	ErrorKindInvalidParameter ErrorKind = "invalid_parameter"

	// ErrorKindNotFound indicates the upstream service has no such resource.
	ErrorKindNotFound ErrorKind = "not_found"

	// ErrorKindRateLimitExceeded indicates local admission control or the
	// upstream service rejected the call for throttling reasons.
	ErrorKindRateLimitExceeded ErrorKind = "rate_limit_exceeded"

	// ErrorKindUpstreamAPI indicates an upstream failure that is neither a
	// missing resource nor throttling.
	ErrorKindUpstreamAPI ErrorKind = "upstream_api_error"

	// ErrorKindInternal indicates an unexpected failure inside the gateway.
	ErrorKindInternal ErrorKind = "internal_unexpected"
)

// ResolveError is the canonical error carried through the resolution pipeline.
// It is created at the point of failure and propagated unchanged to the
// transport boundary. The message must never embed the upstream credential.
type ResolveError struct {
	// Kind is the failure category.
	Kind ErrorKind `json:"kind"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// UpstreamStatus is the HTTP status returned by the upstream service,
	// when the failure originated there. Zero means no response was received.
	UpstreamStatus int `json:"upstream_status,omitempty"`

	// Details carries the raw upstream error body for diagnostics.
	Details string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.UpstreamStatus != 0 {
		return fmt.Sprintf("%s (upstream %d): %s", e.Kind, e.UpstreamStatus, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// HTTPStatusCode maps the error kind to the status the transport boundary
// should answer with.
func (e *ResolveError) HTTPStatusCode() int {
	switch e.Kind {
	case ErrorKindInvalidIdentifier, ErrorKindInvalidParameter:
		return http.StatusBadRequest
	case ErrorKindNotFound:
		return http.StatusNotFound
	case ErrorKindRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrorKindUpstreamAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WithUpstream attaches the upstream status and raw body to the error.
func (e *ResolveError) WithUpstream(status int, body string) *ResolveError {
	e.UpstreamStatus = status
	e.Details = body
	return e
}

// NewResolveError creates an error of the given kind.
func NewResolveError(kind ErrorKind, message string) *ResolveError {
	return &ResolveError{Kind: kind, Message: message}
}

// ErrInvalidIdentifier reports an identifier no pattern recognized.
func ErrInvalidIdentifier(identifier string) *ResolveError {
	return NewResolveError(ErrorKindInvalidIdentifier,
		fmt.Sprintf("unrecognized identifier %q", identifier))
}

// ErrInvalidParameter reports a field that failed validation. The message
// names the field and the violated constraint.
func ErrInvalidParameter(field, message string) *ResolveError {
	return NewResolveError(ErrorKindInvalidParameter,
		fmt.Sprintf("invalid %s: %s", field, message))
}

// ErrNotFound reports a missing upstream resource.
func ErrNotFound(message string) *ResolveError {
	return NewResolveError(ErrorKindNotFound, message)
}

// ErrRateLimitExceeded reports a throttled call.
func ErrRateLimitExceeded(message string) *ResolveError {
	return NewResolveError(ErrorKindRateLimitExceeded, message)
}

// ErrUpstreamAPI reports a non-classifiable upstream failure.
func ErrUpstreamAPI(message string) *ResolveError {
	return NewResolveError(ErrorKindUpstreamAPI, message)
}

// ErrInternal reports an unexpected gateway failure.
func ErrInternal(message string) *ResolveError {
	return NewResolveError(ErrorKindInternal, message)
}

// ToResolveError converts any error to a ResolveError. Errors that are not
// already part of the taxonomy become InternalUnexpected.
func ToResolveError(err error) *ResolveError {
	var re *ResolveError
	if errors.As(err, &re) {
		return re
	}
	return ErrInternal(err.Error())
}

// IsKind reports whether err is a ResolveError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var re *ResolveError
	return errors.As(err, &re) && re.Kind == kind
}
