// Package apierr provides standardized error types for the host-facing
// surface of the engine. Lookup-not-found is deliberately absent here: a
// dictionary or template miss is not an error and must propagate as an
// empty result or a NoMatch classification, never an APIError.
package apierr

import (
	"fmt"
	"net/http"
)

// Code represents an API error code.
type Code string

const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeInvalidRequest    Code = "INVALID_REQUEST"
	CodeInternal          Code = "INTERNAL_ERROR"
	CodeRateLimited       Code = "RATE_LIMITED"
	CodeMalformedDict     Code = "MALFORMED_DICTIONARY"
	CodeMalformedTemplate Code = "MALFORMED_TEMPLATE"
)

// APIError represents a structured API error.
type APIError struct {
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Common errors.
var (
	ErrInternal       = &APIError{Code: CodeInternal, Message: "internal server error", HTTPStatus: http.StatusInternalServerError}
	ErrInvalidRequest = &APIError{Code: CodeInvalidRequest, Message: "invalid request", HTTPStatus: http.StatusBadRequest}
	ErrRateLimited    = &APIError{Code: CodeRateLimited, Message: "rate limit exceeded", HTTPStatus: http.StatusTooManyRequests}
)

// NotFound creates a not found error for a named resource (e.g. a
// template name, not a rhyme-dictionary lookup — see package doc).
func NotFound(resource string) *APIError {
	return &APIError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// InvalidRequest creates a bad request error with a custom message.
func InvalidRequest(message string) *APIError {
	return &APIError{Code: CodeInvalidRequest, Message: message, HTTPStatus: http.StatusBadRequest}
}

// Internal creates an internal error, optionally with a custom message.
func Internal(message string) *APIError {
	if message == "" {
		message = "internal server error"
	}
	return &APIError{Code: CodeInternal, Message: message, HTTPStatus: http.StatusInternalServerError}
}

// MalformedDict reports a structural problem in a rhyme dictionary source
// (multi-character "character" entries, an unknown tone-section name, a
// type mismatch).
func MalformedDict(detail string) *APIError {
	return &APIError{
		Code:       CodeMalformedDict,
		Message:    fmt.Sprintf("malformed rhyme dictionary source: %s", detail),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// MalformedTemplate reports a structural problem in a cipai XML source
// (unknown glyph, missing 格律 text).
func MalformedTemplate(detail string) *APIError {
	return &APIError{
		Code:       CodeMalformedTemplate,
		Message:    fmt.Sprintf("malformed template source: %s", detail),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}
