package fmxml

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrNoDatabase indicates an action was submitted before
	// SelectDatabase.
	ErrNoDatabase = errors.New("fmxml: no database selected")

	// ErrNoMatch indicates no records matched the request (code 401).
	ErrNoMatch = errors.New("fmxml: no records match the request")

	// ErrRecordMissing indicates the targeted record does not exist
	// (code 101).
	ErrRecordMissing = errors.New("fmxml: record is missing")

	// ErrInvalidCredentials indicates the account or password was
	// rejected (code 212).
	ErrInvalidCredentials = errors.New("fmxml: invalid user account or password")

	// ErrModIDMismatch indicates the record changed since its
	// modification stamp was read (code 306).
	ErrModIDMismatch = errors.New("fmxml: record modification ID does not match")
)

// TransportError reports a failure below the XML publishing protocol:
// either the HTTP exchange itself failed, or the server answered with a
// non-2xx status.
type TransportError struct {
	// URL is the request URL.
	URL string

	// StatusCode is the HTTP status of a server-returned error
	// response, or 0 for a connection-level failure.
	StatusCode int

	// Status is the HTTP status line accompanying StatusCode.
	Status string

	// Err is the underlying cause of a connection-level failure.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fmxml: request to %s failed: %v", e.URL, e.Err)
	}

	return fmt.Sprintf("fmxml: server returned %s for %s", e.Status, e.URL)
}

// Unwrap returns the underlying connection failure, if any.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError reports a request the server answered but refused: the
// embedded status code of the response document was nonzero, or
// unparsable (code -1).
type ServerError struct {
	// Code is the FileMaker error code.
	Code int
}

// Message returns the documented description for the error code, or
// "Unknown error code" for codes missing from the table.
func (e *ServerError) Message() string {
	if msg, ok := errorCodes[e.Code]; ok {
		return msg
	}

	return "Unknown error code"
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("FileMaker Error %d: %s", e.Code, e.Message())
}

// Is implements errors.Is support for ServerError, matching sentinel
// errors by code.
func (e *ServerError) Is(target error) bool {
	switch {
	case errors.Is(target, ErrNoMatch):
		return e.Code == 401
	case errors.Is(target, ErrRecordMissing):
		return e.Code == 101
	case errors.Is(target, ErrInvalidCredentials):
		return e.Code == 212
	case errors.Is(target, ErrModIDMismatch):
		return e.Code == 306
	default:
		return false
	}
}

// ResponseError reports a response document that does not follow the
// FMPXMLRESULT contract: unparsable XML, wrong child arity or order, or
// missing record attributes.
type ResponseError struct {
	// Reason describes the deviation.
	Reason string

	// Err is the underlying decode error, if any.
	Err error
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fmxml: malformed response: %s: %v", e.Reason, e.Err)
	}

	return "fmxml: malformed response: " + e.Reason
}

// Unwrap returns the underlying decode error, if any.
func (e *ResponseError) Unwrap() error {
	return e.Err
}
