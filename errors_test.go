package fmxml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerError_Error(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{"no match", 401, "FileMaker Error 401: No records match the request"},
		{"record missing", 101, "FileMaker Error 101: Record is missing"},
		{"unknown sentinel", -1, "FileMaker Error -1: Unknown error"},
		{"undocumented code", 31337, "FileMaker Error 31337: Unknown error code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ServerError{Code: tt.code}
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestServerError_Is(t *testing.T) {
	tests := []struct {
		name        string
		code        int
		target      error
		shouldMatch bool
	}{
		{"no match", 401, ErrNoMatch, true},
		{"record missing", 101, ErrRecordMissing, true},
		{"invalid credentials", 212, ErrInvalidCredentials, true},
		{"mod id mismatch", 306, ErrModIDMismatch, true},
		{"different code", 500, ErrNoMatch, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ServerError{Code: tt.code}
			assert.Equal(t, tt.shouldMatch, errors.Is(err, tt.target))
		})
	}
}

func TestTransportError_Error(t *testing.T) {
	connErr := &TransportError{
		URL: "http://fm.example.com:80/fmi/xml/FMPXMLRESULT.xml",
		Err: errors.New("connection refused"),
	}
	assert.Contains(t, connErr.Error(), "connection refused")

	statusErr := &TransportError{
		URL:        "http://fm.example.com:80/fmi/xml/FMPXMLRESULT.xml",
		StatusCode: 503,
		Status:     "503 Service Unavailable",
	}
	assert.Contains(t, statusErr.Error(), "503 Service Unavailable")
	assert.NoError(t, statusErr.Unwrap())
}

func TestResponseError_Error(t *testing.T) {
	plain := &ResponseError{Reason: "child 0 is PRODUCT, want ERRORCODE"}
	assert.Equal(t, "fmxml: malformed response: child 0 is PRODUCT, want ERRORCODE", plain.Error())

	cause := errors.New("unexpected EOF")
	wrapped := &ResponseError{Reason: "parsing response document", Err: cause}
	assert.Contains(t, wrapped.Error(), "unexpected EOF")
	assert.ErrorIs(t, wrapped, cause)
}
