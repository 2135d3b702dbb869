package fmxml

import (
	"context"
	"net/http"
)

// HTTPDoer abstracts the HTTP client for testing.
// *http.Client implements this interface.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Commander defines the action surface of the client.
// This interface enables mocking the entire client in consumer tests.
type Commander interface {
	// Find returns records matching the given search criteria.
	Find(ctx context.Context, opts ...RequestOption) (*Result, error)

	// FindAll returns all records on the selected layout.
	FindAll(ctx context.Context, opts ...RequestOption) (*Result, error)

	// Create creates a new record from the given field values.
	Create(ctx context.Context, opts ...RequestOption) (*Result, error)

	// Edit updates the record targeted with WithRecordID.
	Edit(ctx context.Context, opts ...RequestOption) (*Result, error)

	// Delete removes the record targeted with WithRecordID.
	Delete(ctx context.Context, opts ...RequestOption) (*Result, error)
}
