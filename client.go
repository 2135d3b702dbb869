// Package fmxml provides a Go client for the FileMaker Server Advanced
// XML publishing interface (FMPXMLRESULT grammar).
//
// The client handles request encoding, Basic authentication, request
// serialization (to stay within Web Publishing session limits), and
// decodes FMPXMLRESULT documents into typed records.
//
// Basic usage:
//
//	client := fmxml.New("filemaker.example.com",
//	    fmxml.WithScheme("https"),
//	    fmxml.WithPort(443),
//	)
//	client.SetCredentials("fmuser", "password")
//	client.SelectDatabase("Test", "data entry")
//
//	result, err := client.Find(ctx,
//	    fmxml.WithFieldOp("LAST", "Doe", fmxml.OpBeginsWith),
//	    fmxml.WithSort("LAST", fmxml.SortAscend, 1),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range result.Records {
//	    fmt.Println(rec.Values["LAST"])
//	}
package fmxml

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tphakala/go-fmxml/internal/throttle"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultPort       = 80
	defaultScheme     = "http"
	defaultMaxRecords = 50
	defaultUserAgent  = "go-fmxml"
	xmlResultPath     = "/fmi/xml/FMPXMLRESULT.xml"
)

// credentials stores the Basic-auth account for the selected database.
// Fields are private to prevent accidental logging via %+v or reflection.
type credentials struct {
	username string
	password string
}

// Client is a FileMaker XML publishing interface client.
//
// Connection configuration is fixed at construction. Database selection,
// credentials and the result escape mode persist across actions; all
// per-request parameters are supplied as RequestOptions on each action
// call, so a Client holds no request state between calls.
type Client struct {
	scheme    string
	host      string
	port      int
	userAgent string

	httpClient HTTPDoer
	timeout    time.Duration
	gate       *throttle.Gate
	interval   time.Duration

	// Database selection, replaced by SelectDatabase
	database       string
	layout         string
	responseLayout string
	maxRecords     int

	credentials  credentials
	escapeValues bool
}

// New creates a new client for the XML publishing interface at host.
func New(host string, opts ...Option) *Client {
	c := &Client{
		scheme:     defaultScheme,
		host:       host,
		port:       defaultPort,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		maxRecords: defaultMaxRecords,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.gate = throttle.New(c.interval)

	return c
}

// Close releases resources associated with the client.
func (c *Client) Close() {
	c.gate.Close()
}

// SelectDatabase specifies the database and layout subsequent actions
// operate on. It replaces any previous selection and resets the page
// size to the default.
func (c *Client) SelectDatabase(name, layout string, opts ...DatabaseOption) {
	c.database = name
	c.layout = layout
	c.responseLayout = ""
	c.maxRecords = defaultMaxRecords

	for _, opt := range opts {
		opt(c)
	}
}

// SetCredentials specifies the account used for Basic authentication.
// Credentials are sent with every request; the server validates them.
func (c *Client) SetCredentials(username, password string) {
	c.credentials = credentials{username: username, password: password}
}

// SetMaxRecords specifies the maximum number of records returned per query.
func (c *Client) SetMaxRecords(n int) {
	c.maxRecords = n
}

// SetEscapeValues toggles escaping of text values in decoded results.
// When enabled, values are entity-escaped and encoded to plain ASCII for
// direct embedding in XHTML.
func (c *Client) SetEscapeValues(enabled bool) {
	c.escapeValues = enabled
}

// Find returns records matching the given search criteria.
func (c *Client) Find(ctx context.Context, opts ...RequestOption) (*Result, error) {
	return c.submit(ctx, actionFind, opts)
}

// FindAll returns all records on the selected layout.
func (c *Client) FindAll(ctx context.Context, opts ...RequestOption) (*Result, error) {
	return c.submit(ctx, actionFindAll, opts)
}

// Create creates a new record from the given field values and returns it.
func (c *Client) Create(ctx context.Context, opts ...RequestOption) (*Result, error) {
	return c.submit(ctx, actionNew, opts)
}

// Edit updates the record targeted with WithRecordID and returns it.
// Combine with WithModID for an optimistic-concurrency check.
func (c *Client) Edit(ctx context.Context, opts ...RequestOption) (*Result, error) {
	return c.submit(ctx, actionEdit, opts)
}

// Delete removes the record targeted with WithRecordID.
func (c *Client) Delete(ctx context.Context, opts ...RequestOption) (*Result, error) {
	return c.submit(ctx, actionDelete, opts)
}

// baseURL returns the request URL for the XML publishing interface.
func (c *Client) baseURL() string {
	return c.scheme + "://" + c.host + ":" + strconv.Itoa(c.port) + xmlResultPath
}

// selectionParams returns the persistent database selection as ordered
// form parameters.
func (c *Client) selectionParams() []param {
	params := []param{
		{"-db", c.database},
		{"-lay", c.layout},
	}
	if c.responseLayout != "" {
		params = append(params, param{"-lay.response", c.responseLayout})
	}

	return params
}

// submit encodes the selection and request parameters, issues the action
// and decodes the response.
func (c *Client) submit(ctx context.Context, action action, opts []RequestOption) (*Result, error) {
	if c.database == "" || c.layout == "" {
		return nil, ErrNoDatabase
	}

	req := newRequest(opts)

	maxRecords := c.maxRecords
	if req.maxRecords != nil {
		maxRecords = *req.maxRecords
	}

	params := c.selectionParams()
	params = append(params, req.params...)
	params = append(params, param{"-max", strconv.Itoa(maxRecords)})

	body := encodeParams(params) + "&" + string(action)

	if err := c.gate.Enter(ctx); err != nil {
		return nil, fmt.Errorf("acquiring request gate: %w", err)
	}
	defer c.gate.Leave()

	return c.post(ctx, body)
}

// post issues the encoded request body and parses the response document.
func (c *Client) post(ctx context.Context, body string) (*Result, error) {
	reqURL := c.baseURL()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.SetBasicAuth(c.credentials.username, c.credentials.password)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{URL: reqURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	result := &Result{
		URL:    reqURL + "?" + body,
		Header: resp.Header,
	}

	if err := result.decode(resp.Body, c.escapeValues); err != nil {
		return nil, err
	}

	return result, nil
}
