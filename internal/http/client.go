// Package http implements the authenticated transport for the records API.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/quickbase-client/internal/auth"
	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
)

// Logger interface for HTTP-level logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request represents an HTTP request to the API.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	// Body is JSON-marshaled when non-nil and RawBody is empty.
	Body any
	// RawBody is sent as-is (used by the legacy XML endpoint).
	RawBody []byte
	// ContentType overrides the default application/json.
	ContentType string
	// BaseURL overrides the client base URL (legacy endpoint).
	BaseURL string
	// TableID scopes the credential used for this request.
	TableID string
	// NoAuth skips the Authorization header (token exchange itself).
	NoAuth bool
}

// Response represents an HTTP response from the API.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig tunes transport retries for transient failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retry.RetryMax = retryMax
		c.retry.RetryWaitMin = waitMin
		c.retry.RetryWaitMax = waitMax
	}
}

// Client sends authenticated requests to the records API. Every request
// carries the realm hostname header and, unless opted out, an
// Authorization header resolved through the token manager for the
// request's table.
type Client struct {
	baseURL      string
	realm        string
	tokenManager auth.TokenManager
	retry        *retryablehttp.Client
	logger       Logger
	debug        bool
	userAgent    string
}

// NewClient creates a transport for the given base URL and realm.
// tokenManager may be nil, in which case requests are unauthenticated.
func NewClient(baseURL, realm string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retry := retryablehttp.NewClient()
	retry.RetryMax = constants.DefaultRetryMax
	retry.RetryWaitMin = constants.DefaultRetryWaitMin
	retry.RetryWaitMax = constants.DefaultRetryWaitMax
	retry.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retry.Logger = nil
	// Hand back the final response after retries are exhausted so a
	// persistent 5xx still maps onto qb.APIError with the API message.
	retry.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:      baseURL,
		realm:        realm,
		tokenManager: tokenManager,
		retry:        retry,
		userAgent:    "quickbase-client-go",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// SetTokenManager installs the token manager after construction. The
// temp-token manager's fetcher uses this same transport, so the two are
// wired in two steps.
func (c *Client) SetTokenManager(tokenManager auth.TokenManager) {
	c.tokenManager = tokenManager
}

// Do sends the request and maps non-success statuses onto qb.APIError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})
	}

	httpResp, err := c.retry.Do(httpReq)
	if err != nil && httpResp == nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		})
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, parseAPIError(resp)
	}

	return resp, nil
}

// buildRequest assembles the outbound retryablehttp request.
func (c *Client) buildRequest(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	base := req.BaseURL
	if base == "" {
		base = c.baseURL
	}

	fullURL := base + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var rawBody []byte

	switch {
	case len(req.RawBody) > 0:
		rawBody = req.RawBody
	case req.Body != nil:
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		rawBody = encoded
	}

	var bodyReader io.Reader
	if rawBody != nil {
		bodyReader = bytes.NewReader(rawBody)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set(constants.HeaderRealmHostname, c.realm)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if rawBody != nil {
		contentType := req.ContentType
		if contentType == "" {
			contentType = "application/json"
		}

		httpReq.Header.Set("Content-Type", contentType)
	}

	if !req.NoAuth && c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx, req.TableID)
		if err != nil {
			return nil, fmt.Errorf("resolving credentials: %w", err)
		}

		httpReq.Header.Set("Authorization", c.tokenManager.Scheme()+" "+token)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

// parseAPIError builds a qb.APIError from a non-success response,
// falling back to the HTTP status text when the body carries no message.
func parseAPIError(resp *Response) error {
	apiErr := &qb.APIError{StatusCode: resp.StatusCode}

	var body struct {
		Message     string `json:"message"`
		Description string `json:"description"`
	}

	if err := json.Unmarshal(resp.Body, &body); err == nil {
		apiErr.Message = body.Message
		apiErr.Description = body.Description
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, tableID, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query, TableID: tableID})
}

// Post sends a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, tableID, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body, TableID: tableID})
}

// Delete sends a DELETE request with a JSON body.
func (c *Client) Delete(ctx context.Context, tableID, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Body: body, TableID: tableID})
}
