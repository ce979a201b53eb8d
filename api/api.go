// Package api defines the wire contract shared by every remote auth call: the
// success/failure envelope, the structured API error, and the Doer transport
// abstraction with its HTTP implementation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Envelope is the response shape every endpoint resolves to.
// A failure never arrives as an Envelope; it surfaces as an *Error instead.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Request describes a single remote call.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        any    // JSON-encoded when non-nil
	BearerToken string // set on authenticated requests
}

// Doer executes a request against the remote service and returns the raw
// response body. A non-2xx response is returned as a *Error.
type Doer interface {
	Do(ctx context.Context, req Request) ([]byte, error)
}

// Client is the HTTP implementation of Doer.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// ClientOption modifies a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying http.Client (primarily for testing).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = logger
	}
}

// NewClient creates an HTTP transport rooted at baseURL.
func NewClient(baseURL string, options ...ClientOption) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[NewClient] baseURL is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        zerolog.Nop(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// Do executes the request. A transport-level failure or a non-2xx status is
// returned as an error; the response body is returned verbatim otherwise.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "[Client.Do] encode request body")
		}
		body = bytes.NewReader(encoded)
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Do] build request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.New().String())
	if req.BearerToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.BearerToken)
	}

	c.log.Debug().Str("method", req.Method).Str("path", req.Path).Msg("api request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Do] httpClient.Do")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Do] read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.failureFromResponse(resp.StatusCode, raw)
	}

	return raw, nil
}

// failureFromResponse decodes a non-2xx body into an *Error. A body that is
// not valid JSON still produces a classified error keyed by status code.
func (c *Client) failureFromResponse(statusCode int, raw []byte) error {
	apiErr := &Error{}
	if err := json.Unmarshal(raw, apiErr); err != nil {
		c.log.Debug().Int("status", statusCode).Msg("unparsable failure body")
	}
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = statusCode
	}
	return apiErr
}

// Call executes a request and decodes the success envelope.
func Call[T any](ctx context.Context, doer Doer, req Request) (*Envelope[T], error) {
	raw, err := doer.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errors.Wrap(err, "[api.Call] decode envelope")
	}
	return &env, nil
}
