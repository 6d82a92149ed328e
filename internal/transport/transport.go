// Package transport is the request pipeline every real service call goes
// through: a credential-attach stage followed by an error-normalize stage,
// in that order, once per request.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// TokenSource provides the current bearer credential; an empty string means
// no session, in which case the request goes out without an Authorization
// header.
type TokenSource interface {
	Token() string
}

// authAttach clones every outgoing request, adding the bearer token when one
// is present and a correlation id when the caller set none. The original
// request is never mutated.
type authAttach struct {
	next   http.RoundTripper
	tokens TokenSource
}

func (t *authAttach) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	if token := t.tokens.Token(); token != "" {
		cloned.Header.Set("Authorization", "Bearer "+token)
	}
	if cloned.Header.Get(requestIDHeader) == "" {
		cloned.Header.Set(requestIDHeader, uuid.NewString())
	}
	return t.next.RoundTrip(cloned)
}

// Client issues JSON calls against the backend through the pipeline.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// onUnauthorized runs once per 401 response, before the error is
	// re-raised; composition wires it to clear the persisted session.
	onUnauthorized func()
}

// Config wires a Client.
type Config struct {
	BaseURL        string
	Tokens         TokenSource
	Timeout        time.Duration
	OnUnauthorized func()
}

// New builds the pipeline client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &authAttach{next: http.DefaultTransport, tokens: cfg.Tokens},
		},
		onUnauthorized: cfg.OnUnauthorized,
	}
}

// DoJSON sends one request through both pipeline stages and decodes the
// response into out (out may be nil). Failures always surface as *APIError;
// errors are annotated, never swallowed.
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport-level failure: no status, message falls back to the
		// transport error itself.
		return NewAPIError(0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.normalize(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) normalize(resp *http.Response) error {
	var errBody struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&errBody)
	serverMsg := errBody.Error
	if serverMsg == "" {
		serverMsg = errBody.Message
	}
	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return NewAPIError(resp.StatusCode, serverMsg, fmt.Errorf("%s %s: %s", resp.Request.Method, resp.Request.URL.Path, resp.Status))
}
