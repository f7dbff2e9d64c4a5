package apiclient

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

	"storefront-gateway/internal/core/config"
	"storefront-gateway/internal/core/metrics"
)

type tokenKey struct{}

// WithToken returns a context carrying the bearer token of the end user.
// It takes precedence over the configured service token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext extracts the token stored by WithToken.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client performs authenticated JSON requests against the marketplace backend.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	metrics *metrics.BackendMetrics
}

// New creates a backend client. httpClient is expected to come from httpclient.NewClient.
func New(cfg config.MarketplaceConfig, httpClient *http.Client, m *metrics.BackendMetrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
		http:    httpClient,
		metrics: m,
	}
}

// Get issues a GET request. query may be nil.
func (c *Client) Get(ctx context.Context, resource, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.Do(ctx, resource, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, resource, path string, body, out any) error {
	return c.Do(ctx, resource, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, resource, path string, body, out any) error {
	return c.Do(ctx, resource, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, resource, path string, out any) error {
	return c.Do(ctx, resource, http.MethodDelete, path, nil, out)
}

// Do sends the request, unwraps the response envelope and decodes its data into out.
// out may be nil when the caller does not need the payload.
func (c *Client) Do(ctx context.Context, resource, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", resource, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(resource, method, 0, time.Since(start))
		c.metrics.IncFailure(resource, method)
		return fmt.Errorf("%s: failed to execute request: %w", resource, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveRequest(resource, method, resp.StatusCode, time.Since(start))

	if err := decodeResponse(resource, resp, out); err != nil {
		c.metrics.IncFailure(resource, method)
		return err
	}
	return nil
}

func (c *Client) bearer(ctx context.Context) string {
	if token := TokenFromContext(ctx); token != "" {
		return token
	}
	return c.token
}

func decodeResponse(resource string, resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: failed to read response: %w", resource, err)
	}

	var env Envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= http.StatusBadRequest {
				return &APIError{Resource: resource, StatusCode: resp.StatusCode}
			}
			return fmt.Errorf("%s: failed to decode response: %w", resource, err)
		}
	} else if resp.StatusCode < http.StatusBadRequest {
		// 204 and friends carry no envelope.
		return nil
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return &APIError{
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Message:    env.errorMessage(),
		}
	}

	if out == nil || !env.hasData() {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s: failed to decode data: %w", resource, err)
	}
	return nil
}

// PathID escapes a single path segment.
func PathID(id string) string {
	return url.PathEscape(id)
}
