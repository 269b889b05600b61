package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Backend issues requests against one upstream base URL. Every call is a
// single round-trip: no retry, no backoff. The bearer token is attached
// per call because the persisted token can change between navigations.
type Backend struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewBackend(baseURL string, timeout time.Duration) *Backend {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Backend{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Ping reports whether the upstream answers HTTP at all. Any status code
// counts as reachable; only a transport error is a failure.
func (b *Backend) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}

func (b *Backend) Get(ctx context.Context, path, token string) (*Response, error) {
	return b.request(ctx, http.MethodGet, path, token, nil)
}

func (b *Backend) Post(ctx context.Context, path, token string, body any) (*Response, error) {
	return b.request(ctx, http.MethodPost, path, token, body)
}

func (b *Backend) Patch(ctx context.Context, path, token string, body any) (*Response, error) {
	return b.request(ctx, http.MethodPatch, path, token, body)
}

func (b *Backend) Delete(ctx context.Context, path, token string) (*Response, error) {
	return b.request(ctx, http.MethodDelete, path, token, nil)
}

func (b *Backend) request(ctx context.Context, method, path, token string, body any) (*Response, error) {
	var reqBody io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}
