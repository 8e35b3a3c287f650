package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/intradash/adminkit/internal/common/config"
	"github.com/intradash/adminkit/internal/common/errorx"
	"go.uber.org/zap"
)

// Client issues JSON requests against the admin backend. It is a thin
// pass-through: one attempt per call, no retry, no caching. Every
// failure is normalized into an errorx.APIError before it is returned.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a client for the configured backend. The base URL
// is the configured host plus the API prefix.
func NewClient(cfg *config.APIConfig, logger *zap.Logger) *Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = config.DefaultPrefix
	}
	return &Client{
		baseURL: base + prefix,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// BaseURL returns the resolved API base URL including the version prefix.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path, token string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil, token)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, token string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body, token)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, token string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, body, token)
}

// Patch issues a PATCH request with an optional JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any, token string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, path, body, token)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path, token string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, nil, token)
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string) (json.RawMessage, error) {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errorx.Normalize(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errorx.Normalize(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed before reaching the server",
			zap.String("method", method),
			zap.String("url", url),
			zap.Error(err))
		return nil, errorx.NewNetwork(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errorx.NewNetwork(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := errorx.FromResponse(resp.StatusCode, http.StatusText(resp.StatusCode), data)
		c.logger.Debug("backend rejected request",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.String("code", apiErr.Code))
		return nil, apiErr
	}

	return data, nil
}
