package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/go-querystring/query"
	"go.uber.org/zap"

	"github.com/spec-kit/rental-portal/internal/config"
	apperrors "github.com/spec-kit/rental-portal/pkg/util/errorutil"
)

// Client talks to the remote REST API that owns all persistence and
// business validation. Requests carry no retry policy; a failure surfaces
// to the caller, which degrades to an empty view state.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient constructs a client for the configured upstream base URL.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}
}

// ListOptions are the query parameters accepted by upstream list endpoints.
type ListOptions struct {
	Role  string `url:"role,omitempty"`
	Page  int    `url:"page,omitempty"`
	Limit int    `url:"limit,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path, token string, payload any) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("upstream request", zap.String("method", method), zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewUpstreamError(resp.StatusCode, extractMessage(body))
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path, token string, opts *ListOptions) ([]byte, error) {
	if opts != nil {
		values, err := query.Values(opts)
		if err != nil {
			return nil, fmt.Errorf("encode query: %w", err)
		}
		if encoded := values.Encode(); encoded != "" {
			path += "?" + encoded
		}
	}
	return c.do(ctx, http.MethodGet, path, token, nil)
}

// extractMessage pulls the {message} field out of an upstream error body.
func extractMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}

// Ping checks upstream reachability for readiness probes. Any HTTP response
// counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
