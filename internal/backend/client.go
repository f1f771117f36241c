// Package backend talks to the scraping service: starting jobs, listing the
// scraped contacts and downloading the CSV export. Each operation is a single
// request with no retry.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/mapsleads/internal/config"
)

// Client is the HTTP facade over the scraping service.
type Client struct {
	baseURL    string
	paths      config.BackendConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a client from backend settings.
func New(cfg config.BackendConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		paths:      cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, op, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshalling request: %w", op, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s: building request: %w", op, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", "op", op, "method", method, "path", path, "request_id", reqID, "error", err)
		return nil, &TransportError{Op: op, Err: err}
	}
	c.logger.Debug("backend request",
		"op", op,
		"method", method,
		"path", path,
		"request_id", reqID,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp, nil
}

// messageBody is the envelope the service uses for both success and failure.
type messageBody struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
}

// rejected builds a RejectedError from a non-2xx response, taking the
// backend's message verbatim when the body carries one.
func rejected(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	msg := http.StatusText(resp.StatusCode)
	var mb messageBody
	if err := json.Unmarshal(data, &mb); err == nil && mb.Message != "" {
		msg = mb.Message
	}
	return &RejectedError{Op: op, Status: resp.StatusCode, Message: msg}
}

func success(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
