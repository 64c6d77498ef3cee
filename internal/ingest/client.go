package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bakehouse/internal/domain"

	"go.uber.org/zap"
)

// Client pulls record collections from the legacy bakery API and runs
// them through envelope normalization.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, token string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

func (c *Client) FetchOrders(ctx context.Context) ([]domain.Order, error) {
	body, err := c.get(ctx, "/api/orders/orders/")
	if err != nil {
		return nil, err
	}
	return NormalizeOrders(body)
}

func (c *Client) FetchFeedback(ctx context.Context) ([]domain.Feedback, error) {
	body, err := c.get(ctx, "/api/feedback/feedback/")
	if err != nil {
		return nil, err
	}
	return NormalizeFeedback(body)
}

func (c *Client) FetchInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	body, err := c.get(ctx, "/api/inventory/ingredients/")
	if err != nil {
		return nil, err
	}
	return NormalizeInventory(body)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}

	return body, nil
}
