package backend

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

	"github.com/YelzhanWeb/tableside/internal/adapter/logger"
	"github.com/YelzhanWeb/tableside/internal/domain"
)

const maxErrorBody = 4 << 10

// Client talks to the Order Service and the Menu Service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	stream  *http.Client
	logger  logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		// the push stream is long-lived; only ctx ends it
		stream: &http.Client{},
		logger: logger,
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

type addItemRequest struct {
	ItemID int `json:"item_id"`
	Qty    int `json:"qty"`
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int, status domain.Status) error {
	path := fmt.Sprintf("/api/order/%d/status", orderID)
	return c.postJSON(ctx, path, statusRequest{Status: string(status)})
}

func (c *Client) AddItemToOrder(ctx context.Context, orderID, itemID, qty int) error {
	path := fmt.Sprintf("/api/order/%d/add-item", orderID)
	return c.postJSON(ctx, path, addItemRequest{ItemID: itemID, Qty: qty})
}

func (c *Client) OrdersByDate(ctx context.Context, date string) (*domain.History, error) {
	q := url.Values{"date": {date}}
	var h domain.History
	if err := c.do(ctx, http.MethodGet, "/admin/orders/by-date?"+q.Encode(), nil, "", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) Bill(ctx context.Context, orderID int) (*domain.Bill, error) {
	var b domain.Bill
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bill/%d", orderID), nil, "", &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) ListAdditions(ctx context.Context) ([]domain.Addition, error) {
	var list []domain.Addition
	if err := c.do(ctx, http.MethodGet, "/api/additions", nil, "", &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) UpdateAdditionStatus(ctx context.Context, additionID int, status domain.AdditionStatus) error {
	path := fmt.Sprintf("/api/additions/%d/status", additionID)
	return c.postJSON(ctx, path, statusRequest{Status: string(status)})
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) error {
	return c.sendJSON(ctx, http.MethodPost, path, payload)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(body), "application/json", nil)
}

// do sends one request. Non-2xx answers become *domain.StatusError; out, when
// non-nil, receives the decoded JSON body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := logger.NewRequestID()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend_call", fmt.Sprintf("%s %s", method, path), requestID, map[string]interface{}{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &domain.StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}
