package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const connectRetries = 3

// Client is the HTTP client the jobs use to reach the CRM API. It
// retries transport-level failures a fixed number of times; HTTP error
// statuses are returned to the caller untouched.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an API client with a fixed request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// CustomerSummary is the slice of the customer payload the jobs consume
type CustomerSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// OrderSummary is the slice of the order payload the jobs consume
type OrderSummary struct {
	ID            int64           `json:"id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	OrderDate     time.Time       `json:"order_date"`
	CustomerEmail string          `json:"customer_email"`
}

// ProductSummary is the slice of the product payload the jobs consume
type ProductSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// LowStockResponse is the update-low-stock mutation result
type LowStockResponse struct {
	Products []ProductSummary `json:"products"`
	Message  string           `json:"message"`
}

// Hello performs the trivial liveness query
func (c *Client) Hello(ctx context.Context) (string, error) {
	var body struct {
		Hello string `json:"hello"`
	}
	status, err := c.getJSON(ctx, "/hello", &body)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("hello query failed: HTTP %d", status)
	}
	return body.Hello, nil
}

// ListCustomers fetches all customers
func (c *Client) ListCustomers(ctx context.Context) ([]CustomerSummary, error) {
	var body struct {
		Customers []CustomerSummary `json:"customers"`
	}
	status, err := c.getJSON(ctx, "/api/v1/customers", &body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list customers failed: HTTP %d", status)
	}
	return body.Customers, nil
}

// ListOrders fetches all orders with customer emails
func (c *Client) ListOrders(ctx context.Context) ([]OrderSummary, error) {
	var body struct {
		Orders []OrderSummary `json:"orders"`
	}
	status, err := c.getJSON(ctx, "/api/v1/orders", &body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list orders failed: HTTP %d", status)
	}
	return body.Orders, nil
}

// UpdateLowStock invokes the replenishment mutation. The HTTP status is
// returned so the caller can log non-200 responses distinctly from
// transport errors.
func (c *Client) UpdateLowStock(ctx context.Context) (*LowStockResponse, int, error) {
	resp, err := c.doWithRetry(ctx, http.MethodPost, "/api/v1/products/update-low-stock")
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	var body LowStockResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return &body, resp.StatusCode, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) (int, error) {
	resp, err := c.doWithRetry(ctx, http.MethodGet, path)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func (c *Client) doWithRetry(ctx context.Context, method, path string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < connectRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", connectRetries, lastErr)
}
