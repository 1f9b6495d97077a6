// Package upstream is the REST client for the backend retail API,
// which owns the catalog and books orders.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/babychic/storefront/internal/domain"
)

var (
	// ErrUnavailable wraps transport-level failures: the backend could
	// not be reached at all.
	ErrUnavailable = errors.New("backend unavailable")

	ErrProductNotFound = errors.New("product not found")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if httpClient.Transport == nil {
		httpClient.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type listProductsResponse struct {
	Products []domain.Product `json:"products"`
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var resp listProductsResponse
	if err := c.get(ctx, "/products", &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

type getProductResponse struct {
	Product domain.Product `json:"product"`
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var resp getProductResponse
	err := c.get(ctx, "/products/"+strconv.FormatInt(id, 10), &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &resp.Product, nil
}

type createOrderResponse struct {
	Order domain.Confirmation `json:"order"`
}

// CreateOrder posts the order to the backend. Any error means the
// order was not booked from the storefront's point of view; the caller
// decides whether the user may retry.
func (c *Client) CreateOrder(ctx context.Context, order domain.Order) (*domain.Confirmation, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp createOrderResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorMessage pulls a human-readable message out of an error
// body, tolerating both {"error": "..."} and plain text.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "no error details"
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return string(data)
}
