package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/packlane/storefront/pkg/errors"
	"github.com/packlane/storefront/pkg/metrics"
)

const responseBodyLimit int64 = 4 << 20

// Client talks to the external catalog service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.StorefrontMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the default HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithMetrics wires fetch duration/failure recording.
func WithMetrics(m *metrics.StorefrontMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a catalog client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("catalog base url is required")
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return client, nil
}

// ListProducts fetches the full catalog snapshot.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "list_products", "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories fetches the category names.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.getJSON(ctx, "list_categories", "/products/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetProduct fetches a single product by id. A missing id maps to NOT_FOUND.
func (c *Client) GetProduct(ctx context.Context, id int) (Product, error) {
	var product *Product
	if err := c.getJSON(ctx, "get_product", fmt.Sprintf("/products/%d", id), &product); err != nil {
		return Product{}, err
	}
	// The catalog service answers 200 with a null body for unknown ids.
	if product == nil || product.ID == 0 {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"product_id": id})
	}
	return *product, nil
}

// Ping verifies the catalog service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	var categories []string
	return c.doGetJSON(ctx, "/products/categories", &categories)
}

func (c *Client) getJSON(ctx context.Context, call, path string, dest any) error {
	start := time.Now()
	err := c.doGetJSON(ctx, path, dest)
	c.metrics.ObserveCatalogFetch(call, time.Since(start))
	if err != nil {
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			c.metrics.IncCatalogFailure(call)
		}
	}
	return err
}

func (c *Client) doGetJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog unavailable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading catalog response")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	case resp.StatusCode != http.StatusOK:
		return pkgerrors.New(pkgerrors.CodeDependency, "catalog unavailable").
			WithDetails(map[string]any{"status": resp.StatusCode})
	}

	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("null")
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding catalog response")
	}
	return nil
}
