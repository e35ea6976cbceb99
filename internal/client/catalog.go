// Package client provides an HTTP client for the catalog API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

// Product represents a product returned by the catalog API.
type Product struct {
	ProductID    uint            `json:"productId"`
	ProductName  string          `json:"productName"`
	CategoryID   uint            `json:"categoryId"`
	UnitsInStock int             `json:"unitsInStock"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
}

// Category represents a category returned by the catalog API.
type Category struct {
	CategoryID   uint   `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// ProductRequest is the body sent when creating or updating a product.
type ProductRequest struct {
	ProductName  string          `json:"productName"`
	CategoryID   uint            `json:"categoryId"`
	UnitsInStock int             `json:"unitsInStock"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
}

// APIError is returned when the catalog API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// CatalogClient communicates with the catalog API.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalogClient creates a new catalog API client.
func NewCatalogClient(baseURL string, httpClient *http.Client) *CatalogClient {
	return &CatalogClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GetProducts fetches every product.
func (c *CatalogClient) GetProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/product", nil, &products); err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	return products, nil
}

// GetProduct fetches a single product.
func (c *CatalogClient) GetProduct(ctx context.Context, productID uint) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/product/%d", productID), nil, &product); err != nil {
		return nil, fmt.Errorf("fetching product %d: %w", productID, err)
	}
	return &product, nil
}

// GetCategories fetches every category.
func (c *CatalogClient) GetCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/api/category", nil, &categories); err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	return categories, nil
}

// CreateProduct creates a product and returns it with its assigned id.
func (c *CatalogClient) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPost, "/api/product", req, &product); err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}
	return &product, nil
}

// UpdateProduct overwrites an existing product.
func (c *CatalogClient) UpdateProduct(ctx context.Context, productID uint, req ProductRequest) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/product/%d", productID), req, &product); err != nil {
		return nil, fmt.Errorf("updating product %d: %w", productID, err)
	}
	return &product, nil
}

// DeleteProduct deletes a product.
func (c *CatalogClient) DeleteProduct(ctx context.Context, productID uint) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/product/%d", productID), nil, nil); err != nil {
		return fmt.Errorf("deleting product %d: %w", productID, err)
	}
	return nil
}

func (c *CatalogClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}
	return apiErr
}

type requestIDKey struct{}

// WithRequestID returns a context carrying id, which is forwarded to the API
// as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
