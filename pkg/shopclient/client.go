// Package shopclient is the storefront's client-side half: a thin JSON
// client over the API plus the in-memory state a browsing session
// owns, namely the cart, the debounced filter controller and the
// store-hours banner helper.
package shopclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Default catalog filter bounds, mirrored from the server.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 10000
	DefaultSortBy   = "newest"
)

// Product mirrors the API's product representation.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category mirrors the API's category representation.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// User mirrors the API's user representation.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Role    string `json:"role"`
}

// Filters is the full catalog filter state sent with a product fetch.
type Filters struct {
	Search      string
	Category    string
	MinPrice    float64
	MaxPrice    float64
	StockStatus string
	SortBy      string
}

// DefaultFilters returns the storefront's initial filter state.
func DefaultFilters() Filters {
	return Filters{
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		SortBy:   DefaultSortBy,
	}
}

// APIError is a non-2xx response decoded from the API's error envelope.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client is a thin JSON client for the storefront API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the given API base URL (including the
// /api prefix).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// SetSessionToken attaches a session token sent as a bearer header on
// every request. Browser deployments rely on the cookie instead.
func (c *Client) SetSessionToken(token string) {
	c.token = token
}

// Products fetches the catalog with every active filter applied.
func (c *Client) Products(ctx context.Context, f Filters) ([]Product, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	q.Set("min_price", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	q.Set("max_price", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	if f.StockStatus != "" {
		q.Set("stock_status", f.StockStatus)
	}
	if f.SortBy != "" {
		q.Set("sort_by", f.SortBy)
	}

	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products?"+q.Encode(), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories fetches all categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Me returns the current user, or an APIError with status 401 when the
// session is missing or expired.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout destroys the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil)
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			apiErr.Message = envelope.Error
			apiErr.Code = envelope.Code
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
