// Package api implements the HTTP client used by the CLI to talk to the
// storefront server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avolkov/storefront/pkg/api"
)

// TokenSource supplies the session token attached to outgoing requests.
// The client calls it at send time for every request, so the header always
// reflects the token current at that moment rather than a value captured
// when the client was built.
type TokenSource interface {
	Token() string
}

// Client is the HTTP client for the storefront API
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	baseURL    string
}

// NewClient creates a new API client. tokens may be nil for a client that
// only ever calls public endpoints.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Carry the token header across redirects
				if len(via) > 0 && via[0].Header.Get(api.TokenHeader) != "" {
					req.Header.Set(api.TokenHeader, via[0].Header.Get(api.TokenHeader))
				}
				return nil
			},
		},
	}
}

// Register registers a new user
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login authenticates and returns the signed session token
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Me returns the profile of the authenticated user
func (c *Client) Me(ctx context.Context) (*api.UserProfile, error) {
	var resp api.UserProfile
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/auth/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &resp, nil
}

// ListCategories returns all catalog categories
func (c *Client) ListCategories(ctx context.Context) ([]api.Category, error) {
	var resp []api.Category
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/categories", nil, &resp); err != nil {
		return nil, fmt.Errorf("categories request failed: %w", err)
	}
	return resp, nil
}

// ListProducts returns catalog products, optionally filtered by category id
func (c *Client) ListProducts(ctx context.Context, categoryID string) ([]api.Product, error) {
	path := "/api/v1/products"
	if categoryID != "" {
		path += "?category=" + categoryID
	}

	var resp []api.Product
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("products request failed: %w", err)
	}
	return resp, nil
}

// CreateOrder places an order for the authenticated user
func (c *Client) CreateOrder(ctx context.Context, req api.OrderRequest) (*api.Order, error) {
	var resp api.Order
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/orders", req, &resp); err != nil {
		return nil, fmt.Errorf("order request failed: %w", err)
	}
	return &resp, nil
}

// ListOrders returns the authenticated user's order history
func (c *Client) ListOrders(ctx context.Context) ([]api.Order, error) {
	var resp []api.Order
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/orders", nil, &resp); err != nil {
		return nil, fmt.Errorf("orders request failed: %w", err)
	}
	return resp, nil
}

// doRequest performs an HTTP request and decodes the JSON response into out.
// The token header is computed here, per request, from the token source.
func (c *Client) doRequest(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(api.TokenHeader, token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp api.Response
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
