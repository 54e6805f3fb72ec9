package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"resty.dev/v3"

	"storefront/internal/storefront"
)

var ErrNotFound = errors.New("not found")

// Client talks to the storefront HTTP API.
type Client struct {
	http  *resty.Client
	Token string
}

func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

func (c *Client) Close() error {
	return c.http.Close()
}

type ProductList struct {
	Version uint64            `json:"version"`
	Brand   string            `json:"brand"`
	Type    string            `json:"type"`
	Total   int               `json:"total"`
	Items   []storefront.Tile `json:"items"`
}

type LoginResult struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type ReloadResult struct {
	Version  uint64    `json:"version"`
	Products int       `json:"products"`
	LoadedAt time.Time `json:"loaded_at"`
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) Products(ctx context.Context, brand, typ string) (*ProductList, error) {
	req := c.http.R().SetContext(ctx)
	if brand != "" {
		req.SetQueryParam("brand", brand)
	}
	if typ != "" {
		req.SetQueryParam("type", typ)
	}
	resp, err := req.Get("/products")
	var out ProductList
	if err := decode(resp, err, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Product returns the detail page for id, selecting variant when non-empty.
// A missing product yields ErrNotFound.
func (c *Client) Product(ctx context.Context, id, variant string) (*storefront.DetailPage, error) {
	req := c.http.R().SetContext(ctx).SetQueryParam("id", id)
	if variant != "" {
		req.SetQueryParam("variant", variant)
	}
	resp, err := req.Get("/product-details")
	var out storefront.DetailPage
	if err := decode(resp, err, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Filters(ctx context.Context) (*storefront.Options, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/filters")
	var out storefront.Options
	if err := decode(resp, err, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges admin credentials for a token and keeps it on c.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"username": username, "password": password}).
		Post("/auth/login")
	var out LoginResult
	if err := decode(resp, err, &out); err != nil {
		return nil, err
	}
	c.Token = out.Token
	return &out, nil
}

func (c *Client) Reload(ctx context.Context) (*ReloadResult, error) {
	if c.Token == "" {
		return nil, errors.New("not logged in")
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.Token).
		Post("/admin/reload")
	var out ReloadResult
	if err := decode(resp, err, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func decode(resp *resty.Response, err error, out any) error {
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	body := []byte(resp.String())
	if resp.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.IsError() {
		var e apiError
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode(), e.Error)
		}
		return fmt.Errorf("HTTP %d %s", resp.StatusCode(), resp.Status())
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
