// Package lenderdesk provides a Go client for the LenderDesk API
package lenderdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is the LenderDesk API client
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithToken sets a previously issued access token, skipping Login
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a new LenderDesk client
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Login authenticates with staff credentials and stores the issued token
// on the client for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var result LoginResponse
	if err := c.do(ctx, "POST", "/api/v1/auth/login", body, &result); err != nil {
		return nil, err
	}

	c.token = result.AccessToken
	return &result, nil
}

// ListLenders returns lenders, optionally filtered by status and country.
// Empty filter values are omitted from the query.
func (c *Client) ListLenders(ctx context.Context, status, country string) ([]*Lender, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if country != "" {
		q.Set("country", country)
	}
	path := "/api/v1/lenders"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result struct {
		Lenders []*Lender `json:"lenders"`
	}
	if err := c.do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return result.Lenders, nil
}

// GetLender fetches a single lender by id
func (c *Client) GetLender(ctx context.Context, id string) (*Lender, error) {
	var result Lender
	if err := c.do(ctx, "GET", "/api/v1/lenders/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateLender creates a lender from a raw record. The server reconciles
// legacy field aliases, so any historical shape is accepted.
func (c *Client) CreateLender(ctx context.Context, record map[string]interface{}) (*Lender, error) {
	var result Lender
	if err := c.do(ctx, "POST", "/api/v1/lenders", record, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateLender replaces a lender record. Include "version" in the record
// to guard against concurrent edits; a stale version returns a conflict.
func (c *Client) UpdateLender(ctx context.Context, id string, record map[string]interface{}) (*Lender, error) {
	var result Lender
	if err := c.do(ctx, "PUT", "/api/v1/lenders/"+url.PathEscape(id), record, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteLender deactivates a lender. With purge set, the record is marked
// for physical removal instead.
func (c *Client) DeleteLender(ctx context.Context, id string, purge bool) error {
	path := "/api/v1/lenders/" + url.PathEscape(id)
	if purge {
		path += "?purge=true"
	}
	return c.do(ctx, "DELETE", path, nil, nil)
}

// ImportLenders submits a batch of legacy lender records
func (c *Client) ImportLenders(ctx context.Context, records []map[string]interface{}) (*ImportResponse, error) {
	body := map[string]interface{}{"records": records}

	var result ImportResponse
	if err := c.do(ctx, "POST", "/api/v1/lenders/import", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListProducts returns a lender's products
func (c *Client) ListProducts(ctx context.Context, lenderID string) ([]*Product, error) {
	var result struct {
		Products []*Product `json:"products"`
	}
	path := "/api/v1/lenders/" + url.PathEscape(lenderID) + "/products"
	if err := c.do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return result.Products, nil
}

// CreateProduct creates a product under a lender from a raw record
func (c *Client) CreateProduct(ctx context.Context, lenderID string, record map[string]interface{}) (*Product, error) {
	var result Product
	path := "/api/v1/lenders/" + url.PathEscape(lenderID) + "/products"
	if err := c.do(ctx, "POST", path, record, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProduct fetches a single product by id
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var result Product
	if err := c.do(ctx, "GET", "/api/v1/products/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Match evaluates an applicant profile against every active product
func (c *Client) Match(ctx context.Context, profile *ApplicantProfile) (*MatchResponse, error) {
	var result MatchResponse
	if err := c.do(ctx, "POST", "/api/v1/match", profile, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// EvaluateProduct runs one product's rules against an applicant profile
func (c *Client) EvaluateProduct(ctx context.Context, productID string, profile *ApplicantProfile) (*ProductMatch, error) {
	var result ProductMatch
	path := "/api/v1/products/" + url.PathEscape(productID) + "/evaluate"
	if err := c.do(ctx, "POST", path, profile, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("API error (status %d)", resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
