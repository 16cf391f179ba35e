// Package client implements the billing core that drives a propbill UI:
// a boundary client with a session lifecycle, indexed entity lookups, the
// invoice composer, and the filtered invoice browser.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/skarthik/propbill/models"
)

// APIError is an error reported by the boundary.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Session carries the authenticated operator identity attached to boundary
// calls. It is created by Login and discarded by Logout; there is no other
// ambient auth state.
type Session struct {
	Username string
	Token    string
}

// Client talks to the propbill boundary API.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New creates a client for the boundary at baseURL.
func New(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: &http.Client{}}
}

// Login exchanges credentials for a bearer token and opens a session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{"username": {username}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/auth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.send(req, &tok); err != nil {
		return err
	}
	c.session = &Session{Username: username, Token: tok.AccessToken}
	return nil
}

// Logout discards the session.
func (c *Client) Logout() {
	c.session = nil
}

// Session returns the active session, or nil when logged out.
func (c *Client) Session() *Session {
	return c.session
}

// ListCustomers fetches the complete customer collection.
func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	err := c.do(ctx, http.MethodGet, "/api/v1/customers", nil, nil, &out)
	return out, err
}

// ListProperties fetches properties, scoped to one customer when
// customerID is positive.
func (c *Client) ListProperties(ctx context.Context, customerID int) ([]models.Property, error) {
	query := url.Values{}
	if customerID > 0 {
		query.Set("customer_id", strconv.Itoa(customerID))
	}
	var out []models.Property
	err := c.do(ctx, http.MethodGet, "/api/v1/properties", query, nil, &out)
	return out, err
}

// CreateCustomer adds a customer.
func (c *Client) CreateCustomer(ctx context.Context, in models.CustomerInput) (models.Customer, error) {
	var out models.Customer
	err := c.do(ctx, http.MethodPost, "/api/v1/customers", nil, in, &out)
	return out, err
}

// CreateProperty adds a property.
func (c *Client) CreateProperty(ctx context.Context, in models.PropertyInput) (models.Property, error) {
	var out models.Property
	err := c.do(ctx, http.MethodPost, "/api/v1/properties", nil, in, &out)
	return out, err
}

// DeleteCustomer removes a customer. The boundary rejects the delete while
// properties or invoices still reference it.
func (c *Client) DeleteCustomer(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/customers/"+strconv.Itoa(id), nil, nil, nil)
}

// DeleteProperty removes a property.
func (c *Client) DeleteProperty(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/properties/"+strconv.Itoa(id), nil, nil, nil)
}

// InvoiceFilter is the predicate set for invoice queries. Zero values are
// dropped from the outgoing query, so the boundary never sees blank filters.
type InvoiceFilter struct {
	Status     models.InvoiceStatus
	CustomerID int
	PropertyID int
}

func (f InvoiceFilter) values() url.Values {
	query := url.Values{}
	if f.Status != "" {
		query.Set("status", f.Status.String())
	}
	if f.CustomerID > 0 {
		query.Set("customer_id", strconv.Itoa(f.CustomerID))
	}
	if f.PropertyID > 0 {
		query.Set("property_id", strconv.Itoa(f.PropertyID))
	}
	return query
}

// ListInvoices fetches invoices matching the filter.
func (c *Client) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]models.Invoice, error) {
	var out []models.Invoice
	err := c.do(ctx, http.MethodGet, "/api/v1/invoices", filter.values(), nil, &out)
	return out, err
}

// CreateInvoice submits a composed invoice.
func (c *Client) CreateInvoice(ctx context.Context, in models.InvoiceInput) (models.Invoice, error) {
	var out models.Invoice
	err := c.do(ctx, http.MethodPost, "/api/v1/invoices", nil, in, &out)
	return out, err
}

// UpdateInvoiceStatus transitions one invoice to a new status. The call is
// atomic: on failure the persisted status is unchanged.
func (c *Client) UpdateInvoiceStatus(ctx context.Context, id int, status models.InvoiceStatus) (models.Invoice, error) {
	query := url.Values{"status": {status.String()}}
	var out models.Invoice
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/invoices/%d/status", id), query, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, u, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// send executes a prepared request, unwraps the response envelope, and maps
// non-2xx responses to APIError.
func (c *Client) send(req *http.Request, out any) error {
	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env struct {
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && resp.StatusCode < 400 {
		return fmt.Errorf("decoding response: %w", err)
	}
	if resp.StatusCode >= 400 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}
