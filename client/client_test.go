package client

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skarthik/propbill/db"
	"github.com/skarthik/propbill/handlers"
	"github.com/skarthik/propbill/models"
)

// startBoundary serves the real router over a fresh in-memory store with
// auth enabled, so these tests cover the whole wire path.
func startBoundary(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("AUTH_USER", "karthik")
	t.Setenv("AUTH_PASS", "hunter2")

	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(conn, db.DialectSQLite))
	handlers.DB = conn
	handlers.Dialect = db.DialectSQLite
	t.Cleanup(func() { conn.Close() })

	srv := httptest.NewServer(handlers.Router())
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c := New(srv.URL)
	require.NoError(t, c.Login(context.Background(), "karthik", "hunter2"))
	return c
}

func TestSessionLifecycle(t *testing.T) {
	srv := startBoundary(t)
	ctx := context.Background()

	c := New(srv.URL)
	err := c.Login(ctx, "karthik", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Nil(t, c.Session())

	// Without a session every entity call is rejected.
	_, err = c.ListCustomers(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	require.NoError(t, c.Login(ctx, "karthik", "hunter2"))
	require.NotNil(t, c.Session())
	assert.Equal(t, "karthik", c.Session().Username)

	_, err = c.ListCustomers(ctx)
	require.NoError(t, err)

	c.Logout()
	assert.Nil(t, c.Session())
	_, err = c.ListCustomers(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestComposeAndBrowseFlow(t *testing.T) {
	srv := startBoundary(t)
	ctx := context.Background()
	c := login(t, srv)

	ana, err := c.CreateCustomer(ctx, models.CustomerInput{FirstName: "Ana", LastName: "Reyes"})
	require.NoError(t, err)
	bruno, err := c.CreateCustomer(ctx, models.CustomerInput{FirstName: "Bruno", LastName: "Silva"})
	require.NoError(t, err)

	casa, err := c.CreateProperty(ctx, models.PropertyInput{
		CustomerID: ana.ID, Label: "Casa Azul", Address1: "12 Calle Sol"})
	require.NoError(t, err)
	_, err = c.CreateProperty(ctx, models.PropertyInput{
		CustomerID: bruno.ID, Label: "Warehouse", Address1: "900 Dock Rd"})
	require.NoError(t, err)

	dir, err := LoadDirectory(ctx, c)
	require.NoError(t, err)
	assert.Len(t, dir.Customers(), 2)
	require.Len(t, dir.PropertiesByCustomer(ana.ID), 1)

	comp := NewComposer(dir)
	comp.SelectCustomer(ana.ID)
	require.NoError(t, comp.SelectProperty(casa.ID))
	comp.PeriodStart = "2026-08-01"
	comp.PeriodEnd = "2026-08-31"
	comp.SetSubtotal("100")
	comp.SetTax("7")

	inv, err := comp.Submit(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "107.00", inv.Total.StringFixed(2))
	assert.Equal(t, models.StatusSent, inv.Status)
	assert.Equal(t, ana.ID, inv.CustomerID)

	b := NewBrowser(c)
	b.SetStatus(models.StatusSent)
	got, err := b.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	b.SetStatus(models.StatusPaid)
	got, err = b.Refresh(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	paid, err := c.UpdateInvoiceStatus(ctx, inv.ID, models.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, paid.Status)

	got, err = b.Refresh(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inv.ID, got[0].ID)
}

func TestDeletedPropertyResolvesUnknown(t *testing.T) {
	srv := startBoundary(t)
	ctx := context.Background()
	c := login(t, srv)

	ana, err := c.CreateCustomer(ctx, models.CustomerInput{FirstName: "Ana", LastName: "Reyes"})
	require.NoError(t, err)
	casa, err := c.CreateProperty(ctx, models.PropertyInput{
		CustomerID: ana.ID, Label: "Casa Azul", Address1: "12 Calle Sol"})
	require.NoError(t, err)

	dir, err := LoadDirectory(ctx, c)
	require.NoError(t, err)
	comp := NewComposer(dir)
	comp.SelectCustomer(ana.ID)
	require.NoError(t, comp.SelectProperty(casa.ID))
	comp.PeriodStart = "2026-07-01"
	comp.PeriodEnd = "2026-07-31"
	comp.SetSubtotal("250")
	comp.SetTax("0")
	inv, err := comp.Submit(ctx, c)
	require.NoError(t, err)

	// The customer is pinned by its dependents, the property is not.
	err = c.DeleteCustomer(ctx, ana.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)

	require.NoError(t, c.DeleteProperty(ctx, casa.ID))

	dir, err = LoadDirectory(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "Ana Reyes", dir.CustomerName(inv.CustomerID))
	assert.Equal(t, UnknownLabel, dir.PropertyLabel(inv.PropertyID))

	got, err := c.ListInvoices(ctx, InvoiceFilter{PropertyID: casa.ID})
	require.NoError(t, err)
	require.Len(t, got, 1, "the invoice outlives its property")
}
