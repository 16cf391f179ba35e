package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/skarthik/propbill/db"
	"github.com/skarthik/propbill/models"
)

// setupTest points the shared handler state at a fresh in-memory store and
// returns a router around it.
func setupTest(t *testing.T) chi.Router {
	t.Helper()
	t.Setenv("AUTH_USER", "")
	t.Setenv("AUTH_PASS", "")

	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(conn, db.DialectSQLite))

	DB = conn
	Dialect = db.DialectSQLite
	t.Cleanup(func() { conn.Close() })

	return Router()
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data  T      `json:"data"`
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env.Error
}

func seedCustomer(t *testing.T, r http.Handler, first, last string) models.Customer {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/api/v1/customers",
		models.CustomerInput{FirstName: first, LastName: last})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[models.Customer](t, rec)
}

func seedProperty(t *testing.T, r http.Handler, customerID int, label string) models.Property {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/api/v1/properties",
		models.PropertyInput{CustomerID: customerID, Label: label, Address1: "1 Main St"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[models.Property](t, rec)
}

func seedInvoice(t *testing.T, r http.Handler, customerID, propertyID int, subtotal, tax string, status models.InvoiceStatus) models.Invoice {
	t.Helper()
	sub := models.ParseAmount(subtotal)
	tx := models.ParseAmount(tax)
	rec := doJSON(t, r, http.MethodPost, "/api/v1/invoices", models.InvoiceInput{
		CustomerID:  customerID,
		PropertyID:  propertyID,
		PeriodStart: "2025-01-01",
		PeriodEnd:   "2025-01-31",
		IssuedDate:  "2025-02-01",
		Subtotal:    &sub,
		Tax:         &tx,
		Status:      status,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[models.Invoice](t, rec)
}

func invoicePath(id int, rest string) string {
	return fmt.Sprintf("/api/v1/invoices/%d%s", id, rest)
}
