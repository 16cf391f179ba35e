package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skarthik/propbill/models"
)

func TestPropertyCRUD(t *testing.T) {
	r := setupTest(t)
	ana := seedCustomer(t, r, "Ana", "Diaz")

	city := "Springfield"
	blank := ""
	rec := doJSON(t, r, http.MethodPost, "/api/v1/properties", models.PropertyInput{
		CustomerID: ana.ID,
		Label:      "Casa",
		Address1:   "1 Main St",
		City:       &city,
		Notes:      &blank,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decodeData[models.Property](t, rec)
	assert.Equal(t, 1, p.IsActive)
	require.NotNil(t, p.City)
	assert.Equal(t, "Springfield", *p.City)
	assert.Nil(t, p.Notes, "blank optional fields are stored as absent")

	inactive := 0
	rec = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/properties/%d", p.ID), models.PropertyInput{
		CustomerID: ana.ID,
		Label:      "Casa Grande",
		Address1:   "1 Main St",
		IsActive:   &inactive,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeData[models.Property](t, rec)
	assert.Equal(t, "Casa Grande", updated.Label)
	assert.False(t, updated.Active())
}

func TestListPropertiesByCustomer(t *testing.T) {
	r := setupTest(t)
	ana := seedCustomer(t, r, "Ana", "Diaz")
	ben := seedCustomer(t, r, "Ben", "Okafor")
	seedProperty(t, r, ana.ID, "Casa")
	seedProperty(t, r, ana.ID, "Cabana")
	seedProperty(t, r, ben.ID, "Loft")

	rec := doJSON(t, r, http.MethodGet, "/api/v1/properties", nil)
	assert.Len(t, decodeData[[]models.Property](t, rec), 3)

	rec = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/properties?customer_id=%d", ana.ID), nil)
	got := decodeData[[]models.Property](t, rec)
	require.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, ana.ID, p.CustomerID)
	}
}

func TestCreatePropertyUnknownCustomer(t *testing.T) {
	r := setupTest(t)
	rec := doJSON(t, r, http.MethodPost, "/api/v1/properties", models.PropertyInput{
		CustomerID: 42, Label: "Casa", Address1: "1 Main St",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "customer 42 not found", decodeError(t, rec))
}

func TestDeletePropertyLeavesInvoiceDangling(t *testing.T) {
	r := setupTest(t)
	ana := seedCustomer(t, r, "Ana", "Diaz")
	casa := seedProperty(t, r, ana.ID, "Casa")
	inv := seedInvoice(t, r, ana.ID, casa.ID, "100", "7", models.StatusSent)

	rec := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/properties/%d", casa.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// the invoice keeps its reference; resolving it is the display layer's problem
	rec = doJSON(t, r, http.MethodGet, invoicePath(inv.ID, ""), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, casa.ID, decodeData[models.Invoice](t, rec).PropertyID)
}
