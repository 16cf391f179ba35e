package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skarthik/propbill/models"
)

const propertySelectQuery = `SELECT id, customer_id, label, address1, address2, city, state, postal_code,
	notes, is_active, created_at, updated_at FROM properties`

func scanProperty(scanner interface{ Scan(...any) error }) (models.Property, error) {
	var p models.Property
	err := scanner.Scan(&p.ID, &p.CustomerID, &p.Label, &p.Address1, &p.Address2, &p.City, &p.State,
		&p.PostalCode, &p.Notes, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func getPropertyByID(id int) (models.Property, error) {
	return scanProperty(DB.QueryRow(bind(propertySelectQuery+" WHERE id = ?"), id))
}

// ListProperties lists properties
// @Summary      List properties
// @Description  Get the property collection, optionally scoped to one customer.
// @Tags         properties
// @Produce      json
// @Param        customer_id  query     int  false  "Filter by owning customer"
// @Success      200          {object}  Response{data=[]models.Property}
// @Router       /properties [get]
// @Security     BearerAuth
func ListProperties(w http.ResponseWriter, r *http.Request) {
	query := propertySelectQuery
	var args []any

	if cid := r.URL.Query().Get("customer_id"); cid != "" {
		query += " WHERE customer_id = ?"
		args = append(args, cid)
	}
	query += " ORDER BY id"

	rows, err := DB.Query(bind(query), args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		properties = append(properties, p)
	}
	if properties == nil {
		properties = []models.Property{}
	}
	writeJSON(w, http.StatusOK, properties)
}

// GetProperty retrieves a single property by ID
// @Summary      Get property
// @Tags         properties
// @Produce      json
// @Param        id   path      int  true  "Property ID"
// @Success      200  {object}  Response{data=models.Property}
// @Failure      404  {object}  Response{error=string}
// @Router       /properties/{id} [get]
// @Security     BearerAuth
func GetProperty(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	p, err := getPropertyByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "property not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProperty creates a new property
// @Summary      Create property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        property  body      models.PropertyInput  true  "Property contents"
// @Success      201       {object}  Response{data=models.Property}
// @Failure      400       {object}  Response{error=string}
// @Router       /properties [post]
// @Security     BearerAuth
func CreateProperty(w http.ResponseWriter, r *http.Request) {
	var input models.PropertyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var owner int
	if err := DB.QueryRow(bind("SELECT id FROM customers WHERE id = ?"), input.CustomerID).Scan(&owner); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("customer %d not found", input.CustomerID))
		return
	}

	var id int
	err := DB.QueryRow(bind(`INSERT INTO properties (customer_id, label, address1, address2, city, state, postal_code, notes, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		input.CustomerID, input.Label, input.Address1, input.Address2, input.City, input.State,
		input.PostalCode, input.Notes, *input.IsActive).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	p, err := getPropertyByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created property: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProperty updates an existing property
// @Summary      Update property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id        path      int                   true  "Property ID"
// @Param        property  body      models.PropertyInput  true  "Updated property contents"
// @Success      200       {object}  Response{data=models.Property}
// @Failure      400       {object}  Response{error=string}
// @Failure      404       {object}  Response{error=string}
// @Router       /properties/{id} [patch]
// @Security     BearerAuth
func UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.PropertyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(bind(`UPDATE properties SET customer_id = ?, label = ?, address1 = ?, address2 = ?,
		city = ?, state = ?, postal_code = ?, notes = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`),
		input.CustomerID, input.Label, input.Address1, input.Address2, input.City, input.State,
		input.PostalCode, input.Notes, *input.IsActive, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}

	p, err := getPropertyByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated property: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProperty deletes a property
// @Summary      Delete property
// @Description  Remove a property. Invoices keep their property reference, which list views resolve to "Unknown".
// @Tags         properties
// @Produce      json
// @Param        id   path      int  true  "Property ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /properties/{id} [delete]
// @Security     BearerAuth
func DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	res, err := DB.Exec(bind("DELETE FROM properties WHERE id = ?"), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
