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

const customerSelectQuery = `SELECT id, first_name, last_name, email, phone, created_at, updated_at FROM customers`

func scanCustomer(scanner interface{ Scan(...any) error }) (models.Customer, error) {
	var c models.Customer
	err := scanner.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func getCustomerByID(id int) (models.Customer, error) {
	return scanCustomer(DB.QueryRow(bind(customerSelectQuery+" WHERE id = ?"), id))
}

// ListCustomers lists all customers
// @Summary      List customers
// @Description  Get the complete customer collection.
// @Tags         customers
// @Produce      json
// @Success      200  {object}  Response{data=[]models.Customer}
// @Router       /customers [get]
// @Security     BearerAuth
func ListCustomers(w http.ResponseWriter, r *http.Request) {
	rows, err := DB.Query(customerSelectQuery + " ORDER BY id")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		customers = append(customers, c)
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	writeJSON(w, http.StatusOK, customers)
}

// GetCustomer retrieves a single customer by ID
// @Summary      Get customer
// @Tags         customers
// @Produce      json
// @Param        id   path      int  true  "Customer ID"
// @Success      200  {object}  Response{data=models.Customer}
// @Failure      404  {object}  Response{error=string}
// @Router       /customers/{id} [get]
// @Security     BearerAuth
func GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	c, err := getCustomerByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "customer not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateCustomer creates a new customer
// @Summary      Create customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        customer  body      models.CustomerInput  true  "Customer contents"
// @Success      201       {object}  Response{data=models.Customer}
// @Failure      400       {object}  Response{error=string}
// @Router       /customers [post]
// @Security     BearerAuth
func CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var input models.CustomerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(bind(`INSERT INTO customers (first_name, last_name, email, phone)
		VALUES (?, ?, ?, ?) RETURNING id`),
		input.FirstName, input.LastName, input.Email, input.Phone).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	c, err := getCustomerByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created customer: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateCustomer updates an existing customer
// @Summary      Update customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id        path      int                   true  "Customer ID"
// @Param        customer  body      models.CustomerInput  true  "Updated customer contents"
// @Success      200       {object}  Response{data=models.Customer}
// @Failure      400       {object}  Response{error=string}
// @Failure      404       {object}  Response{error=string}
// @Router       /customers/{id} [patch]
// @Security     BearerAuth
func UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.CustomerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(bind(`UPDATE customers SET first_name = ?, last_name = ?, email = ?, phone = ?,
		updated_at = CURRENT_TIMESTAMP WHERE id = ?`),
		input.FirstName, input.LastName, input.Email, input.Phone, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}

	c, err := getCustomerByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated customer: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteCustomer deletes a customer without dependents
// @Summary      Delete customer
// @Description  Remove a customer. Rejected while properties or invoices still reference it.
// @Tags         customers
// @Produce      json
// @Param        id   path      int  true  "Customer ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Failure      409  {object}  Response{error=string}
// @Router       /customers/{id} [delete]
// @Security     BearerAuth
func DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var properties, invoices int
	DB.QueryRow(bind("SELECT COUNT(*) FROM properties WHERE customer_id = ?"), id).Scan(&properties)
	DB.QueryRow(bind("SELECT COUNT(*) FROM invoices WHERE customer_id = ?"), id).Scan(&invoices)
	if properties > 0 || invoices > 0 {
		writeError(w, http.StatusConflict,
			fmt.Sprintf("customer is referenced by %d properties and %d invoices; remove them first", properties, invoices))
		return
	}

	res, err := DB.Exec(bind("DELETE FROM customers WHERE id = ?"), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
