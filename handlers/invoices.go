package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/skarthik/propbill/models"
)

const invoiceSelectQuery = `SELECT id, customer_id, property_id, period_start, period_end, issued_date,
	due_date, subtotal, tax, total, status, notes, created_at, updated_at FROM invoices`

func scanInvoice(scanner interface{ Scan(...any) error }) (models.Invoice, error) {
	var inv models.Invoice
	err := scanner.Scan(&inv.ID, &inv.CustomerID, &inv.PropertyID, &inv.PeriodStart, &inv.PeriodEnd,
		&inv.IssuedDate, &inv.DueDate, &inv.Subtotal, &inv.Tax, &inv.Total, &inv.Status, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt)
	return inv, err
}

func getInvoiceByID(id int) (models.Invoice, error) {
	return scanInvoice(DB.QueryRow(bind(invoiceSelectQuery+" WHERE id = ?"), id))
}

// ListInvoices lists invoices matching the given filters
// @Summary      List invoices
// @Description  Get invoices, optionally filtered by status, customer, and property. Blank filters are ignored.
// @Tags         invoices
// @Produce      json
// @Param        status       query     string  false  "Filter by status (draft/sent/paid/void)"
// @Param        customer_id  query     int     false  "Filter by customer"
// @Param        property_id  query     int     false  "Filter by property"
// @Success      200          {object}  Response{data=[]models.Invoice}
// @Router       /invoices [get]
// @Security     BearerAuth
func ListInvoices(w http.ResponseWriter, r *http.Request) {
	query := invoiceSelectQuery
	var conditions []string
	var args []any

	if s := r.URL.Query().Get("status"); s != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, s)
	}
	if cid := r.URL.Query().Get("customer_id"); cid != "" {
		conditions = append(conditions, "customer_id = ?")
		args = append(args, cid)
	}
	if pid := r.URL.Query().Get("property_id"); pid != "" {
		conditions = append(conditions, "property_id = ?")
		args = append(args, pid)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := DB.Query(bind(query), args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		invoices = append(invoices, inv)
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	writeJSON(w, http.StatusOK, invoices)
}

// GetInvoice retrieves a single invoice by ID
// @Summary      Get invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  Response{data=models.Invoice}
// @Failure      404  {object}  Response{error=string}
// @Router       /invoices/{id} [get]
// @Security     BearerAuth
func GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	inv, err := getInvoiceByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "invoice not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// CreateInvoice creates a new invoice
// @Summary      Create invoice
// @Description  Create an invoice. The total is derived from subtotal and tax, and the property must belong to the chosen customer.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice  body      models.InvoiceInput  true  "Invoice submission"
// @Success      201      {object}  Response{data=models.Invoice}
// @Failure      400      {object}  Response{error=string}
// @Router       /invoices [post]
// @Security     BearerAuth
func CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var input models.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	// The property must belong to the chosen customer. The composer filters
	// choices the same way, but the boundary does not trust UI discipline.
	var owner int
	err := DB.QueryRow(bind("SELECT customer_id FROM properties WHERE id = ?"), input.PropertyID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("property %d not found", input.PropertyID))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if owner != input.CustomerID {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("property %d does not belong to customer %d", input.PropertyID, input.CustomerID))
		return
	}

	var id int
	err = DB.QueryRow(bind(`INSERT INTO invoices (customer_id, property_id, period_start, period_end,
		issued_date, due_date, subtotal, tax, total, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		input.CustomerID, input.PropertyID, input.PeriodStart, input.PeriodEnd, input.IssuedDate,
		input.DueDate, input.Subtotal, input.Tax, input.Total, input.Status.String(), input.Notes).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	inv, err := getInvoiceByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created invoice: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

// UpdateInvoiceStatus moves an invoice to a new status
// @Summary      Change invoice status
// @Description  Transition an invoice to any status other than its current one. Requesting the current status is a no-op.
// @Tags         invoices
// @Produce      json
// @Param        id      path      int     true  "Invoice ID"
// @Param        status  query     string  true  "Target status (draft/sent/paid/void)"
// @Success      200     {object}  Response{data=models.Invoice}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Router       /invoices/{id}/status [patch]
// @Security     BearerAuth
func UpdateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	target := models.InvoiceStatus(r.URL.Query().Get("status"))
	if !target.IsValid() {
		writeError(w, http.StatusBadRequest, "status must be one of: draft, sent, paid, void")
		return
	}

	inv, err := getInvoiceByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "invoice not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	if inv.Status == target {
		writeJSON(w, http.StatusOK, inv)
		return
	}

	if _, err := DB.Exec(bind(`UPDATE invoices SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`),
		target.String(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	inv, err = getInvoiceByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated invoice: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, inv)
}
