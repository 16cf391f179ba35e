package handlers

import (
	"net/http"

	"github.com/skarthik/propbill/models"
)

type dashboardData struct {
	TotalCustomers   int `json:"total_customers"`
	TotalProperties  int `json:"total_properties"`
	ActiveProperties int `json:"active_properties"`
	TotalInvoices    int `json:"total_invoices"`
	PendingInvoices  int `json:"pending_invoices"`

	OutstandingTotal models.Money `json:"outstanding_total"` // sum of draft+sent totals
	PaidTotal        models.Money `json:"paid_total"`
}

// GetDashboard retrieves dashboard summary statistics
// @Summary      Get dashboard
// @Description  Get customer/property/invoice counts and receivable totals.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  Response{data=dashboardData}
// @Router       /dashboard [get]
// @Security     BearerAuth
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	var d dashboardData

	DB.QueryRow("SELECT COUNT(*) FROM customers").Scan(&d.TotalCustomers)
	DB.QueryRow("SELECT COUNT(*) FROM properties").Scan(&d.TotalProperties)
	DB.QueryRow("SELECT COUNT(*) FROM properties WHERE is_active = 1").Scan(&d.ActiveProperties)
	DB.QueryRow("SELECT COUNT(*) FROM invoices").Scan(&d.TotalInvoices)
	DB.QueryRow("SELECT COUNT(*) FROM invoices WHERE status IN ('draft', 'sent')").Scan(&d.PendingInvoices)

	DB.QueryRow("SELECT COALESCE(SUM(total), 0) FROM invoices WHERE status IN ('draft', 'sent')").Scan(&d.OutstandingTotal)
	DB.QueryRow("SELECT COALESCE(SUM(total), 0) FROM invoices WHERE status = 'paid'").Scan(&d.PaidTotal)

	writeJSON(w, http.StatusOK, d)
}
