package models

import (
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used on the wire and in the store.
const DateLayout = "2006-01-02"

// Invoice represents an invoice billed against a customer's property for a
// billing period. Only its status is mutable after creation.
type Invoice struct {
	ID          int           `json:"invoice_id"`
	CustomerID  int           `json:"customer_id"`
	PropertyID  int           `json:"property_id"`
	PeriodStart string        `json:"period_start"`
	PeriodEnd   string        `json:"period_end"`
	IssuedDate  string        `json:"issued_date"`
	DueDate     *string       `json:"due_date"`
	Subtotal    Money         `json:"subtotal"`
	Tax         Money         `json:"tax"`
	Total       Money         `json:"total"`
	Status      InvoiceStatus `json:"status"`
	Notes       *string       `json:"notes"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// InvoiceInput is the submission payload for creating an invoice. Subtotal
// and Tax are pointers so a missing amount is distinguishable from zero.
type InvoiceInput struct {
	CustomerID  int           `json:"customer_id"`
	PropertyID  int           `json:"property_id"`
	PeriodStart string        `json:"period_start"`
	PeriodEnd   string        `json:"period_end"`
	IssuedDate  string        `json:"issued_date"`
	DueDate     *string       `json:"due_date"`
	Subtotal    *Money        `json:"subtotal"`
	Tax         *Money        `json:"tax"`
	Total       *Money        `json:"total"`
	Status      InvoiceStatus `json:"status"`
	Notes       *string       `json:"notes"`
}

// Validate checks required fields and re-derives the total so that
// total = subtotal + tax holds regardless of what the client submitted.
func (i *InvoiceInput) Validate() string {
	if i.CustomerID <= 0 {
		return "customer_id is required"
	}
	if i.PropertyID <= 0 {
		return "property_id is required"
	}
	if !isDate(i.PeriodStart) {
		return "period_start is required as YYYY-MM-DD"
	}
	if !isDate(i.PeriodEnd) {
		return "period_end is required as YYYY-MM-DD"
	}
	if !isDate(i.IssuedDate) {
		return "issued_date is required as YYYY-MM-DD"
	}
	if i.DueDate != nil && strings.TrimSpace(*i.DueDate) == "" {
		i.DueDate = nil
	}
	if i.DueDate != nil && !isDate(*i.DueDate) {
		return "due_date must be YYYY-MM-DD"
	}
	if i.Subtotal == nil {
		return "subtotal is required"
	}
	if i.Tax == nil {
		return "tax is required"
	}
	if i.Status == "" {
		i.Status = StatusDraft
	}
	if !i.Status.IsValid() {
		return "status must be one of: draft, sent, paid, void"
	}
	total := ComputeTotal(*i.Subtotal, *i.Tax)
	i.Total = &total
	i.Notes = blankToNil(i.Notes)
	return ""
}

func isDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
