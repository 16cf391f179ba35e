package client

import (
	"context"
	"fmt"
	"time"

	"github.com/skarthik/propbill/models"
)

// ValidationError is a composer-side rejection: the form never reaches the
// boundary while one of these is outstanding.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Composer builds one invoice form against a directory snapshot. Amount
// fields hold the operator's raw text so the running total can track
// keystrokes; everything else is held typed.
type Composer struct {
	dir *Directory

	CustomerID  int
	PropertyID  int
	PeriodStart string
	PeriodEnd   string
	IssuedDate  string
	DueDate     string
	Subtotal    string
	Tax         string
	Status      models.InvoiceStatus
	Notes       string

	total models.Money
}

// NewComposer starts a fresh form. The issued date defaults to today and the
// status to sent, matching the common path of billing work already done.
func NewComposer(dir *Directory) *Composer {
	return &Composer{
		dir:        dir,
		IssuedDate: time.Now().Format(models.DateLayout),
		Status:     models.StatusSent,
	}
}

// SelectCustomer sets the customer and always clears the property selection,
// even when reselecting the same customer. A stale property belonging to the
// previous customer must never survive the switch.
func (c *Composer) SelectCustomer(customerID int) {
	c.CustomerID = customerID
	c.PropertyID = 0
}

// PropertyChoices returns the properties selectable for the current
// customer. No customer means no choices.
func (c *Composer) PropertyChoices() []models.Property {
	if c.CustomerID <= 0 {
		return nil
	}
	return c.dir.PropertiesByCustomer(c.CustomerID)
}

// SelectProperty sets the property if it belongs to the current customer.
func (c *Composer) SelectProperty(propertyID int) error {
	p, ok := c.dir.PropertyByID(propertyID)
	if !ok || p.CustomerID != c.CustomerID {
		return &ValidationError{Field: "property_id",
			Message: fmt.Sprintf("property %d does not belong to customer %d", propertyID, c.CustomerID)}
	}
	c.PropertyID = propertyID
	return nil
}

// SetSubtotal updates the subtotal text and the running total.
func (c *Composer) SetSubtotal(s string) {
	c.Subtotal = s
	c.recompute()
}

// SetTax updates the tax text and the running total.
func (c *Composer) SetTax(s string) {
	c.Tax = s
	c.recompute()
}

// Total is the derived total. It is recomputed on every amount edit and is
// never directly settable.
func (c *Composer) Total() models.Money {
	return c.total
}

func (c *Composer) recompute() {
	c.total = models.ComputeTotal(models.ParseAmount(c.Subtotal), models.ParseAmount(c.Tax))
}

// Submission validates the form and converts it into the boundary payload.
// The first failing field is reported and nothing goes on the wire.
func (c *Composer) Submission() (models.InvoiceInput, error) {
	if c.CustomerID <= 0 {
		return models.InvoiceInput{}, &ValidationError{Field: "customer_id", Message: "customer is required"}
	}
	if c.PropertyID <= 0 {
		return models.InvoiceInput{}, &ValidationError{Field: "property_id", Message: "property is required"}
	}
	for _, f := range []struct{ name, value string }{
		{"period_start", c.PeriodStart},
		{"period_end", c.PeriodEnd},
		{"issued_date", c.IssuedDate},
	} {
		if _, err := time.Parse(models.DateLayout, f.value); err != nil {
			return models.InvoiceInput{}, &ValidationError{Field: f.name, Message: "a YYYY-MM-DD date is required"}
		}
	}
	if c.DueDate != "" {
		if _, err := time.Parse(models.DateLayout, c.DueDate); err != nil {
			return models.InvoiceInput{}, &ValidationError{Field: "due_date", Message: "must be YYYY-MM-DD"}
		}
	}
	if !models.ValidAmount(c.Subtotal) {
		return models.InvoiceInput{}, &ValidationError{Field: "subtotal", Message: "a numeric amount is required"}
	}
	if !models.ValidAmount(c.Tax) {
		return models.InvoiceInput{}, &ValidationError{Field: "tax", Message: "a numeric amount is required"}
	}
	if !c.Status.IsValid() {
		return models.InvoiceInput{}, &ValidationError{Field: "status", Message: "unknown status"}
	}

	subtotal := models.ParseAmount(c.Subtotal)
	tax := models.ParseAmount(c.Tax)
	total := models.ComputeTotal(subtotal, tax)
	in := models.InvoiceInput{
		CustomerID:  c.CustomerID,
		PropertyID:  c.PropertyID,
		PeriodStart: c.PeriodStart,
		PeriodEnd:   c.PeriodEnd,
		IssuedDate:  c.IssuedDate,
		Subtotal:    &subtotal,
		Tax:         &tax,
		Total:       &total,
		Status:      c.Status,
	}
	if c.DueDate != "" {
		due := c.DueDate
		in.DueDate = &due
	}
	if c.Notes != "" {
		notes := c.Notes
		in.Notes = &notes
	}
	return in, nil
}

// Submit validates and creates the invoice at the boundary.
func (c *Composer) Submit(ctx context.Context, api *Client) (models.Invoice, error) {
	in, err := c.Submission()
	if err != nil {
		return models.Invoice{}, err
	}
	return api.CreateInvoice(ctx, in)
}
