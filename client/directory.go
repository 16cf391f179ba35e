package client

import (
	"context"

	"github.com/skarthik/propbill/models"
)

// UnknownLabel is the display fallback when an invoice references an entity
// that no longer exists.
const UnknownLabel = "Unknown"

// Directory indexes one snapshot of the customer and property collections
// for constant-time lookup by id. It preserves collection order for the
// grouped views the UI renders.
type Directory struct {
	customers   []models.Customer
	properties  []models.Property
	custByID    map[int]*models.Customer
	propByID    map[int]*models.Property
	propsByCust map[int][]models.Property
}

// NewDirectory builds the indexes over the given snapshot.
func NewDirectory(customers []models.Customer, properties []models.Property) *Directory {
	d := &Directory{
		customers:   customers,
		properties:  properties,
		custByID:    make(map[int]*models.Customer, len(customers)),
		propByID:    make(map[int]*models.Property, len(properties)),
		propsByCust: make(map[int][]models.Property),
	}
	for i := range customers {
		d.custByID[customers[i].ID] = &customers[i]
	}
	for i := range properties {
		p := &properties[i]
		d.propByID[p.ID] = p
		d.propsByCust[p.CustomerID] = append(d.propsByCust[p.CustomerID], *p)
	}
	return d
}

// LoadDirectory fetches both collections and indexes them.
func LoadDirectory(ctx context.Context, c *Client) (*Directory, error) {
	customers, err := c.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	properties, err := c.ListProperties(ctx, 0)
	if err != nil {
		return nil, err
	}
	return NewDirectory(customers, properties), nil
}

// Customers returns the snapshot in collection order.
func (d *Directory) Customers() []models.Customer {
	return d.customers
}

// Properties returns the snapshot in collection order.
func (d *Directory) Properties() []models.Property {
	return d.properties
}

// CustomerByID looks up one customer.
func (d *Directory) CustomerByID(id int) (models.Customer, bool) {
	c, ok := d.custByID[id]
	if !ok {
		return models.Customer{}, false
	}
	return *c, true
}

// PropertyByID looks up one property.
func (d *Directory) PropertyByID(id int) (models.Property, bool) {
	p, ok := d.propByID[id]
	if !ok {
		return models.Property{}, false
	}
	return *p, true
}

// PropertiesByCustomer returns the customer's properties in collection order.
func (d *Directory) PropertiesByCustomer(customerID int) []models.Property {
	return d.propsByCust[customerID]
}

// CustomerName resolves an invoice's customer reference to a display name,
// falling back to UnknownLabel when the customer is gone.
func (d *Directory) CustomerName(id int) string {
	if c, ok := d.custByID[id]; ok {
		return c.DisplayName()
	}
	return UnknownLabel
}

// PropertyLabel resolves an invoice's property reference to a display label,
// falling back to UnknownLabel for dangling references. Deleting a property
// is allowed while invoices still point at it; those rows render this label.
func (d *Directory) PropertyLabel(id int) string {
	if p, ok := d.propByID[id]; ok {
		return p.Label
	}
	return UnknownLabel
}
