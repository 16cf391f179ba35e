package models

import (
	"strings"
	"time"
)

// Property represents a serviced property owned by exactly one customer.
// is_active uses 1/0 rather than a boolean to match the wire format.
type Property struct {
	ID         int       `json:"property_id"`
	CustomerID int       `json:"customer_id"`
	Label      string    `json:"label"`
	Address1   string    `json:"address1"`
	Address2   *string   `json:"address2,omitempty"`
	City       *string   `json:"city,omitempty"`
	State      *string   `json:"state,omitempty"`
	PostalCode *string   `json:"postal_code,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	IsActive   int       `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Active reports whether the property is flagged active.
func (p Property) Active() bool {
	return p.IsActive == 1
}

// PropertyInput is used for creating/updating properties. Optional fields
// left blank are normalized to absent rather than stored as empty strings.
type PropertyInput struct {
	CustomerID int     `json:"customer_id"`
	Label      string  `json:"label"`
	Address1   string  `json:"address1"`
	Address2   *string `json:"address2,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	IsActive   *int    `json:"is_active,omitempty"`
}

func (p *PropertyInput) Validate() string {
	if p.CustomerID <= 0 {
		return "customer_id is required"
	}
	if strings.TrimSpace(p.Label) == "" {
		return "label is required"
	}
	if strings.TrimSpace(p.Address1) == "" {
		return "address1 is required"
	}
	if p.IsActive != nil && *p.IsActive != 0 && *p.IsActive != 1 {
		return "is_active must be 0 or 1"
	}
	if p.IsActive == nil {
		active := 1
		p.IsActive = &active
	}
	p.Address2 = blankToNil(p.Address2)
	p.City = blankToNil(p.City)
	p.State = blankToNil(p.State)
	p.PostalCode = blankToNil(p.PostalCode)
	p.Notes = blankToNil(p.Notes)
	return ""
}
