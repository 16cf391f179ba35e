package models

import (
	"strings"
	"time"
)

// Customer represents a billing customer.
type Customer struct {
	ID        int       `json:"customer_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns the customer's full name for list rendering.
func (c Customer) DisplayName() string {
	return c.FirstName + " " + c.LastName
}

// CustomerInput is used for creating/updating customers.
type CustomerInput struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

func (c *CustomerInput) Validate() string {
	if strings.TrimSpace(c.FirstName) == "" {
		return "first_name is required"
	}
	if strings.TrimSpace(c.LastName) == "" {
		return "last_name is required"
	}
	c.Email = blankToNil(c.Email)
	c.Phone = blankToNil(c.Phone)
	return ""
}

// blankToNil treats an empty or whitespace-only optional field as absent.
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
