package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router builds the API router. Auth token issuance sits outside the
// authenticated group so a client can bootstrap a session.
func Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/token", Token)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth)

			r.Get("/auth/me", Me)

			// Customers
			r.Get("/customers", ListCustomers)
			r.Post("/customers", CreateCustomer)
			r.Get("/customers/{id}", GetCustomer)
			r.Patch("/customers/{id}", UpdateCustomer)
			r.Delete("/customers/{id}", DeleteCustomer)

			// Properties
			r.Get("/properties", ListProperties)
			r.Post("/properties", CreateProperty)
			r.Get("/properties/{id}", GetProperty)
			r.Patch("/properties/{id}", UpdateProperty)
			r.Delete("/properties/{id}", DeleteProperty)

			// Invoices: created once, then only the status moves
			r.Get("/invoices", ListInvoices)
			r.Post("/invoices", CreateInvoice)
			r.Get("/invoices/{id}", GetInvoice)
			r.Patch("/invoices/{id}/status", UpdateInvoiceStatus)

			// Dashboard
			r.Get("/dashboard", GetDashboard)
		})
	})

	return r
}
