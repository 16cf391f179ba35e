package client

import (
	"context"
	"errors"
	"sync"

	"github.com/skarthik/propbill/models"
)

// ErrSuperseded is returned by Refresh when its response arrived after a
// newer refresh had already been issued. The stale rows are discarded and the
// caller should keep whatever the newer refresh delivers.
var ErrSuperseded = errors.New("refresh superseded by a newer one")

// Browser is the filtered invoice view. Filter edits and refreshes may race
// when the operator clicks faster than the boundary answers; a sequence
// number ensures only the most recently requested result set is ever kept.
type Browser struct {
	api *Client

	mu       sync.Mutex
	seq      uint64
	filter   InvoiceFilter
	invoices []models.Invoice
}

// NewBrowser creates a browser with an empty filter.
func NewBrowser(api *Client) *Browser {
	return &Browser{api: api}
}

// Filter returns the current predicate set.
func (b *Browser) Filter() InvoiceFilter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// Invoices returns the last kept result set.
func (b *Browser) Invoices() []models.Invoice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.invoices
}

// SetStatus narrows the view to one status; blank clears it.
func (b *Browser) SetStatus(s models.InvoiceStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.Status = s
}

// SetCustomer narrows the view to one customer; zero clears it.
func (b *Browser) SetCustomer(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.CustomerID = id
}

// SetProperty narrows the view to one property; zero clears it.
func (b *Browser) SetProperty(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.PropertyID = id
}

// Refresh fetches invoices for the filter as it stands now. If another
// Refresh starts before this one's response lands, the late result is
// dropped and ErrSuperseded returned. On a fetch error the previous result
// set is kept so the view never goes blank over a transient failure.
func (b *Browser) Refresh(ctx context.Context) ([]models.Invoice, error) {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	filter := b.filter
	b.mu.Unlock()

	invoices, err := b.api.ListInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq {
		return nil, ErrSuperseded
	}
	b.invoices = invoices
	return invoices, nil
}
