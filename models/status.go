package models

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusDraft InvoiceStatus = "draft"
	StatusSent  InvoiceStatus = "sent"
	StatusPaid  InvoiceStatus = "paid"
	StatusVoid  InvoiceStatus = "void"
)

// AllStatuses lists every status in forward-path order.
var AllStatuses = []InvoiceStatus{StatusDraft, StatusSent, StatusPaid, StatusVoid}

// IsValid checks if the status is a defined InvoiceStatus.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusVoid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus.
func (s InvoiceStatus) String() string {
	return string(s)
}

// AvailableTransitions returns the statuses an invoice may move to from s,
// which is every defined status except s itself. The expected forward path
// is draft -> sent -> paid with void reachable from anywhere, but backward
// moves are deliberately not forbidden.
func (s InvoiceStatus) AvailableTransitions() []InvoiceStatus {
	out := make([]InvoiceStatus, 0, len(AllStatuses)-1)
	for _, t := range AllStatuses {
		if t != s {
			out = append(out, t)
		}
	}
	return out
}
