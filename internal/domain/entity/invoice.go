package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses. The lifecycle is linear: an invoice is built as a draft,
// submitted to ZATCA, then approved or rejected by the authority; submitted
// or approved invoices can be cancelled. Rejected and cancelled are terminal.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Invoice types per the ZATCA e-invoicing regulation.
const (
	TypeStandard   = "standard"
	TypeSimplified = "simplified"
	TypeDebit      = "debit"
	TypeCredit     = "credit"
)

// transitions is the set of legal status moves. Everything not listed is
// rejected by Transition, which centralizes the precondition checks that
// would otherwise be duplicated across handlers and use cases.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusCancelled},
}

// Invoice is the aggregate root: it owns its line items and its ZATCA audit
// log as a single consistency boundary.
type Invoice struct {
	ID         string
	Number     string // unique human-readable invoice number
	Type       string // standard | simplified | debit | credit
	IssueDate  time.Time
	IssueTime  string // "HH:MM:SS", kept separate from IssueDate as issued
	CompanyID  string
	CustomerID string

	Subtotal  decimal.Decimal
	VATAmount decimal.Decimal
	Discount  decimal.Decimal // invoice-level discount
	Total     decimal.Decimal

	// Populated only after a successful submission.
	UUID          string // authority-assigned identifier
	QRCode        string // base64 TLV payload (from ZATCA, or generated locally)
	ZATCAResponse string // raw response body of the last successful submission

	Status    Status
	Notes     string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransition reports whether moving to the given status is legal.
func (i *Invoice) CanTransition(to Status) bool {
	for _, s := range transitions[i.Status] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves the invoice to the given status or fails without mutating
// anything. Callers persist the invoice afterwards.
func (i *Invoice) Transition(to Status) error {
	if !i.CanTransition(to) {
		return ErrTransition{From: i.Status, To: to}
	}
	i.Status = to
	return nil
}

// IsDraft reports whether the invoice can still be edited or deleted.
func (i *Invoice) IsDraft() bool { return i.Status == StatusDraft }

// CalculateTotals recomputes the monetary totals from the line items:
//
//	subtotal  = Σ line totals
//	vatAmount = Σ line VAT amounts
//	total     = subtotal + vatAmount − discount
//
// Decimal arithmetic keeps the recomputation idempotent: running it twice on
// unchanged items yields identical results.
func (i *Invoice) CalculateTotals(items []*InvoiceItem) {
	subtotal := decimal.Zero
	vat := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total)
		vat = vat.Add(item.VATAmount)
	}
	i.Subtotal = subtotal
	i.VATAmount = vat
	i.Total = subtotal.Add(vat).Sub(i.Discount)
}

// QRTimestamp composes the TLV tag-3 timestamp: issue date + "T" + issue time.
func (i *Invoice) QRTimestamp() string {
	return i.IssueDate.Format("2006-01-02") + "T" + i.IssueTime
}

// ErrTransition reports an illegal status move.
type ErrTransition struct {
	From, To Status
}

func (e ErrTransition) Error() string {
	return "invalid invoice transition: " + string(e.From) + " -> " + string(e.To)
}
