package entity

import "time"

// Audit log actions. One row per authority-API interaction.
const (
	ActionSubmitInvoice = "submit_invoice"
	ActionCancelInvoice = "cancel_invoice"
)

// ZATCALog is an append-only audit record of one ZATCA API interaction. The
// row is created with the outgoing payload before the network call, so an
// attempted call leaves a trace even if it never completes, and finalized
// once with the response. It is never mutated after that.
type ZATCALog struct {
	ID           string
	InvoiceID    string
	Action       string
	RequestData  string // outgoing JSON
	ResponseData string // incoming JSON, empty until finalized
	StatusCode   *int   // nil until a response (or lack of one) is recorded
	Success      bool
	ErrorMessage string
	Timestamp    time.Time // set at creation, immutable
}
