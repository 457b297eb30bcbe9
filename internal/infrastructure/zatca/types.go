package zatca

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Wire types for the ZATCA invoice-submission API. Field names follow the
// authority contract; monetary values are decimals, never floats.

// Address structured address inside a seller or buyer block.
type Address struct {
	Street         string `json:"street"`
	BuildingNumber string `json:"buildingNumber"`
	District       string `json:"district"`
	City           string `json:"city"`
	PostalCode     string `json:"postalCode"`
	Country        string `json:"country"`
}

// Seller block: the ZATCA API requires the full legal identity.
type Seller struct {
	Name      string  `json:"name"`
	VATNumber string  `json:"vatNumber"`
	CRNumber  string  `json:"crNumber"`
	Address   Address `json:"address"`
}

// Buyer block: optional fields are sent as empty strings, never omitted.
type Buyer struct {
	Name      string  `json:"name"`
	VATNumber string  `json:"vatNumber"`
	Address   Address `json:"address"`
}

// Line one invoice line in the submission payload.
type Line struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
	VATAmount   decimal.Decimal `json:"vatAmount"`
	Discount    decimal.Decimal `json:"discount"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// Totals invoice-level totals block.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	VATAmount decimal.Decimal `json:"vatAmount"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// InvoicePayload is the full submission body for POST {base}/invoices.
type InvoicePayload struct {
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceType   string `json:"invoiceType"`
	IssueDate     string `json:"issueDate"` // "2006-01-02"
	IssueTime     string `json:"issueTime"` // "15:04:05"
	Seller        Seller `json:"seller"`
	Buyer         Buyer  `json:"buyer"`
	InvoiceLines  []Line `json:"invoiceLines"`
	Totals        Totals `json:"totals"`
}

// CancelPayload body for POST {base}/invoices/{uuid}/cancel.
type CancelPayload struct {
	UUID   string `json:"uuid"`
	Reason string `json:"reason"`
}

// SubmitResponse is the subset of a 200 submission response the service
// consumes: the authority-assigned identifier and the compliance QR payload.
type SubmitResponse struct {
	UUID   string `json:"uuid"`
	QRCode string `json:"qrCode"`
}

// Result is the tri-part outcome of any authority call. StatusCode is 0 when
// no HTTP response was received (network failure). Body is the raw response
// body when one exists; Data is the parsed body, `{}` on failure.
type Result struct {
	Success    bool
	Message    string
	StatusCode int
	Body       string
	Data       json.RawMessage
}

// emptyObject is the failure Data payload.
var emptyObject = json.RawMessage(`{}`)

func failure(message string, statusCode int, body string) *Result {
	return &Result{
		Success:    false,
		Message:    message,
		StatusCode: statusCode,
		Body:       body,
		Data:       emptyObject,
	}
}
