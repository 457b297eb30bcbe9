package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// InvoiceRequest body for POST/PUT /api/invoices. Totals are never accepted
// from the client; they are recomputed from the items on every save.
type InvoiceRequest struct {
	Number     string               `json:"number"`
	Type       string               `json:"type,omitempty"` // default "standard"
	IssueDate  string               `json:"issue_date"`     // "2006-01-02"
	IssueTime  string               `json:"issue_time"`     // "15:04:05"
	CompanyID  string               `json:"company_id"`
	CustomerID string               `json:"customer_id"`
	Discount   decimal.Decimal      `json:"discount"`
	Notes      string               `json:"notes,omitempty"`
	Items      []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest one invoice line. VATRate defaults to 15 when omitted.
type InvoiceItemRequest struct {
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	VATRate     *decimal.Decimal `json:"vat_rate,omitempty"`
	Discount    decimal.Decimal  `json:"discount"`
}

// InvoiceResponse full invoice with items.
type InvoiceResponse struct {
	ID           string                `json:"id"`
	Number       string                `json:"number"`
	Type         string                `json:"type"`
	IssueDate    string                `json:"issue_date"`
	IssueTime    string                `json:"issue_time"`
	CompanyID    string                `json:"company_id"`
	CompanyName  string                `json:"company_name,omitempty"`
	CustomerID   string                `json:"customer_id"`
	CustomerName string                `json:"customer_name,omitempty"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	VATAmount    decimal.Decimal       `json:"vat_amount"`
	Discount     decimal.Decimal       `json:"discount"`
	Total        decimal.Decimal       `json:"total"`
	UUID         string                `json:"uuid,omitempty"`
	QRCode       string                `json:"qr_code,omitempty"`
	Status       string                `json:"status"`
	Notes        string                `json:"notes,omitempty"`
	Items        []InvoiceItemResponse `json:"items"`
}

// InvoiceItemResponse one line in the response, derived fields included.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	Discount    decimal.Decimal `json:"discount"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	Total       decimal.Decimal `json:"total"`
}

// ZATCAResult is the tri-part outcome of a submit/status/cancel operation.
// Data is the raw authority payload (empty object on failure); callers decide
// user feedback from Success and Message, never from the HTTP layer.
type ZATCAResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// CancelInvoiceRequest body for POST /api/invoices/:id/cancel.
type CancelInvoiceRequest struct {
	Reason string `json:"reason,omitempty"`
}

// ZATCALogResponse one audit row of the invoice's authority interactions.
type ZATCALogResponse struct {
	ID           string          `json:"id"`
	Action       string          `json:"action"`
	RequestData  json.RawMessage `json:"request_data"`
	ResponseData json.RawMessage `json:"response_data,omitempty"`
	StatusCode   *int            `json:"status_code,omitempty"`
	Success      bool            `json:"success"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Timestamp    string          `json:"timestamp"`
}

// InvoiceXMLResponse UBL document plus its ZATCA invoice hash.
type InvoiceXMLResponse struct {
	InvoiceID string `json:"invoice_id"`
	Number    string `json:"number"`
	XML       string `json:"xml"`
	Hash      string `json:"hash"`
}

// DashboardResponse invoice counts by status plus the most recent invoices.
type DashboardResponse struct {
	TotalInvoices     int               `json:"total_invoices"`
	DraftInvoices     int               `json:"draft_invoices"`
	SubmittedInvoices int               `json:"submitted_invoices"`
	ApprovedInvoices  int               `json:"approved_invoices"`
	RejectedInvoices  int               `json:"rejected_invoices"`
	CancelledInvoices int               `json:"cancelled_invoices"`
	RecentInvoices    []InvoiceResponse `json:"recent_invoices"`
}
