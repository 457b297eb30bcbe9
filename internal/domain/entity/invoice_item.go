package entity

import "github.com/shopspring/decimal"

// DefaultVATRate is the standard Saudi VAT rate in percent.
var DefaultVATRate = decimal.NewFromInt(15)

// InvoiceItem is a single line of an invoice. Items are owned by their
// invoice and deleted with it.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal // percent, e.g. 15.00
	Discount    decimal.Decimal // line-level discount, absolute amount
	VATAmount   decimal.Decimal // derived, never stored stale
	Total       decimal.Decimal // derived, never stored stale
}

// Recalculate derives VATAmount and Total from the input fields:
//
//	total     = quantity × unitPrice − discount
//	vatAmount = total × vatRate / 100
//
// It runs on every save so the stored values can never drift from the inputs.
func (it *InvoiceItem) Recalculate() {
	lineTotal := it.Quantity.Mul(it.UnitPrice).Sub(it.Discount)
	it.VATAmount = lineTotal.Mul(it.VATRate).Div(decimal.NewFromInt(100))
	it.Total = lineTotal
}
