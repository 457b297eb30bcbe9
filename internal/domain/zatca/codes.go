package zatca

import "github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"

// Invoice type codes per UN/CEFACT code list 1001, as used by the ZATCA
// UBL 2.1 profile.
const (
	TypeCodeTaxInvoice = "388" // standard and simplified tax invoices
	TypeCodeDebitNote  = "383"
	TypeCodeCreditNote = "381"
)

// Transaction subtype carried in the InvoiceTypeCode "name" attribute.
// First two digits: 01 = standard (B2B), 02 = simplified (B2C).
const (
	SubtypeStandard   = "0100000"
	SubtypeSimplified = "0200000"
)

// CurrencySAR is the only document currency ZATCA accepts for domestic
// invoices.
const CurrencySAR = "SAR"

var typeCodes = map[string]string{
	entity.TypeStandard:   TypeCodeTaxInvoice,
	entity.TypeSimplified: TypeCodeTaxInvoice,
	entity.TypeDebit:      TypeCodeDebitNote,
	entity.TypeCredit:     TypeCodeCreditNote,
}

var typeSubtypes = map[string]string{
	entity.TypeStandard:   SubtypeStandard,
	entity.TypeSimplified: SubtypeSimplified,
	entity.TypeDebit:      SubtypeStandard,
	entity.TypeCredit:     SubtypeStandard,
}

// InvoiceTypeCode resolves an invoice type to its UNCL1001 code and subtype
// attribute. ok is false for types outside the catalogue.
func InvoiceTypeCode(invoiceType string) (code, subtype string, ok bool) {
	code, ok = typeCodes[invoiceType]
	if !ok {
		return "", "", false
	}
	return code, typeSubtypes[invoiceType], true
}
