package billing

import (
	"context"

	"github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction with the
// invoice repository bound to it, so an invoice header and its line items
// are persisted atomically.
type TxRunner interface {
	RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// PDFGenerator renders the printable representation of an invoice.
type PDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		company *entity.Company,
		customer *entity.Customer,
		items []*entity.InvoiceItem,
	) ([]byte, error)
}

// XMLExporter builds the UBL document for an invoice and its canonical hash.
type XMLExporter interface {
	Build(
		invoice *entity.Invoice,
		company *entity.Company,
		customer *entity.Customer,
		items []*entity.InvoiceItem,
	) ([]byte, error)
	Hash(xmlBytes []byte) (string, error)
}
