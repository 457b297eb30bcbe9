package billing

import (
	"context"

	"github.com/AfaqKhan6007007/zatca-full/internal/application/dto"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/repository"
)

// ExportUseCase renders an invoice for human or machine consumption: a
// printable PDF and the UBL 2.1 XML document with its ZATCA invoice hash.
type ExportUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	pdf          PDFGenerator
	xml          XMLExporter
}

func NewExportUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	pdf PDFGenerator,
	xml XMLExporter,
) *ExportUseCase {
	return &ExportUseCase{
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		pdf:          pdf,
		xml:          xml,
	}
}

// PDF renders the invoice as a printable A4 document.
func (uc *ExportUseCase) PDF(ctx context.Context, invoiceID string) ([]byte, error) {
	inv, company, customer, items, err := uc.loadAggregate(invoiceID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateInvoicePDF(ctx, inv, company, customer, items)
}

// XML builds the UBL 2.1 document and its base64 SHA-256 hash.
func (uc *ExportUseCase) XML(ctx context.Context, invoiceID string) (*dto.InvoiceXMLResponse, error) {
	inv, company, customer, items, err := uc.loadAggregate(invoiceID)
	if err != nil {
		return nil, err
	}
	doc, err := uc.xml.Build(inv, company, customer, items)
	if err != nil {
		return nil, err
	}
	hash, err := uc.xml.Hash(doc)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceXMLResponse{
		InvoiceID: inv.ID,
		Number:    inv.Number,
		XML:       string(doc),
		Hash:      hash,
	}, nil
}

func (uc *ExportUseCase) loadAggregate(invoiceID string) (*entity.Invoice, *entity.Company, *entity.Customer, []*entity.InvoiceItem, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if inv == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(inv.CompanyID)
	if err != nil || company == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil || customer == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(inv.ID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return inv, company, customer, items, nil
}
