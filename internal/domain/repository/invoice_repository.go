package repository

import "github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"

// InvoiceRepository is the persistence port for Invoice and its line items.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	// Update persists the mutable invoice fields: totals, uuid, qr_code,
	// zatca_response, status, notes, updated_at.
	Update(invoice *entity.Invoice) error
	Delete(id string) error
	DeleteItems(invoiceID string) error
	GetByID(id string) (*entity.Invoice, error)
	GetByNumber(number string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	// List returns invoices newest first, optionally filtered by status
	// (empty string = all).
	List(status entity.Status, limit, offset int) ([]*entity.Invoice, error)
	// CountByStatus returns invoice counts grouped by status (dashboard).
	CountByStatus() (map[entity.Status]int, error)
}
