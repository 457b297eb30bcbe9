package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AfaqKhan6007007/zatca-full/internal/domain"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/entity"
	"github.com/AfaqKhan6007007/zatca-full/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, number, type, issue_date, issue_time,
	       company_id, customer_id, subtotal, vat_amount, discount, total,
	       uuid, qr_code, zatca_response, status, notes, created_by,
	       created_at, updated_at`

// Create persists the invoice header.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, number, type, issue_date, issue_time, company_id, customer_id, subtotal, vat_amount, discount, total, uuid, qr_code, zatca_response, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, invoice.Type, invoice.IssueDate, invoice.IssueTime,
		invoice.CompanyID, invoice.CustomerID,
		invoice.Subtotal, invoice.VATAmount, invoice.Discount, invoice.Total,
		nullIfEmpty(invoice.UUID), nullIfEmpty(invoice.QRCode), nullIfEmpty(invoice.ZATCAResponse),
		string(invoice.Status), nullIfEmpty(invoice.Notes), nullIfEmpty(invoice.CreatedBy),
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persists one line item.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, description, quantity, unit_price, vat_rate, discount, vat_amount, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.Description, item.Quantity, item.UnitPrice,
		item.VATRate, item.Discount, item.VATAmount, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// Update persists every mutable invoice field.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET number         = $2,
		    type           = $3,
		    issue_date     = $4,
		    issue_time     = $5,
		    company_id     = $6,
		    customer_id    = $7,
		    subtotal       = $8,
		    vat_amount     = $9,
		    discount       = $10,
		    total          = $11,
		    uuid           = COALESCE($12, uuid),
		    qr_code        = COALESCE($13, qr_code),
		    zatca_response = COALESCE($14, zatca_response),
		    status         = $15,
		    notes          = $16,
		    updated_at     = $17
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, invoice.Type, invoice.IssueDate, invoice.IssueTime,
		invoice.CompanyID, invoice.CustomerID,
		invoice.Subtotal, invoice.VATAmount, invoice.Discount, invoice.Total,
		nullIfEmpty(invoice.UUID), nullIfEmpty(invoice.QRCode), nullIfEmpty(invoice.ZATCAResponse),
		string(invoice.Status), nullIfEmpty(invoice.Notes),
		invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// Delete removes the invoice header.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// DeleteItems removes every line item of the invoice.
func (r *InvoiceRepo) DeleteItems(invoiceID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

// GetByID returns the invoice header or nil when absent.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByNumber returns the invoice with the given human-readable number.
func (r *InvoiceRepo) GetByNumber(number string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE number = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, number))
}

// GetItemsByInvoiceID returns the invoice's line items in insertion order.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, description, quantity, unit_price, vat_rate, discount, vat_amount, total
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity, &it.UnitPrice,
			&it.VATRate, &it.Discount, &it.VATAmount, &it.Total); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List returns invoices newest first, optionally filtered by status.
func (r *InvoiceRepo) List(status entity.Status, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// CountByStatus returns invoice counts grouped by status.
func (r *InvoiceRepo) CountByStatus() (map[entity.Status]int, error) {
	rows, err := r.q.Query(context.Background(), `SELECT status, COUNT(*) FROM invoices GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count invoices: %w", err)
	}
	defer rows.Close()
	counts := make(map[entity.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[entity.Status(status)] = n
	}
	return counts, rows.Err()
}

func (r *InvoiceRepo) scanOne(row pgx.Row) (*entity.Invoice, error) {
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) scanRow(rows pgx.Rows) (*entity.Invoice, error) {
	inv, err := scanInvoice(rows)
	if err != nil {
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return inv, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var status string
	var uuidVal, qrCode, zatcaResponse, notes, createdBy *string
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.Type, &inv.IssueDate, &inv.IssueTime,
		&inv.CompanyID, &inv.CustomerID,
		&inv.Subtotal, &inv.VATAmount, &inv.Discount, &inv.Total,
		&uuidVal, &qrCode, &zatcaResponse, &status, &notes, &createdBy,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.UUID = derefStr(uuidVal)
	inv.QRCode = derefStr(qrCode)
	inv.ZATCAResponse = derefStr(zatcaResponse)
	inv.Status = entity.Status(status)
	inv.Notes = derefStr(notes)
	inv.CreatedBy = derefStr(createdBy)
	return &inv, nil
}
