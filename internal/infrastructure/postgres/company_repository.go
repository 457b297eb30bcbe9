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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implements CompanyRepository.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository builds the adapter. Pass a pool or tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, vat_number, cr_number, address, city, postal_code,
	       country, building_number, street_name, district, created_at, updated_at`

// Create persists a company. The VAT number is unique.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, vat_number, cr_number, address, city, postal_code, country, building_number, street_name, district, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.VATNumber, company.CRNumber,
		company.Address, company.City, company.PostalCode, company.Country,
		company.BuildingNumber, company.StreetName, company.District,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("vat number already exists: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID returns the company or nil when absent.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByVATNumber returns the company with the given VAT registration number.
func (r *CompanyRepo) GetByVATNumber(vatNumber string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE vat_number = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, vatNumber))
}

// List returns companies by name.
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := scanCompany(rows, &c); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update persists every mutable company field.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies
		SET name            = $2,
		    vat_number      = $3,
		    cr_number       = $4,
		    address         = $5,
		    city            = $6,
		    postal_code     = $7,
		    country         = $8,
		    building_number = $9,
		    street_name     = $10,
		    district        = $11,
		    updated_at      = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.VATNumber, company.CRNumber,
		company.Address, company.City, company.PostalCode, company.Country,
		company.BuildingNumber, company.StreetName, company.District,
		company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("vat number already exists: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Delete removes a company. Invoices reference companies with RESTRICT, so a
// referenced company fails with ErrReferenced.
func (r *CompanyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("company has invoices: %w", domain.ErrReferenced)
		}
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) scanOne(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	if err := scanCompany(row, &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

func scanCompany(row pgx.Row, c *entity.Company) error {
	return row.Scan(
		&c.ID, &c.Name, &c.VATNumber, &c.CRNumber,
		&c.Address, &c.City, &c.PostalCode, &c.Country,
		&c.BuildingNumber, &c.StreetName, &c.District,
		&c.CreatedAt, &c.UpdatedAt,
	)
}
