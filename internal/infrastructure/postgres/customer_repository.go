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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implements CustomerRepository.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the adapter. Pass a pool or tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, vat_number, address, city, postal_code,
	       country, building_number, street_name, district, email, phone,
	       created_at, updated_at`

// Create persists a customer.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, vat_number, address, city, postal_code, country, building_number, street_name, district, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, nullIfEmpty(customer.VATNumber),
		customer.Address, customer.City, nullIfEmpty(customer.PostalCode), customer.Country,
		nullIfEmpty(customer.BuildingNumber), nullIfEmpty(customer.StreetName), nullIfEmpty(customer.District),
		nullIfEmpty(customer.Email), nullIfEmpty(customer.Phone),
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID returns the customer or nil when absent.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	var c entity.Customer
	if err := scanCustomer(r.q.QueryRow(context.Background(), query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List returns customers by name.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update persists every mutable customer field.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name            = $2,
		    vat_number      = $3,
		    address         = $4,
		    city            = $5,
		    postal_code     = $6,
		    country         = $7,
		    building_number = $8,
		    street_name     = $9,
		    district        = $10,
		    email           = $11,
		    phone           = $12,
		    updated_at      = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, nullIfEmpty(customer.VATNumber),
		customer.Address, customer.City, nullIfEmpty(customer.PostalCode), customer.Country,
		nullIfEmpty(customer.BuildingNumber), nullIfEmpty(customer.StreetName), nullIfEmpty(customer.District),
		nullIfEmpty(customer.Email), nullIfEmpty(customer.Phone),
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete removes a customer. A customer referenced by an invoice fails with
// ErrReferenced.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("customer has invoices: %w", domain.ErrReferenced)
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func scanCustomer(row pgx.Row, c *entity.Customer) error {
	var vatNumber, postalCode, buildingNumber, streetName, district, email, phone *string
	err := row.Scan(
		&c.ID, &c.Name, &vatNumber,
		&c.Address, &c.City, &postalCode, &c.Country,
		&buildingNumber, &streetName, &district, &email, &phone,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	c.VATNumber = derefStr(vatNumber)
	c.PostalCode = derefStr(postalCode)
	c.BuildingNumber = derefStr(buildingNumber)
	c.StreetName = derefStr(streetName)
	c.District = derefStr(district)
	c.Email = derefStr(email)
	c.Phone = derefStr(phone)
	return nil
}
