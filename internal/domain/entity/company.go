package entity

import "time"

// Company is the seller identity on an invoice: the legal/tax data ZATCA
// expects in the seller block plus the structured national address.
// Once referenced by a submitted invoice it is protected from deletion by
// the invoices.company_id foreign key (RESTRICT), not by versioning.
type Company struct {
	ID             string
	Name           string
	VATNumber      string // 15-digit Saudi VAT registration number, unique
	CRNumber       string // Commercial Registration number
	Address        string
	City           string
	PostalCode     string
	Country        string // ISO 3166-1 alpha-2, default "SA"
	BuildingNumber string
	StreetName     string
	District       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
