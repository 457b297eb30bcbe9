package entity

import "time"

// Customer is the buyer on an invoice. ZATCA relaxes buyer requirements on
// simplified invoices, so everything beyond name/address/city is optional.
type Customer struct {
	ID             string
	Name           string
	VATNumber      string // optional
	Address        string
	City           string
	PostalCode     string // optional
	Country        string // default "SA"
	BuildingNumber string // optional
	StreetName     string // optional
	District       string // optional
	Email          string // optional
	Phone          string // optional
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
